package dto

type SetActiveViewRequest struct {
	View string `json:"view" validate:"required"`
}

type ActiveViewResponse struct {
	View string `json:"view"`
}

type UpdatePreferencesRequest struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	UsingFor string `json:"using_for"`
	AiTraits []string `json:"ai_traits"`
}
