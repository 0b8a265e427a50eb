package dto

type CreateChatRequest struct {
	Title string `json:"title"`
}

type RenameChatRequest struct {
	Title string `json:"title" validate:"required"`
}

type SetDescriptionRequest struct {
	Description string `json:"description"`
}

type AppendMessageRequest struct {
	Role           string                 `json:"role" validate:"required,oneof=user assistant"`
	Content        string                 `json:"content" validate:"required"`
	StructuredData map[string]interface{} `json:"structured_data,omitempty"`
	ArtifactIds    []string               `json:"artifact_ids,omitempty"`
}

type SetActiveChatRequest struct {
	ChatId string `json:"chat_id" validate:"required"`
}
