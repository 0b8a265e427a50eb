package dto

type SubmitContentRequest struct {
	ChatId   string `json:"chat_id" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Type     string `json:"type" validate:"required"`
	Content  string `json:"content" validate:"required"`
	EditedBy string `json:"edited_by"`
}

type SubmitContentResponse struct {
	Outcome  string      `json:"outcome"`
	Artifact interface{} `json:"artifact"`
}

type RenameArtifactRequest struct {
	Title string `json:"title" validate:"required"`
}

type AddVersionRequest struct {
	Content  string `json:"content" validate:"required"`
	EditedBy string `json:"edited_by"`
}

type SetActiveVersionRequest struct {
	Index int `json:"index"`
}

type ActiveVersionResponse struct {
	Index int `json:"index"`
}
