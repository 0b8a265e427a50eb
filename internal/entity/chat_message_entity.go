package entity

import "time"

// ChatMessage belongs to exactly one chat and is append-only: it is never
// mutated after creation, only removed when its chat is deleted.
type ChatMessage struct {
	Id             string                 `json:"message_id"`
	ChatId         string                 `json:"chat_id"`
	Role           string                 `json:"role"` // "user" | "assistant"
	Content        string                 `json:"content"`
	Timestamp      time.Time              `json:"timestamp"`
	StructuredData map[string]interface{} `json:"structured_data,omitempty"`
	ArtifactIds    []string               `json:"artifact_ids,omitempty"`
}
