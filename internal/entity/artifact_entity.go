package entity

import (
	"time"

	"ai-canvas-be/internal/constant"
)

// ArtifactVersion is an immutable content snapshot. Versions are ordered
// oldest-first: the latest version is always the last element.
type ArtifactVersion struct {
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	EditedBy  string    `json:"edited_by,omitempty"`
	Slug      string    `json:"slug,omitempty"`
	Url       string    `json:"url,omitempty"`
}

// Artifact is a persistent, versioned unit of content owned by one chat.
// ChatId must be set at creation and Versions is never empty.
type Artifact struct {
	Id        string                 `json:"id"`
	ChatId    string                 `json:"chat_id"`
	Title     string                 `json:"title"`
	Type      constant.ArtifactType  `json:"type"`
	Slug      string                 `json:"slug,omitempty"`
	Versions  []ArtifactVersion      `json:"versions"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// LatestVersion returns the newest version, or nil for a malformed artifact
// with an empty version list.
func (a *Artifact) LatestVersion() *ArtifactVersion {
	if len(a.Versions) == 0 {
		return nil
	}
	return &a.Versions[len(a.Versions)-1]
}
