package model

import (
	"time"

	"gorm.io/datatypes"
)

// Artifact rows carry the full version history as a JSON column. The
// structured tier exists to mirror in-memory state, not to query versions
// relationally, so one row per artifact keeps replace-all writes cheap.
type Artifact struct {
	Id        string `gorm:"type:text;primaryKey"`
	ChatId    string `gorm:"type:text;not null;index"`
	Title     string `gorm:"type:text;not null"`
	Type      string `gorm:"type:text;not null"`
	Slug      string `gorm:"type:text"`
	Versions  datatypes.JSON
	Metadata  datatypes.JSON
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Artifact) TableName() string {
	return "artifacts"
}
