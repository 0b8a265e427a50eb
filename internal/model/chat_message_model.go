package model

import (
	"time"

	"gorm.io/datatypes"
)

type ChatMessage struct {
	Id             string `gorm:"type:text;primaryKey"`
	ChatId         string `gorm:"type:text;not null;index"`
	Role           string `gorm:"type:text;not null"`
	Content        string `gorm:"type:text"`
	Timestamp      time.Time
	StructuredData datatypes.JSON
	ArtifactIds    datatypes.JSON
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
