package model

import "time"

type Chat struct {
	Id          string    `gorm:"type:text;primaryKey"`
	Title       string    `gorm:"type:text;not null"`
	Description string    `gorm:"type:text"`
	Timestamp   time.Time `gorm:"index"`
	EndTime     *time.Time
	UpdatedAt   time.Time
}

func (Chat) TableName() string {
	return "chats"
}
