package entity

import "time"

// Chat is a conversation thread. It owns an ordered message sequence and
// zero or more artifacts; deleting a chat cascades to both.
type Chat struct {
	Id          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Timestamp   time.Time  `json:"timestamp"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
