package entity

// Snapshot is one side of a reconciliation: either the locally persisted
// datasets or the datasets fetched from the remote backend.
type Snapshot struct {
	Chats          []*Chat                   `json:"chats"`
	MessagesByChat map[string][]*ChatMessage `json:"messages_by_chat"`
	Artifacts      []*Artifact               `json:"artifacts"`
	Preferences    *UserPreferences          `json:"preferences,omitempty"`
}

// EmptySnapshot returns a snapshot with all collections initialized.
func EmptySnapshot() *Snapshot {
	return &Snapshot{
		Chats:          []*Chat{},
		MessagesByChat: map[string][]*ChatMessage{},
		Artifacts:      []*Artifact{},
	}
}
