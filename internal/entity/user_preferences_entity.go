package entity

// UserPreferences is the session-wide preference bag. It is replaced
// wholesale on login merge and on logout purge, never patched field by field.
type UserPreferences struct {
	Name     string   `json:"name,omitempty"`
	Role     string   `json:"role,omitempty"`
	UsingFor string   `json:"using_for,omitempty"`
	AiTraits []string `json:"ai_traits,omitempty"`
}
