package constant

import "time"

// ArtifactType enumerates the content types an artifact may hold.
type ArtifactType string

const (
	ArtifactTypeHTML       ArtifactType = "html"
	ArtifactTypeMarkdown   ArtifactType = "markdown"
	ArtifactTypeImage      ArtifactType = "image"
	ArtifactTypeText       ArtifactType = "text"
	ArtifactTypeLink       ArtifactType = "link"
	ArtifactTypeFiles      ArtifactType = "files"
	ArtifactTypeCode       ArtifactType = "code"
	ArtifactTypeCSS        ArtifactType = "css"
	ArtifactTypeJavaScript ArtifactType = "javascript"
	ArtifactTypeJSON       ArtifactType = "json"
	ArtifactTypeYAML       ArtifactType = "yaml"
)

// ValidArtifactTypes is the closed set accepted at artifact creation.
var ValidArtifactTypes = map[ArtifactType]bool{
	ArtifactTypeHTML:       true,
	ArtifactTypeMarkdown:   true,
	ArtifactTypeImage:      true,
	ArtifactTypeText:       true,
	ArtifactTypeLink:       true,
	ArtifactTypeFiles:      true,
	ArtifactTypeCode:       true,
	ArtifactTypeCSS:        true,
	ArtifactTypeJavaScript: true,
	ArtifactTypeJSON:       true,
	ArtifactTypeYAML:       true,
}

// IsStructuredType reports whether content of this type is markup-like,
// i.e. eligible for structural (tag/class) similarity matching.
func IsStructuredType(t ArtifactType) bool {
	return t == ArtifactTypeHTML || t == ArtifactTypeMarkdown || t == ArtifactTypeCode
}

// EntityKind identifies a persisted dataset.
type EntityKind string

const (
	KindChats       EntityKind = "chats"
	KindMessages    EntityKind = "messages"
	KindArtifacts   EntityKind = "artifacts"
	KindPreferences EntityKind = "preferences"
	KindActiveChat  EntityKind = "activeChat"
)

// AllEntityKinds lists every dataset the persistence scheduler mirrors.
var AllEntityKinds = []EntityKind{
	KindChats,
	KindMessages,
	KindArtifacts,
	KindPreferences,
	KindActiveChat,
}

// Tier B key-value layout: one key per dataset.
const (
	KVKeyChats       = "canvas:chats"
	KVKeyMessages    = "canvas:messages"
	KVKeyArtifacts   = "canvas:artifacts"
	KVKeyPreferences = "canvas:preferences"
	KVKeyActiveChat  = "canvas:active_chat"
)

// KVKeyForKind maps a dataset to its Tier B key.
func KVKeyForKind(kind EntityKind) string {
	switch kind {
	case KindChats:
		return KVKeyChats
	case KindMessages:
		return KVKeyMessages
	case KindArtifacts:
		return KVKeyArtifacts
	case KindPreferences:
		return KVKeyPreferences
	case KindActiveChat:
		return KVKeyActiveChat
	}
	return "canvas:" + string(kind)
}

const (
	// DataChangedTopic is the in-process change bus topic.
	DataChangedTopic = "DATA_CHANGED"

	// DefaultSaveDebounce coalesces repeated saves of the same dataset.
	DefaultSaveDebounce = 500 * time.Millisecond
)

// Identity resolver thresholds.
const (
	TitleSimilarityThreshold   = 0.7
	StructuralMatchThreshold   = 0.6
	UpdateSimilarityThreshold  = 0.25
	ContentComparisonMaxLength = 500
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
