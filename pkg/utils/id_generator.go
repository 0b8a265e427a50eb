package utils

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	chatIdMu   sync.Mutex
	lastChatId int64
)

// NewChatId returns a time-based chat id. Ids generated this way sort by
// creation time, which the chat list ordering relies on as a tie-breaker;
// two ids minted in the same millisecond are forced strictly increasing.
func NewChatId() string {
	chatIdMu.Lock()
	defer chatIdMu.Unlock()

	now := time.Now().UnixMilli()
	if now <= lastChatId {
		now = lastChatId + 1
	}
	lastChatId = now
	return fmt.Sprintf("%d", now)
}

// NewMessageId derives a message id from a fragment of the user identity,
// the current time and a random suffix.
func NewMessageId(userFragment string) string {
	fragment := strings.ToLower(strings.TrimSpace(userFragment))
	if len(fragment) > 8 {
		fragment = fragment[:8]
	}
	if fragment == "" {
		fragment = "anon"
	}
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%s-%d-%s", fragment, time.Now().UnixMilli(), suffix)
}

// NewArtifactId returns a unique artifact id.
func NewArtifactId() string {
	return uuid.NewString()
}

// Slugify converts a title into a url-safe slug.
func Slugify(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
