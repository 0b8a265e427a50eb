// FILE: internal/service/merge_service.go
package service

import (
	"sort"
	"time"

	"ai-canvas-be/internal/entity"
)

// IMergeService reconciles a locally persisted snapshot with one fetched
// from the remote backend into a deduplicated union. The merge is pure and
// idempotent: merging the result with the same remote snapshot again
// changes nothing.
type IMergeService interface {
	Merge(local, remote *entity.Snapshot) *entity.Snapshot
}

type mergeService struct{}

func NewMergeService() IMergeService {
	return &mergeService{}
}

func (m *mergeService) Merge(local, remote *entity.Snapshot) *entity.Snapshot {
	if local == nil {
		local = entity.EmptySnapshot()
	}
	if remote == nil {
		remote = entity.EmptySnapshot()
	}

	merged := &entity.Snapshot{
		Chats:          mergeChats(local.Chats, remote.Chats),
		MessagesByChat: mergeMessages(local.MessagesByChat, remote.MessagesByChat),
		Artifacts:      mergeArtifacts(local.Artifacts, remote.Artifacts),
	}

	// The remote user record is always fresher than a local cache
	if remote.Preferences != nil {
		merged.Preferences = remote.Preferences
	} else {
		merged.Preferences = local.Preferences
	}

	return merged
}

// mergeChats keys by id. A remote chat replaces its local counterpart only
// when strictly newer; ties keep local. Output is most-recent-first.
func mergeChats(local, remote []*entity.Chat) []*entity.Chat {
	byId := make(map[string]*entity.Chat, len(local))
	order := make([]string, 0, len(local)+len(remote))

	for _, chat := range local {
		if _, seen := byId[chat.Id]; !seen {
			order = append(order, chat.Id)
		}
		byId[chat.Id] = chat
	}

	for _, chat := range remote {
		existing, seen := byId[chat.Id]
		if !seen {
			byId[chat.Id] = chat
			order = append(order, chat.Id)
			continue
		}
		if chatFreshness(chat).After(chatFreshness(existing)) {
			byId[chat.Id] = chat
		}
	}

	out := make([]*entity.Chat, 0, len(order))
	for _, id := range order {
		out = append(out, byId[id])
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// chatFreshness prefers updatedAt and falls back to the creation timestamp;
// the two sources do not always populate the same field.
func chatFreshness(chat *entity.Chat) time.Time {
	if !chat.UpdatedAt.IsZero() {
		return chat.UpdatedAt
	}
	return chat.Timestamp
}

// mergeMessages deduplicates per chat on (role, content). The two sources
// do not share a message id scheme, so exact content is the conservative
// key; when both sides match, the newer creation time wins. Each chat's
// list comes out in ascending timestamp order.
func mergeMessages(local, remote map[string][]*entity.ChatMessage) map[string][]*entity.ChatMessage {
	out := make(map[string][]*entity.ChatMessage, len(local))

	chatIds := make(map[string]bool, len(local)+len(remote))
	for chatId := range local {
		chatIds[chatId] = true
	}
	for chatId := range remote {
		chatIds[chatId] = true
	}

	for chatId := range chatIds {
		type slot struct {
			msg *entity.ChatMessage
		}
		byKey := make(map[string]*slot)
		order := make([]string, 0, len(local[chatId])+len(remote[chatId]))

		insert := func(msg *entity.ChatMessage) {
			key := msg.Role + "\x00" + msg.Content
			if existing, seen := byKey[key]; seen {
				if msg.Timestamp.After(existing.msg.Timestamp) {
					existing.msg = msg
				}
				return
			}
			byKey[key] = &slot{msg: msg}
			order = append(order, key)
		}

		for _, msg := range local[chatId] {
			insert(msg)
		}
		for _, msg := range remote[chatId] {
			insert(msg)
		}

		msgs := make([]*entity.ChatMessage, 0, len(order))
		for _, key := range order {
			msgs = append(msgs, byKey[key].msg)
		}
		sort.SliceStable(msgs, func(i, j int) bool {
			return msgs[i].Timestamp.Before(msgs[j].Timestamp)
		})
		out[chatId] = msgs
	}

	return out
}

// mergeArtifacts keys by id with the same strictly-newer rule as chats,
// compared on updatedAt. Output is most-recently-updated-first.
func mergeArtifacts(local, remote []*entity.Artifact) []*entity.Artifact {
	byId := make(map[string]*entity.Artifact, len(local))
	order := make([]string, 0, len(local)+len(remote))

	for _, artifact := range local {
		if _, seen := byId[artifact.Id]; !seen {
			order = append(order, artifact.Id)
		}
		byId[artifact.Id] = artifact
	}

	for _, artifact := range remote {
		existing, seen := byId[artifact.Id]
		if !seen {
			byId[artifact.Id] = artifact
			order = append(order, artifact.Id)
			continue
		}
		if artifact.UpdatedAt.After(existing.UpdatedAt) {
			byId[artifact.Id] = artifact
		}
	}

	out := make([]*entity.Artifact, 0, len(order))
	for _, id := range order {
		out = append(out, byId[id])
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}
