// FILE: internal/service/identity_service.go
package service

import (
	"strings"

	"ai-canvas-be/internal/constant"
	"ai-canvas-be/internal/entity"
	"ai-canvas-be/internal/pkg/logger"
	"ai-canvas-be/internal/state"
	"ai-canvas-be/pkg/similarity"
)

// IIdentityService decides whether newly produced content belongs to an
// existing artifact, and whether attaching it should create a new version
// or be dropped as a duplicate.
type IIdentityService interface {
	// FindBestMatch evaluates candidates from the given chat, first match
	// wins: exact title+type, case-insensitive title+type, fuzzy title
	// (containment or similarity > 0.7) with same type, then structural
	// content overlap > 0.6 for markup-like types. Returns nil when
	// nothing matches — the caller creates a new artifact.
	FindBestMatch(chatId, title string, artifactType constant.ArtifactType, content string) *entity.Artifact

	// ShouldUpdate gates a matched artifact: false when the new content is
	// a trim-equal duplicate of the latest version, true when the content
	// similarity clears a deliberately low bar (0.25) that favors
	// versioning over duplication. It never forces a fork into a new
	// artifact.
	ShouldUpdate(artifact *entity.Artifact, newContent string) bool

	// IsRefinedTitle reports whether newTitle is a refinement of oldTitle:
	// strictly longer and either containing the old title or scoring above
	// 0.7 similarity. "Todo App" may evolve into "Enhanced Todo App".
	IsRefinedTitle(newTitle, oldTitle string) bool
}

type identityService struct {
	state  *state.StateStore
	logger logger.ILogger
}

func NewIdentityService(st *state.StateStore, log logger.ILogger) IIdentityService {
	return &identityService{
		state:  st,
		logger: log,
	}
}

func (s *identityService) FindBestMatch(chatId, title string, artifactType constant.ArtifactType, content string) *entity.Artifact {
	candidates := s.state.ArtifactsByChat(chatId)
	if len(candidates) == 0 {
		return nil
	}

	// Stage 1: exact title and type
	for _, candidate := range candidates {
		if candidate.Title == title && candidate.Type == artifactType {
			return candidate
		}
	}

	// Stage 2: case-insensitive title, same type
	for _, candidate := range candidates {
		if strings.EqualFold(candidate.Title, title) && candidate.Type == artifactType {
			return candidate
		}
	}

	// Stage 3: fuzzy title, same type
	for _, candidate := range candidates {
		if candidate.Type != artifactType {
			continue
		}
		if titlesOverlap(title, candidate.Title) {
			s.logger.Debug("Identity", "Fuzzy title match", map[string]interface{}{
				"title":     title,
				"candidate": candidate.Title,
			})
			return candidate
		}
	}

	// Stage 4: structural content match, markup-like types only
	if constant.IsStructuredType(artifactType) {
		for _, candidate := range candidates {
			if candidate.Type != artifactType {
				continue
			}
			latest := candidate.LatestVersion()
			if latest == nil {
				continue
			}
			if similarity.StructuralScore(latest.Content, content) > constant.StructuralMatchThreshold {
				return candidate
			}
		}
	}

	return nil
}

func (s *identityService) ShouldUpdate(artifact *entity.Artifact, newContent string) bool {
	latest := artifact.LatestVersion()
	if latest == nil {
		return true
	}

	// True duplicate: no-op rather than an identical version
	if strings.TrimSpace(latest.Content) == strings.TrimSpace(newContent) {
		return false
	}

	return contentSimilarity(artifact.Type, latest.Content, newContent) > constant.UpdateSimilarityThreshold
}

func (s *identityService) IsRefinedTitle(newTitle, oldTitle string) bool {
	if len(newTitle) <= len(oldTitle) {
		return false
	}
	if containsFold(newTitle, oldTitle) {
		return true
	}
	return similarity.Score(strings.ToLower(newTitle), strings.ToLower(oldTitle)) > constant.TitleSimilarityThreshold
}

// contentSimilarity uses structural overlap for markup-like content and
// plain string similarity over a bounded prefix otherwise — full-document
// edit distance on large payloads is quadratic for no gain in signal.
func contentSimilarity(artifactType constant.ArtifactType, a, b string) float64 {
	if constant.IsStructuredType(artifactType) {
		return similarity.StructuralScore(a, b)
	}
	return similarity.Score(truncate(a), truncate(b))
}

// truncate bounds the comparison window by runes so a multi-byte
// character is never split at the boundary.
func truncate(s string) string {
	runes := []rune(s)
	if len(runes) > constant.ContentComparisonMaxLength {
		return string(runes[:constant.ContentComparisonMaxLength])
	}
	return s
}

func titlesOverlap(a, b string) bool {
	if containsFold(a, b) || containsFold(b, a) {
		return true
	}
	return similarity.Score(strings.ToLower(a), strings.ToLower(b)) > constant.TitleSimilarityThreshold
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
