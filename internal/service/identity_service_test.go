// FILE: internal/service/identity_service_test.go
package service

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"ai-canvas-be/internal/constant"
	"ai-canvas-be/internal/entity"
	"ai-canvas-be/internal/pkg/logger"
	"ai-canvas-be/internal/state"

	"github.com/stretchr/testify/assert"
)

func identityFixture(artifacts ...*entity.Artifact) IIdentityService {
	st := state.New()
	st.SetArtifacts(artifacts)
	return NewIdentityService(st, logger.Noop{})
}

func artifactWith(id, chatId, title string, artifactType constant.ArtifactType, content string) *entity.Artifact {
	return &entity.Artifact{
		Id:     id,
		ChatId: chatId,
		Title:  title,
		Type:   artifactType,
		Versions: []entity.ArtifactVersion{
			{Content: content, Timestamp: time.Now()},
		},
	}
}

func TestFindBestMatchExactTitleAndType(t *testing.T) {
	svc := identityFixture(
		artifactWith("a1", "c1", "Todo App", constant.ArtifactTypeHTML, "<div></div>"),
		artifactWith("a2", "c1", "Todo App", constant.ArtifactTypeMarkdown, "# todo"),
	)

	match := svc.FindBestMatch("c1", "Todo App", constant.ArtifactTypeMarkdown, "# other")
	assert.NotNil(t, match)
	assert.Equal(t, "a2", match.Id)
}

func TestFindBestMatchCaseInsensitive(t *testing.T) {
	svc := identityFixture(
		artifactWith("a1", "c1", "Todo App", constant.ArtifactTypeHTML, "<div></div>"),
	)

	match := svc.FindBestMatch("c1", "todo app", constant.ArtifactTypeHTML, "<p></p>")
	assert.NotNil(t, match)
	assert.Equal(t, "a1", match.Id)
}

func TestFindBestMatchFuzzyTitleContainment(t *testing.T) {
	svc := identityFixture(
		artifactWith("a1", "c1", "Todo App", constant.ArtifactTypeHTML, "<div></div>"),
	)

	match := svc.FindBestMatch("c1", "Enhanced Todo App", constant.ArtifactTypeHTML, "<p></p>")
	assert.NotNil(t, match)
	assert.Equal(t, "a1", match.Id)
}

func TestFindBestMatchFuzzyRequiresSameType(t *testing.T) {
	svc := identityFixture(
		artifactWith("a1", "c1", "Todo App", constant.ArtifactTypeMarkdown, "# todo"),
	)

	assert.Nil(t, svc.FindBestMatch("c1", "Enhanced Todo App", constant.ArtifactTypeHTML, "<p></p>"))
}

func TestFindBestMatchStructural(t *testing.T) {
	existing := `<div class="board"><ul class="list"><li></li></ul></div>`
	svc := identityFixture(
		artifactWith("a1", "c1", "Board", constant.ArtifactTypeHTML, existing),
	)

	// Entirely different title, near-identical structure
	incoming := `<div class="board"><ul class="list"><li>x</li><li>y</li></ul></div>`
	match := svc.FindBestMatch("c1", "Kanban Surface", constant.ArtifactTypeHTML, incoming)
	assert.NotNil(t, match)
	assert.Equal(t, "a1", match.Id)
}

func TestFindBestMatchNoStructuralForPlainTypes(t *testing.T) {
	svc := identityFixture(
		artifactWith("a1", "c1", "Notes", constant.ArtifactTypeText, "some text with <div> markup inside"),
	)

	assert.Nil(t, svc.FindBestMatch("c1", "Unrelated", constant.ArtifactTypeText, "some text with <div> markup inside"))
}

func TestFindBestMatchScopedToChat(t *testing.T) {
	svc := identityFixture(
		artifactWith("a1", "c1", "Todo App", constant.ArtifactTypeHTML, "<div></div>"),
	)

	assert.Nil(t, svc.FindBestMatch("c2", "Todo App", constant.ArtifactTypeHTML, "<div></div>"))
}

func TestShouldUpdateRejectsTrimEqualDuplicate(t *testing.T) {
	svc := identityFixture()
	artifact := artifactWith("a1", "c1", "Todo", constant.ArtifactTypeMarkdown, "# todo\n- item")

	assert.False(t, svc.ShouldUpdate(artifact, "  # todo\n- item  \n"))
}

func TestShouldUpdateAcceptsIncrementalEdit(t *testing.T) {
	svc := identityFixture()
	existing := `<div class="app"><ul class="todo"><li>a</li></ul></div>`
	artifact := artifactWith("a1", "c1", "Todo", constant.ArtifactTypeHTML, existing)

	incoming := `<div class="app"><ul class="todo"><li>a</li><li>b</li></ul></div>`
	assert.True(t, svc.ShouldUpdate(artifact, incoming))
}

func TestShouldUpdateAcceptsWithNoVersions(t *testing.T) {
	svc := identityFixture()
	artifact := &entity.Artifact{Id: "a1", Type: constant.ArtifactTypeText}

	assert.True(t, svc.ShouldUpdate(artifact, "anything"))
}

func TestIsRefinedTitle(t *testing.T) {
	svc := identityFixture()

	assert.True(t, svc.IsRefinedTitle("Enhanced Todo App", "Todo App"))
	assert.True(t, svc.IsRefinedTitle("Todo App Deluxe", "Todo App"))
	// Shorter is never a refinement
	assert.False(t, svc.IsRefinedTitle("Todo", "Todo App"))
	// Equal length is never a refinement
	assert.False(t, svc.IsRefinedTitle("Todo App", "Todo App"))
	// Longer but unrelated
	assert.False(t, svc.IsRefinedTitle("Completely Different Thing", "Todo App"))
}

func TestTruncateBoundsByRunes(t *testing.T) {
	long := strings.Repeat("é", constant.ContentComparisonMaxLength+100)
	got := truncate(long)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, constant.ContentComparisonMaxLength, utf8.RuneCountInString(got))

	short := "héllo wörld"
	assert.Equal(t, short, truncate(short))
}
