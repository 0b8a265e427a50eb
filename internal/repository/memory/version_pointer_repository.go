package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// VersionPointerRepository tracks the active-version index per artifact.
// The pointer is session-scoped display state, kept outside the artifact
// record and outside both storage tiers on purpose: a restart resets every
// artifact to its latest version.
type VersionPointerRepository struct {
	cache *cache.Cache
}

func NewVersionPointerRepository() *VersionPointerRepository {
	// Pointers for artifacts untouched for a day are reclaimed
	c := cache.New(24*time.Hour, 1*time.Hour)
	return &VersionPointerRepository{
		cache: c,
	}
}

func (r *VersionPointerRepository) Get(artifactId string) (int, bool) {
	if x, found := r.cache.Get(artifactId); found {
		return x.(int), true
	}
	return 0, false
}

func (r *VersionPointerRepository) Set(artifactId string, index int) {
	r.cache.Set(artifactId, index, cache.DefaultExpiration)
}

func (r *VersionPointerRepository) Delete(artifactId string) {
	r.cache.Delete(artifactId)
}
