// FILE: internal/service/helpers_test.go
package service

import (
	"context"
	"sync"

	"ai-canvas-be/internal/constant"
	"ai-canvas-be/internal/entity"
)

// recordingPersistence stands in for the persistence scheduler and records
// which datasets were saved.
type recordingPersistence struct {
	mu    sync.Mutex
	saved []constant.EntityKind
}

func (r *recordingPersistence) Load(context.Context) (*entity.Snapshot, string, error) {
	return entity.EmptySnapshot(), "", nil
}

func (r *recordingPersistence) Save(kind constant.EntityKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, kind)
}

func (r *recordingPersistence) SaveImmediate(_ context.Context, kind constant.EntityKind) {
	r.Save(kind)
}

func (r *recordingPersistence) FlushAll() {}

func (r *recordingPersistence) TierAAvailable() bool { return false }

func (r *recordingPersistence) savedKinds() []constant.EntityKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]constant.EntityKind, len(r.saved))
	copy(out, r.saved)
	return out
}

func (r *recordingPersistence) savedCount(kind constant.EntityKind) int {
	count := 0
	for _, k := range r.savedKinds() {
		if k == kind {
			count++
		}
	}
	return count
}
