package memory

import (
	"ai-chat-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// ContextRepository holds per-session routing context in process memory.
// Entries never expire on their own; Clear is the only eviction path, so the
// cache lives exactly as long as the process does.
//
// go-cache's internal mutex only protects map integrity. Two concurrent
// routes for the same session still race between read and write with
// last-write-wins semantics; callers must not assume per-session ordering.
type ContextRepository struct {
	cache *cache.Cache
}

func NewContextRepository() *ContextRepository {
	return &ContextRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (r *ContextRepository) Get(sessionID string) (*store.ContextEntry, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.ContextEntry), true
	}
	return nil, false
}

// Set overwrites the session's entry. An empty session id is a no-op.
func (r *ContextRepository) Set(sessionID string, entry *store.ContextEntry) {
	if sessionID == "" || entry == nil {
		return
	}
	r.cache.Set(sessionID, entry, cache.NoExpiration)
}

func (r *ContextRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

func (r *ContextRepository) Clear() {
	r.cache.Flush()
}

func (r *ContextRepository) Size() int {
	return r.cache.ItemCount()
}
