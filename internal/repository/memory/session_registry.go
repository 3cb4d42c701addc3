package memory

import (
	"sync"
	"time"

	"prospectus-rag-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRegistry maps caller-supplied session ids to their conversation
// memory. Entries expire after an hour of inactivity; the original kept them
// for the process lifetime, which is an unbounded leak under many sessions.
type SessionRegistry struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewSessionRegistry() *SessionRegistry {
	// Default expiration of 1 hour, purge sweep every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRegistry{
		cache: c,
	}
}

// ResolveOrCreate returns the conversation for sessionID, creating it when
// unseen. The mutex makes the check-then-insert atomic so two concurrent
// first requests for the same id share one conversation. Resolving also
// refreshes the entry's expiration.
func (r *SessionRegistry) ResolveOrCreate(sessionID string) (*store.Conversation, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if x, found := r.cache.Get(sessionID); found {
		conv := x.(*store.Conversation)
		r.cache.Set(sessionID, conv, cache.DefaultExpiration)
		return conv, false
	}

	conv := store.NewConversation(sessionID)
	r.cache.Set(sessionID, conv, cache.DefaultExpiration)
	return conv, true
}

func (r *SessionRegistry) Get(sessionID string) (*store.Conversation, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Conversation), true
	}
	return nil, false
}

func (r *SessionRegistry) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

// Len reports the number of live sessions.
func (r *SessionRegistry) Len() int {
	return r.cache.ItemCount()
}
