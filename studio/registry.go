package studio

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/color-studio/api/models"
)

// Loader reads a user's stored library when a session is first opened.
type Loader interface {
	LoadLibrary(ctx context.Context, userID string) (models.Library, error)
}

type entry struct {
	mu         sync.Mutex
	session    *Session
	extraction *Extraction

	// guarded by Registry.mu
	lastUsed time.Time
}

// Registry keeps one live session per user in memory. Sessions that go
// unused are dropped by Expire and reopened from storage on the next request.
type Registry struct {
	loader Loader
	Now    func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
}

func NewRegistry(loader Loader) *Registry {
	return &Registry{
		loader:  loader,
		Now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// lookup returns the open entry for userID and marks it used
func (r *Registry) lookup(userID string) (*entry, bool) {
	e, ok := r.entries[userID]
	if ok {
		e.lastUsed = r.Now()
	}
	return e, ok
}

func (r *Registry) entry(ctx context.Context, userID string) (*entry, error) {
	r.mu.Lock()
	e, ok := r.lookup(userID)
	r.mu.Unlock()
	if ok {
		return e, nil
	}

	// Load without holding r.mu so one slow load does not stall other users
	lib, err := r.loader.LoadLibrary(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading library for %s: %w", userID, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.lookup(userID); ok {
		return e, nil
	}
	e = &entry{
		session:    NewSession(userID, lib),
		extraction: NewExtraction(),
		lastUsed:   r.Now(),
	}
	r.entries[userID] = e
	return e, nil
}

// With runs fn with exclusive access to userID's session, opening it from
// storage on first use.
func (r *Registry) With(ctx context.Context, userID string, fn func(*Session) error) error {
	e, err := r.entry(ctx, userID)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.session)
}

// Extraction returns the extraction coordinator of userID's session. It is
// used outside With so a long extraction does not block other edits.
func (r *Registry) Extraction(ctx context.Context, userID string) (*Extraction, error) {
	e, err := r.entry(ctx, userID)
	if err != nil {
		return nil, err
	}
	return e.extraction, nil
}

// Forget drops userID's session, e.g. after logout.
func (r *Registry) Forget(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, userID)
}

// Len is the number of open sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Expire drops sessions not used for longer than idle and reports how many
// were dropped. The library is saved on every change, so only unsaved
// editing state such as history is lost.
func (r *Registry) Expire(idle time.Duration) int {
	cutoff := r.Now().Add(-idle)

	r.mu.Lock()
	defer r.mu.Unlock()
	dropped := 0
	for userID, e := range r.entries {
		if e.lastUsed.Before(cutoff) {
			delete(r.entries, userID)
			dropped++
		}
	}
	return dropped
}

// ExpireEvery calls Expire on every tick until ctx is done.
func (r *Registry) ExpireEvery(ctx context.Context, every, idle time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := r.Expire(idle); n > 0 {
				log.Printf("Expired %d idle studio sessions", n)
			}
		case <-ctx.Done():
			return
		}
	}
}
