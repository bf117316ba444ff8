package booking

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-booking/internal/logger"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// DraftStore keeps unsaved drafts across restarts, keyed by session id.
// Load returns nil, nil when nothing is stored.
type DraftStore interface {
	Load(ctx context.Context, sessionID string) (*models.BookingDraft, error)
	Save(ctx context.Context, sessionID string, d models.BookingDraft) error
	Delete(ctx context.Context, sessionID string) error
}

// Registry holds the open flow of every session.
type Registry struct {
	mu    sync.Mutex
	flows map[string]*Flow
	store DraftStore
	log   *zap.Logger
}

func NewRegistry(store DraftStore, log *zap.Logger) *Registry {
	return &Registry{
		flows: make(map[string]*Flow),
		store: store,
		log:   logger.OrNop(log),
	}
}

// Open replaces any flow the session had.
func (r *Registry) Open(ctx context.Context, sessionID string, f *Flow) {
	r.mu.Lock()
	old := r.flows[sessionID]
	r.flows[sessionID] = f
	r.mu.Unlock()

	if old != nil {
		old.Close()
	}
	r.Persist(ctx, sessionID)
}

func (r *Registry) Get(sessionID string) (*Flow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.flows[sessionID]
	if !ok {
		return nil, ErrNoDraft
	}
	return f, nil
}

// Stored is the draft saved for a session, if any.
func (r *Registry) Stored(ctx context.Context, sessionID string) *models.BookingDraft {
	d, err := r.store.Load(ctx, sessionID)
	if err != nil {
		r.log.Warn("load booking draft", zap.String("session_id", sessionID), zap.Error(err))
		return nil
	}
	return d
}

// Persist saves the session's draft, or forgets it once the booking is done.
// Store failures only cost the draft after a restart, so they are logged.
func (r *Registry) Persist(ctx context.Context, sessionID string) {
	f, err := r.Get(sessionID)
	if err != nil {
		return
	}

	if f.State().Phase == PhaseDone {
		err = r.store.Delete(ctx, sessionID)
	} else {
		err = r.store.Save(ctx, sessionID, f.Snapshot())
	}
	if err != nil {
		r.log.Warn("persist booking draft", zap.String("session_id", sessionID), zap.Error(err))
	}
}

// Discard closes the session's flow and drops its stored draft.
func (r *Registry) Discard(ctx context.Context, sessionID string) {
	r.mu.Lock()
	f := r.flows[sessionID]
	delete(r.flows, sessionID)
	r.mu.Unlock()

	if f != nil {
		f.Close()
	}
	if err := r.store.Delete(ctx, sessionID); err != nil {
		r.log.Warn("delete booking draft", zap.String("session_id", sessionID), zap.Error(err))
	}
}

// Shutdown stops every in-flight fetch. Stored drafts are kept.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, f := range r.flows {
		f.Close()
		delete(r.flows, id)
	}
}

// MemoryStore is the DraftStore used when no redis is configured.
type MemoryStore struct {
	mu     sync.Mutex
	drafts map[string]models.BookingDraft
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drafts: make(map[string]models.BookingDraft)}
}

func (s *MemoryStore) Load(_ context.Context, sessionID string) (*models.BookingDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[sessionID]
	if !ok {
		return nil, nil
	}
	out := d.Clone()
	return &out, nil
}

func (s *MemoryStore) Save(_ context.Context, sessionID string, d models.BookingDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[sessionID] = d.Clone()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, sessionID)
	return nil
}
