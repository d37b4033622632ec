package repository

import (
	"sync"
	"time"

	"admitiq/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionRepository keeps per-session conversation state in memory.
// Only the last user message is retained.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*models.Session
	now      func() time.Time
	logger   *zap.Logger
}

func NewSessionRepository(logger *zap.Logger) *SessionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionRepository{
		sessions: make(map[uuid.UUID]*models.Session),
		now:      time.Now,
		logger:   logger,
	}
}

// Create registers a new session for role and returns a copy of it.
func (r *SessionRepository) Create(role models.Role) models.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := &models.Session{
		ID:        uuid.New(),
		Role:      role,
		UpdatedAt: r.now(),
	}
	r.sessions[s.ID] = s
	return *s
}

// Get returns a copy of the session, if it exists.
func (r *SessionRepository) Get(id uuid.UUID) (models.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return models.Session{}, false
	}
	return *s, true
}

// SwapLastMessage stores msg as the session's last user message and returns
// the message it replaces. ok is false when the session had no previous message.
// Unknown sessions are created on the fly so a token that outlived a sweep
// keeps working.
func (r *SessionRepository) SwapLastMessage(id uuid.UUID, role models.Role, msg string) (prev string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, exists := r.sessions[id]
	if !exists {
		s = &models.Session{ID: id, Role: role}
		r.sessions[id] = s
	}

	prev, ok = s.LastUserMessage, s.HasLastMessage
	s.LastUserMessage = msg
	s.HasLastMessage = true
	s.UpdatedAt = r.now()
	return prev, ok
}

// LastMessage returns the last user message recorded for the session.
func (r *SessionRepository) LastMessage(id uuid.UUID) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok || !s.HasLastMessage {
		return "", false
	}
	return s.LastUserMessage, true
}

func (r *SessionRepository) Delete(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Sweep removes sessions idle for longer than ttl and returns how many were removed.
func (r *SessionRepository) Sweep(ttl time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-ttl)
	removed := 0
	for id, s := range r.sessions {
		if s.UpdatedAt.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}

	if removed > 0 {
		r.logger.Debug("Expired sessions removed",
			zap.Int("removed", removed),
			zap.Int("remaining", len(r.sessions)),
		)
	}
	return removed
}

func (r *SessionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
