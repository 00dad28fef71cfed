package whatsapp

import (
	"sync"
	"time"

	"github.com/mamadbah2/fertiplan/internal/domain/models"
)

// Session is what we remember about a farmer between messages.
type Session struct {
	Region    models.RegionID
	UpdatedAt time.Time
}

// SessionManager keeps per-sender sessions in memory.
type SessionManager struct {
	sessions map[string]Session
	mu       sync.RWMutex
	now      func() time.Time
}

// NewSessionManager creates a new session manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

// GetSession retrieves the current state for a user.
func (sm *SessionManager) GetSession(userID string) Session {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.sessions[userID]
}

// UpdateSession updates the state for a user.
func (sm *SessionManager) UpdateSession(userID string, state Session) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	state.UpdatedAt = sm.now()
	sm.sessions[userID] = state
}

// ClearSession removes a user's session.
func (sm *SessionManager) ClearSession(userID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, userID)
}

// LastRegion returns the region the sender used most recently, if any.
func (sm *SessionManager) LastRegion(userID string) models.RegionID {
	return sm.GetSession(userID).Region
}

// RememberRegion stores the region for the sender's next request.
func (sm *SessionManager) RememberRegion(userID string, region models.RegionID) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	state := sm.sessions[userID]
	state.Region = region
	state.UpdatedAt = sm.now()
	sm.sessions[userID] = state
}
