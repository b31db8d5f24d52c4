package gating

import (
	"sync"
	"time"
)

// SessionStore хранит в памяти состояние показа предупреждений:
// закрытые в рамках сессии предупреждения и время последнего показа
// на пользователя.
type SessionStore struct {
	mu        sync.RWMutex
	dismissed map[string]time.Time
	warnedAt  map[string]time.Time
}

// NewSessionStore создает пустое хранилище состояния сессий.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		dismissed: make(map[string]time.Time),
		warnedAt:  make(map[string]time.Time),
	}
}

// DismissWarning помечает предупреждение закрытым в рамках сессии.
func (s *SessionStore) DismissWarning(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dismissed[sessionID] = time.Now().UTC()
}

// IsDismissed сообщает, закрыто ли предупреждение в рамках сессии.
func (s *SessionStore) IsDismissed(sessionID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.dismissed[sessionID]
	return ok
}

// MarkWarned фиксирует время показа предупреждения пользователю.
func (s *SessionStore) MarkWarned(userUID string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warnedAt[userUID] = at
}

// LastWarnedAt возвращает время последнего показа предупреждения пользователю.
func (s *SessionStore) LastWarnedAt(userUID string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	at, ok := s.warnedAt[userUID]
	return at, ok
}

// Prune удаляет записи старше maxAge, чтобы хранилище не росло бесконечно.
func (s *SessionStore) Prune(maxAge time.Duration) {
	cutoff := time.Now().UTC().Add(-maxAge)
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, at := range s.dismissed {
		if at.Before(cutoff) {
			delete(s.dismissed, id)
		}
	}
	for uid, at := range s.warnedAt {
		if at.Before(cutoff) {
			delete(s.warnedAt, uid)
		}
	}
}
