package database

import (
	"errors"
	"sync"
	"time"

	"furniture_back_end/internal/models"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

type Session struct {
	ID        string       `json:"id"`
	User      *models.User `json:"user,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

// SessionStore owns the signed-in user of every browser session.
type SessionStore struct {
	mu sync.RWMutex
	m  map[string]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{m: make(map[string]*Session)}
}

func (s *SessionStore) Create() Session {
	sess := &Session{ID: uuid.NewString(), CreatedAt: time.Now().UTC()}
	s.mu.Lock()
	s.m[sess.ID] = sess
	s.mu.Unlock()
	return copySession(sess)
}

func (s *SessionStore) Get(id string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.m[id]
	if !ok {
		return Session{}, false
	}
	return copySession(sess), true
}

func (s *SessionStore) SetUser(id string, u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.m[id]
	if !ok {
		return ErrNotFound
	}
	sess.User = &u
	return nil
}

func (s *SessionStore) ClearUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.m[id]
	if !ok {
		return ErrNotFound
	}
	sess.User = nil
	return nil
}

func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	delete(s.m, id)
	s.mu.Unlock()
}

// Sweep removes sessions created before cutoff and returns their ids.
func (s *SessionStore) Sweep(cutoff time.Time) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for id, sess := range s.m {
		if sess.CreatedAt.Before(cutoff) {
			delete(s.m, id)
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

func copySession(sess *Session) Session {
	cp := *sess
	if sess.User != nil {
		u := *sess.User
		cp.User = &u
	}
	return cp
}
