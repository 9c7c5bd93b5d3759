package store

import (
	"errors"
	"sync"
	"time"

	"github.com/moxibot/moxi-yt-bot/types"
)

var (
	ErrNoSession     = errors.New("no active session")
	ErrModeNotChosen = errors.New("mode not chosen yet")
)

// MemorySessionStore keeps per-user download selections for the process
// lifetime. All access is serialized through one mutex so concurrent
// events for the same user cannot corrupt a session mid-update.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*types.Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[int64]*types.Session),
	}
}

// Begin creates a fresh session for the user, replacing any previous one.
func (s *MemorySessionStore) Begin(userID, chatID int64, url string) (*types.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	session := &types.Session{
		UserID:    userID,
		ChatID:    chatID,
		URL:       url,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.sessions[userID] = session
	return copySession(session), nil
}

func (s *MemorySessionStore) Get(userID int64) (*types.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[userID]
	if !ok {
		return nil, ErrNoSession
	}
	return copySession(session), nil
}

func (s *MemorySessionStore) SetMode(userID int64, mode types.Mode) (*types.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[userID]
	if !ok {
		return nil, ErrNoSession
	}
	session.Mode = mode
	session.UpdatedAt = time.Now().UTC()
	return copySession(session), nil
}

func (s *MemorySessionStore) SetTitle(userID int64, title string) (*types.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[userID]
	if !ok {
		return nil, ErrNoSession
	}
	session.Title = title
	session.UpdatedAt = time.Now().UTC()
	return copySession(session), nil
}

// SetQuality requires a mode to have been chosen first. A session without
// a mode is treated the same as a missing one.
func (s *MemorySessionStore) SetQuality(userID int64, quality string) (*types.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[userID]
	if !ok {
		return nil, ErrNoSession
	}
	if session.Mode == "" {
		return nil, ErrModeNotChosen
	}
	session.Quality = quality
	session.UpdatedAt = time.Now().UTC()
	return copySession(session), nil
}

// Delete is the terminal transition: the next interaction must start from
// a fresh link message.
func (s *MemorySessionStore) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

func copySession(session *types.Session) *types.Session {
	c := *session
	return &c
}
