package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"hrassistant/internal/domain"
)

// Store is an in-memory user store, used in tests and for offline runs
// with a fixed roster.
type Store struct {
	mu      sync.RWMutex
	users   map[string]domain.User
	history []domain.LeaveRecord
}

func NewStore(users ...domain.User) *Store {
	s := &Store{users: make(map[string]domain.User, len(users))}
	for _, u := range users {
		s.users[strings.ToLower(u.Username)] = u
	}
	return s
}

func (s *Store) FindUser(ctx context.Context, username string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[strings.ToLower(username)]
	if !ok {
		return domain.User{}, fmt.Errorf("%w: user %s", domain.ErrNotFound, username)
	}
	return u, nil
}

func (s *Store) UpdateRemainingLeaves(ctx context.Context, username string, remaining float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(username)
	u, ok := s.users[key]
	if !ok {
		return fmt.Errorf("%w: user %s", domain.ErrNotFound, username)
	}
	u.RemainingLeaves = remaining
	s.users[key] = u
	return nil
}

func (s *Store) AppendLeaveHistory(ctx context.Context, rec domain.LeaveRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, rec)
	return nil
}

// History returns a copy of the appended leave records.
func (s *Store) History() []domain.LeaveRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.LeaveRecord, len(s.history))
	copy(out, s.history)
	return out
}
