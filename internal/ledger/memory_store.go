package ledger

import (
	"context"
	"sync"
	"time"

	"codeberg.org/codeweaver/server/codeweaver/profiles"
	"codeberg.org/codeweaver/server/codeweaver/receipts"
)

// implements Store in memory, for tests and local runs
type MemoryStore struct {
	mu       sync.Mutex
	profiles map[string]profiles.Profile
	receipts []receipts.Receipt
}

func NewMemoryStore(seed ...profiles.Profile) *MemoryStore {
	s := &MemoryStore{
		profiles: make(map[string]profiles.Profile, len(seed)),
	}

	for _, p := range seed {
		s.profiles[p.ID] = p
	}

	return s
}

func (s *MemoryStore) GetProfile(_ context.Context, userID string) (*profiles.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, profiles.ErrProfileNotFound
	}

	return &p, nil
}

func (s *MemoryStore) UpdateCredits(_ context.Context, userID string, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[userID]
	if !ok {
		return 0, profiles.ErrProfileNotFound
	}

	if p.Credits+delta < 0 {
		return 0, profiles.ErrInsufficientCredits
	}

	p.Credits += delta
	s.profiles[userID] = p

	return p.Credits, nil
}

func (s *MemoryStore) DebitCredit(_ context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[userID]
	if !ok || p.Credits <= 0 {
		return 0, profiles.ErrInsufficientCredits
	}

	p.Credits--
	s.profiles[userID] = p

	return p.Credits, nil
}

func (s *MemoryStore) RecordReceipt(_ context.Context, receipt receipts.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.receipts = append(s.receipts, receipt)
	return nil
}

func (s *MemoryStore) CountRecentReceipts(_ context.Context, userID string, since time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, r := range s.receipts {
		if r.UserID == userID && !r.CreatedAt.Before(since) {
			count++
		}
	}

	return count, nil
}

// returns a copy of the recorded receipts
func (s *MemoryStore) Receipts() []receipts.Receipt {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]receipts.Receipt, len(s.receipts))
	copy(out, s.receipts)

	return out
}
