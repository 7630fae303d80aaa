package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/PabloGalante/modelfix-agent/internal/domain"
)

// Store is an in-memory HistoryStore, used as the storage backend for
// tests and throwaway runs. The mutex is defensive; the workflow
// itself is strictly sequential.
type Store struct {
	mu       sync.RWMutex
	snapshot domain.History
	log      []domain.Message
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Load(ctx context.Context) domain.History {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(domain.History, len(s.snapshot))
	copy(out, s.snapshot)
	return out
}

func (s *Store) Save(ctx context.Context, history domain.History) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = make(domain.History, len(history))
	copy(s.snapshot, history)
	return nil
}

func (s *Store) AppendLog(ctx context.Context, msg domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log = append(s.log, msg)
	return nil
}

func (s *Store) Reset(ctx context.Context, initial domain.History) error {
	for _, msg := range initial {
		if err := msg.Validate(); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrMalformedSeed, err)
		}
	}
	return s.Save(ctx, initial)
}

// LoggedMessages returns a copy of everything appended to the audit
// log, in order. Test helper; the system itself never reads the log.
func (s *Store) LoggedMessages() []domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Message, len(s.log))
	copy(out, s.log)
	return out
}
