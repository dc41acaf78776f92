package favorites

import (
	"context"
	"errors"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/status-im/coin-browser/events"
	"github.com/status-im/coin-browser/metrics"
)

var ErrEmptyID = errors.New("favorite coin id must not be empty")

// idSet is the in-memory membership shared by both store implementations
type idSet struct {
	mu   sync.RWMutex
	ids  map[string]struct{}
	subs *events.SubscriptionManager[[]string]
}

func newIDSet() *idSet {
	return &idSet{
		ids:  make(map[string]struct{}),
		subs: events.NewSubscriptionManager[[]string](),
	}
}

func (s *idSet) contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

func (s *idSet) sorted() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked()
}

func (s *idSet) sortedLocked() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// toggle flips id under the write lock. persist runs before the change is
// applied, and a persist error leaves the set untouched.
func (s *idSet) toggle(id string, persist func(nowFavorite bool) error) (bool, error) {
	if id == "" {
		return false, ErrEmptyID
	}

	s.mu.Lock()
	_, present := s.ids[id]
	nowFavorite := !present
	if persist != nil {
		if err := persist(nowFavorite); err != nil {
			s.mu.Unlock()
			return present, err
		}
	}
	if nowFavorite {
		s.ids[id] = struct{}{}
	} else {
		delete(s.ids, id)
	}
	snapshot := s.sortedLocked()
	s.mu.Unlock()

	metrics.RecordFavoritesCount(len(snapshot))
	s.subs.Emit(context.Background(), snapshot)
	return nowFavorite, nil
}

// MemoryStore keeps favorites for the lifetime of the process
type MemoryStore struct {
	set    *idSet
	logger *zap.Logger
}

func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemoryStore{
		set:    newIDSet(),
		logger: logger.Named("favorites"),
	}
}

func (s *MemoryStore) Contains(id string) bool {
	return s.set.contains(id)
}

// Toggle flips membership of id and returns whether it is now a favorite
func (s *MemoryStore) Toggle(id string) (bool, error) {
	nowFavorite, err := s.set.toggle(id, nil)
	if err != nil {
		return false, err
	}
	s.logger.Debug("toggled favorite", zap.String("coin_id", id), zap.Bool("favorite", nowFavorite))
	return nowFavorite, nil
}

func (s *MemoryStore) IDs() []string {
	return s.set.sorted()
}

func (s *MemoryStore) Subscribe() events.ISubscription[[]string] {
	return s.set.subs.Subscribe()
}
