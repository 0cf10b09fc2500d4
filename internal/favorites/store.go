package favorites

import (
	"context"
	"sync"
	"time"

	"github.com/offerspot/offerspot-backend/internal/offer"
	"go.uber.org/zap"
)

type Fetcher interface {
	OfferByID(ctx context.Context, id int) (*offer.Offer, error)
}

type Storage interface {
	Load() ([]Snapshot, error)
	Save(snapshots []Snapshot) error
}

// Store is the process-wide favorites set: at most one entry per offer
// id, insertion order preserved for stable display. Every committed
// state change is written through to storage and pushed to
// subscribers. Storage failures are logged and swallowed, the
// in-memory state stays authoritative for the running process.
type Store struct {
	storage Storage
	fetcher Fetcher
	logger  *zap.Logger
	now     func() time.Time

	mu            sync.Mutex
	items         []Snapshot
	loaded        bool
	lastRefreshed time.Time
	subscribers   []func([]Snapshot)
}

func NewStore(storage Storage, fetcher Fetcher, logger *zap.Logger) *Store {
	return &Store{
		storage: storage,
		fetcher: fetcher,
		logger:  logger,
		now:     time.Now,
	}
}

// Load seeds the store from persisted storage. It must run before any
// mutation: until it has, the store refuses to persist, so a slow or
// failed load can never clobber previously saved favorites with an
// empty set.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.storage.Load()
	if err != nil {
		s.logger.Error("unexpected error when loading favorites", zap.Error(err))
	} else {
		s.items = items
	}

	s.loaded = true
}

func (s *Store) Add(o offer.Offer) {
	s.mu.Lock()

	if s.indexOf(o.ID.Int()) >= 0 {
		s.mu.Unlock()
		return
	}

	s.items = append(s.items, Snapshot{Offer: o, SavedAt: s.now()})
	s.persistLocked()
	snapshot := s.copyLocked()
	s.mu.Unlock()

	s.notify(snapshot)
}

func (s *Store) Remove(id int) {
	s.mu.Lock()

	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}

	s.items = append(s.items[:i], s.items[i+1:]...)
	s.persistLocked()
	snapshot := s.copyLocked()
	s.mu.Unlock()

	s.notify(snapshot)
}

// Toggle adds the offer if absent and removes it if present, as a
// single state transition. It reports whether the offer is a favorite
// afterwards.
func (s *Store) Toggle(o offer.Offer) bool {
	s.mu.Lock()

	var favorite bool
	if i := s.indexOf(o.ID.Int()); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	} else {
		s.items = append(s.items, Snapshot{Offer: o, SavedAt: s.now()})
		favorite = true
	}

	s.persistLocked()
	snapshot := s.copyLocked()
	s.mu.Unlock()

	s.notify(snapshot)

	return favorite
}

func (s *Store) IsFavorite(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.indexOf(id) >= 0
}

func (s *Store) All() []Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.copyLocked()
}

func (s *Store) LastRefreshed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastRefreshed
}

// Refresh re-fetches every favorited offer concurrently and commits
// the merged result once all fetches have settled. A failed or
// vanished fetch keeps that entry's stale snapshot; lastRefreshed is
// updated regardless of per-item outcomes.
func (s *Store) Refresh(ctx context.Context) {
	s.mu.Lock()
	current := s.copyLocked()
	s.mu.Unlock()

	fresh := make([]*offer.Offer, len(current))

	var wg sync.WaitGroup
	for i, snap := range current {
		wg.Add(1)
		go func(i, id int) {
			defer wg.Done()

			o, err := s.fetcher.OfferByID(ctx, id)
			if err != nil {
				s.logger.Warn("keeping stale favorite snapshot",
					zap.Int("id", id),
					zap.Error(err),
				)
				return
			}

			fresh[i] = o
		}(i, snap.ID.Int())
	}
	wg.Wait()

	byID := make(map[int]*offer.Offer, len(fresh))
	for _, o := range fresh {
		if o != nil {
			byID[o.ID.Int()] = o
		}
	}

	s.mu.Lock()
	for i := range s.items {
		if o, ok := byID[s.items[i].ID.Int()]; ok {
			s.items[i].Offer = *o
		}
	}
	s.lastRefreshed = s.now()
	s.persistLocked()
	snapshot := s.copyLocked()
	s.mu.Unlock()

	s.notify(snapshot)
}

// Subscribe registers fn to run after every committed state change.
// Subscribers receive a copy and may safely call back into the store.
func (s *Store) Subscribe(fn func([]Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subscribers = append(s.subscribers, fn)
}

// Reload replaces the in-memory state with whatever storage holds now.
// The host raises it when the persisted blob changes externally;
// last-writer-wins at the storage layer, no merge with local edits.
func (s *Store) Reload() {
	items, err := s.storage.Load()
	if err != nil {
		s.logger.Error("unexpected error when reloading favorites", zap.Error(err))
		return
	}

	s.mu.Lock()
	s.items = items
	snapshot := s.copyLocked()
	s.mu.Unlock()

	s.notify(snapshot)
}

func (s *Store) indexOf(id int) int {
	for i, item := range s.items {
		if item.ID.Int() == id {
			return i
		}
	}

	return -1
}

func (s *Store) persistLocked() {
	if !s.loaded {
		return
	}

	if err := s.storage.Save(s.copyLocked()); err != nil {
		s.logger.Error("unexpected error when persisting favorites", zap.Error(err))
	}
}

func (s *Store) copyLocked() []Snapshot {
	items := make([]Snapshot, len(s.items))
	copy(items, s.items)

	return items
}

func (s *Store) notify(snapshot []Snapshot) {
	s.mu.Lock()
	subscribers := make([]func([]Snapshot), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(snapshot)
	}
}
