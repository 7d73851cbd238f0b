// Package favorites keeps the user's saved recipes. The in-memory list
// is written through to a KV slot after every mutation, so the slot and
// memory never disagree.
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"

	"github.com/hammamikhairi/chucklechow/internal/domain"
	"github.com/hammamikhairi/chucklechow/internal/logger"
	"github.com/hammamikhairi/chucklechow/internal/metrics"
)

// Compile-time interface check.
var _ domain.FavoriteStore = (*Store)(nil)

// Key is the KV slot holding the JSON favorites list.
const Key = "favorites"

// Option configures the Store.
type Option func(*Store)

// WithClock sets the clock used for new IDs.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.ids = NewIDSource(now) }
}

// Store is the favorites list. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	kv       domain.KVStore
	ids      *IDSource
	items    []domain.Favorite
	selected int64 // id of the favorite being viewed, 0 for none
	log      *logger.Logger
}

// New creates an empty store over kv. Call Load to read what's saved.
func New(kv domain.KVStore, log *logger.Logger, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		ids:   NewIDSource(nil),
		items: []domain.Favorite{},
		log:   log,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load reads the favorites slot, repairs malformed entries and, when the
// slot existed, writes the repaired list straight back. A slot that is
// not a JSON array is logged and treated as empty; it is overwritten by
// the next write.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.kv.Get(ctx, Key)
	if errors.Is(err, domain.ErrNotFound) {
		s.log.Debug("no favorites stored yet")
		s.items = []domain.Favorite{}
		s.selected = 0
		metrics.FavoritesStored.Set(0)
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading favorites: %w", err)
	}

	items, report, err := decodeFavorites(raw, s.ids)
	if err != nil {
		s.log.Error("%v; starting with an empty list", err)
		items = []domain.Favorite{}
	}
	if report.changed() {
		s.log.Warn("favorites repaired on load: %s", report)
	}

	s.items = items
	if _, ok := s.indexOf(s.selected); !ok {
		s.selected = 0
	}
	metrics.FavoritesStored.Set(float64(len(items)))
	s.log.Info("loaded %d favorites", len(items))

	if err := s.persistLocked(ctx); err != nil {
		return fmt.Errorf("writing repaired favorites: %w", err)
	}
	return nil
}

// Persist writes the full list to the KV slot.
func (s *Store) Persist(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persistLocked(ctx)
}

func (s *Store) persistLocked(ctx context.Context) error {
	raw, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("marshal favorites: %w", err)
	}
	if err := s.kv.Set(ctx, Key, raw); err != nil {
		return fmt.Errorf("persist favorites: %w", err)
	}
	return nil
}

// Save adds recipe with the given rating (clamped to 0..5). It fails with
// ErrDuplicateTitle when a favorite already has the same title. If the
// write fails the list is left as it was.
func (s *Store) Save(ctx context.Context, recipe domain.Recipe, rating int) (domain.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.items {
		if f.Title == recipe.Title {
			metrics.FavoriteOps.WithLabelValues("save", "duplicate").Inc()
			return domain.Favorite{}, fmt.Errorf("%w: %q", domain.ErrDuplicateTitle, recipe.Title)
		}
	}

	fav := domain.Favorite{
		Recipe: recipe.Clone(),
		ID:     s.ids.Next(),
		Rating: domain.ClampRating(rating),
	}
	fav.Normalize()

	prev := s.items
	s.items = append(append(make([]domain.Favorite, 0, len(prev)+1), prev...), fav)
	if err := s.persistLocked(ctx); err != nil {
		s.items = prev
		metrics.FavoriteOps.WithLabelValues("save", "error").Inc()
		return domain.Favorite{}, err
	}

	metrics.FavoriteOps.WithLabelValues("save", "ok").Inc()
	metrics.FavoritesStored.Set(float64(len(s.items)))
	s.log.Info("saved favorite %d %q (rating %d)", fav.ID, fav.Title, fav.Rating)
	return fav.Clone(), nil
}

// Remove deletes the favorite with id. It fails with ErrNotFound when no
// favorite has that id. If the removed favorite was being viewed, the
// view selection is cleared.
func (s *Store) Remove(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.indexOf(id)
	if !ok {
		metrics.FavoriteOps.WithLabelValues("remove", "not_found").Inc()
		return fmt.Errorf("favorite %d: %w", id, domain.ErrNotFound)
	}

	prev := s.items
	next := make([]domain.Favorite, 0, len(prev)-1)
	next = append(next, prev[:idx]...)
	next = append(next, prev[idx+1:]...)
	s.items = next
	if err := s.persistLocked(ctx); err != nil {
		s.items = prev
		metrics.FavoriteOps.WithLabelValues("remove", "error").Inc()
		return err
	}

	if s.selected == id {
		s.selected = 0
		s.log.Debug("cleared viewed favorite %d", id)
	}
	metrics.FavoriteOps.WithLabelValues("remove", "ok").Inc()
	metrics.FavoritesStored.Set(float64(len(s.items)))
	s.log.Info("removed favorite %d", id)
	return nil
}

// Rate sets the rating of a saved favorite.
func (s *Store) Rate(ctx context.Context, id int64, rating int) error {
	if rating < 0 || rating > domain.MaxRating {
		return domain.ErrInvalidRating
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.indexOf(id)
	if !ok {
		return fmt.Errorf("favorite %d: %w", id, domain.ErrNotFound)
	}
	old := s.items[idx].Rating
	s.items[idx].Rating = rating
	if err := s.persistLocked(ctx); err != nil {
		s.items[idx].Rating = old
		return err
	}
	metrics.FavoriteOps.WithLabelValues("rate", "ok").Inc()
	return nil
}

// Get returns the favorite with id.
func (s *Store) Get(id int64) (domain.Favorite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.indexOf(id)
	if !ok {
		return domain.Favorite{}, fmt.Errorf("favorite %d: %w", id, domain.ErrNotFound)
	}
	return s.items[idx].Clone(), nil
}

// List returns favorites whose title contains filter, ignoring case.
// An empty filter returns everything. Order is insertion order.
func (s *Store) List(filter string) []domain.Favorite {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(filter))

	out := make([]domain.Favorite, 0, len(s.items))
	for _, f := range s.items {
		if q == "" || strings.Contains(fold.String(f.Title), q) {
			out = append(out, f.Clone())
		}
	}
	return out
}

// Len returns the number of favorites.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Select marks the favorite with id as the one being viewed.
func (s *Store) Select(id int64) (domain.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.indexOf(id)
	if !ok {
		return domain.Favorite{}, fmt.Errorf("favorite %d: %w", id, domain.ErrNotFound)
	}
	s.selected = id
	return s.items[idx].Clone(), nil
}

// Selected returns the favorite being viewed, if any.
func (s *Store) Selected() (domain.Favorite, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.indexOf(s.selected)
	if !ok {
		return domain.Favorite{}, false
	}
	return s.items[idx].Clone(), true
}

// ClearSelection stops viewing any favorite.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	s.selected = 0
	s.mu.Unlock()
}

func (s *Store) indexOf(id int64) (int, bool) {
	if id == 0 {
		return 0, false
	}
	for i, f := range s.items {
		if f.ID == id {
			return i, true
		}
	}
	return 0, false
}
