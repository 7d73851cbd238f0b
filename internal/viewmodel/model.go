// Package viewmodel owns the recipe panel's state: the ingredient picks
// and the Idle → Loading → Loaded/Failed machine around the generator.
// It renders nothing; the display polls Snapshot.
package viewmodel

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/hammamikhairi/chucklechow/internal/domain"
	"github.com/hammamikhairi/chucklechow/internal/logger"
	"github.com/hammamikhairi/chucklechow/internal/metrics"
)

// Languages the backend can answer in.
const (
	LanguageEnglish = "english"
	LanguageSpanish = "spanish"
)

// IngredientLookup validates picks against the catalog.
type IngredientLookup interface {
	Lookup(cat domain.Category, name string) (domain.Ingredient, error)
}

// Option configures the Model.
type Option func(*Model)

// WithLanguage sets the starting language. Unknown values are ignored.
func WithLanguage(lang string) Option {
	return func(m *Model) {
		if lang == LanguageEnglish || lang == LanguageSpanish {
			m.lang = lang
		}
	}
}

// WithPreferences sets the generation hints sent with every request.
// The language field is managed by the model and is overwritten.
func WithPreferences(p domain.Preferences) Option {
	return func(m *Model) { m.prefs = p }
}

// Model is the recipe view model. Safe for concurrent use: the UI loop
// and generator completions both call into it.
type Model struct {
	mu        sync.Mutex
	catalog   IngredientLookup
	gen       domain.RecipeGenerator
	log       *logger.Logger
	selection domain.Selection

	status Status
	recipe *domain.Recipe
	err    error
	token  string // current request; results carrying another token are dropped
	last   *request

	lang   string
	prefs  domain.Preferences
	rating int
}

// New creates an idle model.
func New(catalog IngredientLookup, gen domain.RecipeGenerator, log *logger.Logger, opts ...Option) *Model {
	m := &Model{
		catalog:   catalog,
		gen:       gen,
		log:       log,
		selection: domain.Selection{},
		lang:      LanguageEnglish,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// ── Selection ────────────────────────────────────────────────────

// Pick sets the ingredient for cat, replacing any previous pick. The
// name must exist in that category of the catalog.
func (m *Model) Pick(cat domain.Category, name string) error {
	ing, err := m.catalog.Lookup(cat, name)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.selection[cat] = ing.Name
	m.mu.Unlock()
	m.log.Debug("picked %s: %s", cat, ing.Name)
	return nil
}

// Unpick clears the pick for cat.
func (m *Model) Unpick(cat domain.Category) {
	m.mu.Lock()
	delete(m.selection, cat)
	m.mu.Unlock()
}

// Selected returns the picks in category declaration order.
func (m *Model) Selected() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selection.Ordered()
}

// ── Requests ─────────────────────────────────────────────────────

// Request asks the generator for a recipe from the current picks and
// blocks until it answers. With no picks and randomize false it fails
// immediately with ErrNoSelection and the generator is not called.
//
// The returned State is whatever the model shows afterwards: if another
// request was issued meanwhile, this one's result is dropped and the
// newer state is returned.
func (m *Model) Request(ctx context.Context, randomize bool) State {
	m.mu.Lock()
	picks := m.selection.Ordered()
	if len(picks) == 0 && !randomize {
		m.token = uuid.NewString()
		m.status = StatusFailed
		m.recipe = nil
		m.err = domain.ErrNoSelection
		metrics.GenerateRequests.WithLabelValues(metrics.OutcomeRejected).Inc()
		m.log.Debug("request rejected: nothing picked")
		snap := m.snapshotLocked()
		m.mu.Unlock()
		return snap
	}
	req := request{ingredients: picks, randomize: randomize, prefs: m.preferencesLocked()}
	m.mu.Unlock()

	return m.run(ctx, req)
}

// Retry replays the last request with the same ingredients, randomize
// flag and preferences. Without a previous request it behaves like
// Request(ctx, false).
func (m *Model) Retry(ctx context.Context) State {
	m.mu.Lock()
	last := m.last
	m.mu.Unlock()

	if last == nil {
		return m.Request(ctx, false)
	}
	req := *last
	req.ingredients = append([]string(nil), last.ingredients...)
	return m.run(ctx, req)
}

// CanReplay reports whether Retry has a previous request to replay.
func (m *Model) CanReplay() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last != nil
}

func (m *Model) run(ctx context.Context, req request) State {
	token := uuid.NewString()

	m.mu.Lock()
	m.token = token
	m.last = &req
	m.status = StatusLoading
	m.recipe = nil
	m.err = nil
	m.mu.Unlock()

	m.log.Debug("request %s: ingredients=%v random=%t", token, req.ingredients, req.randomize)
	recipe, err := m.gen.Generate(ctx, req.ingredients, req.randomize, req.prefs)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != token {
		metrics.GenerateRequests.WithLabelValues(metrics.OutcomeStale).Inc()
		m.log.Debug("request %s superseded, dropping its result", token)
		snap := m.snapshotLocked()
		snap.Superseded = true
		return snap
	}
	if err != nil {
		m.status = StatusFailed
		m.err = err
		m.log.Warn("request %s failed: %v", token, err)
		return m.snapshotLocked()
	}
	m.status = StatusLoaded
	m.recipe = recipe
	m.log.Info("request %s loaded %q", token, recipe.Title)
	return m.snapshotLocked()
}

// Clear resets the picks, the pending rating and the last request, and
// returns to Idle. Any request still in flight is ignored when it ends.
func (m *Model) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.selection = domain.Selection{}
	m.token = ""
	m.last = nil
	m.status = StatusIdle
	m.recipe = nil
	m.err = nil
	m.rating = 0
}

// Snapshot returns the current display state.
func (m *Model) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Model) snapshotLocked() State {
	s := State{
		Status:   m.status,
		Err:      m.err,
		Token:    m.token,
		Selected: m.selection.Ordered(),
		Language: m.lang,
		Rating:   m.rating,
	}
	if m.recipe != nil {
		r := m.recipe.Clone()
		s.Recipe = &r
	}
	return s
}

// ── Language & rating ────────────────────────────────────────────

// Language returns the language recipes are requested in.
func (m *Model) Language() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lang
}

// ToggleLanguage switches between English and Spanish. If a request was
// made before, it is issued again with the current picks and the last
// randomize flag so the recipe comes back in the new language.
func (m *Model) ToggleLanguage(ctx context.Context) State {
	m.mu.Lock()
	if m.lang == LanguageSpanish {
		m.lang = LanguageEnglish
	} else {
		m.lang = LanguageSpanish
	}
	last := m.last
	lang := m.lang
	m.mu.Unlock()

	m.log.Info("language set to %s", lang)
	if last == nil {
		return m.Snapshot()
	}
	return m.Request(ctx, last.randomize)
}

// Rating returns the star rating the next save will use.
func (m *Model) Rating() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rating
}

// SetRating sets the pending star rating (0..5).
func (m *Model) SetRating(n int) error {
	if n < 0 || n > domain.MaxRating {
		return domain.ErrInvalidRating
	}
	m.mu.Lock()
	m.rating = n
	m.mu.Unlock()
	return nil
}

// preferencesLocked returns the hints for the next request. English is
// the backend default and is not sent.
func (m *Model) preferencesLocked() domain.Preferences {
	p := m.prefs
	p.Language = ""
	if m.lang != LanguageEnglish {
		p.Language = m.lang
	}
	return p
}
