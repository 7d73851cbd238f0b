// Package preferences stores small user settings in the KV slot.
package preferences

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hammamikhairi/chucklechow/internal/domain"
	"github.com/hammamikhairi/chucklechow/internal/logger"
)

// ThemeKey is the KV slot holding the theme name.
const ThemeKey = "theme"

// DefaultTheme is used when nothing valid is stored.
const DefaultTheme = domain.ThemeLight

// Themes remembers the light/dark preference.
type Themes struct {
	mu      sync.Mutex
	kv      domain.KVStore
	current domain.Theme
	log     *logger.Logger
}

// NewThemes creates a theme preference over kv, starting at DefaultTheme.
func NewThemes(kv domain.KVStore, log *logger.Logger) *Themes {
	return &Themes{kv: kv, current: DefaultTheme, log: log}
}

// Load reads the stored theme. A missing slot keeps the default; an
// unknown value is reset to the default and written back.
func (t *Themes) Load(ctx context.Context) (domain.Theme, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	raw, err := t.kv.Get(ctx, ThemeKey)
	if errors.Is(err, domain.ErrNotFound) {
		t.current = DefaultTheme
		return t.current, nil
	}
	if err != nil {
		return t.current, fmt.Errorf("loading theme: %w", err)
	}

	theme := domain.Theme(strings.ToLower(strings.TrimSpace(string(raw))))
	if !theme.Valid() {
		t.log.Warn("stored theme %q is invalid, resetting to %s", string(raw), DefaultTheme)
		t.current = DefaultTheme
		if err := t.kv.Set(ctx, ThemeKey, []byte(DefaultTheme)); err != nil {
			return t.current, fmt.Errorf("resetting theme: %w", err)
		}
		return t.current, nil
	}
	t.current = theme
	return theme, nil
}

// Current returns the active theme.
func (t *Themes) Current() domain.Theme {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Set stores theme. Invalid themes are rejected.
func (t *Themes) Set(ctx context.Context, theme domain.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("unknown theme %q", theme)
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.kv.Set(ctx, ThemeKey, []byte(theme)); err != nil {
		return fmt.Errorf("saving theme: %w", err)
	}
	t.current = theme
	t.log.Debug("theme set to %s", theme)
	return nil
}

// Toggle flips the theme and stores it. On a failed write the theme is
// unchanged.
func (t *Themes) Toggle(ctx context.Context) (domain.Theme, error) {
	next := t.Current().Toggle()
	if err := t.Set(ctx, next); err != nil {
		return t.Current(), err
	}
	return next, nil
}
