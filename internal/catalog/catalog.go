// Package catalog provides the ingredient catalog the pickers offer.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/hammamikhairi/chucklechow/internal/domain"
	"github.com/hammamikhairi/chucklechow/internal/logger"
)

// Compile-time interface check.
var _ domain.CatalogSource = (*Catalog)(nil)

// Catalog holds the category → ingredient mapping. It starts from the
// built-in list and may be replaced once from a remote source.
type Catalog struct {
	mu     sync.RWMutex
	items  domain.Catalog
	remote domain.CatalogSource
	log    *logger.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithRemote sets a source consulted by Refresh.
func WithRemote(src domain.CatalogSource) Option {
	return func(c *Catalog) { c.remote = src }
}

// New creates a catalog preloaded with the built-in ingredients.
func New(log *logger.Logger, opts ...Option) *Catalog {
	c := &Catalog{items: Builtin(), log: log}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Ingredients returns a copy of the current catalog.
func (c *Catalog) Ingredients(ctx context.Context) (domain.Catalog, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clone(c.items), nil
}

// Refresh replaces the catalog with the remote one. On any failure, or
// when the remote catalog is empty, the current catalog is kept.
func (c *Catalog) Refresh(ctx context.Context) error {
	if c.remote == nil {
		return nil
	}
	items, err := c.remote.Ingredients(ctx)
	if err != nil {
		c.log.Warn("remote catalog unavailable, keeping built-in: %v", err)
		return fmt.Errorf("refreshing catalog: %w", err)
	}
	if len(items) == 0 {
		c.log.Warn("remote catalog empty, keeping built-in")
		return nil
	}

	// Fill in symbols the remote omitted from the built-in list.
	known := make(map[string]string)
	for _, list := range Builtin() {
		for _, ing := range list {
			known[ing.Name] = ing.Symbol
		}
	}
	for cat, list := range items {
		for i := range list {
			if list[i].Symbol == "" {
				list[i].Symbol = known[list[i].Name]
			}
		}
		items[cat] = list
	}

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	c.log.Info("catalog refreshed from remote (%d categories)", len(items))
	return nil
}

// Lookup finds an ingredient by name within a category, case-insensitively.
func (c *Catalog) Lookup(cat domain.Category, name string) (domain.Ingredient, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	list, ok := c.items[cat]
	if !ok {
		return domain.Ingredient{}, fmt.Errorf("%w: %s", domain.ErrUnknownCategory, cat)
	}
	q := strings.ToLower(strings.TrimSpace(name))
	for _, ing := range list {
		if strings.ToLower(ing.Name) == q {
			return ing, nil
		}
	}
	return domain.Ingredient{}, fmt.Errorf("%w: %q in %s", domain.ErrUnknownIngredient, name, cat)
}

// CategoryOf returns the category an ingredient name belongs to.
func (c *Catalog) CategoryOf(name string) (domain.Category, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(name))
	for _, cat := range domain.Categories {
		for _, ing := range c.items[cat] {
			if strings.ToLower(ing.Name) == q {
				return cat, true
			}
		}
	}
	return 0, false
}

func clone(in domain.Catalog) domain.Catalog {
	out := make(domain.Catalog, len(in))
	for k, v := range in {
		out[k] = append([]domain.Ingredient(nil), v...)
	}
	return out
}
