package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/chucklechow/internal/domain"
	"github.com/hammamikhairi/chucklechow/internal/logger"
)

func TestBuiltinCoversEveryCategory(t *testing.T) {
	b := Builtin()
	for _, cat := range domain.Categories {
		assert.NotEmpty(t, b[cat], "category %s", cat)
	}
}

func TestBuiltinNamesUniqueAcrossCategories(t *testing.T) {
	seen := map[string]domain.Category{}
	for cat, list := range Builtin() {
		for _, ing := range list {
			if prev, ok := seen[ing.Name]; ok {
				t.Fatalf("%q in both %s and %s", ing.Name, prev, cat)
			}
			seen[ing.Name] = cat
		}
	}
}

func TestLookup(t *testing.T) {
	c := New(logger.Nop())

	tests := []struct {
		cat     domain.Category
		name    string
		wantErr error
	}{
		{domain.CategoryMeat, "chicken", nil},
		{domain.CategoryMeat, "  Chicken ", nil},
		{domain.CategoryVegetable, "chicken", domain.ErrUnknownIngredient},
		{domain.Category(99), "chicken", domain.ErrUnknownCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ing, err := c.Lookup(tt.cat, tt.name)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "chicken", ing.Name)
		})
	}
}

func TestCategoryOf(t *testing.T) {
	c := New(logger.Nop())
	cat, ok := c.CategoryOf("salmon")
	require.True(t, ok)
	assert.Equal(t, domain.CategorySeafood, cat)

	_, ok = c.CategoryOf("kryptonite")
	assert.False(t, ok)
}

type fakeRemote struct {
	items domain.Catalog
	err   error
}

func (f fakeRemote) Ingredients(ctx context.Context) (domain.Catalog, error) {
	return f.items, f.err
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces and backfills symbols", func(t *testing.T) {
		c := New(logger.Nop(), WithRemote(fakeRemote{items: domain.Catalog{
			domain.CategoryMeat: {{Name: "chicken"}, {Name: "venison"}},
		}}))
		require.NoError(t, c.Refresh(ctx))

		got, err := c.Ingredients(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "🍗", got[domain.CategoryMeat][0].Symbol)
		assert.Equal(t, "", got[domain.CategoryMeat][1].Symbol)
	})

	t.Run("failure keeps builtin", func(t *testing.T) {
		c := New(logger.Nop(), WithRemote(fakeRemote{err: errors.New("boom")}))
		assert.Error(t, c.Refresh(ctx))

		got, err := c.Ingredients(ctx)
		require.NoError(t, err)
		assert.Len(t, got, len(domain.Categories))
	})

	t.Run("empty keeps builtin", func(t *testing.T) {
		c := New(logger.Nop(), WithRemote(fakeRemote{items: domain.Catalog{}}))
		require.NoError(t, c.Refresh(ctx))
		got, _ := c.Ingredients(ctx)
		assert.Len(t, got, len(domain.Categories))
	})
}

func TestIngredientsReturnsCopy(t *testing.T) {
	c := New(logger.Nop())
	ctx := context.Background()
	got, _ := c.Ingredients(ctx)
	got[domain.CategoryMeat][0].Name = "tofu"

	again, _ := c.Ingredients(ctx)
	assert.Equal(t, "ground beef", again[domain.CategoryMeat][0].Name)
}
