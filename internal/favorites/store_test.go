package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/chucklechow/internal/domain"
	"github.com/hammamikhairi/chucklechow/internal/kv"
	"github.com/hammamikhairi/chucklechow/internal/logger"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var epoch = time.UnixMilli(1_700_000_000_000)

func sampleRecipe(title string) domain.Recipe {
	protein := 22.5
	return domain.Recipe{
		Title:       title,
		Ingredients: []string{"1 lb chicken, cubed", "2 cups carrot, chopped"},
		Steps:       []string{"Chop", "Grill"},
		Nutrition:   domain.Nutrition{Calories: 300, Protein: &protein, ChaosFactor: 7},
		Equipment:   []string{"skillet"},
		ChaosGear:   "rubber chicken",
		IngredientsWithLinks: []domain.IngredientLink{
			{Name: "chicken", URL: "https://example.test/chicken"},
		},
		ShareText: "Behold " + title,
	}
}

func setupStore(t *testing.T) (*Store, *kv.Memory, context.Context) {
	t.Helper()
	log := logger.Nop()
	mem := kv.NewMemory(log)
	return New(mem, log, WithClock(fixedClock(epoch))), mem, context.Background()
}

func stored(t *testing.T, mem *kv.Memory) []domain.Favorite {
	t.Helper()
	raw, err := mem.Get(context.Background(), Key)
	require.NoError(t, err)
	var out []domain.Favorite
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestSaveThenList(t *testing.T) {
	s, mem, ctx := setupStore(t)

	fav, err := s.Save(ctx, sampleRecipe("Hog Wild Chicken"), 4)
	require.NoError(t, err)
	assert.Equal(t, epoch.UnixMilli(), fav.ID)
	assert.Equal(t, 4, fav.Rating)

	all := s.List("")
	require.Len(t, all, 1)
	assert.Equal(t, "Hog Wild Chicken", all[0].Title)
	assert.Equal(t, all, stored(t, mem), "write-through")
}

func TestSaveDuplicateTitle(t *testing.T) {
	s, mem, ctx := setupStore(t)

	_, err := s.Save(ctx, sampleRecipe("Hog Wild Chicken"), 0)
	require.NoError(t, err)
	before := s.List("")

	_, err = s.Save(ctx, sampleRecipe("Hog Wild Chicken"), 5)
	assert.ErrorIs(t, err, domain.ErrDuplicateTitle)
	assert.Equal(t, before, s.List(""))
	assert.Equal(t, before, stored(t, mem))
}

func TestSameMillisecondSavesGetDistinctIDs(t *testing.T) {
	s, _, ctx := setupStore(t)

	ids := map[int64]bool{}
	for _, title := range []string{"a", "b", "c", "d"} {
		fav, err := s.Save(ctx, sampleRecipe(title), 0)
		require.NoError(t, err)
		assert.False(t, ids[fav.ID], "id %d reused", fav.ID)
		ids[fav.ID] = true
	}
	assert.Len(t, ids, 4)
}

func TestSaveClampsRating(t *testing.T) {
	s, _, ctx := setupStore(t)
	hi, err := s.Save(ctx, sampleRecipe("hi"), 9)
	require.NoError(t, err)
	lo, err := s.Save(ctx, sampleRecipe("lo"), -3)
	require.NoError(t, err)
	assert.Equal(t, 5, hi.Rating)
	assert.Equal(t, 0, lo.Rating)
}

func TestRemove(t *testing.T) {
	s, mem, ctx := setupStore(t)

	a, err := s.Save(ctx, sampleRecipe("a"), 0)
	require.NoError(t, err)
	b, err := s.Save(ctx, sampleRecipe("b"), 0)
	require.NoError(t, err)

	require.NoError(t, s.Remove(ctx, a.ID))
	for _, f := range s.List("") {
		assert.NotEqual(t, a.ID, f.ID)
	}
	assert.Equal(t, s.List(""), stored(t, mem))

	before := s.List("")
	err = s.Remove(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, before, s.List(""))

	_, err = s.Get(b.ID)
	assert.NoError(t, err)
}

func TestRemoveClearsViewedFavorite(t *testing.T) {
	s, _, ctx := setupStore(t)

	a, _ := s.Save(ctx, sampleRecipe("a"), 0)
	b, _ := s.Save(ctx, sampleRecipe("b"), 0)

	_, err := s.Select(b.ID)
	require.NoError(t, err)
	require.NoError(t, s.Remove(ctx, a.ID))
	sel, ok := s.Selected()
	require.True(t, ok, "removing another favorite keeps the selection")
	assert.Equal(t, b.ID, sel.ID)

	require.NoError(t, s.Remove(ctx, b.ID))
	_, ok = s.Selected()
	assert.False(t, ok)
}

func TestListFilter(t *testing.T) {
	s, _, ctx := setupStore(t)
	for _, title := range []string{"Drunken CHICKEN Surprise", "Moonshine Muffins", "Chicken Fried Chaos", "Straße Stew"} {
		_, err := s.Save(ctx, sampleRecipe(title), 0)
		require.NoError(t, err)
	}

	tests := []struct {
		filter string
		want   []string
	}{
		{"", []string{"Drunken CHICKEN Surprise", "Moonshine Muffins", "Chicken Fried Chaos", "Straße Stew"}},
		{"chicken", []string{"Drunken CHICKEN Surprise", "Chicken Fried Chaos"}},
		{"  MUFF ", []string{"Moonshine Muffins"}},
		{"strasse", []string{"Straße Stew"}},
		{"tofu", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			got := []string{}
			for _, f := range s.List(tt.filter) {
				got = append(got, f.Title)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRate(t *testing.T) {
	s, mem, ctx := setupStore(t)
	fav, _ := s.Save(ctx, sampleRecipe("a"), 1)

	require.NoError(t, s.Rate(ctx, fav.ID, 5))
	got, _ := s.Get(fav.ID)
	assert.Equal(t, 5, got.Rating)
	assert.Equal(t, 5, stored(t, mem)[0].Rating)

	assert.ErrorIs(t, s.Rate(ctx, fav.ID, 6), domain.ErrInvalidRating)
	assert.ErrorIs(t, s.Rate(ctx, 42, 3), domain.ErrNotFound)
}

func TestPersistLoadRoundTrip(t *testing.T) {
	s, mem, ctx := setupStore(t)
	for i, title := range []string{"a", "b", "c"} {
		_, err := s.Save(ctx, sampleRecipe(title), i)
		require.NoError(t, err)
	}
	require.NoError(t, s.Persist(ctx))

	reloaded := New(mem, logger.Nop())
	require.NoError(t, reloaded.Load(ctx))
	if diff := cmp.Diff(s.List(""), reloaded.List("")); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRepairsPartialRecords(t *testing.T) {
	log := logger.Nop()
	mem := kv.NewMemory(log)
	ctx := context.Background()

	raw := `[
	  {"title": "Complete", "ingredients": ["x"], "steps": ["y"], "nutrition": {"calories": 10, "chaos_factor": 2},
	   "equipment": [], "ingredients_with_links": [], "id": 100, "rating": 3},
	  {"title": "No Extras", "id": "200"},
	  {"steps": ["orphan"], "id": 100, "rating": 11},
	  "not an object",
	  {"title": "No Id"}
	]`
	require.NoError(t, mem.Set(ctx, Key, []byte(raw)))

	s := New(mem, log, WithClock(fixedClock(time.UnixMilli(50))))
	require.NoError(t, s.Load(ctx))

	got := s.List("")
	require.Len(t, got, 4, "non-object entry dropped")

	assert.Equal(t, int64(100), got[0].ID)
	assert.Equal(t, 3, got[0].Rating)

	assert.Equal(t, "No Extras", got[1].Title)
	assert.Equal(t, int64(200), got[1].ID)
	assert.Equal(t, []string{}, got[1].Ingredients)
	assert.Equal(t, []string{}, got[1].Steps)
	assert.Equal(t, []string{}, got[1].Equipment)
	assert.Equal(t, domain.Nutrition{}, got[1].Nutrition)
	assert.Equal(t, 0, got[1].Rating)

	assert.Equal(t, unknownTitle, got[2].Title)
	assert.Equal(t, 5, got[2].Rating)
	assert.Equal(t, int64(201), got[2].ID, "duplicate id reassigned above the highest seen")

	assert.Equal(t, int64(202), got[3].ID)

	// Self-healing: the repaired list was written back.
	assert.Equal(t, got, stored(t, mem))

	// And loading the healed list again is stable.
	again := New(mem, log)
	require.NoError(t, again.Load(ctx))
	assert.Equal(t, got, again.List(""))
}

func TestLoadKeepsEntriesWithMistypedFields(t *testing.T) {
	log := logger.Nop()
	mem := kv.NewMemory(log)
	ctx := context.Background()

	raw := `[
	  {"title": "Keep Me", "ingredients": "egg, milk", "id": 1, "rating": 2},
	  {"title": "Keep Me Too", "nutrition": {"calories": "300", "fat": true}, "steps": ["a", 7, "b"], "id": 2},
	  null,
	  null
	]`
	require.NoError(t, mem.Set(ctx, Key, []byte(raw)))

	s := New(mem, log, WithClock(fixedClock(time.UnixMilli(50))))
	require.NoError(t, s.Load(ctx))

	got := s.List("")
	require.Len(t, got, 2, "null entries dropped, mistyped ones kept")

	assert.Equal(t, "Keep Me", got[0].Title)
	assert.Equal(t, []string{"egg", "milk"}, got[0].Ingredients)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, 2, got[0].Rating)

	assert.Equal(t, "Keep Me Too", got[1].Title)
	assert.Equal(t, float64(300), got[1].Nutrition.Calories)
	assert.Nil(t, got[1].Nutrition.Fat)
	assert.Equal(t, []string{"a", "b"}, got[1].Steps)
	assert.Equal(t, int64(2), got[1].ID)

	assert.Equal(t, got, stored(t, mem))
}

func TestLoadGivesUntitledEntriesDistinctTitles(t *testing.T) {
	log := logger.Nop()
	mem := kv.NewMemory(log)
	ctx := context.Background()

	raw := `[{"id": 1}, {"title": ""}, {"title": "Unknown Recipe (2)"}, {"title": 5}]`
	require.NoError(t, mem.Set(ctx, Key, []byte(raw)))

	s := New(mem, log, WithClock(fixedClock(time.UnixMilli(50))))
	require.NoError(t, s.Load(ctx))

	got := s.List("")
	require.Len(t, got, 4)
	titles := make([]string, len(got))
	for i, f := range got {
		titles[i] = f.Title
	}
	assert.Equal(t, []string{
		unknownTitle,
		unknownTitle + " (2)",
		"Unknown Recipe (2) (2)",
		unknownTitle + " (3)",
	}, titles)

	// A later save still dedups against the repaired titles.
	_, err := s.Save(ctx, sampleRecipe(unknownTitle), 0)
	assert.ErrorIs(t, err, domain.ErrDuplicateTitle)
}

func TestLoadCorruptSlot(t *testing.T) {
	log := logger.Nop()
	mem := kv.NewMemory(log)
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, Key, []byte(`{"not": "a list"}`)))

	s := New(mem, log)
	require.NoError(t, s.Load(ctx))
	assert.Empty(t, s.List(""))
	assert.Empty(t, stored(t, mem))
}

func TestLoadEmptySlot(t *testing.T) {
	s, _, ctx := setupStore(t)
	require.NoError(t, s.Load(ctx))
	assert.Equal(t, 0, s.Len())
}

type failingKV struct {
	*kv.Memory
	fail bool
}

func (f *failingKV) Set(ctx context.Context, key string, value []byte) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.Memory.Set(ctx, key, value)
}

func TestWriteFailureLeavesListUnchanged(t *testing.T) {
	log := logger.Nop()
	backing := &failingKV{Memory: kv.NewMemory(log)}
	s := New(backing, log)
	ctx := context.Background()

	a, err := s.Save(ctx, sampleRecipe("a"), 0)
	require.NoError(t, err)

	backing.fail = true
	_, err = s.Save(ctx, sampleRecipe("b"), 0)
	assert.Error(t, err)
	assert.Equal(t, 1, s.Len())

	assert.Error(t, s.Remove(ctx, a.ID))
	assert.Equal(t, 1, s.Len())

	assert.Error(t, s.Rate(ctx, a.ID, 5))
	got, _ := s.Get(a.ID)
	assert.Equal(t, 0, got.Rating)
}

func TestReturnedFavoritesAreCopies(t *testing.T) {
	s, _, ctx := setupStore(t)
	fav, _ := s.Save(ctx, sampleRecipe("a"), 0)
	fav.Steps[0] = "mutated"

	list := s.List("")
	list[0].Ingredients[0] = "mutated"

	got, _ := s.Get(fav.ID)
	assert.Equal(t, "Chop", got.Steps[0])
	assert.Equal(t, "1 lb chicken, cubed", got.Ingredients[0])
}
