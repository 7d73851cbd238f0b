package favorites

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/hammamikhairi/chucklechow/internal/domain"
)

// unknownTitle replaces a missing or blank title.
const unknownTitle = "Unknown Recipe"

// storedFavorite is one on-disk entry, split into raw fields so a field of
// the wrong type is defaulted on its own instead of losing the entry.
type storedFavorite map[string]json.RawMessage

// repairReport says what decodeFavorites had to fix.
type repairReport struct {
	Dropped  int // entries that were not objects at all
	Repaired int // entries with at least one defaulted field
}

func (r repairReport) changed() bool { return r.Dropped > 0 || r.Repaired > 0 }

func (r repairReport) String() string {
	return fmt.Sprintf("%d repaired, %d dropped", r.Repaired, r.Dropped)
}

// decodeFavorites parses a stored favorites list and repairs every entry:
// missing title → "Unknown Recipe", missing or mistyped fields → defaults,
// rating clamped to 0..5, missing or duplicate id → fresh id from ids,
// repeated title → numbered suffix. Entries that are not objects (null
// included) are dropped.
func decodeFavorites(raw []byte, ids *IDSource) ([]domain.Favorite, repairReport, error) {
	var report repairReport
	if len(bytes.TrimSpace(raw)) == 0 {
		return []domain.Favorite{}, report, nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, report, fmt.Errorf("favorites: stored list is not a JSON array: %w", err)
	}

	objects := make([]storedFavorite, 0, len(entries))
	for _, e := range entries {
		var sf storedFavorite
		if err := json.Unmarshal(e, &sf); err != nil || sf == nil {
			report.Dropped++
			continue
		}
		objects = append(objects, sf)
	}

	// Existing ids first, so generated ones never collide with them.
	for _, sf := range objects {
		if id, ok := sf.number("id"); ok && id > 0 {
			ids.Observe(id)
		}
	}

	out := make([]domain.Favorite, 0, len(objects))
	seenIDs := make(map[int64]bool, len(objects))
	seenTitles := make(map[string]bool, len(objects))
	for _, sf := range objects {
		fav, fixed := sf.repair(ids, seenIDs, seenTitles)
		seenIDs[fav.ID] = true
		seenTitles[fav.Title] = true
		if fixed {
			report.Repaired++
		}
		out = append(out, fav)
	}
	return out, report, nil
}

func (sf storedFavorite) repair(ids *IDSource, seenIDs map[int64]bool, seenTitles map[string]bool) (domain.Favorite, bool) {
	var fav domain.Favorite
	fixed := false
	ok := func(v bool) {
		if !v {
			fixed = true
		}
	}

	title, valid := sf.text("title")
	if !valid || strings.TrimSpace(title) == "" {
		title, valid = unknownTitle, false
	}
	ok(valid)
	if seenTitles[title] {
		title = uniqueTitle(title, seenTitles)
		fixed = true
	}
	fav.Title = title

	fav.Ingredients, valid = sf.list("ingredients", true)
	ok(valid)
	fav.Steps, valid = sf.list("steps", false)
	ok(valid)
	fav.Equipment, valid = sf.list("equipment", true)
	ok(valid)
	fav.Nutrition, valid = sf.nutrition()
	ok(valid)
	fav.IngredientsWithLinks, valid = sf.links()
	ok(valid)

	// Optional text fields: absent is fine, wrong type is a repair.
	for key, dst := range map[string]*string{
		"chaos_gear":      &fav.ChaosGear,
		"add_all_to_cart": &fav.AddAllToCart,
		"shareText":       &fav.ShareText,
	} {
		if _, present := sf[key]; !present {
			continue
		}
		*dst, valid = sf.text(key)
		ok(valid)
	}
	fav.Normalize()

	rating, valid := sf.number("rating")
	if _, present := sf["rating"]; present {
		ok(valid)
	}
	fav.Rating = domain.ClampRating(int(rating))
	if int64(fav.Rating) != rating {
		fixed = true
	}

	id, _ := sf.number("id")
	if id <= 0 || seenIDs[id] {
		id = ids.Next()
		fixed = true
	}
	fav.ID = id

	return fav, fixed
}

// uniqueTitle appends " (2)", " (3)", ... until title is unused.
func uniqueTitle(title string, seen map[string]bool) string {
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s (%d)", title, n)
		if !seen[candidate] {
			return candidate
		}
	}
}

// ── Lenient field decoders ─────────────────────────────────────────
//
// Each returns the decoded value and whether the stored field was present
// and well-typed. A false result means the caller got a default.

func (sf storedFavorite) text(key string) (string, bool) {
	raw, present := sf[key]
	if !present {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// list decodes a string array, keeping only the string elements. A bare
// string is accepted as one item, or as a comma separated list when
// splitCommas is set.
func (sf storedFavorite) list(key string, splitCommas bool) ([]string, bool) {
	raw, present := sf[key]
	if !present {
		return []string{}, false
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err == nil && items != nil {
		out := make([]string, 0, len(items))
		valid := true
		for _, item := range items {
			var s string
			if err := json.Unmarshal(item, &s); err != nil {
				valid = false
				continue
			}
			out = append(out, s)
		}
		return out, valid
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return []string{}, false
	}
	parts := []string{s}
	if splitCommas {
		parts = strings.Split(s, ",")
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out, false
}

func (sf storedFavorite) nutrition() (domain.Nutrition, bool) {
	var n domain.Nutrition
	raw, present := sf["nutrition"]
	if !present {
		return n, false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return n, false
	}

	valid := true
	num := func(key string) (float64, bool) {
		v, present := fields[key]
		if !present {
			return 0, false
		}
		f, ok := parseNumber(v)
		if !ok {
			valid = false
		}
		return f, ok
	}
	n.Calories, _ = num("calories")
	n.ChaosFactor, _ = num("chaos_factor")
	if v, ok := num("protein"); ok {
		n.Protein = &v
	}
	if v, ok := num("fat"); ok {
		n.Fat = &v
	}
	return n, valid
}

func (sf storedFavorite) links() ([]domain.IngredientLink, bool) {
	raw, present := sf["ingredients_with_links"]
	if !present {
		return []domain.IngredientLink{}, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return []domain.IngredientLink{}, false
	}

	out := make([]domain.IngredientLink, 0, len(items))
	valid := true
	for _, item := range items {
		var l domain.IngredientLink
		if err := json.Unmarshal(item, &l); err != nil || l.Name == "" {
			valid = false
			continue
		}
		out = append(out, l)
	}
	return out, valid
}

func (sf storedFavorite) number(key string) (int64, bool) {
	raw, present := sf[key]
	if !present {
		return 0, false
	}
	f, ok := parseNumber(raw)
	if !ok {
		return 0, false
	}
	return int64(f), true
}

// parseNumber accepts a JSON number or a numeric string.
func parseNumber(raw json.RawMessage) (float64, bool) {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
