// Package domain defines the core types and interfaces for Chuckle & Chow.
// All other packages depend on domain; domain depends on nothing.
package domain

import "strings"

// Recipe is a generated recipe as returned by the recipe endpoint.
// Field names on the wire match the endpoint's JSON.
type Recipe struct {
	Title                string           `json:"title" validate:"required"`
	Ingredients          []string         `json:"ingredients"`
	Steps                []string         `json:"steps"`
	Nutrition            Nutrition        `json:"nutrition"`
	Equipment            []string         `json:"equipment"`
	ChaosGear            string           `json:"chaos_gear"`
	IngredientsWithLinks []IngredientLink `json:"ingredients_with_links"`
	AddAllToCart         string           `json:"add_all_to_cart"`
	ShareText            string           `json:"shareText"`
}

// Nutrition is the recipe's nutrition block. Protein and Fat are optional.
type Nutrition struct {
	Calories    float64  `json:"calories"`
	Protein     *float64 `json:"protein,omitempty"`
	Fat         *float64 `json:"fat,omitempty"`
	ChaosFactor float64  `json:"chaos_factor"`
}

// IngredientLink points an ingredient at a shop page.
type IngredientLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Clone returns a deep copy so callers can't mutate shared state.
func (r Recipe) Clone() Recipe {
	out := r
	out.Ingredients = cloneStrings(r.Ingredients)
	out.Steps = cloneStrings(r.Steps)
	out.Equipment = cloneStrings(r.Equipment)
	if r.IngredientsWithLinks != nil {
		out.IngredientsWithLinks = append([]IngredientLink{}, r.IngredientsWithLinks...)
	}
	if r.Nutrition.Protein != nil {
		v := *r.Nutrition.Protein
		out.Nutrition.Protein = &v
	}
	if r.Nutrition.Fat != nil {
		v := *r.Nutrition.Fat
		out.Nutrition.Fat = &v
	}
	return out
}

// Normalize fills missing collections with empty ones and collapses
// duplicate link names (first wins). It is the same repair applied to
// server responses and to stored favorites.
func (r *Recipe) Normalize() {
	if r.Ingredients == nil {
		r.Ingredients = []string{}
	}
	if r.Steps == nil {
		r.Steps = []string{}
	}
	if r.Equipment == nil {
		r.Equipment = []string{}
	}
	seen := make(map[string]bool, len(r.IngredientsWithLinks))
	links := make([]IngredientLink, 0, len(r.IngredientsWithLinks))
	for _, l := range r.IngredientsWithLinks {
		if seen[l.Name] {
			continue
		}
		seen[l.Name] = true
		links = append(links, l)
	}
	r.IngredientsWithLinks = links
}

// sentinelTitles are titles the backend uses when generation fails
// but it still answers 200.
var sentinelTitles = []string{"error", "error recipe", "fallback recipe"}

// IsSentinelTitle reports whether title marks a failed generation.
func IsSentinelTitle(title string) bool {
	t := strings.ToLower(strings.TrimSpace(title))
	for _, s := range sentinelTitles {
		if t == s {
			return true
		}
	}
	return false
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string{}, in...)
}

// Favorite is a saved recipe with a store-assigned ID and a user rating.
type Favorite struct {
	Recipe
	ID     int64 `json:"id"`
	Rating int   `json:"rating"`
}

// MaxRating is the top of the star scale.
const MaxRating = 5

// ClampRating bounds n to 0..MaxRating.
func ClampRating(n int) int {
	if n < 0 {
		return 0
	}
	if n > MaxRating {
		return MaxRating
	}
	return n
}

// Clone returns a deep copy of the favorite.
func (f Favorite) Clone() Favorite {
	return Favorite{Recipe: f.Recipe.Clone(), ID: f.ID, Rating: f.Rating}
}
