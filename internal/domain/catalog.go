package domain

import "strings"

// Category is an ingredient group. Each category allows one pick.
type Category int

const (
	CategoryMeat Category = iota
	CategoryVegetable
	CategoryFruit
	CategorySeafood
	CategoryDairy
	CategoryCarb
	CategoryBeverage
)

// Categories lists every category in declaration order. Selected
// ingredients are always reported in this order.
var Categories = []Category{
	CategoryMeat,
	CategoryVegetable,
	CategoryFruit,
	CategorySeafood,
	CategoryDairy,
	CategoryCarb,
	CategoryBeverage,
}

// String returns the category's key as used in the catalog JSON.
func (c Category) String() string {
	switch c {
	case CategoryMeat:
		return "meat"
	case CategoryVegetable:
		return "vegetable"
	case CategoryFruit:
		return "fruit"
	case CategorySeafood:
		return "seafood"
	case CategoryDairy:
		return "dairy"
	case CategoryCarb:
		return "carb"
	case CategoryBeverage:
		return "beverage"
	default:
		return "unknown"
	}
}

// categoryNames maps catalog keys, including the backend's plural and
// legacy spellings, to categories.
var categoryNames = map[string]Category{
	"meat":        CategoryMeat,
	"vegetable":   CategoryVegetable,
	"vegetables":  CategoryVegetable,
	"fruit":       CategoryFruit,
	"fruits":      CategoryFruit,
	"seafood":     CategorySeafood,
	"dairy":       CategoryDairy,
	"carb":        CategoryCarb,
	"carbs":       CategoryCarb,
	"bread_carbs": CategoryCarb,
	"beverage":    CategoryBeverage,
	"devilwater":  CategoryBeverage,
	"devil_water": CategoryBeverage,
	"devil-water": CategoryBeverage,
	"drinks":      CategoryBeverage,
}

// CategoryFromString resolves a catalog key. ok is false for unknown keys.
func CategoryFromString(name string) (Category, bool) {
	c, ok := categoryNames[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// Ingredient is a catalog entry.
type Ingredient struct {
	Name   string `json:"name"`
	Symbol string `json:"emoji"`
}

// Catalog maps each category to its ingredients.
type Catalog map[Category][]Ingredient

// Selection holds at most one ingredient name per category.
type Selection map[Category]string

// Ordered returns the non-empty picks in category declaration order.
func (s Selection) Ordered() []string {
	out := make([]string, 0, len(s))
	for _, c := range Categories {
		if name := s[c]; name != "" {
			out = append(out, name)
		}
	}
	return out
}

// Theme is the UI colour scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle flips between light and dark.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool { return t == ThemeLight || t == ThemeDark }
