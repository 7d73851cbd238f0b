package domain

import "context"

// Preferences are optional generation hints sent alongside the ingredients.
type Preferences struct {
	Diet     string `json:"diet,omitempty"`
	Time     string `json:"time,omitempty"`
	Style    string `json:"style,omitempty"`
	Category string `json:"category,omitempty"`
	Language string `json:"language,omitempty"`
}

// RecipeGenerator produces recipes. The HTTP client is the production
// implementation; tests use fakes.
type RecipeGenerator interface {
	Generate(ctx context.Context, ingredients []string, randomize bool, prefs Preferences) (*Recipe, error)
}

// CatalogSource provides the ingredient catalog.
type CatalogSource interface {
	Ingredients(ctx context.Context) (Catalog, error)
}

// KVStore is a string key-value slot. Implementations can be in-memory,
// a JSON file, or SQLite. Get returns ErrNotFound for missing keys.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// FavoriteStore persists saved recipes.
type FavoriteStore interface {
	Save(ctx context.Context, recipe Recipe, rating int) (Favorite, error)
	Remove(ctx context.Context, id int64) error
	Rate(ctx context.Context, id int64, rating int) error
	Get(id int64) (Favorite, error)
	List(filter string) []Favorite
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// IntentParser converts raw user input into structured intents.
type IntentParser interface {
	Parse(ctx context.Context, input string) (*Intent, error)
}

// Notifier delivers messages to the user.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}
