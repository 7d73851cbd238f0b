package catalog

import "github.com/hammamikhairi/chucklechow/internal/domain"

// Builtin returns a fresh copy of the static catalog.
func Builtin() domain.Catalog {
	return domain.Catalog{
		domain.CategoryMeat: {
			{Name: "ground beef", Symbol: "🍔"},
			{Name: "chicken", Symbol: "🍗"},
			{Name: "pork", Symbol: "🥓"},
			{Name: "lamb", Symbol: "🐑"},
			{Name: "pichana", Symbol: "🥩"},
			{Name: "churrasco", Symbol: "🍖"},
			{Name: "ribeye steaks", Symbol: "🍽️"},
			{Name: "squirrel", Symbol: "🐿️"},
			{Name: "rabbit", Symbol: "🐰"},
			{Name: "quail", Symbol: "🐦"},
			{Name: "woodpecker", Symbol: "🦜"},
		},
		domain.CategoryVegetable: {
			{Name: "carrot", Symbol: "🥕"},
			{Name: "broccoli", Symbol: "🥦"},
			{Name: "onion", Symbol: "🧅"},
			{Name: "potato", Symbol: "🥔"},
			{Name: "tomato", Symbol: "🍅"},
			{Name: "green beans", Symbol: "🌱"},
			{Name: "okra", Symbol: "🌿"},
			{Name: "collards", Symbol: "🥬"},
		},
		domain.CategoryFruit: {
			{Name: "apple", Symbol: "🍎"},
			{Name: "banana", Symbol: "🍌"},
			{Name: "lemon", Symbol: "🍋"},
			{Name: "orange", Symbol: "🍊"},
			{Name: "mango", Symbol: "🥭"},
			{Name: "avocado", Symbol: "🥑"},
			{Name: "starfruit", Symbol: "✨"},
			{Name: "dragon fruit", Symbol: "🐉"},
			{Name: "carambola", Symbol: "🌟"},
		},
		domain.CategorySeafood: {
			{Name: "salmon", Symbol: "🐟"},
			{Name: "shrimp", Symbol: "🦐"},
			{Name: "cod", Symbol: "🐠"},
			{Name: "tuna", Symbol: "🐡"},
			{Name: "yellowtail snapper", Symbol: "🎣"},
			{Name: "grouper", Symbol: "🪸"},
			{Name: "red snapper", Symbol: "🌊"},
			{Name: "oysters", Symbol: "🦪"},
			{Name: "lobster", Symbol: "🦞"},
			{Name: "conch", Symbol: "🐚"},
			{Name: "lionfish", Symbol: "🦈"},
			{Name: "catfish", Symbol: "🐺"},
			{Name: "bass", Symbol: "🎸"},
			{Name: "crappie", Symbol: "🐳"},
		},
		domain.CategoryDairy: {
			{Name: "cheese", Symbol: "🧀"},
			{Name: "milk", Symbol: "🥛"},
			{Name: "butter", Symbol: "🧈"},
			{Name: "yogurt", Symbol: "🍶"},
			{Name: "eggs", Symbol: "🥚"},
		},
		domain.CategoryCarb: {
			{Name: "bread", Symbol: "🍞"},
			{Name: "pasta", Symbol: "🍝"},
			{Name: "rice", Symbol: "🍚"},
			{Name: "tortilla", Symbol: "🌮"},
		},
		domain.CategoryBeverage: {
			{Name: "beer", Symbol: "🍺"},
			{Name: "moonshine", Symbol: "🥃"},
			{Name: "whiskey", Symbol: "🥃"},
			{Name: "vodka", Symbol: "🍸"},
			{Name: "tequila", Symbol: "🌵"},
		},
	}
}
