package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/hammamikhairi/chucklechow/internal/domain"
)

// FallbackPrefix starts the view shown when rendering blows up.
const FallbackPrefix = "Chaos broke loose! 🐷 "

// SafeRender runs fn and returns its output. A panic inside fn is
// recovered and replaced by a fallback view carrying the panic message.
func SafeRender(fn func() string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = FallbackPrefix + fmt.Sprint(r)
		}
	}()
	return fn()
}

// Stars renders a 0..5 rating as filled and empty stars.
func Stars(n int) string {
	n = domain.ClampRating(n)
	return strings.Repeat("★", n) + strings.Repeat("☆", domain.MaxRating-n)
}

// RecipeMarkdown lays out a recipe card as markdown.
func RecipeMarkdown(r domain.Recipe, rating int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Title)
	fmt.Fprintf(&b, "%s\n\n", Stars(rating))

	b.WriteString("## Ingredients\n\n")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(&b, "- %s\n", ing)
	}
	if len(r.IngredientsWithLinks) > 0 {
		b.WriteString("\n**Shop:** ")
		shop := make([]string, 0, len(r.IngredientsWithLinks))
		for _, l := range r.IngredientsWithLinks {
			shop = append(shop, fmt.Sprintf("[%s](%s)", l.Name, l.URL))
		}
		b.WriteString(strings.Join(shop, ", "))
		b.WriteString("\n")
	}
	if r.AddAllToCart != "" {
		fmt.Fprintf(&b, "\n[Add all to cart](%s)\n", r.AddAllToCart)
	}

	b.WriteString("\n## Steps\n\n")
	for i, step := range r.Steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}

	b.WriteString("\n## Nutrition\n\n")
	b.WriteString("| Calories | Protein | Fat | Chaos Factor |\n|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %s | %s | %s | %s/10 |\n",
		num(&r.Nutrition.Calories), num(r.Nutrition.Protein), num(r.Nutrition.Fat), num(&r.Nutrition.ChaosFactor))

	equipment := "None"
	if len(r.Equipment) > 0 {
		equipment = strings.Join(r.Equipment, ", ")
	}
	fmt.Fprintf(&b, "\n**Equipment:** %s", equipment)
	if r.ChaosGear != "" {
		fmt.Fprintf(&b, ", Chaos Gear: %s 🪓", r.ChaosGear)
	}
	b.WriteString("\n")
	return b.String()
}

func num(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *v)
}

// renderMarkdown renders md for the terminal in the given theme.
func renderMarkdown(md string, theme domain.Theme, width int) (string, error) {
	if width <= 0 || width > 100 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(string(theme)),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

// RenderRecipe returns the styled recipe card. If markdown rendering
// fails the raw markdown is returned.
func RenderRecipe(r domain.Recipe, rating int, theme domain.Theme, width int) string {
	return SafeRender(func() string {
		md := RecipeMarkdown(r, rating)
		out, err := renderMarkdown(md, theme, width)
		if err != nil {
			return md
		}
		return out
	})
}

// PrintRecipe prints the recipe card above the prompt.
func (u *UI) PrintRecipe(r domain.Recipe, rating int) {
	u.Println(RenderRecipe(r, rating, u.Theme(), int(u.width.Load())))
}

// FavoritesList formats favorites as a numbered list.
func FavoritesList(favs []domain.Favorite) string {
	if len(favs) == 0 {
		return "No favorites yet. Cook something and type 'save'."
	}
	var b strings.Builder
	for i, f := range favs {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%2d. %s  %s", i+1, f.Title, Stars(f.Rating))
	}
	return b.String()
}

// PrintFavorites prints the favorites list.
func (u *UI) PrintFavorites(favs []domain.Favorite) {
	p := u.palette()
	for _, line := range strings.Split(SafeRender(func() string { return FavoritesList(favs) }), "\n") {
		u.Println(p.chat.Render("  " + line))
	}
}

// CatalogText formats the ingredient catalog, one category per line.
func CatalogText(cat domain.Catalog) string {
	var b strings.Builder
	for i, c := range domain.Categories {
		if i > 0 {
			b.WriteByte('\n')
		}
		names := make([]string, 0, len(cat[c]))
		for _, ing := range cat[c] {
			names = append(names, strings.TrimSpace(ing.Symbol+" "+ing.Name))
		}
		fmt.Fprintf(&b, "%-10s %s", c.String()+":", strings.Join(names, ", "))
	}
	return b.String()
}

// PrintCatalog prints the catalog.
func (u *UI) PrintCatalog(cat domain.Catalog) {
	p := u.palette()
	for _, line := range strings.Split(CatalogText(cat), "\n") {
		u.Println(p.secondary.Render("  " + line))
	}
}
