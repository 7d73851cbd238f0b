package conversation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hammamikhairi/chucklechow/internal/domain"
)

// lines.go keeps every user-facing string in one place. Alerts that the
// web client localised come in English and Spanish.

const spanish = "spanish"

// ── Greeting / Global ────────────────────────────────────────────

func LineWelcome() string {
	return "Howdy! Pick some grub, then type 'generate' (or 'random' if you're feelin' lucky)."
}

func LineBye() string {
	return "Y'all come back now! 🤠"
}

func LineUnknown(input string) string {
	return fmt.Sprintf("Huh? %q ain't on the menu. Type 'help'.", input)
}

// ── Picking ──────────────────────────────────────────────────────

func LinePicked(cat domain.Category, name string) string {
	return fmt.Sprintf("%s: %s it is.", cat, name)
}

func LineDropped(cat domain.Category) string {
	return fmt.Sprintf("%s cleared.", cat)
}

func LineUnknownCategory(name string) string {
	return fmt.Sprintf("No such category %q. Try: %s.", name, categoryList())
}

func LineUnknownIngredient(name string) string {
	return fmt.Sprintf("Never heard of %q. Type 'catalog' to see what's in the pantry.", name)
}

func LineCleared() string {
	return "Slate wiped clean."
}

func categoryList() string {
	names := make([]string, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		names = append(names, c.String())
	}
	return strings.Join(names, ", ")
}

// ── Requests ─────────────────────────────────────────────────────

func LineCooking() string {
	return "🔥 Whippin’ up somethin’ nuttier than squirrel turds... 🐿️"
}

func LineNoSelection() string {
	return "Pick somethin’, ya lazy bum! 😛"
}

// LineFailed describes a failed request. The server's own message is
// shown when there is one.
func LineFailed(err error) string {
	if errors.Is(err, domain.ErrNoSelection) {
		return LineNoSelection()
	}
	var (
		srvErr *domain.ServerError
		netErr *domain.NetworkError
		bad    *domain.MalformedResponseError
	)
	msg := err.Error()
	switch {
	case errors.As(err, &srvErr) && srvErr.Message != "":
		msg = srvErr.Message
	case errors.As(err, &netErr):
		msg = "couldn't reach the kitchen (" + netErr.Err.Error() + ")"
	case errors.As(err, &bad):
		msg = "the kitchen sent back gibberish"
	}
	return fmt.Sprintf("💥 Dang it! %s 🤦‍♂️", msg)
}

func LineRetryHint() string {
	return "Type 'retry' to try again."
}

func LineNoRecipe() string {
	return "No recipe on the table yet. Generate one first."
}

// ── Favorites ────────────────────────────────────────────────────

func LineSaved(lang string) string {
	if lang == spanish {
		return "¡Receta guardada en favoritos!"
	}
	return "Recipe saved to favorites!"
}

func LineAlreadySaved(lang string) string {
	if lang == spanish {
		return "¡La receta ya está en favoritos!"
	}
	return "Recipe already in favorites!"
}

func LineConfirmRemove(lang, title string) string {
	if lang == spanish {
		return fmt.Sprintf("¿Seguro que quieres eliminar esta receta? (%s) [sí/no]", title)
	}
	return fmt.Sprintf("Are you sure you want to remove this recipe? (%s) [yes/no]", title)
}

func LineRemoved(lang string) string {
	if lang == spanish {
		return "Receta eliminada de favoritos"
	}
	return "Recipe removed from favorites"
}

func LineRemoveCancelled() string {
	return "Phew. It stays."
}

func LineNothingToConfirm() string {
	return "Nothing to confirm."
}

func LineBadFavoriteNumber(arg string, n int) string {
	if n == 0 {
		return "No favorites yet."
	}
	return fmt.Sprintf("%q isn't a favorite number. Pick 1-%d (type 'favs' to list them).", arg, n)
}

func LineRated(n int) string {
	return fmt.Sprintf("Rated %d/5.", n)
}

func LineBadRating(arg string) string {
	return fmt.Sprintf("%q? Ratings go from 0 to 5.", arg)
}

func LineExported(path string, n int) string {
	return fmt.Sprintf("Exported %d favorites to %s.", n, path)
}

// ── Sharing ──────────────────────────────────────────────────────

func LineCopied() string {
	return "Snagged It! 🎯 Recipe copied to clipboard."
}

func LineShareLink(target, link string) string {
	return fmt.Sprintf("Share on %s: %s", target, link)
}

func LineShareFallback(text string) string {
	return "Sharing not supported. Copy this: " + text
}

// ── Settings ─────────────────────────────────────────────────────

func LineTheme(theme domain.Theme) string {
	return fmt.Sprintf("Theme: %s.", theme)
}

func LineLanguage(lang string) string {
	if lang == spanish {
		return "¡Ahora en español!"
	}
	return "Back to English."
}

// ── Help ─────────────────────────────────────────────────────────

// LineHelp lists the commands, one per line.
func LineHelp() []string {
	return []string{
		"pick <category> <name>   choose an ingredient (or just 'pick <name>')",
		"drop <category>          clear a category",
		"generate | random        cook with your picks, or let chaos decide",
		"retry | clear            try the last request again, or start over",
		"save | rate <0-5>        keep the recipe, set its stars",
		"favs [filter]            list favorites",
		"view <n> | remove <n>    open or delete a favorite",
		"copy | share [x|facebook] grab the recipe text or a share link",
		"export [file.xlsx]       dump favorites to a spreadsheet",
		"theme | lang | catalog   toggle theme, toggle language, list ingredients",
		"quit",
	}
}
