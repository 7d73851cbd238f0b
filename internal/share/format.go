// Package share turns recipes into clipboard text, social share links
// and spreadsheet exports.
package share

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/hammamikhairi/chucklechow/internal/domain"
)

// DefaultAppURL is the link appended to shared recipes.
const DefaultAppURL = "https://chuckle-and-chow.onrender.com/"

// Target is where a recipe is sent.
type Target string

const (
	TargetClipboard Target = "clipboard"
	TargetFacebook  Target = "facebook"
	TargetX         Target = "x"
	TargetShare     Target = "share" // generic share sheet
)

// Targets lists every target, in menu order.
var Targets = []Target{TargetClipboard, TargetFacebook, TargetX, TargetShare}

// ParseTarget resolves a user-typed target name. Empty means the generic
// share.
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "share", "default", "generic":
		return TargetShare, nil
	case "clipboard", "copy":
		return TargetClipboard, nil
	case "facebook", "fb":
		return TargetFacebook, nil
	case "x", "twitter":
		return TargetX, nil
	}
	return "", fmt.Errorf("unknown share target %q", s)
}

// Formatter builds share payloads. The zero value links to DefaultAppURL.
type Formatter struct {
	AppURL string
}

// Format renders recipe for target: plain text for the clipboard and the
// generic share, an intent URL for the social targets.
func Format(recipe domain.Recipe, target Target) (string, error) {
	return Formatter{}.Format(recipe, target)
}

// Format renders recipe for target.
func (f Formatter) Format(recipe domain.Recipe, target Target) (string, error) {
	switch target {
	case TargetClipboard:
		return ClipboardText(recipe), nil
	case TargetFacebook:
		return "https://www.facebook.com/sharer/sharer.php?u=" + encodeComponent(f.appURL()) +
			"&quote=" + encodeComponent(ShareText(recipe)), nil
	case TargetX:
		return "https://x.com/intent/tweet?text=" + encodeComponent(f.Message(recipe)), nil
	case TargetShare:
		return f.Message(recipe), nil
	}
	return "", fmt.Errorf("unknown share target %q", target)
}

// Message is the promo text posted to social targets.
func (f Formatter) Message(recipe domain.Recipe) string {
	return fmt.Sprintf("Get a load of this hogwash: %s\nCheck out my app: %s 🤠", ShareText(recipe), f.appURL())
}

func (f Formatter) appURL() string {
	if f.AppURL == "" {
		return DefaultAppURL
	}
	return f.AppURL
}

// ShareText is the recipe's own share text, or a one-paragraph summary
// when the backend sent none.
func ShareText(recipe domain.Recipe) string {
	if strings.TrimSpace(recipe.ShareText) != "" {
		return recipe.ShareText
	}
	return fmt.Sprintf("%s\nIngredients: %s\nSteps: %s",
		recipe.Title,
		strings.Join(recipe.Ingredients, ", "),
		strings.Join(recipe.Steps, "; "))
}

// ClipboardText lays the recipe out for pasting: title, ingredients one
// per line, numbered steps, then equipment and chaos gear.
func ClipboardText(recipe domain.Recipe) string {
	var b strings.Builder
	b.WriteString(recipe.Title)
	b.WriteString("\n\nIngredients:\n")
	for _, ing := range recipe.Ingredients {
		b.WriteString(ing)
		b.WriteByte('\n')
	}
	b.WriteString("\nSteps:\n")
	for i, step := range recipe.Steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	b.WriteByte('\n')
	if len(recipe.Equipment) > 0 {
		b.WriteString("Equipment: " + strings.Join(recipe.Equipment, ", ") + "\n")
	}
	gear := recipe.ChaosGear
	if strings.TrimSpace(gear) == "" {
		gear = "None"
	}
	b.WriteString("Chaos Gear: " + gear)
	return b.String()
}

// encodeComponent percent-encodes s for use inside a query value, with
// spaces as %20 rather than '+'.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
