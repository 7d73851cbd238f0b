// Package conversation turns typed commands into intents and prints
// notifications back to the user.
package conversation

import (
	"context"
	"regexp"
	"strings"

	"github.com/hammamikhairi/chucklechow/internal/domain"
	"github.com/hammamikhairi/chucklechow/internal/logger"
)

// Compile-time interface check.
var _ domain.IntentParser = (*KeywordParser)(nil)

// KeywordParser matches user input to intents using keywords and simple
// patterns. Capture groups become the intent's arguments.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex  *regexp.Regexp
	intent domain.IntentType
}

// NewKeywordParser creates a keyword-based intent parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		// pick <category> <name> or pick <name>; the name may contain spaces.
		{regexp.MustCompile(`(?i)^(?:pick|add|select)\s+(\S+)(?:\s+(.+))?$`), domain.IntentPick},
		{regexp.MustCompile(`(?i)^(?:drop|unpick|remove-pick)\s+(\S+)$`), domain.IntentDrop},
		{regexp.MustCompile(`(?i)^(generate|gen|g|cook|go)$`), domain.IntentGenerate},
		{regexp.MustCompile(`(?i)^(random|randomize|surprise me|surprise|r)$`), domain.IntentRandom},
		{regexp.MustCompile(`(?i)^(retry|try again|again)$`), domain.IntentRetry},
		{regexp.MustCompile(`(?i)^(clear|reset|start over)$`), domain.IntentClear},
		{regexp.MustCompile(`(?i)^(save|fav|keep)$`), domain.IntentSave},
		{regexp.MustCompile(`(?i)^(?:favs|favorites|favourites)(?:\s+(.+))?$`), domain.IntentFavorites},
		{regexp.MustCompile(`(?i)^(?:view|open|show)\s+(\d+)$`), domain.IntentView},
		{regexp.MustCompile(`(?i)^(?:remove|delete|rm)(?:\s+(\d+))?$`), domain.IntentRemove},
		{regexp.MustCompile(`(?i)^(yes|y|yep|sure|s[ií])$`), domain.IntentConfirm},
		{regexp.MustCompile(`(?i)^(no|n|nope|cancel)$`), domain.IntentCancel},
		{regexp.MustCompile(`(?i)^(?:rate|stars)\s+(\d+)$`), domain.IntentRate},
		{regexp.MustCompile(`(?i)^(copy|c)$`), domain.IntentCopy},
		{regexp.MustCompile(`(?i)^share(?:\s+(\S+))?$`), domain.IntentShare},
		{regexp.MustCompile(`(?i)^export(?:\s+(.+))?$`), domain.IntentExport},
		{regexp.MustCompile(`(?i)^(theme|dark|light)$`), domain.IntentTheme},
		{regexp.MustCompile(`(?i)^(lang|language|idioma|espa[nñ]ol|english)$`), domain.IntentLanguage},
		{regexp.MustCompile(`(?i)^(catalog|ingredients|list|menu)$`), domain.IntentCatalog},
		{regexp.MustCompile(`(?i)^(help|h|\?)$`), domain.IntentHelp},
		{regexp.MustCompile(`(?i)^(quit|exit|q|bye)$`), domain.IntentQuit},
	}
	return p
}

// Parse converts user input into an intent. Input that matches nothing
// yields IntentUnknown with the raw text as its only argument.
func (p *KeywordParser) Parse(ctx context.Context, input string) (*domain.Intent, error) {
	trimmed := strings.Join(strings.Fields(input), " ")
	if trimmed == "" {
		return &domain.Intent{Type: domain.IntentUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	for _, rule := range p.patterns {
		m := rule.regex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		p.log.Debug("matched intent: %s", rule.intent)
		return &domain.Intent{Type: rule.intent, Args: args(rule.intent, m[1:])}, nil
	}

	p.log.Debug("no match, returning unknown intent")
	return &domain.Intent{Type: domain.IntentUnknown, Args: []string{trimmed}}, nil
}

// args keeps the non-empty capture groups. Keyword-only intents carry
// the matched word, which callers ignore, so it is dropped.
func args(intent domain.IntentType, groups []string) []string {
	switch intent {
	case domain.IntentPick, domain.IntentDrop, domain.IntentFavorites, domain.IntentView,
		domain.IntentRemove, domain.IntentRate, domain.IntentShare, domain.IntentExport:
	default:
		return nil
	}
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}
