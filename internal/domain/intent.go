package domain

// IntentType classifies what the user wants to do.
type IntentType int

const (
	IntentUnknown IntentType = iota
	IntentPick
	IntentDrop
	IntentGenerate
	IntentRandom
	IntentRetry
	IntentClear
	IntentSave
	IntentFavorites
	IntentView
	IntentRemove
	IntentConfirm // answers "yes" to a pending prompt
	IntentCancel  // answers "no" to a pending prompt
	IntentRate
	IntentCopy
	IntentShare
	IntentExport
	IntentTheme
	IntentLanguage
	IntentCatalog
	IntentHelp
	IntentQuit
)

// String returns a human-readable intent type.
func (i IntentType) String() string {
	for name, t := range intentNames {
		if t == i {
			return name
		}
	}
	return "unknown"
}

// Intent represents a parsed user action.
type Intent struct {
	Type IntentType
	Args []string // positional arguments, e.g. category and name for pick
}

// Arg returns the i-th argument or "".
func (in *Intent) Arg(i int) string {
	if in == nil || i < 0 || i >= len(in.Args) {
		return ""
	}
	return in.Args[i]
}

// intentNames maps snake_case names to IntentType values.
var intentNames = map[string]IntentType{
	"pick":      IntentPick,
	"drop":      IntentDrop,
	"generate":  IntentGenerate,
	"random":    IntentRandom,
	"retry":     IntentRetry,
	"clear":     IntentClear,
	"save":      IntentSave,
	"favorites": IntentFavorites,
	"view":      IntentView,
	"remove":    IntentRemove,
	"confirm":   IntentConfirm,
	"cancel":    IntentCancel,
	"rate":      IntentRate,
	"copy":      IntentCopy,
	"share":     IntentShare,
	"export":    IntentExport,
	"theme":     IntentTheme,
	"language":  IntentLanguage,
	"catalog":   IntentCatalog,
	"help":      IntentHelp,
	"quit":      IntentQuit,
	"unknown":   IntentUnknown,
}

// IntentFromString converts a snake_case intent name to an IntentType.
// Returns IntentUnknown for unrecognized names.
func IntentFromString(name string) IntentType {
	if t, ok := intentNames[name]; ok {
		return t
	}
	return IntentUnknown
}
