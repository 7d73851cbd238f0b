package viewmodel

import "github.com/hammamikhairi/chucklechow/internal/domain"

// Status is the display state of the recipe panel.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is a snapshot of what the UI should show.
type State struct {
	Status Status

	// Recipe is set when Status is StatusLoaded.
	Recipe *domain.Recipe

	// Err is set when Status is StatusFailed.
	Err error

	// Token identifies the request that produced this state. Empty when
	// no request is involved.
	Token string

	// Superseded is set on the State returned to a request whose
	// result was dropped because a newer request replaced it.
	Superseded bool

	// Selected lists the current picks in category order.
	Selected []string

	Language string
	Rating   int
}

// request is the parameter set Retry replays.
type request struct {
	ingredients []string
	randomize   bool
	prefs       domain.Preferences
}
