package share

import (
	"context"
	"errors"

	"github.com/atotto/clipboard"

	"github.com/hammamikhairi/chucklechow/internal/domain"
	"github.com/hammamikhairi/chucklechow/internal/logger"
	"github.com/hammamikhairi/chucklechow/internal/metrics"
)

// Compile-time interface check.
var _ domain.Clipboard = SystemClipboard{}

// clipboardWriteAll is swapped out in tests.
var clipboardWriteAll = clipboard.WriteAll

// SystemClipboard writes to the OS clipboard (xclip/xsel/wl-copy on
// Linux, pbcopy on macOS).
type SystemClipboard struct{}

// WriteText copies text. It returns ErrShareUnavailable when no clipboard
// utility is installed.
func (SystemClipboard) WriteText(ctx context.Context, text string) error {
	if clipboard.Unsupported {
		return domain.ErrShareUnavailable
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return clipboardWriteAll(text)
}

// Result is what a share produced.
type Result struct {
	Target Target
	// Text is the copied text or, for social targets, the URL to open.
	Text   string
	Copied bool
}

// SharerOption configures a Sharer.
type SharerOption func(*Sharer)

// WithAppURL sets the link appended to social messages.
func WithAppURL(u string) SharerOption {
	return func(s *Sharer) { s.format.AppURL = u }
}

// Sharer sends recipes to share targets.
type Sharer struct {
	format Formatter
	clip   domain.Clipboard
	log    *logger.Logger
}

// NewSharer creates a sharer. clip may be nil when no clipboard exists;
// clipboard and generic shares then fail with a ShareFallbackError.
func NewSharer(clip domain.Clipboard, log *logger.Logger, opts ...SharerOption) *Sharer {
	s := &Sharer{clip: clip, log: log}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Share formats recipe for target. Social targets return the intent URL.
// Clipboard and generic targets copy the text; when copying fails the
// error is a *domain.ShareFallbackError holding the text to show inline.
func (s *Sharer) Share(ctx context.Context, recipe domain.Recipe, target Target) (Result, error) {
	text, err := s.format.Format(recipe, target)
	if err != nil {
		metrics.Shares.WithLabelValues(string(target), "invalid").Inc()
		return Result{}, err
	}
	res := Result{Target: target, Text: text}

	switch target {
	case TargetFacebook, TargetX:
		metrics.Shares.WithLabelValues(string(target), "ok").Inc()
		s.log.Debug("share link for %q on %s", recipe.Title, target)
		return res, nil
	}

	if err := s.copy(ctx, text); err != nil {
		metrics.Shares.WithLabelValues(string(target), "fallback").Inc()
		s.log.Warn("share %s unavailable: %v", target, err)
		return res, &domain.ShareFallbackError{Text: text, Err: err}
	}
	res.Copied = true
	metrics.Shares.WithLabelValues(string(target), "ok").Inc()
	s.log.Info("copied %q to clipboard (%s)", recipe.Title, target)
	return res, nil
}

func (s *Sharer) copy(ctx context.Context, text string) error {
	if s.clip == nil {
		return domain.ErrShareUnavailable
	}
	if err := s.clip.WriteText(ctx, text); err != nil {
		if errors.Is(err, domain.ErrShareUnavailable) {
			return err
		}
		return errors.Join(domain.ErrShareUnavailable, err)
	}
	return nil
}
