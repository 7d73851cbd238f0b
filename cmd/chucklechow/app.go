package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/hammamikhairi/chucklechow/internal/catalog"
	"github.com/hammamikhairi/chucklechow/internal/conversation"
	"github.com/hammamikhairi/chucklechow/internal/display"
	"github.com/hammamikhairi/chucklechow/internal/domain"
	"github.com/hammamikhairi/chucklechow/internal/favorites"
	"github.com/hammamikhairi/chucklechow/internal/logger"
	"github.com/hammamikhairi/chucklechow/internal/preferences"
	"github.com/hammamikhairi/chucklechow/internal/share"
	"github.com/hammamikhairi/chucklechow/internal/viewmodel"
)

const defaultExportPath = "chucklechow-favorites.xlsx"

// output is the part of display.UI the app writes to.
type output interface {
	Println(a ...interface{})
	PrintChat(text string)
	PrintHint(text string)
	PrintUrgent(text string)
	PrintRecipe(r domain.Recipe, rating int)
	PrintFavorites(favs []domain.Favorite)
	PrintCatalog(cat domain.Catalog)
	SetTheme(t domain.Theme)
}

var _ output = (*display.UI)(nil)

type cliApp struct {
	model    *viewmodel.Model
	favs     *favorites.Store
	themes   *preferences.Themes
	catalog  *catalog.Catalog
	sharer   *share.Sharer
	parser   domain.IntentParser
	notifier domain.Notifier
	out      output
	log      *logger.Logger

	pendingRemove atomic.Int64      // favorite awaiting yes/no, 0 when none
	lastList      []domain.Favorite // numbering used by view/remove
	requests      sync.WaitGroup
}

// status feeds the display's status bar.
func (a *cliApp) status() display.Status {
	st := a.model.Snapshot()
	return display.Status{
		Selected:  st.Selected,
		State:     st.Status.String(),
		Theme:     a.themes.Current(),
		Language:  st.Language,
		Favorites: a.favs.Len(),
		Confirm:   a.pendingRemove.Load() != 0,
	}
}

func (a *cliApp) run(ctx context.Context, input <-chan string) {
	defer a.requests.Wait()

	a.out.PrintChat(conversation.LineWelcome())
	a.out.Println("")

	for {
		var line string
		var ok bool

		select {
		case <-ctx.Done():
			return
		case line, ok = <-input:
			if !ok {
				return
			}
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		intent, err := a.parser.Parse(ctx, line)
		if err != nil {
			a.log.Error("parsing input: %v", err)
			continue
		}
		a.log.Debug("intent: %s (args=%q)", intent.Type, intent.Args)

		if !a.handleIntent(ctx, intent) {
			return
		}
	}
}

// handleIntent runs one command. It returns false when the app should exit.
func (a *cliApp) handleIntent(ctx context.Context, intent *domain.Intent) bool {
	// A pending removal only survives until the next command.
	if intent.Type != domain.IntentConfirm && intent.Type != domain.IntentCancel {
		if id := a.pendingRemove.Swap(0); id != 0 {
			a.log.Debug("dropped pending removal of %d", id)
		}
	}

	switch intent.Type {
	case domain.IntentPick:
		a.pick(intent.Args)
	case domain.IntentDrop:
		a.drop(intent.Arg(0))
	case domain.IntentGenerate:
		a.generate(ctx, false)
	case domain.IntentRandom:
		a.generate(ctx, true)
	case domain.IntentRetry:
		a.retry(ctx)
	case domain.IntentClear:
		a.model.Clear()
		a.favs.ClearSelection()
		a.out.PrintChat(conversation.LineCleared())
	case domain.IntentSave:
		a.save(ctx)
	case domain.IntentFavorites:
		a.listFavorites(intent.Arg(0))
	case domain.IntentView:
		a.view(intent.Arg(0))
	case domain.IntentRemove:
		a.askRemove(intent.Arg(0))
	case domain.IntentConfirm:
		a.confirmRemove(ctx)
	case domain.IntentCancel:
		if a.pendingRemove.Swap(0) == 0 {
			a.out.PrintHint(conversation.LineNothingToConfirm())
		} else {
			a.out.PrintChat(conversation.LineRemoveCancelled())
		}
	case domain.IntentRate:
		a.rate(ctx, intent.Arg(0))
	case domain.IntentCopy:
		a.share(ctx, share.TargetClipboard)
	case domain.IntentShare:
		target, err := share.ParseTarget(intent.Arg(0))
		if err != nil {
			a.out.PrintUrgent(err.Error())
			return true
		}
		a.share(ctx, target)
	case domain.IntentExport:
		a.export(intent.Arg(0))
	case domain.IntentTheme:
		a.toggleTheme(ctx)
	case domain.IntentLanguage:
		a.toggleLanguage(ctx)
	case domain.IntentCatalog:
		cat, _ := a.catalog.Ingredients(ctx)
		a.out.PrintCatalog(cat)
	case domain.IntentHelp:
		for _, l := range conversation.LineHelp() {
			a.out.PrintHint(l)
		}
	case domain.IntentQuit:
		a.out.PrintChat(conversation.LineBye())
		return false
	default:
		a.out.PrintHint(conversation.LineUnknown(intent.Arg(0)))
	}
	return true
}

// ── Picking ──────────────────────────────────────────────────────

// pick accepts "<category> <name>" or just "<name>", in which case the
// category is looked up in the catalog.
func (a *cliApp) pick(args []string) {
	if len(args) == 0 {
		a.out.PrintHint(conversation.LineHelp()[0])
		return
	}

	var (
		cat  domain.Category
		name string
		ok   bool
	)
	if len(args) == 2 {
		cat, ok = domain.CategoryFromString(args[0])
		name = args[1]
	}
	if !ok {
		name = strings.Join(args, " ")
		cat, ok = a.catalog.CategoryOf(name)
		if !ok {
			a.out.PrintUrgent(conversation.LineUnknownIngredient(name))
			return
		}
	}

	if err := a.model.Pick(cat, name); err != nil {
		a.log.Debug("pick %s %q: %v", cat, name, err)
		a.out.PrintUrgent(conversation.LineUnknownIngredient(name))
		return
	}
	a.out.PrintChat(conversation.LinePicked(cat, strings.ToLower(name)))
}

func (a *cliApp) drop(arg string) {
	cat, ok := domain.CategoryFromString(arg)
	if !ok {
		a.out.PrintUrgent(conversation.LineUnknownCategory(arg))
		return
	}
	a.model.Unpick(cat)
	a.out.PrintChat(conversation.LineDropped(cat))
}

// ── Requests ─────────────────────────────────────────────────────

func (a *cliApp) generate(ctx context.Context, randomize bool) {
	if !randomize && len(a.model.Selected()) == 0 {
		// Rejected before any network call.
		a.showState(a.model.Request(ctx, false))
		return
	}
	a.async(ctx, func(ctx context.Context) viewmodel.State {
		return a.model.Request(ctx, randomize)
	})
}

func (a *cliApp) retry(ctx context.Context) {
	if !a.model.CanReplay() {
		a.generate(ctx, false)
		return
	}
	a.async(ctx, a.model.Retry)
}

func (a *cliApp) toggleLanguage(ctx context.Context) {
	next := viewmodel.LanguageSpanish
	if a.model.Language() == viewmodel.LanguageSpanish {
		next = viewmodel.LanguageEnglish
	}
	a.out.PrintChat(conversation.LineLanguage(next))

	if !a.model.CanReplay() {
		a.model.ToggleLanguage(ctx)
		return
	}
	a.async(ctx, a.model.ToggleLanguage)
}

// async runs a generate call off the input loop so the prompt stays live.
// The newest request wins; older ones finish silently.
func (a *cliApp) async(ctx context.Context, fn func(context.Context) viewmodel.State) {
	a.favs.ClearSelection()
	a.out.PrintChat(conversation.LineCooking())

	a.requests.Add(1)
	go func() {
		defer a.requests.Done()
		a.showState(fn(ctx))
	}()
}

func (a *cliApp) showState(st viewmodel.State) {
	if st.Superseded {
		return
	}
	switch st.Status {
	case viewmodel.StatusLoaded:
		a.out.PrintRecipe(*st.Recipe, st.Rating)
	case viewmodel.StatusFailed:
		if errors.Is(st.Err, context.Canceled) {
			return
		}
		a.out.PrintUrgent(conversation.LineFailed(st.Err))
		if !errors.Is(st.Err, domain.ErrNoSelection) {
			a.out.PrintHint(conversation.LineRetryHint())
		}
	}
}

// current returns the recipe commands act on: the favorite being viewed,
// else the loaded recipe.
func (a *cliApp) current() (domain.Recipe, bool) {
	if f, ok := a.favs.Selected(); ok {
		return f.Recipe, true
	}
	st := a.model.Snapshot()
	if st.Status == viewmodel.StatusLoaded && st.Recipe != nil {
		return *st.Recipe, true
	}
	return domain.Recipe{}, false
}

// ── Favorites ────────────────────────────────────────────────────

func (a *cliApp) save(ctx context.Context) {
	lang := a.model.Language()
	if _, viewing := a.favs.Selected(); viewing {
		a.notifier.Notify(ctx, conversation.LineAlreadySaved(lang))
		return
	}
	recipe, ok := a.current()
	if !ok {
		a.out.PrintHint(conversation.LineNoRecipe())
		return
	}

	_, err := a.favs.Save(ctx, recipe, a.model.Rating())
	switch {
	case errors.Is(err, domain.ErrDuplicateTitle):
		a.notifier.Notify(ctx, conversation.LineAlreadySaved(lang))
	case err != nil:
		a.log.Error("saving favorite: %v", err)
		a.notifier.NotifyUrgent(ctx, conversation.LineFailed(err))
	default:
		a.notifier.Notify(ctx, conversation.LineSaved(lang))
	}
}

func (a *cliApp) listFavorites(filter string) {
	a.lastList = a.favs.List(filter)
	a.out.PrintFavorites(a.lastList)
}

// favoriteAt resolves a 1-based number from the last list shown.
func (a *cliApp) favoriteAt(arg string) (domain.Favorite, bool) {
	list := a.lastList
	if list == nil {
		list = a.favs.List("")
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(list) {
		a.out.PrintUrgent(conversation.LineBadFavoriteNumber(arg, len(list)))
		return domain.Favorite{}, false
	}
	return list[n-1], true
}

func (a *cliApp) view(arg string) {
	f, ok := a.favoriteAt(arg)
	if !ok {
		return
	}
	f, err := a.favs.Select(f.ID)
	if err != nil {
		// Removed since the list was shown.
		a.lastList = nil
		a.out.PrintUrgent(conversation.LineBadFavoriteNumber(arg, a.favs.Len()))
		return
	}
	a.out.PrintRecipe(f.Recipe, f.Rating)
}

// askRemove asks for confirmation. Without a number it targets the
// favorite being viewed.
func (a *cliApp) askRemove(arg string) {
	var (
		f  domain.Favorite
		ok bool
	)
	if arg == "" {
		f, ok = a.favs.Selected()
		if !ok {
			a.out.PrintUrgent(conversation.LineBadFavoriteNumber(arg, a.favs.Len()))
			return
		}
	} else if f, ok = a.favoriteAt(arg); !ok {
		return
	}
	a.pendingRemove.Store(f.ID)
	a.out.PrintChat(conversation.LineConfirmRemove(a.model.Language(), f.Title))
}

func (a *cliApp) confirmRemove(ctx context.Context) {
	id := a.pendingRemove.Swap(0)
	if id == 0 {
		a.out.PrintHint(conversation.LineNothingToConfirm())
		return
	}
	if err := a.favs.Remove(ctx, id); err != nil {
		a.log.Error("removing favorite %d: %v", id, err)
		a.notifier.NotifyUrgent(ctx, conversation.LineFailed(err))
		return
	}
	a.lastList = nil
	a.notifier.Notify(ctx, conversation.LineRemoved(a.model.Language()))
}

// rate sets the stars of the viewed favorite, or the rating the next
// save of the loaded recipe will use.
func (a *cliApp) rate(ctx context.Context, arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 || n > domain.MaxRating {
		a.out.PrintUrgent(conversation.LineBadRating(arg))
		return
	}
	if f, ok := a.favs.Selected(); ok {
		err = a.favs.Rate(ctx, f.ID, n)
	} else {
		err = a.model.SetRating(n)
	}
	if err != nil {
		a.log.Error("rating: %v", err)
		a.out.PrintUrgent(conversation.LineFailed(err))
		return
	}
	a.out.PrintChat(conversation.LineRated(n))
}

// ── Sharing ──────────────────────────────────────────────────────

func (a *cliApp) share(ctx context.Context, target share.Target) {
	recipe, ok := a.current()
	if !ok {
		a.out.PrintHint(conversation.LineNoRecipe())
		return
	}

	res, err := a.sharer.Share(ctx, recipe, target)
	var fallback *domain.ShareFallbackError
	switch {
	case errors.As(err, &fallback):
		a.out.PrintHint(conversation.LineShareFallback(fallback.Text))
	case err != nil:
		a.out.PrintUrgent(conversation.LineFailed(err))
	case res.Copied:
		a.out.PrintChat(conversation.LineCopied())
	default:
		a.out.PrintChat(conversation.LineShareLink(string(res.Target), res.Text))
	}
}

func (a *cliApp) export(path string) {
	if path == "" {
		path = defaultExportPath
	}
	list := a.favs.List("")
	if err := exportFile(path, list); err != nil {
		a.log.Error("export: %v", err)
		a.out.PrintUrgent(conversation.LineFailed(err))
		return
	}
	a.out.PrintChat(conversation.LineExported(path, len(list)))
}

func exportFile(path string, list []domain.Favorite) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := share.ExportXLSX(list, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ── Settings ─────────────────────────────────────────────────────

func (a *cliApp) toggleTheme(ctx context.Context) {
	theme, err := a.themes.Toggle(ctx)
	if err != nil {
		a.log.Error("toggling theme: %v", err)
		a.out.PrintUrgent(conversation.LineFailed(err))
		return
	}
	a.out.SetTheme(theme)
	a.out.PrintChat(conversation.LineTheme(theme))
}
