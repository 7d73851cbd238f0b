package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/chucklechow/internal/config"
	"github.com/hammamikhairi/chucklechow/internal/conversation"
	"github.com/hammamikhairi/chucklechow/internal/display"
	"github.com/hammamikhairi/chucklechow/internal/domain"
	"github.com/hammamikhairi/chucklechow/internal/share"
	"github.com/hammamikhairi/chucklechow/internal/viewmodel"
)

var (
	genRandom bool
	genLang   string
	genSave   bool
	genRating int
	genFormat string
	genPrefs  config.PreferencesConfig

	removeYes bool
)

// Output formats for the generate command.
const (
	formatMarkdown = "markdown"
	formatText     = "text"
	formatJSON     = "json"
)

var generateCmd = &cobra.Command{
	Use:   "generate [ingredient...]",
	Short: "Generate one recipe and print it",
	Long: `Sends the given ingredients (at most one per category) to the recipe
endpoint and prints the result. Names are matched against the catalog.

Example:
  chucklechow generate chicken carrot
  chucklechow generate --random --lang spanish`,
	RunE: runGenerate,
}

var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"favs"},
	Short:   "Manage saved recipes",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list [filter]",
	Short: "List favorites whose title contains filter",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFavoritesList,
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove <number>",
	Short: "Remove a favorite by its list number",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesRemove,
}

var favoritesExportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Write favorites to an .xlsx spreadsheet",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFavoritesExport,
}

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark]",
	Short:     "Show or set the stored theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(domain.ThemeLight), string(domain.ThemeDark)},
	RunE:      runTheme,
}

func init() {
	generateCmd.Flags().BoolVar(&genRandom, "random", false, "let the kitchen pick (ingredients optional)")
	generateCmd.Flags().StringVar(&genLang, "lang", "", "answer language: english or spanish")
	generateCmd.Flags().BoolVar(&genSave, "save", false, "save the recipe to favorites")
	generateCmd.Flags().IntVar(&genRating, "rating", 0, "star rating used with --save (0-5)")
	generateCmd.Flags().StringVar(&genFormat, "format", formatMarkdown, "output: markdown, text or json")
	generateCmd.Flags().StringVar(&genPrefs.Diet, "diet", "", "diet hint, overrides preferences.diet")
	generateCmd.Flags().StringVar(&genPrefs.Time, "time", "", "cooking time hint, overrides preferences.time")
	generateCmd.Flags().StringVar(&genPrefs.Style, "style", "", "cuisine style hint, overrides preferences.style")
	generateCmd.Flags().StringVar(&genPrefs.Category, "category", "", "meal category hint, overrides preferences.category")

	favoritesRemoveCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "skip the confirmation prompt")

	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesRemoveCmd)
	favoritesCmd.AddCommand(favoritesExportCmd)
}

// ── generate ─────────────────────────────────────────────────────

func runGenerate(cmd *cobra.Command, args []string) error {
	switch genFormat {
	case formatMarkdown, formatText, formatJSON:
	default:
		return fmt.Errorf("unknown format %q", genFormat)
	}
	if genRating < 0 || genRating > domain.MaxRating {
		return domain.ErrInvalidRating
	}
	if genLang != "" && genLang != viewmodel.LanguageEnglish && genLang != viewmodel.LanguageSpanish {
		return fmt.Errorf("unknown language %q", genLang)
	}

	ctx := cmd.Context()
	d, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer d.Close()

	lang := d.cfg.Language
	if genLang != "" {
		lang = genLang
	}
	prefs := mergePreferences(d.cfg.Preferences, genPrefs)
	withFlags := *d.cfg
	withFlags.Preferences = prefs
	if err := withFlags.Validate(); err != nil {
		return err
	}
	model := viewmodel.New(d.catalog, d.client, d.log,
		viewmodel.WithLanguage(lang),
		viewmodel.WithPreferences(preferencesFrom(prefs)),
	)
	for _, name := range args {
		cat, ok := d.catalog.CategoryOf(name)
		if !ok {
			return fmt.Errorf("%w: %q", domain.ErrUnknownIngredient, name)
		}
		if err := model.Pick(cat, name); err != nil {
			return err
		}
	}

	st := model.Request(ctx, genRandom)
	if st.Status != viewmodel.StatusLoaded {
		return errors.New(conversation.LineFailed(st.Err))
	}
	recipe := *st.Recipe

	if err := writeRecipe(cmd.OutOrStdout(), recipe, genRating, genFormat); err != nil {
		return err
	}

	if genSave {
		fav, err := d.favs.Save(ctx, recipe, genRating)
		switch {
		case errors.Is(err, domain.ErrDuplicateTitle):
			fmt.Fprintln(cmd.ErrOrStderr(), conversation.LineAlreadySaved(lang))
		case err != nil:
			return err
		default:
			fmt.Fprintf(cmd.ErrOrStderr(), "%s (id %d)\n", conversation.LineSaved(lang), fav.ID)
		}
	}
	return nil
}

func writeRecipe(w io.Writer, r domain.Recipe, rating int, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case formatText:
		_, err := fmt.Fprintln(w, share.ClipboardText(r))
		return err
	default:
		_, err := fmt.Fprint(w, display.RecipeMarkdown(r, rating))
		return err
	}
}

// ── favorites ────────────────────────────────────────────────────

func runFavoritesList(cmd *cobra.Command, args []string) error {
	d, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer d.Close()

	filter := ""
	if len(args) == 1 {
		filter = args[0]
	}
	fmt.Fprintln(cmd.OutOrStdout(), display.FavoritesList(d.favs.List(filter)))
	return nil
}

func runFavoritesRemove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	d, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer d.Close()

	list := d.favs.List("")
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(list) {
		return errors.New(conversation.LineBadFavoriteNumber(args[0], len(list)))
	}
	fav := list[n-1]

	if !removeYes {
		fmt.Fprint(cmd.OutOrStdout(), conversation.LineConfirmRemove(d.cfg.Language, fav.Title)+" ")
		if !confirmed(cmd.InOrStdin()) {
			fmt.Fprintln(cmd.OutOrStdout(), conversation.LineRemoveCancelled())
			return nil
		}
	}

	if err := d.favs.Remove(ctx, fav.ID); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), conversation.LineRemoved(d.cfg.Language))
	return nil
}

// confirmed reads one answer line. Anything but yes/sí counts as no.
func confirmed(r io.Reader) bool {
	line, _ := bufio.NewReader(r).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "s", "si", "sí":
		return true
	}
	return false
}

func runFavoritesExport(cmd *cobra.Command, args []string) error {
	d, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer d.Close()

	path := defaultExportPath
	if len(args) == 1 {
		path = args[0]
	}
	list := d.favs.List("")
	if err := exportFile(path, list); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), conversation.LineExported(path, len(list)))
	return nil
}

// ── theme ────────────────────────────────────────────────────────

func runTheme(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	d, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer d.Close()

	if len(args) == 1 {
		if err := d.themes.Set(ctx, domain.Theme(strings.ToLower(args[0]))); err != nil {
			return err
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), conversation.LineTheme(d.themes.Current()))
	return nil
}

// mergePreferences lays non-empty flag values over the configured ones.
func mergePreferences(base, flags config.PreferencesConfig) config.PreferencesConfig {
	for dst, v := range map[*string]string{
		&base.Diet:     flags.Diet,
		&base.Time:     flags.Time,
		&base.Style:    flags.Style,
		&base.Category: flags.Category,
	} {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	return base
}
