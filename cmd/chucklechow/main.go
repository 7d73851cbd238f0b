// Chuckle & Chow: pick a few ingredients, get a ridiculous recipe.
//
// Usage:
//
//	chucklechow [--config chow.yaml] [--verbose] [--quiet]
//	chucklechow generate chicken carrot
//	chucklechow favorites list
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hammamikhairi/chucklechow/internal/catalog"
	"github.com/hammamikhairi/chucklechow/internal/config"
	"github.com/hammamikhairi/chucklechow/internal/conversation"
	"github.com/hammamikhairi/chucklechow/internal/display"
	"github.com/hammamikhairi/chucklechow/internal/domain"
	"github.com/hammamikhairi/chucklechow/internal/favorites"
	"github.com/hammamikhairi/chucklechow/internal/kv"
	"github.com/hammamikhairi/chucklechow/internal/logger"
	"github.com/hammamikhairi/chucklechow/internal/metrics"
	"github.com/hammamikhairi/chucklechow/internal/preferences"
	"github.com/hammamikhairi/chucklechow/internal/recipeapi"
	"github.com/hammamikhairi/chucklechow/internal/share"
	"github.com/hammamikhairi/chucklechow/internal/viewmodel"
)

var (
	// Global flags
	configPath  string
	verbose     bool
	quiet       bool
	logFile     string
	apiURL      string
	storeKind   string
	metricsAddr string
)

var rootCmd = &cobra.Command{
	Use:   "chucklechow",
	Short: "Chuckle & Chow - recipes nobody asked for",
	Long: `Chuckle & Chow picks up to one ingredient per category, sends them to
the recipe endpoint and shows whatever comes back.

Run without arguments to start the interactive prompt.`,
	SilenceUsage: true,
	RunE:         runInteractive,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "chow.yaml", "YAML config file (missing file means defaults)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "disable all logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "file to write logs to (\"stderr\" logs to console)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "recipe endpoint base URL")
	rootCmd.PersistentFlags().StringVar(&storeKind, "store", "", "favorites backend: memory, file or sqlite")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(themeCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// ── Wiring ───────────────────────────────────────────────────────

// deps holds everything built from the config.
type deps struct {
	cfg     *config.Config
	log     *logger.Logger
	favs    *favorites.Store
	themes  *preferences.Themes
	catalog *catalog.Catalog
	client  *recipeapi.Client
	closers []func() error
}

func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			d.log.Warn("close: %v", err)
		}
	}
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	if storeKind != "" {
		cfg.Store.Backend = storeKind
	}
	if metricsAddr != "" {
		cfg.Metrics.Addr = metricsAddr
	}
	if logFile != "" {
		cfg.Logging.File = logFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openLog directs logs to a file by default so the prompt stays clean.
func openLog(cfg *config.Config) (*logger.Logger, func() error) {
	level := logger.ParseLevel(cfg.Logging.Level)
	if verbose {
		level = logger.LevelVerbose
	}
	if quiet {
		level = logger.LevelOff
	}

	var out io.Writer = os.Stderr
	closeFn := func() error { return nil }
	if path := cfg.Logging.File; path != "" && path != "stderr" {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", path, err)
		} else {
			out = f
			closeFn = f.Close
		}
	}

	// Keep third-party use of the standard logger off the terminal.
	stdlog.SetOutput(out)
	stdlog.SetFlags(stdlog.Ltime)

	return logger.New(level, out), closeFn
}

func openStore(cfg *config.Config, log *logger.Logger) (domain.KVStore, func() error, error) {
	switch cfg.Store.Backend {
	case config.StoreMemory:
		return kv.NewMemory(log), nil, nil
	case config.StoreSQLite:
		db, err := kv.OpenSQLite(cfg.Store.Path, log)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	default:
		return kv.NewFile(cfg.Store.Path, log), nil, nil
	}
}

func bootstrap(ctx context.Context) (*deps, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log, closeLog := openLog(cfg)
	d := &deps{cfg: cfg, log: log, closers: []func() error{closeLog, func() error { log.Sync(); return nil }}}

	store, closeStore, err := openStore(cfg, log)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("opening %s store: %w", cfg.Store.Backend, err)
	}
	if closeStore != nil {
		d.closers = append(d.closers, closeStore)
	}

	d.favs = favorites.New(store, log)
	if err := d.favs.Load(ctx); err != nil {
		// An unreadable slot starts empty; the next save overwrites it.
		log.Warn("loading favorites: %v", err)
	}
	d.themes = preferences.NewThemes(store, log)
	if _, err := d.themes.Load(ctx); err != nil {
		log.Warn("loading theme: %v", err)
	}

	d.client = recipeapi.NewClient(cfg.API.BaseURL, log,
		recipeapi.WithHTTPTimeout(cfg.API.Timeout),
		recipeapi.WithCache(cfg.API.CacheSize, cfg.API.CacheTTL),
	)

	var catOpts []catalog.Option
	if cfg.API.RemoteCatalog {
		catOpts = append(catOpts, catalog.WithRemote(d.client))
	}
	d.catalog = catalog.New(log, catOpts...)
	if err := d.catalog.Refresh(ctx); err != nil {
		log.Warn("using built-in catalog: %v", err)
	}

	log.Info("ready (api=%s, store=%s)", cfg.API.BaseURL, cfg.Store.Backend)
	return d, nil
}

func (d *deps) newModel() *viewmodel.Model {
	return viewmodel.New(d.catalog, d.client, d.log,
		viewmodel.WithLanguage(d.cfg.Language),
		viewmodel.WithPreferences(preferencesFrom(d.cfg.Preferences)),
	)
}

// preferencesFrom turns the configured hints into request preferences.
// Language is owned by the view model.
func preferencesFrom(p config.PreferencesConfig) domain.Preferences {
	return domain.Preferences{
		Diet:     p.Diet,
		Time:     p.Time,
		Style:    p.Style,
		Category: p.Category,
	}
}

func (d *deps) newSharer() *share.Sharer {
	return share.NewSharer(share.SystemClipboard{}, d.log, share.WithAppURL(d.cfg.Share.AppURL))
}

// ── Interactive ──────────────────────────────────────────────────

func runInteractive(cmd *cobra.Command, args []string) error {
	d, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer d.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	app := &cliApp{
		model:   d.newModel(),
		favs:    d.favs,
		themes:  d.themes,
		catalog: d.catalog,
		sharer:  d.newSharer(),
		parser:  conversation.NewKeywordParser(d.log),
		log:     d.log,
	}
	ui := display.NewUI(app.status, d.themes.Current())
	app.out = ui
	app.notifier = conversation.NewCLINotifier(d.log, ui.Printf)

	fmt.Println(display.RenderBanner(d.themes.Current()))
	fmt.Println()

	eg, egCtx := errgroup.WithContext(ctx)

	if addr := d.cfg.Metrics.Addr; addr != "" {
		srv := &http.Server{Addr: addr, Handler: metricsMux(), ReadHeaderTimeout: 5 * time.Second}
		eg.Go(func() error {
			d.log.Info("metrics listening on %s", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				// Metrics are optional; the prompt keeps running.
				d.log.Warn("metrics server: %v", err)
			}
			return nil
		})
		eg.Go(func() error {
			<-egCtx.Done()
			shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
			defer done()
			return srv.Shutdown(shutdownCtx)
		})
	}

	// App logic runs beside the Bubble Tea loop.
	go func() {
		ui.WaitReady()
		app.run(egCtx, ui.InputChan())
		ui.Quit()
	}()

	eg.Go(func() error {
		// Bubble Tea owns the terminal; blocks until quit.
		defer cancel()
		if err := ui.Run(); err != nil {
			return fmt.Errorf("display: %w", err)
		}
		return nil
	})

	return eg.Wait()
}

func metricsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	return mux
}
