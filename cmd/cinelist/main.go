package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/cinelist/internal/adapter"
	"github.com/mmcdole/cinelist/internal/catalog"
	"github.com/mmcdole/cinelist/internal/domain"
	"github.com/mmcdole/cinelist/internal/reviews"
	"github.com/mmcdole/cinelist/internal/state"
	"github.com/mmcdole/cinelist/internal/store"
	"github.com/mmcdole/cinelist/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

const startupTimeout = 15 * time.Second

type options struct {
	genre string
	reset bool
}

func main() {
	var showVersion bool
	var opts options
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&opts.reset, "reset", false, "clear the local watchlist and theme, then exit")
	flag.StringVar(&opts.genre, "genre", "", "start in this genre (typos are tolerated)")
	flag.Parse()

	if showVersion {
		fmt.Printf("cinelist %s\n", Version)
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	// Load configuration
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting cinelist", "version", Version)

	// Open local storage
	kv, err := store.NewKVStore(adapter.ExpandPath(cfg.Storage.Path))
	if err != nil {
		return fmt.Errorf("failed to open local storage: %w", err)
	}

	if opts.reset {
		defer kv.Close()
		return resetLocalData(kv, logger)
	}

	// Check if configured
	if !cfg.IsConfigured() {
		if err := runSetupFlow(cfg, logger); err != nil {
			kv.Close()
			return err
		}
	}

	catalogClient := catalog.NewClient(catalog.Options{
		BaseURL:           cfg.Catalog.URL,
		Host:              cfg.Catalog.Host,
		APIKey:            cfg.Catalog.APIKey,
		Timeout:           cfg.Catalog.Timeout,
		RequestsPerSecond: cfg.Catalog.RequestsPerSecond,
	}, logger.With("component", "catalog-client"))

	reviewClient, closeReviews := openReviews(cfg, logger)
	defer closeReviews()

	// Create application state
	app := state.New(state.Deps{
		Catalog: catalogClient,
		Reviews: reviewClient,
		Store:   kv,
		Logger:  logger,
	})
	defer app.Close()

	if opts.genre != "" {
		selectStartGenre(app, opts.genre, logger)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("cinelist needs an interactive terminal")
	}

	// Create TUI model
	model := tui.NewModel(app)
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow asks for the catalog API key on first run and saves it
func runSetupFlow(cfg *adapter.Config, logger *slog.Logger) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("no catalog API key configured; set CINELIST_CATALOG_API_KEY")
	}

	prompter := adapter.NewPrompter(os.Stdin, os.Stdout, int(os.Stdin.Fd()))
	if err := adapter.RunSetup(cfg, prompter); err != nil {
		return err
	}

	if err := adapter.SaveConfig(cfg); err != nil {
		logger.Error("failed to save config", "error", err)
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("Configuration saved.")
	logger.Info("first-run setup complete", "reviews", cfg.ReviewsEnabled())
	return nil
}

// openReviews connects the review store. Reviews are optional: any failure
// leaves them unavailable instead of stopping the program.
func openReviews(cfg *adapter.Config, logger *slog.Logger) (domain.ReviewClient, func()) {
	noop := func() {}
	if !cfg.ReviewsEnabled() {
		logger.Info("review store not configured")
		return reviews.Unavailable{}, noop
	}

	logger = logger.With("component", "review-store")

	if cfg.Reviews.Migrate {
		if err := reviews.Migrate(cfg.Reviews.DSN, logger); err != nil {
			logger.Error("review migrations failed", "error", err)
			return reviews.Unavailable{}, noop
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	pool, err := reviews.NewPool(ctx, cfg.Reviews.DSN, logger)
	if err != nil {
		logger.Error("review store unreachable", "error", err)
		return reviews.Unavailable{}, noop
	}
	return reviews.NewStore(pool, logger), pool.Close
}

// selectStartGenre resolves a -genre flag against the catalog's genre list
func selectStartGenre(app *state.App, input string, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	if err := app.Catalog.LoadGenres(ctx); err != nil {
		logger.Warn("could not load genres for -genre", "error", err)
	}
	genre := app.Catalog.ResolveGenre(input)
	app.Catalog.SetGenre(genre)
	logger.Info("starting genre", "input", input, "genre", genre)
}

// resetLocalData removes the persisted watchlist and theme
func resetLocalData(kv *store.KVStore, logger *slog.Logger) error {
	for _, key := range []string{domain.KeyWatchlist, domain.KeyTheme} {
		if err := kv.Delete(key); err != nil {
			return fmt.Errorf("failed to clear %s: %w", key, err)
		}
	}
	logger.Info("local data cleared")
	fmt.Println("Local watchlist and theme cleared.")
	return nil
}
