// Package state holds the client-side application state: the movie catalog
// position, the reviews of the open movie, the watchlist and the theme.
//
// Each component owns its slice and guards it with a mutex. Network calls are
// made without holding the lock, so the view layer may run them from
// concurrent commands; results are applied in completion order, and a
// completion that has been superseded by a newer request of the same kind is
// discarded with ErrSuperseded.
package state

import (
	"errors"
	"log/slog"

	"github.com/mmcdole/cinelist/internal/domain"
)

// ErrSuperseded is returned by a load whose result was discarded because a
// newer load of the same kind was issued while it was in flight.
var ErrSuperseded = errors.New("superseded by a newer request")

// Deps are the collaborators of the application state.
type Deps struct {
	Catalog domain.CatalogClient
	Reviews domain.ReviewClient
	Store   domain.KVStore
	Logger  *slog.Logger
}

// App is the application-state container. It is constructed once at startup
// and passed explicitly to the view layer.
type App struct {
	Catalog   *Catalog
	Reviews   *Reviews
	Watchlist *Watchlist
	Theme     *Theme

	store domain.KVStore
}

// New constructs every state component. Watchlist and theme are loaded from
// the store here, once.
func New(d Deps) *App {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		Catalog:   NewCatalog(d.Catalog, logger.With("component", "catalog")),
		Reviews:   NewReviews(d.Reviews, logger.With("component", "reviews")),
		Watchlist: NewWatchlist(d.Store, logger.With("component", "watchlist")),
		Theme:     NewTheme(d.Store, logger.With("component", "theme")),
		store:     d.Store,
	}
}

// Close releases the local store.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

// errorMessage mirrors what the view shows for a failed request.
func errorMessage(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
