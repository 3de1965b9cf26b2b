package state

import (
	"encoding/json"
	"log/slog"
	"slices"
	"sync"

	"github.com/mmcdole/cinelist/internal/domain"
)

// Watchlist is a deduplicated, write-through persisted list of movies.
type Watchlist struct {
	kv     domain.KVStore
	logger *slog.Logger

	mu     sync.Mutex
	movies []domain.Movie
}

// NewWatchlist loads the persisted watchlist. A missing or unreadable
// payload yields an empty list.
func NewWatchlist(kv domain.KVStore, logger *slog.Logger) *Watchlist {
	if logger == nil {
		logger = slog.Default()
	}
	w := &Watchlist{kv: kv, logger: logger, movies: []domain.Movie{}}
	w.load()
	return w
}

func (w *Watchlist) load() {
	if w.kv == nil {
		return
	}
	raw, ok := w.kv.Get(domain.KeyWatchlist)
	if !ok {
		return
	}

	var movies []domain.Movie
	if err := json.Unmarshal([]byte(raw), &movies); err != nil {
		w.logger.Warn("discarding unreadable watchlist", "error", err)
		return
	}

	seen := make(map[int]bool, len(movies))
	for _, m := range movies {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		w.movies = append(w.movies, m)
	}
	w.logger.Debug("loaded watchlist", "count", len(w.movies))
}

// persist writes the full collection. Must be called with mu held.
func (w *Watchlist) persist() {
	if w.kv == nil {
		return
	}
	data, err := json.Marshal(w.movies)
	if err != nil {
		w.logger.Error("failed to encode watchlist", "error", err)
		return
	}
	if err := w.kv.Set(domain.KeyWatchlist, string(data)); err != nil {
		w.logger.Error("failed to save watchlist", "error", err)
	}
}

// Add appends m unless an entry with the same id exists. Reports whether m was added.
func (w *Watchlist) Add(m domain.Movie) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.indexOf(m.ID) >= 0 {
		return false
	}
	w.insert(m)
	return true
}

// Remove deletes the entry with id. Absent ids are a no-op and do not touch storage.
func (w *Watchlist) Remove(id int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := w.indexOf(id)
	if i < 0 {
		return false
	}
	w.removeAt(i)
	return true
}

// Toggle adds m if absent and removes it otherwise. Reports whether m is now listed.
func (w *Watchlist) Toggle(m domain.Movie) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if i := w.indexOf(m.ID); i >= 0 {
		w.removeAt(i)
		return false
	}
	w.insert(m)
	return true
}

// Clear empties the watchlist.
func (w *Watchlist) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.movies = []domain.Movie{}
	w.persist()
}

// Contains reports whether a movie with id is listed.
func (w *Watchlist) Contains(id int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.indexOf(id) >= 0
}

// Movies returns a copy of the list in insertion order.
func (w *Watchlist) Movies() []domain.Movie {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.movies)
}

// Len returns the number of entries.
func (w *Watchlist) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.movies)
}

// insert and removeAt mutate and persist. Must be called with mu held.
func (w *Watchlist) insert(m domain.Movie) {
	m.GenreNames = slices.Clone(m.GenreNames)
	w.movies = append(w.movies, m)
	w.persist()
}

func (w *Watchlist) removeAt(i int) {
	w.movies = slices.Delete(w.movies, i, i+1)
	w.persist()
}

func (w *Watchlist) indexOf(id int) int {
	return slices.IndexFunc(w.movies, func(m domain.Movie) bool { return m.ID == id })
}
