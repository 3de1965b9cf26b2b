package state

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/mmcdole/cinelist/internal/domain"
	"github.com/mmcdole/cinelist/internal/search"
)

// entriesPerPage is the divisor used to derive TotalPages from the catalog's
// entry count. It is not the request page size (catalog.PageLimit).
const entriesPerPage = 20

// CatalogSnapshot is a copy of the catalog slice for readers.
type CatalogSnapshot struct {
	Genres []domain.Genre
	Movies []domain.Movie
	Detail *domain.Movie
	Page   domain.PageState

	GenresLoading bool
	MoviesLoading bool
	DetailLoading bool

	GenresErr string
	MoviesErr string
	DetailErr string

	// DetailErrRef is the ref whose fetch produced DetailErr.
	DetailErrRef string
}

// Catalog orchestrates genre selection, pagination, the fetched movie list
// and the single detail slot.
type Catalog struct {
	client domain.CatalogClient
	logger *slog.Logger

	mu     sync.Mutex
	genres []domain.Genre
	movies []domain.Movie
	detail *domain.Movie
	page   domain.PageState

	genresLoading, moviesLoading, detailLoading bool
	genresErr, moviesErr, detailErr             string
	detailErrRef                                string

	// Latest request tag per concern
	genresSeq, moviesSeq, detailSeq uint64
}

// NewCatalog creates the catalog state at page 1 of all genres.
func NewCatalog(client domain.CatalogClient, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{
		client: client,
		logger: logger,
		page:   domain.PageState{CurrentPage: 1, TotalPages: 1},
	}
}

// SetGenre selects a genre ("" = all) and resets to page 1.
func (c *Catalog) SetGenre(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page.CurrentGenre = name
	c.page.CurrentPage = 1
}

// SetPage moves to page n, clamped to [1, TotalPages].
func (c *Catalog) SetPage(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page.CurrentPage = clampPage(n, c.page.TotalPages)
}

// SetSearchQuery sets the local title filter and resets to page 1.
func (c *Catalog) SetSearchQuery(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page.SearchQuery = q
	c.page.CurrentPage = 1
}

// Page returns the current pagination state.
func (c *Catalog) Page() domain.PageState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// LoadGenres fetches the genre list. On failure the previous list is kept.
func (c *Catalog) LoadGenres(ctx context.Context) error {
	c.mu.Lock()
	c.genresSeq++
	seq := c.genresSeq
	c.genresLoading = true
	c.genresErr = ""
	c.mu.Unlock()

	names, err := c.client.ListGenres(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.genresSeq {
		c.logger.Debug("discarding superseded genres response", "seq", seq)
		return ErrSuperseded
	}
	c.genresLoading = false
	if err != nil {
		c.genresErr = errorMessage(err, "Failed to fetch genres")
		c.logger.Error("failed to fetch genres", "error", err)
		return err
	}

	genres := make([]domain.Genre, len(names))
	for i, name := range names {
		genres[i] = domain.Genre{ID: i + 1, Name: name}
	}
	c.genres = genres
	c.logger.Debug("fetched genres", "count", len(genres))
	return nil
}

// LoadMovies fetches one page of movies for genre. On success the list is
// replaced and TotalPages recomputed; on failure the previous list is kept.
func (c *Catalog) LoadMovies(ctx context.Context, genre string, page int) error {
	c.mu.Lock()
	c.moviesSeq++
	seq := c.moviesSeq
	c.moviesLoading = true
	c.moviesErr = ""
	c.mu.Unlock()

	res, err := c.client.ListByGenre(ctx, genre, page)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.moviesSeq {
		c.logger.Debug("discarding superseded movies response", "seq", seq, "genre", genre, "page", page)
		return ErrSuperseded
	}
	c.moviesLoading = false
	if err != nil {
		c.moviesErr = errorMessage(err, "Failed to fetch movies")
		c.logger.Error("failed to fetch movies", "error", err, "genre", genre, "page", page)
		return err
	}

	c.movies = res.Results
	c.page.TotalPages = totalPages(res.Entries)
	c.logger.Debug("fetched movies", "count", len(res.Results), "entries", res.Entries, "genre", genre, "page", page)
	return nil
}

// LoadCurrent fetches the movies for the current genre and page.
func (c *Catalog) LoadCurrent(ctx context.Context) error {
	p := c.Page()
	return c.LoadMovies(ctx, p.CurrentGenre, p.CurrentPage)
}

// LoadDetail fetches a single movie into the detail slot.
func (c *Catalog) LoadDetail(ctx context.Context, ref string) error {
	c.mu.Lock()
	c.detailSeq++
	seq := c.detailSeq
	c.detailLoading = true
	c.detailErr = ""
	c.detailErrRef = ""
	c.mu.Unlock()

	m, err := c.client.GetByID(ctx, ref)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.detailSeq {
		c.logger.Debug("discarding superseded detail response", "seq", seq, "ref", ref)
		return ErrSuperseded
	}
	c.detailLoading = false
	if err != nil {
		c.detailErr = errorMessage(err, "Failed to fetch movie details")
		c.detailErrRef = ref
		c.logger.Error("failed to fetch movie details", "error", err, "ref", ref)
		return err
	}

	c.detail = &m
	return nil
}

// ClearDetail empties the detail slot when the detail view is torn down.
func (c *Catalog) ClearDetail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detail = nil
	c.detailErr = ""
	c.detailErrRef = ""
}

// ClearError dismisses every catalog error message.
func (c *Catalog) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.moviesErr = ""
	c.detailErr = ""
	c.detailErrRef = ""
	c.genresErr = ""
}

// Snapshot returns a copy of the whole catalog slice.
func (c *Catalog) Snapshot() CatalogSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := CatalogSnapshot{
		Genres:        slices.Clone(c.genres),
		Movies:        slices.Clone(c.movies),
		Page:          c.page,
		GenresLoading: c.genresLoading,
		MoviesLoading: c.moviesLoading,
		DetailLoading: c.detailLoading,
		GenresErr:     c.genresErr,
		MoviesErr:     c.moviesErr,
		DetailErr:     c.detailErr,
		DetailErrRef:  c.detailErrRef,
	}
	if c.detail != nil {
		d := *c.detail
		d.GenreNames = slices.Clone(d.GenreNames)
		s.Detail = &d
	}
	return s
}

// FilteredMovies returns the loaded page filtered by the search query.
func (c *Catalog) FilteredMovies() []search.Result {
	c.mu.Lock()
	query := c.page.SearchQuery
	movies := slices.Clone(c.movies)
	c.mu.Unlock()

	return search.FilterMovies(query, movies)
}

// ResolveGenre maps user input to a known genre name. Unknown input is
// returned unchanged so the catalog can decide.
func (c *Catalog) ResolveGenre(input string) string {
	c.mu.Lock()
	genres := slices.Clone(c.genres)
	c.mu.Unlock()

	if name, ok := search.ResolveGenre(input, genres); ok {
		return name
	}
	return strings.TrimSpace(input)
}

func totalPages(entries int) int {
	pages := (entries + entriesPerPage - 1) / entriesPerPage
	if pages < 1 {
		return 1
	}
	return pages
}

func clampPage(n, total int) int {
	if total < 1 {
		total = 1
	}
	switch {
	case n < 1:
		return 1
	case n > total:
		return total
	default:
		return n
	}
}
