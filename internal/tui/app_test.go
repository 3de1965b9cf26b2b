package tui

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/cinelist/internal/domain"
	"github.com/mmcdole/cinelist/internal/state"
	"github.com/mmcdole/cinelist/internal/store"
	"github.com/mmcdole/cinelist/internal/tui/styles"
)

type fakeCatalog struct {
	genres     []string
	movies     []domain.Movie
	entries    int
	failDetail bool
}

func (f *fakeCatalog) ListByGenre(_ context.Context, _ string, _ int) (domain.MoviePage, error) {
	return domain.MoviePage{Results: f.movies, Entries: f.entries}, nil
}

func (f *fakeCatalog) ListGenres(context.Context) ([]string, error) {
	return f.genres, nil
}

func (f *fakeCatalog) GetByID(_ context.Context, ref string) (domain.Movie, error) {
	if f.failDetail {
		return domain.Movie{}, domain.ErrServerOffline
	}
	for _, m := range f.movies {
		if m.LookupKey() == ref {
			return m, nil
		}
	}
	return domain.Movie{}, domain.ErrMovieNotFound
}

type fakeReviews struct {
	mu      sync.Mutex
	inserts int
	stored  map[string][]domain.Review
}

func (f *fakeReviews) QueryByMovie(_ context.Context, movieID string) ([]domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Review{}, f.stored[movieID]...), nil
}

func (f *fakeReviews) Insert(_ context.Context, movieID string, in domain.ReviewInput) (domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserts++
	return domain.Review{
		ID:        fmt.Sprintf("r%d", f.inserts),
		MovieID:   movieID,
		Author:    in.Author,
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedAt: time.Now(),
	}, nil
}

func newTestModel(t *testing.T) (Model, *fakeReviews) {
	t.Helper()
	m, _, reviews := newTestModelWithCatalog(t)
	return m, reviews
}

func newTestModelWithCatalog(t *testing.T) (Model, *fakeCatalog, *fakeReviews) {
	t.Helper()

	kv, err := store.NewKVStore("")
	require.NoError(t, err)

	catalog := &fakeCatalog{
		genres: []string{"Action", "Drama"},
		movies: []domain.Movie{
			{ID: 1, Ref: "tt1", Title: "Heat", ReleaseYear: 2001, Overview: "A heist crew and the detective on their trail."},
			{ID: 2, Ref: "tt2", Title: "Ronin", ReleaseYear: 2002},
		},
		entries: 45,
	}
	reviews := &fakeReviews{}
	app := state.New(state.Deps{Catalog: catalog, Reviews: reviews, Store: kv})

	m := NewModel(app)
	t.Cleanup(func() {
		m.Close()
		styles.Apply(domain.DefaultTheme)
	})

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	require.NoError(t, app.Catalog.LoadGenres(context.Background()))
	require.NoError(t, app.Catalog.LoadCurrent(context.Background()))
	return m, catalog, reviews
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_ThemeToggleAppliesStyles(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Equal(t, domain.ThemeDark, styles.Current())

	m = update(t, m, runes("t"))
	assert.Equal(t, domain.ThemeLight, m.App.Theme.Current())
	assert.Equal(t, domain.ThemeLight, styles.Current())

	m = update(t, m, runes("t"))
	assert.Equal(t, domain.ThemeDark, styles.Current())
}

func TestModel_SelectGenreResetsPage(t *testing.T) {
	m, _ := newTestModel(t)
	require.Equal(t, 3, m.App.Catalog.Page().TotalPages)

	m = update(t, m, runes("l"))
	assert.Equal(t, 2, m.App.Catalog.Page().CurrentPage)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, PaneGenres, m.Focus)
	m = update(t, m, runes("j"))

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	require.NotNil(t, cmd)

	p := m.App.Catalog.Page()
	assert.Equal(t, "Action", p.CurrentGenre)
	assert.Equal(t, 1, p.CurrentPage)
	assert.Equal(t, PaneMovies, m.Focus)

	msg := cmd()
	loaded, ok := msg.(MoviesLoadedMsg)
	require.True(t, ok)
	assert.NoError(t, loaded.Err)
	assert.Equal(t, "Action", loaded.Genre)
}

func TestModel_PageBoundsDoNotReload(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(runes("h"))
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.App.Catalog.Page().CurrentPage)
}

func TestModel_ToggleWatchlist(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, runes("j"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.True(t, m.App.Watchlist.Contains(2))
	assert.Contains(t, m.StatusMsg, "Ronin")

	m = update(t, m, runes("w"))
	assert.Equal(t, ScreenWatchlist, m.Screen)
	assert.Contains(t, m.View(), "Ronin")

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.False(t, m.App.Watchlist.Contains(2))
}

func TestModel_DetailAndReview(t *testing.T) {
	m, reviews := newTestModel(t)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.Equal(t, ScreenDetail, m.Screen)
	assert.Equal(t, "tt1", m.Detail.LookupKey())

	require.NoError(t, m.App.Catalog.LoadDetail(context.Background(), "tt1"))

	m = update(t, m, runes("n"))
	require.Equal(t, StateReviewing, m.State)

	// Submitting an empty form shows field errors without any I/O
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.Equal(t, "Name is required", m.ReviewForm.Error(state.FieldAuthor))
	assert.Zero(t, reviews.inserts)

	// Esc closes the form, back leaves the detail screen and clears it
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StateBrowsing, m.State)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ScreenMovies, m.Screen)
	assert.Nil(t, m.App.Catalog.Snapshot().Detail)
}

func TestModel_DetailIgnoresLoadsFromClosedView(t *testing.T) {
	m, catalog, reviews := newTestModelWithCatalog(t)
	reviews.stored = map[string][]domain.Review{
		"tt1": {{ID: "r1", MovieID: "tt1", Author: "Vincent", Rating: 5, Comment: "Best shootout ever filmed", CreatedAt: time.Now()}},
	}
	ctx := context.Background()

	// Heat's fetches complete after its view is gone
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "tt1", m.Detail.LookupKey())
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, ScreenMovies, m.Screen)
	require.NoError(t, m.App.Catalog.LoadDetail(ctx, "tt1"))
	require.NoError(t, m.App.Reviews.LoadReviews(ctx, "tt1"))

	m = update(t, m, runes("j"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, ScreenDetail, m.Screen)
	require.Equal(t, "tt2", m.Detail.LookupKey())

	view := m.View()
	assert.Contains(t, view, "Ronin")
	assert.NotContains(t, view, "heist crew")
	assert.NotContains(t, view, "Vincent")
	assert.Contains(t, view, "Reviews (0)")

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.True(t, m.App.Watchlist.Contains(2))
	assert.False(t, m.App.Watchlist.Contains(1))
	assert.Contains(t, m.StatusMsg, "Ronin")

	// Ronin's own fetch fails; the slot keeps Heat but the screen stays on Ronin
	catalog.failDetail = true
	require.Error(t, m.App.Catalog.LoadDetail(ctx, "tt2"))
	assert.Contains(t, m.View(), domain.ErrServerOffline.Error())

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.False(t, m.App.Watchlist.Contains(2))
	assert.False(t, m.App.Watchlist.Contains(1))
}

func TestModel_DetailIgnoresErrorFromClosedView(t *testing.T) {
	m, catalog, _ := newTestModelWithCatalog(t)
	catalog.failDetail = true

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Error(t, m.App.Catalog.LoadDetail(context.Background(), "tt1"))

	m = update(t, m, runes("j"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "tt2", m.Detail.LookupKey())
	assert.NotContains(t, m.View(), domain.ErrServerOffline.Error())
}

func TestModel_ReviewsUnavailable(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, ScreenDetail, m.Screen)

	m = update(t, m, ReviewsLoadedMsg{MovieID: "tt1", Err: domain.ErrReviewsUnavailable})
	m = update(t, m, runes("n"))
	assert.Equal(t, StateBrowsing, m.State)
	assert.False(t, m.ReviewForm.IsVisible())
	assert.True(t, m.StatusIsErr)
	assert.Contains(t, m.View(), "Reviews unavailable")
}

func TestModel_SupersededLoadIsSilent(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, MoviesLoadedMsg{Err: state.ErrSuperseded})
	assert.Empty(t, m.StatusMsg)

	m = update(t, m, MoviesLoadedMsg{Err: domain.ErrServerOffline})
	assert.True(t, m.StatusIsErr)
	assert.Contains(t, m.StatusMsg, "unreachable")
}

func TestModel_ViewRendersPages(t *testing.T) {
	m, _ := newTestModel(t)

	view := m.View()
	assert.Contains(t, view, "Heat")
	assert.Contains(t, view, "All genres")
	assert.Contains(t, view, "[1]")
}

func TestVisibleRange(t *testing.T) {
	tests := []struct {
		cursor, n, height int
		start, end        int
	}{
		{0, 5, 10, 0, 5},
		{0, 20, 5, 0, 5},
		{10, 20, 5, 8, 13},
		{19, 20, 5, 15, 20},
	}
	for _, tt := range tests {
		start, end := visibleRange(tt.cursor, tt.n, tt.height)
		assert.Equal(t, tt.start, start)
		assert.Equal(t, tt.end, end)
	}
}
