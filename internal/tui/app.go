package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/cinelist/internal/domain"
	"github.com/mmcdole/cinelist/internal/reviews"
	"github.com/mmcdole/cinelist/internal/state"
	"github.com/mmcdole/cinelist/internal/tui/components"
	"github.com/mmcdole/cinelist/internal/tui/styles"
)

// ApplicationState represents the current input mode
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateFiltering
	StateReviewing
	StateHelp
	StateConfirmClear
)

// Screen is the page being shown
type Screen int

const (
	ScreenMovies Screen = iota
	ScreenDetail
	ScreenWatchlist
)

// Pane is the focused column of the movies screen
type Pane int

const (
	PaneGenres Pane = iota
	PaneMovies
)

const statusDuration = 4 * time.Second

// Model is the main Bubble Tea model for the application
type Model struct {
	State  ApplicationState
	Screen Screen
	Focus  Pane
	Ready  bool

	// Application state container
	App *state.App

	// UI Components
	Filter     textinput.Model
	Spinner    spinner.Model
	ReviewForm components.ReviewForm

	// Cursors
	GenreCursor int // 0 = all genres
	MovieCursor int
	WatchCursor int

	// Detail screen
	Detail     domain.Movie // summary the detail screen was opened from
	returnTo   Screen
	reviewsOff bool // no review store configured

	// Dimensions
	Width  int
	Height int

	// Status line
	StatusMsg   string
	StatusIsErr bool
	statusID    int

	unsubscribe func()
}

// NewModel creates the application model and subscribes the style palette
// to theme changes
func NewModel(app *state.App) Model {
	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "filter titles"
	filter.CharLimit = 80

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	styles.Apply(app.Theme.Current())
	unsubscribe := app.Theme.Subscribe(styles.Apply)

	return Model{
		State:       StateBrowsing,
		Screen:      ScreenMovies,
		Focus:       PaneMovies,
		App:         app,
		Filter:      filter,
		Spinner:     sp,
		ReviewForm:  components.NewReviewForm(),
		unsubscribe: unsubscribe,
	}
}

// Close detaches the model from the theme
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadGenresCmd(m.App.Catalog),
		LoadMoviesCmd(m.App.Catalog),
		m.Spinner.Tick,
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case GenresLoadedMsg:
		m.GenreCursor = clampCursor(m.GenreCursor, len(m.App.Catalog.Snapshot().Genres)+1)
		return m, m.reportErr(msg.Err, "loading genres")

	case MoviesLoadedMsg:
		m.MovieCursor = clampCursor(m.MovieCursor, len(m.App.Catalog.FilteredMovies()))
		return m, m.reportErr(msg.Err, "loading movies")

	case ReviewsLoadedMsg:
		m.reviewsOff = reviews.IsUnavailable(msg.Err)
		return m, nil

	case DetailLoadedMsg:
		// Errors are rendered in place on the detail screen
		return m, nil

	case ReviewSubmittedMsg:
		if msg.Err != nil {
			return m, m.reportErr(msg.Err, "adding review")
		}
		m.ReviewForm.Hide()
		if m.State == StateReviewing {
			m.State = StateBrowsing
		}
		return m, m.setStatus("Review added", false)

	case ClearStatusMsg:
		if msg.ID == m.statusID {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil
	}

	return m, nil
}

// handleKeyMsg routes key presses by input mode
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.State {
	case StateHelp:
		m.State = StateBrowsing
		return m, nil

	case StateConfirmClear:
		switch {
		case key.Matches(msg, Keys.Confirm):
			m.App.Watchlist.Clear()
			m.WatchCursor = 0
			m.State = StateBrowsing
			return m, m.setStatus("Watchlist cleared", false)
		case key.Matches(msg, Keys.Deny):
			m.State = StateBrowsing
		}
		return m, nil

	case StateReviewing:
		return m.handleReviewKey(msg)

	case StateFiltering:
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil
	case key.Matches(msg, Keys.ToggleTheme):
		theme := m.App.Theme.Toggle()
		return m, m.setStatus(fmt.Sprintf("Theme: %s", theme), false)
	}

	switch m.Screen {
	case ScreenDetail:
		return m.handleDetailKey(msg)
	case ScreenWatchlist:
		return m.handleWatchlistKey(msg)
	default:
		return m.handleMoviesKey(msg)
	}
}

func (m Model) handleMoviesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	catalog := m.App.Catalog
	snap := catalog.Snapshot()
	movies := catalog.FilteredMovies()

	switch {
	case key.Matches(msg, Keys.Tab):
		if m.Focus == PaneGenres {
			m.Focus = PaneMovies
		} else {
			m.Focus = PaneGenres
		}

	case key.Matches(msg, Keys.Up), key.Matches(msg, Keys.Down),
		key.Matches(msg, Keys.Home), key.Matches(msg, Keys.End):
		if m.Focus == PaneGenres {
			m.GenreCursor = moveCursor(msg, m.GenreCursor, len(snap.Genres)+1)
		} else {
			m.MovieCursor = moveCursor(msg, m.MovieCursor, len(movies))
		}

	case key.Matches(msg, Keys.Enter):
		if m.Focus == PaneGenres {
			genre := ""
			if m.GenreCursor > 0 && m.GenreCursor <= len(snap.Genres) {
				genre = snap.Genres[m.GenreCursor-1].Name
			}
			catalog.SetGenre(genre)
			m.MovieCursor = 0
			m.Focus = PaneMovies
			return m, LoadMoviesCmd(catalog)
		}
		if m.MovieCursor < len(movies) {
			return m.openDetail(movies[m.MovieCursor].Movie)
		}

	case key.Matches(msg, Keys.PrevPage), key.Matches(msg, Keys.NextPage):
		delta := 1
		if key.Matches(msg, Keys.PrevPage) {
			delta = -1
		}
		before := snap.Page.CurrentPage
		catalog.SetPage(before + delta)
		if catalog.Page().CurrentPage != before {
			m.MovieCursor = 0
			return m, LoadMoviesCmd(catalog)
		}

	case key.Matches(msg, Keys.Filter):
		m.State = StateFiltering
		m.Focus = PaneMovies
		m.Filter.SetValue(snap.Page.SearchQuery)
		return m, m.Filter.Focus()

	case key.Matches(msg, Keys.Escape):
		if snap.Page.SearchQuery != "" {
			return m, m.applyFilter("")
		}
		catalog.ClearError()

	case key.Matches(msg, Keys.Refresh):
		catalog.ClearError()
		return m, tea.Batch(LoadGenresCmd(catalog), LoadMoviesCmd(catalog))

	case key.Matches(msg, Keys.ToggleWatch):
		if m.Focus == PaneMovies && m.MovieCursor < len(movies) {
			return m, m.toggleWatch(movies[m.MovieCursor].Movie)
		}

	case key.Matches(msg, Keys.Watchlist):
		m.Screen = ScreenWatchlist
		m.WatchCursor = clampCursor(m.WatchCursor, m.App.Watchlist.Len())
	}

	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Back):
		m.closeDetail()

	case key.Matches(msg, Keys.Review):
		if m.reviewsOff {
			return m, m.setStatus("Reviews are not configured", true)
		}
		m.ReviewForm.Show("Review: " + m.Detail.Title)
		m.State = StateReviewing
		return m, nil

	case key.Matches(msg, Keys.ToggleWatch):
		return m, m.toggleWatch(m.detailMovie(m.App.Catalog.Snapshot()))

	case key.Matches(msg, Keys.Refresh):
		ref := m.Detail.LookupKey()
		m.App.Catalog.ClearError()
		m.App.Reviews.ClearError()
		return m, tea.Batch(LoadDetailCmd(m.App.Catalog, ref), LoadReviewsCmd(m.App.Reviews, ref))

	case key.Matches(msg, Keys.Watchlist):
		m.closeDetail()
		m.Screen = ScreenWatchlist
	}
	return m, nil
}

func (m Model) handleWatchlistKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	movies := m.App.Watchlist.Movies()

	switch {
	case key.Matches(msg, Keys.Up), key.Matches(msg, Keys.Down),
		key.Matches(msg, Keys.Home), key.Matches(msg, Keys.End):
		m.WatchCursor = moveCursor(msg, m.WatchCursor, len(movies))

	case key.Matches(msg, Keys.Enter):
		if m.WatchCursor < len(movies) {
			return m.openDetail(movies[m.WatchCursor])
		}

	case key.Matches(msg, Keys.ToggleWatch):
		if m.WatchCursor < len(movies) {
			cmd := m.toggleWatch(movies[m.WatchCursor])
			m.WatchCursor = clampCursor(m.WatchCursor, m.App.Watchlist.Len())
			return m, cmd
		}

	case key.Matches(msg, Keys.ClearWatchlist):
		if len(movies) > 0 {
			m.State = StateConfirmClear
		}

	case key.Matches(msg, Keys.Back), key.Matches(msg, Keys.Watchlist):
		m.Screen = ScreenMovies
	}
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.State = StateBrowsing
		m.Filter.Blur()
		return m, m.applyFilter("")
	case "enter":
		m.State = StateBrowsing
		m.Filter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.Filter, cmd = m.Filter.Update(msg)
	return m, tea.Batch(cmd, m.applyFilter(m.Filter.Value()))
}

func (m Model) handleReviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var submitted bool
	m.ReviewForm, cmd, submitted = m.ReviewForm.Update(msg)

	if !m.ReviewForm.IsVisible() {
		m.State = StateBrowsing
		return m, cmd
	}
	if !submitted {
		return m, cmd
	}

	input := m.ReviewForm.Input()
	if err := state.ValidateReview(input); err != nil {
		m.ReviewForm.SetErrors(err)
		return m, nil
	}
	m.ReviewForm.SetErrors(nil)
	if m.App.Reviews.Submitting() {
		return m, nil
	}
	return m, SubmitReviewCmd(m.App.Reviews, m.Detail.LookupKey(), input)
}

// applyFilter sets the title filter. The filter runs over the loaded page, so
// the page reset that comes with a new query triggers a reload when needed.
func (m *Model) applyFilter(query string) tea.Cmd {
	catalog := m.App.Catalog
	before := catalog.Page().CurrentPage
	catalog.SetSearchQuery(query)
	m.MovieCursor = 0
	if before != catalog.Page().CurrentPage {
		return LoadMoviesCmd(catalog)
	}
	return nil
}

func (m Model) openDetail(movie domain.Movie) (tea.Model, tea.Cmd) {
	m.Detail = movie
	m.returnTo = m.Screen
	m.Screen = ScreenDetail

	ref := movie.LookupKey()
	return m, tea.Batch(
		LoadDetailCmd(m.App.Catalog, ref),
		LoadReviewsCmd(m.App.Reviews, ref),
	)
}

// detailMovie returns the fetched record for the open movie, or the list
// summary until that record lands. The slot may still hold a record from a
// fetch that outlived its view.
func (m Model) detailMovie(snap state.CatalogSnapshot) domain.Movie {
	if d := snap.Detail; d != nil && d.LookupKey() == m.Detail.LookupKey() {
		return *d
	}
	return m.Detail
}

// detailReviews returns the review slice restricted to the open movie.
func (m Model) detailReviews() state.ReviewsSnapshot {
	snap := m.App.Reviews.Snapshot()
	ref := m.Detail.LookupKey()
	if snap.MovieID != ref {
		snap.Reviews = nil
	}
	if snap.ErrMovieID != ref {
		snap.Err = ""
	}
	return snap
}

// closeDetail tears down the detail screen and releases its data
func (m *Model) closeDetail() {
	m.App.Catalog.ClearDetail()
	m.App.Reviews.ClearReviews()
	m.Detail = domain.Movie{}
	m.Screen = m.returnTo
	if m.Screen == ScreenWatchlist {
		m.WatchCursor = clampCursor(m.WatchCursor, m.App.Watchlist.Len())
	}
}

func (m *Model) toggleWatch(movie domain.Movie) tea.Cmd {
	if m.App.Watchlist.Toggle(movie) {
		return m.setStatus(fmt.Sprintf("Added %q to watchlist", movie.Title), false)
	}
	return m.setStatus(fmt.Sprintf("Removed %q from watchlist", movie.Title), false)
}

// reportErr shows err on the status line. Superseded loads are silent.
func (m *Model) reportErr(err error, action string) tea.Cmd {
	if err == nil || errors.Is(err, state.ErrSuperseded) {
		return nil
	}
	return m.setStatus(fmt.Sprintf("Error %s: %v", action, err), true)
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusID++
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return clearStatusAfter(m.statusID, statusDuration)
}

// moveCursor applies a navigation key to a cursor over n items
func moveCursor(msg tea.KeyMsg, cursor, n int) int {
	switch {
	case key.Matches(msg, Keys.Up):
		cursor--
	case key.Matches(msg, Keys.Down):
		cursor++
	case key.Matches(msg, Keys.Home):
		cursor = 0
	case key.Matches(msg, Keys.End):
		cursor = n - 1
	}
	return clampCursor(cursor, n)
}

func clampCursor(cursor, n int) int {
	if n <= 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}
