package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/cinelist/internal/domain"
	"github.com/mmcdole/cinelist/internal/state"
	"github.com/mmcdole/cinelist/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	switch m.State {
	case StateHelp:
		return m.renderHelp()
	case StateConfirmClear:
		return m.renderClearConfirmation()
	case StateReviewing:
		return lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.ReviewForm.View())
	}

	var content string
	switch m.Screen {
	case ScreenDetail:
		content = m.renderDetail()
	case ScreenWatchlist:
		content = m.renderWatchlist()
	default:
		content = m.renderMovies()
	}

	content = lipgloss.NewStyle().
		Width(m.Width).
		Height(m.contentHeight()).
		MaxHeight(m.contentHeight()).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), content, m.renderFooter())
}

func (m Model) renderHeader() string {
	title := styles.BadgeStyle.Render("cinelist")

	var crumb string
	switch m.Screen {
	case ScreenDetail:
		crumb = m.Detail.Title
	case ScreenWatchlist:
		crumb = fmt.Sprintf("Watchlist (%d)", m.App.Watchlist.Len())
	default:
		p := m.App.Catalog.Page()
		genre := p.CurrentGenre
		if genre == "" {
			genre = "All genres"
		}
		crumb = fmt.Sprintf("%s · page %d of %d", genre, p.CurrentPage, p.TotalPages)
	}

	left := title + " " + styles.AccentStyle.Render(styles.Truncate(crumb, max(m.Width-30, 10)))
	right := styles.DimStyle.Render(string(styles.Current()))

	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderMovies() string {
	snap := m.App.Catalog.Snapshot()
	genreWidth, movieWidth := m.paneWidths()
	height := m.contentHeight() - 2 // borders

	// Genre column
	names := make([]string, 0, len(snap.Genres)+1)
	names = append(names, "All genres")
	for _, g := range snap.Genres {
		names = append(names, g.Name)
	}

	var genreRows []string
	switch {
	case snap.GenresLoading && len(snap.Genres) == 0:
		genreRows = []string{m.Spinner.View() + styles.DimStyle.Render(" loading genres")}
	case snap.GenresErr != "":
		genreRows = []string{styles.ErrorStyle.Render(styles.Truncate(snap.GenresErr, genreWidth-4))}
	}
	start, end := visibleRange(m.GenreCursor, len(names), height-len(genreRows))
	for i := start; i < end; i++ {
		name := names[i]
		if snap.Page.CurrentGenre == name || (i == 0 && snap.Page.CurrentGenre == "") {
			name = "• " + name
		}
		genreRows = append(genreRows, m.renderRow(styles.Truncate(name, genreWidth-6), "", nil,
			m.Focus == PaneGenres && i == m.GenreCursor, genreWidth-4))
	}

	// Movie column
	results := m.App.Catalog.FilteredMovies()
	var movieRows []string
	if m.State == StateFiltering || snap.Page.SearchQuery != "" {
		movieRows = append(movieRows, m.Filter.View())
	}
	switch {
	case snap.MoviesLoading:
		movieRows = append(movieRows, m.Spinner.View()+styles.DimStyle.Render(" loading movies"))
	case snap.MoviesErr != "":
		movieRows = append(movieRows, styles.ErrorStyle.Render(snap.MoviesErr))
	case len(results) == 0:
		movieRows = append(movieRows, styles.DimStyle.Render("No movies found"))
	}

	listHeight := height - len(movieRows) - 1 // pager line
	start, end = visibleRange(m.MovieCursor, len(results), listHeight)
	for i := start; i < end; i++ {
		r := results[i]
		mark := "  "
		if m.App.Watchlist.Contains(r.Movie.ID) {
			mark = styles.AccentStyle.Render("♥ ")
		}
		title := styles.Truncate(r.Movie.Title, movieWidth-20)
		movieRows = append(movieRows, mark+m.renderRow(title, r.Movie.Description(), r.MatchedIndexes,
			m.Focus == PaneMovies && i == m.MovieCursor, movieWidth-8))
	}
	movieRows = append(movieRows, m.renderPager(snap.Page))

	genreBorder, movieBorder := styles.InactiveBorder, styles.ActiveBorder
	if m.Focus == PaneGenres {
		genreBorder, movieBorder = styles.ActiveBorder, styles.InactiveBorder
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		genreBorder.Width(genreWidth-2).Height(height).Render(strings.Join(genreRows, "\n")),
		movieBorder.Width(movieWidth-2).Height(height).Render(strings.Join(movieRows, "\n")),
	)
}

// renderRow renders a list row of a title and optional dim description,
// highlighting fuzzy matches in the title when not selected
func (m Model) renderRow(title, desc string, matches []int, selected bool, width int) string {
	if desc != "" {
		desc = "  " + styles.Truncate(desc, max(width-lipgloss.Width(title)-4, 0))
	}
	if selected {
		return styles.SelectedItemStyle.Width(width).Render(title + desc)
	}
	return styles.NormalItemStyle.Render(
		styles.HighlightMatches(title, matches, styles.SubtitleStyle) + styles.DimStyle.Render(desc))
}

// renderPager renders the page window, e.g. "‹ 1 … 4 [5] 6 … 12 ›"
func (m Model) renderPager(p domain.PageState) string {
	parts := []string{styles.DimStyle.Render("‹")}
	for _, n := range state.PageWindow(p.CurrentPage, p.TotalPages) {
		switch {
		case n == state.Ellipsis:
			parts = append(parts, styles.DimStyle.Render("…"))
		case n == p.CurrentPage:
			parts = append(parts, styles.AccentStyle.Bold(true).Render("["+strconv.Itoa(n)+"]"))
		default:
			parts = append(parts, styles.SubtitleStyle.Render(strconv.Itoa(n)))
		}
	}
	parts = append(parts, styles.DimStyle.Render("›"))
	return strings.Join(parts, " ")
}

func (m Model) renderDetail() string {
	snap := m.App.Catalog.Snapshot()
	reviews := m.detailReviews()
	width := max(m.Width-4, 20)
	movie := m.detailMovie(snap)

	var rows []string
	title := styles.TitleStyle.Render(movie.Title)
	if m.App.Watchlist.Contains(movie.ID) {
		title += " " + styles.AccentStyle.Render("♥ on watchlist")
	}
	rows = append(rows, title)
	if desc := movie.Description(); desc != "" {
		rows = append(rows, styles.SubtitleStyle.Render(desc))
	}
	if movie.VoteAverage > 0 {
		rows = append(rows, styles.DimStyle.Render(fmt.Sprintf("Rating %.1f/10", movie.VoteAverage)))
	}

	switch {
	case snap.DetailLoading:
		rows = append(rows, "", m.Spinner.View()+styles.DimStyle.Render(" loading details"))
	case snap.DetailErr != "" && snap.DetailErrRef == m.Detail.LookupKey():
		rows = append(rows, "", styles.ErrorStyle.Render(snap.DetailErr))
	case movie.Overview != "":
		rows = append(rows, "", lipgloss.NewStyle().Width(width).Render(movie.Overview))
	}

	// Reviews
	heading := fmt.Sprintf("Reviews (%d)", len(reviews.Reviews))
	if avg := reviews.AverageRating(); avg > 0 {
		heading += fmt.Sprintf("  %s %.1f", styles.Stars(int(avg+0.5)), avg)
	}
	rows = append(rows, "", styles.AccentStyle.Render(heading))

	switch {
	case m.reviewsOff:
		rows = append(rows, styles.DimStyle.Render("Reviews unavailable (set CINELIST_REVIEWS_DSN)"))
	case reviews.Loading:
		rows = append(rows, m.Spinner.View()+styles.DimStyle.Render(" loading reviews"))
	case reviews.Err != "":
		rows = append(rows, styles.ErrorStyle.Render(reviews.Err))
	case len(reviews.Reviews) == 0:
		rows = append(rows, styles.DimStyle.Render("No reviews yet. Press n to write one."))
	}
	if reviews.Submitting {
		rows = append(rows, m.Spinner.View()+styles.DimStyle.Render(" submitting review"))
	}
	for _, r := range reviews.Reviews {
		rows = append(rows,
			"",
			styles.Stars(r.Rating)+" "+styles.TitleStyle.Render(r.Author)+" "+
				styles.DimStyle.Render(r.CreatedAt.Local().Format("Jan 2, 2006")),
			lipgloss.NewStyle().Width(width).Render(r.Comment),
		)
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(rows, "\n"))
}

func (m Model) renderWatchlist() string {
	movies := m.App.Watchlist.Movies()
	if len(movies) == 0 {
		return lipgloss.NewStyle().Padding(1, 2).Render(
			styles.DimStyle.Render("Your watchlist is empty. Press space on a movie to add it."))
	}

	width := max(m.Width-6, 20)
	rows := make([]string, 0, len(movies))
	start, end := visibleRange(m.WatchCursor, len(movies), m.contentHeight()-2)
	for i := start; i < end; i++ {
		mv := movies[i]
		title := styles.Truncate(mv.Title, width/2)
		rows = append(rows, m.renderRow(title, mv.Description(), nil, i == m.WatchCursor, width))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(rows, "\n"))
}

// renderFooter renders the status line and the help hint
func (m Model) renderFooter() string {
	var left string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	}

	right := styles.HelpKeyStyle.Render("?") + styles.HelpDescStyle.Render(" help")

	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return left + strings.Repeat(" ", gap) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
MOVIES                          DETAIL
  j/k        Up/down               n      Write review
  h/l        Previous/next page    space  Add/remove watchlist
  tab        Genres/movies         r      Refresh
  enter      Select                esc    Back
  /          Filter titles
  space      Add/remove watchlist  WATCHLIST
  r          Refresh               enter  Open
                                   space  Remove
OTHER                              X      Clear all
  w          Watchlist
  t          Toggle theme
  q          Quit
  ?          This help

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

// renderClearConfirmation renders the clear-watchlist confirmation modal
func (m Model) renderClearConfirmation() string {
	modal := fmt.Sprintf(`
          Clear Watchlist?

  This removes all %d movies from
  your watchlist.

        [Y] Yes      [N] No
`, m.App.Watchlist.Len())

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(modal))
}
