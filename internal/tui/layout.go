package tui

// Layout proportions
const (
	GenrePanePercent = 25
	MinPaneWidth     = 18
	MaxGenrePane     = 28

	// Header and footer lines
	ChromeHeight = 2
)

// paneWidths splits the movies screen into the genre and movie columns
func (m Model) paneWidths() (genres, movies int) {
	genres = m.Width * GenrePanePercent / 100
	genres = max(min(genres, MaxGenrePane), MinPaneWidth)
	movies = max(m.Width-genres, MinPaneWidth)
	return genres, movies
}

// contentHeight is the height available between header and footer
func (m Model) contentHeight() int {
	return max(m.Height-ChromeHeight, 3)
}

// visibleRange returns the slice [start, end) of n rows that keeps cursor in
// a window of height rows
func visibleRange(cursor, n, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := cursor - height/2
	start = max(0, min(start, n-height))
	return start, start + height
}
