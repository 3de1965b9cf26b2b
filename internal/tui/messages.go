package tui

import "github.com/mmcdole/cinelist/internal/domain"

// Message types for the TUI. Loaded data lives in the state containers;
// messages only report completion.

// GenresLoadedMsg signals that a genre fetch finished
type GenresLoadedMsg struct {
	Err error
}

// MoviesLoadedMsg signals that a movie page fetch finished
type MoviesLoadedMsg struct {
	Genre string
	Page  int
	Err   error
}

// DetailLoadedMsg signals that a detail fetch finished
type DetailLoadedMsg struct {
	Ref string
	Err error
}

// ReviewsLoadedMsg signals that a review fetch finished
type ReviewsLoadedMsg struct {
	MovieID string
	Err     error
}

// ReviewSubmittedMsg signals that a review submit finished
type ReviewSubmittedMsg struct {
	MovieID string
	Review  domain.Review
	Err     error
}

// ClearStatusMsg clears a transient status line
type ClearStatusMsg struct {
	ID int
}
