package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/cinelist/internal/domain"
	"github.com/mmcdole/cinelist/internal/state"
)

// Command factories for async operations

const requestTimeout = 30 * time.Second

// LoadGenresCmd loads the genre list
func LoadGenresCmd(c *state.Catalog) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return GenresLoadedMsg{Err: c.LoadGenres(ctx)}
	}
}

// LoadMoviesCmd loads the current genre and page
func LoadMoviesCmd(c *state.Catalog) tea.Cmd {
	p := c.Page()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		err := c.LoadMovies(ctx, p.CurrentGenre, p.CurrentPage)
		return MoviesLoadedMsg{Genre: p.CurrentGenre, Page: p.CurrentPage, Err: err}
	}
}

// LoadDetailCmd loads a single movie into the detail slot
func LoadDetailCmd(c *state.Catalog, ref string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return DetailLoadedMsg{Ref: ref, Err: c.LoadDetail(ctx, ref)}
	}
}

// LoadReviewsCmd loads the reviews of a movie
func LoadReviewsCmd(r *state.Reviews, movieID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return ReviewsLoadedMsg{MovieID: movieID, Err: r.LoadReviews(ctx, movieID)}
	}
}

// SubmitReviewCmd submits an already validated review
func SubmitReviewCmd(r *state.Reviews, movieID string, input domain.ReviewInput) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		review, err := r.SubmitReview(ctx, movieID, input)
		return ReviewSubmittedMsg{MovieID: movieID, Review: review, Err: err}
	}
}

// clearStatusAfter clears the status line with the given id after d
func clearStatusAfter(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{ID: id}
	})
}
