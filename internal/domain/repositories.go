package domain

import (
	"context"
)

// CatalogClient provides access to the remote movie catalog
type CatalogClient interface {
	// ListByGenre returns one page of movies, optionally restricted to a genre
	// (empty = all). Entries is the server's total match count.
	ListByGenre(ctx context.Context, genre string, page int) (MoviePage, error)

	// ListGenres returns genre names in server order
	ListGenres(ctx context.Context) ([]string, error)

	// GetByID returns a single movie by its catalog key
	GetByID(ctx context.Context, ref string) (Movie, error)
}

// ReviewClient provides access to the remote review store
type ReviewClient interface {
	// QueryByMovie returns all reviews for a movie, newest first
	QueryByMovie(ctx context.Context, movieID string) ([]Review, error)

	// Insert stores a new review; the store assigns ID and CreatedAt
	Insert(ctx context.Context, movieID string, input ReviewInput) (Review, error)
}
