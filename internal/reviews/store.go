package reviews

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mmcdole/cinelist/internal/domain"
)

const (
	queryByMovieSQL = `
SELECT id::text, movie_id, author, rating, comment, created_at
FROM reviews
WHERE movie_id = $1
ORDER BY created_at DESC, id DESC`

	insertSQL = `
INSERT INTO reviews (movie_id, author, rating, comment)
VALUES ($1, $2, $3, $4)
RETURNING id::text, created_at`
)

// querier is the subset of *pgxpool.Pool used by Store.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements domain.ReviewClient on a PostgreSQL reviews table.
type Store struct {
	db     querier
	logger *slog.Logger
}

// NewStore creates a review store over a pool (or any compatible querier).
func NewStore(db querier, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}
}

// QueryByMovie returns all reviews for movieID, newest first.
func (s *Store) QueryByMovie(ctx context.Context, movieID string) ([]domain.Review, error) {
	rows, err := s.db.Query(ctx, queryByMovieSQL, movieID)
	if err != nil {
		s.logger.Error("review query failed", "error", err, "movieID", movieID)
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]domain.Review, 0)
	for rows.Next() {
		var r domain.Review
		var rating int16
		if err := rows.Scan(&r.ID, &r.MovieID, &r.Author, &rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		r.Rating = int(rating)
		if err := checkReview(r); err != nil {
			s.logger.Error("invalid review row", "error", err, "id", r.ID)
			return nil, err
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}

	s.logger.Debug("fetched reviews", "count", len(reviews), "movieID", movieID)
	return reviews, nil
}

// Insert stores a new review. The database assigns the id and timestamp.
func (s *Store) Insert(ctx context.Context, movieID string, input domain.ReviewInput) (domain.Review, error) {
	r := domain.Review{
		MovieID: movieID,
		Author:  strings.TrimSpace(input.Author),
		Rating:  input.Rating,
		Comment: strings.TrimSpace(input.Comment),
	}

	err := s.db.QueryRow(ctx, insertSQL, r.MovieID, r.Author, int16(r.Rating), r.Comment).
		Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		s.logger.Error("review insert failed", "error", err, "movieID", movieID)
		return domain.Review{}, fmt.Errorf("failed to add review: %w", err)
	}
	if err := checkReview(r); err != nil {
		return domain.Review{}, err
	}

	s.logger.Info("review added", "id", r.ID, "movieID", movieID)
	return r, nil
}

// checkReview guards rows coming back from the store.
func checkReview(r domain.Review) error {
	if _, err := uuid.Parse(r.ID); err != nil {
		return fmt.Errorf("%w: review id %q: %v", domain.ErrMalformedResponse, r.ID, err)
	}
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("%w: review %s rating %d", domain.ErrMalformedResponse, r.ID, r.Rating)
	}
	if r.CreatedAt.IsZero() {
		return fmt.Errorf("%w: review %s has no timestamp", domain.ErrMalformedResponse, r.ID)
	}
	return nil
}

// Unavailable is used when no review store is configured.
type Unavailable struct{}

func (Unavailable) QueryByMovie(context.Context, string) ([]domain.Review, error) {
	return nil, domain.ErrReviewsUnavailable
}

func (Unavailable) Insert(context.Context, string, domain.ReviewInput) (domain.Review, error) {
	return domain.Review{}, domain.ErrReviewsUnavailable
}

// IsUnavailable reports whether err means reviews are not configured.
func IsUnavailable(err error) bool {
	return errors.Is(err, domain.ErrReviewsUnavailable)
}
