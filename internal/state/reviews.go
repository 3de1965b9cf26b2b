package state

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/mmcdole/cinelist/internal/domain"
)

// ReviewsSnapshot is a copy of the review slice for readers.
type ReviewsSnapshot struct {
	MovieID    string
	Reviews    []domain.Review
	Loading    bool
	Submitting bool
	Err        string
	ErrMovieID string // movie whose request produced Err
}

// Reviews orchestrates fetch-on-view and submit for one movie's reviews.
type Reviews struct {
	client domain.ReviewClient
	logger *slog.Logger

	mu       sync.Mutex
	movieID  string // movie the list belongs to; "" when cleared
	reviews  []domain.Review
	loading  bool
	inflight int // submits in flight
	err      string
	errOwner string
	loadSeq  uint64
}

// NewReviews creates an empty review state.
func NewReviews(client domain.ReviewClient, logger *slog.Logger) *Reviews {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reviews{client: client, logger: logger}
}

// LoadReviews fetches all reviews for movieID, newest first, replacing the list.
func (r *Reviews) LoadReviews(ctx context.Context, movieID string) error {
	r.mu.Lock()
	r.loadSeq++
	seq := r.loadSeq
	r.loading = true
	r.err, r.errOwner = "", ""
	r.mu.Unlock()

	reviews, err := r.client.QueryByMovie(ctx, movieID)

	r.mu.Lock()
	defer r.mu.Unlock()
	if seq != r.loadSeq {
		r.logger.Debug("discarding superseded reviews response", "seq", seq, "movieID", movieID)
		return ErrSuperseded
	}
	r.loading = false
	if err != nil {
		r.err, r.errOwner = errorMessage(err, "Failed to fetch reviews"), movieID
		r.logger.Error("failed to fetch reviews", "error", err, "movieID", movieID)
		return err
	}

	r.movieID = movieID
	r.reviews = reviews
	return nil
}

// SubmitReview validates input, then inserts it. On success the stored
// review is placed at index 0 without a re-fetch. Validation failures
// return a *domain.ValidationError and leave the state untouched.
//
// Overlapping submits are not rejected here; the view is expected to honor
// the Submitting flag.
func (r *Reviews) SubmitReview(ctx context.Context, movieID string, input domain.ReviewInput) (domain.Review, error) {
	if err := ValidateReview(input); err != nil {
		return domain.Review{}, err
	}

	r.mu.Lock()
	r.inflight++
	r.err, r.errOwner = "", ""
	r.mu.Unlock()

	review, err := r.client.Insert(ctx, movieID, input)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.inflight--
	if err != nil {
		r.err, r.errOwner = errorMessage(err, "Failed to add review"), movieID
		r.logger.Error("failed to add review", "error", err, "movieID", movieID)
		return domain.Review{}, err
	}

	// A list owned by another movie is left alone; the review shows up the
	// next time that movie's reviews are loaded.
	if r.movieID == "" || r.movieID == movieID {
		r.movieID = movieID
		r.reviews = append([]domain.Review{review}, r.reviews...)
	}
	r.logger.Info("review submitted", "id", review.ID, "movieID", movieID)
	return review, nil
}

// ClearReviews empties the in-memory list. In-flight loads are not cancelled.
func (r *Reviews) ClearReviews() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movieID = ""
	r.reviews = nil
}

// ClearError dismisses the current error message.
func (r *Reviews) ClearError() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err, r.errOwner = "", ""
}

// Submitting reports whether any submit is in flight.
func (r *Reviews) Submitting() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inflight > 0
}

// Snapshot returns a copy of the review slice.
func (r *Reviews) Snapshot() ReviewsSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return ReviewsSnapshot{
		MovieID:    r.movieID,
		Reviews:    slices.Clone(r.reviews),
		Loading:    r.loading,
		Submitting: r.inflight > 0,
		Err:        r.err,
		ErrMovieID: r.errOwner,
	}
}

// AverageRating returns the mean rating of the loaded reviews, or 0.
func (s ReviewsSnapshot) AverageRating() float64 {
	if len(s.Reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range s.Reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(s.Reviews))
}
