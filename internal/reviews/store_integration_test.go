//go:build integration

package reviews

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/cinelist/internal/domain"
)

// Run with: CINELIST_TEST_DSN=postgres://... go test -tags integration ./internal/reviews
func TestStore_Postgres(t *testing.T) {
	dsn := os.Getenv("CINELIST_TEST_DSN")
	if dsn == "" {
		t.Skip("CINELIST_TEST_DSN not set")
	}
	logger := slog.Default()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	require.NoError(t, Migrate(dsn, logger))
	pool, err := NewPool(ctx, dsn, logger)
	require.NoError(t, err)
	defer pool.Close()

	movieID := "it-" + time.Now().Format("150405.000000")
	t.Cleanup(func() {
		pool.Exec(context.Background(), "DELETE FROM reviews WHERE movie_id = $1", movieID)
	})

	s := NewStore(pool, logger)
	first, err := s.Insert(ctx, movieID, domain.ReviewInput{Author: "Ann", Rating: 5, Comment: "First and finest"})
	require.NoError(t, err)
	second, err := s.Insert(ctx, movieID, domain.ReviewInput{Author: "Bob", Rating: 3, Comment: "Second opinion here"})
	require.NoError(t, err)

	got, err := s.QueryByMovie(ctx, movieID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)
}
