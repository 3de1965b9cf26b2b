package state

import (
	"context"
	"errors"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/mmcdole/cinelist/internal/domain"
)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) ListByGenre(ctx context.Context, genre string, page int) (domain.MoviePage, error) {
	args := m.Called(ctx, genre, page)
	return args.Get(0).(domain.MoviePage), args.Error(1)
}

func (m *mockCatalog) ListGenres(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

func (m *mockCatalog) GetByID(ctx context.Context, ref string) (domain.Movie, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(domain.Movie), args.Error(1)
}

type mockReviews struct {
	mock.Mock
}

func (m *mockReviews) QueryByMovie(ctx context.Context, movieID string) ([]domain.Review, error) {
	args := m.Called(ctx, movieID)
	reviews, _ := args.Get(0).([]domain.Review)
	return reviews, args.Error(1)
}

func (m *mockReviews) Insert(ctx context.Context, movieID string, input domain.ReviewInput) (domain.Review, error) {
	args := m.Called(ctx, movieID, input)
	return args.Get(0).(domain.Review), args.Error(1)
}

var errDisk = errors.New("disk full")

// memKV is an in-memory domain.KVStore that counts writes.
type memKV struct {
	mu     sync.Mutex
	data   map[string]string
	writes map[string]int
	failOn map[string]bool
}

func newMemKV() *memKV {
	return &memKV{
		data:   make(map[string]string),
		writes: make(map[string]int),
		failOn: make(map[string]bool),
	}
}

func (k *memKV) Get(key string) (string, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	v, ok := k.data[key]
	return v, ok
}

func (k *memKV) Set(key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.writes[key]++
	if k.failOn[key] {
		return errDisk
	}
	k.data[key] = value
	return nil
}

func (k *memKV) Close() error { return nil }

func (k *memKV) writeCount(key string) int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.writes[key]
}

func movie(id int, title string) domain.Movie {
	return domain.Movie{ID: id, Title: title}
}
