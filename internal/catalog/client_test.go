package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/cinelist/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Options{
		BaseURL:           srv.URL,
		Host:              "catalog.example",
		APIKey:            "secret",
		RequestsPerSecond: 1000,
	}, nil)
}

func TestListByGenre_QueryAndMapping(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/titles", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "2000", q.Get("startYear"))
		assert.Equal(t, "2025", q.Get("endYear"))
		assert.Equal(t, "10", q.Get("limit"))
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "Action", q.Get("genre"))
		assert.Equal(t, "secret", r.Header.Get("X-RapidAPI-Key"))
		assert.Equal(t, "catalog.example", r.Header.Get("X-RapidAPI-Host"))

		w.Write([]byte(`{"page":2,"entries":45,"results":[
			{"_id":"64a1","id":"tt0111161","titleText":{"text":"The Shawshank Redemption"},
			 "releaseYear":{"year":2001},"primaryImage":{"url":"http://img/1.jpg"},
			 "genres":{"genres":[{"text":"Drama"}]}},
			{"id":42,"titleText":{"text":"Numbered"}}
		]}`))
	})

	page, err := c.ListByGenre(context.Background(), "Action", 2)
	require.NoError(t, err)
	assert.Equal(t, 45, page.Entries)
	require.Len(t, page.Results, 2)

	first := page.Results[0]
	assert.Equal(t, 111161, first.ID)
	assert.Equal(t, "tt0111161", first.Ref)
	assert.Equal(t, "The Shawshank Redemption", first.Title)
	assert.Equal(t, 2001, first.ReleaseYear)
	assert.Equal(t, "http://img/1.jpg", first.PosterURL)
	assert.Equal(t, []string{"Drama"}, first.GenreNames)

	assert.Equal(t, 42, page.Results[1].ID)
	assert.Equal(t, "42", page.Results[1].Ref)
}

func TestListByGenre_AllGenresOmitsParam(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.URL.Query()["genre"]
		assert.False(t, ok)
		w.Write([]byte(`{"entries":0,"results":[]}`))
	})

	page, err := c.ListByGenre(context.Background(), "", 1)
	require.NoError(t, err)
	assert.Empty(t, page.Results)
	assert.Equal(t, 0, page.Entries)
}

func TestListByGenre_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>`},
		{"missing results", `{"entries":3}`},
		{"results wrong type", `{"results":{"a":1}}`},
		{"null entry", `{"entries":1,"results":[null]}`},
		{"no identity", `{"entries":1,"results":[{"titleText":{"text":"x"}}]}`},
		{"negative entries", `{"entries":-1,"results":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})
			_, err := c.ListByGenre(context.Background(), "", 1)
			assert.ErrorIs(t, err, domain.ErrMalformedResponse)
		})
	}
}

func TestListGenres_SkipsNulls(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/titles/utils/genres", r.URL.Path)
		w.Write([]byte(`{"results":[null,"Action","  ","Drama"]}`))
	})

	genres, err := c.ListGenres(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Action", "Drama"}, genres)
}

func TestGetByID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/titles/tt0000001":
			w.Write([]byte(`{"results":{"id":"tt0000001","titleText":{"text":"Carmencita"},
				"plot":{"plotText":{"plainText":"A dance."}},"ratingsSummary":{"aggregateRating":5.7}}}`))
		case "/titles/tt0000002":
			w.Write([]byte(`{"results":null}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	m, err := c.GetByID(context.Background(), "tt0000001")
	require.NoError(t, err)
	assert.Equal(t, 1, m.ID)
	assert.Equal(t, "Carmencita", m.Title)
	assert.Equal(t, "A dance.", m.Overview)
	assert.InDelta(t, 5.7, m.VoteAverage, 0.001)

	_, err = c.GetByID(context.Background(), "tt0000002")
	assert.ErrorIs(t, err, domain.ErrMovieNotFound)

	_, err = c.GetByID(context.Background(), "tt9")
	assert.ErrorIs(t, err, domain.ErrMovieNotFound)
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, domain.ErrAuthFailed},
		{http.StatusForbidden, domain.ErrAuthFailed},
	}
	for _, tt := range tests {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		})
		_, err := c.ListGenres(context.Background())
		assert.ErrorIs(t, err, tt.want)
	}

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	_, err := c.ListGenres(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestServerOffline(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, RequestsPerSecond: 1000}, nil)
	_, err := c.ListGenres(context.Background())
	assert.ErrorIs(t, err, domain.ErrServerOffline)
}
