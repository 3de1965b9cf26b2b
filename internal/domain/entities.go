package domain

import (
	"fmt"
	"strings"
	"time"
)

// Genre is a named movie category. ID is the 1-based position in the most
// recently fetched genre list and is not stable across fetches.
type Genre struct {
	ID   int
	Name string
}

// Movie is the canonical movie record used for list entries, the detail slot
// and watchlist entries.
type Movie struct {
	ID          int      `json:"id"`
	Ref         string   `json:"ref,omitempty"` // catalog key, e.g. "tt0111161"
	Title       string   `json:"title"`
	ReleaseYear int      `json:"releaseYear,omitempty"`
	PosterURL   string   `json:"posterUrl,omitempty"`
	GenreNames  []string `json:"genreNames,omitempty"`
	Overview    string   `json:"overview,omitempty"`
	VoteAverage float64  `json:"voteAverage,omitempty"`
}

// LookupKey returns the key used for detail fetches and review lookups.
func (m Movie) LookupKey() string {
	if m.Ref != "" {
		return m.Ref
	}
	return fmt.Sprintf("%d", m.ID)
}

// Description returns secondary info for list rendering.
func (m Movie) Description() string {
	parts := make([]string, 0, 2)
	if m.ReleaseYear > 0 {
		parts = append(parts, fmt.Sprintf("%d", m.ReleaseYear))
	}
	if len(m.GenreNames) > 0 {
		parts = append(parts, strings.Join(m.GenreNames, ", "))
	}
	return strings.Join(parts, " · ")
}

// MoviePage is one window of a genre listing as reported by the catalog.
type MoviePage struct {
	Results []Movie
	Entries int // total matching entries on the server
}

// Review is a user review stored in the remote review store.
type Review struct {
	ID        string
	MovieID   string
	Author    string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// ReviewInput is the user-supplied part of a review.
type ReviewInput struct {
	Author  string
	Rating  int
	Comment string
}

// Theme is the UI color preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme is used when no valid preference is stored.
const DefaultTheme = ThemeDark

// ParseTheme converts a stored or user-supplied value into a Theme.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.TrimSpace(s)) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, s)
	}
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// PageState is the genre/pagination position of the movie list.
type PageState struct {
	CurrentGenre string // empty = all genres
	CurrentPage  int
	TotalPages   int
	SearchQuery  string
}
