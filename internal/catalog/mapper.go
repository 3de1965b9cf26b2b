package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/mmcdole/cinelist/internal/domain"
)

// MapTitles converts catalog records to domain movies. Any record without a
// usable identity makes the whole page malformed.
func MapTitles(dtos []*TitleDTO) ([]domain.Movie, error) {
	movies := make([]domain.Movie, 0, len(dtos))
	for i, d := range dtos {
		if d == nil {
			return nil, fmt.Errorf("%w: null result at index %d", domain.ErrMalformedResponse, i)
		}
		m, err := MapTitle(*d)
		if err != nil {
			return nil, fmt.Errorf("result %d: %w", i, err)
		}
		movies = append(movies, m)
	}
	return movies, nil
}

// MapTitle normalizes a single catalog record to the canonical Movie shape.
func MapTitle(d TitleDTO) (domain.Movie, error) {
	ref := d.ID.Str
	if ref == "" && d.ID.Num == 0 {
		ref = d.MongoID
	}

	id := d.ID.Num
	if id == 0 {
		id = digitsOf(ref)
	}
	if id <= 0 {
		return domain.Movie{}, fmt.Errorf("%w: record has no identity", domain.ErrMalformedResponse)
	}
	if ref == "" {
		ref = strconv.Itoa(id)
	}

	m := domain.Movie{
		ID:          id,
		Ref:         ref,
		Overview:    d.Overview,
		VoteAverage: d.VoteAverage,
	}

	if d.TitleText != nil {
		m.Title = strings.TrimSpace(d.TitleText.Text)
	}
	if d.ReleaseYear != nil {
		m.ReleaseYear = d.ReleaseYear.Year
	}
	if d.PrimaryImage != nil {
		m.PosterURL = d.PrimaryImage.URL
	}
	if d.Genres != nil {
		for _, g := range d.Genres.Genres {
			if name := strings.TrimSpace(g.Text); name != "" {
				m.GenreNames = append(m.GenreNames, name)
			}
		}
	}
	if m.Overview == "" && d.Plot != nil && d.Plot.PlotText != nil {
		m.Overview = d.Plot.PlotText.PlainText
	}
	if m.VoteAverage == 0 && d.Ratings != nil {
		m.VoteAverage = d.Ratings.AggregateRating
	}

	return m, nil
}

// MapGenres drops null and blank members, keeping server order.
func MapGenres(names []*string) []string {
	genres := make([]string, 0, len(names))
	for _, n := range names {
		if n == nil {
			continue
		}
		if name := strings.TrimSpace(*n); name != "" {
			genres = append(genres, name)
		}
	}
	return genres
}

// digitsOf extracts the decimal digits of a key such as "tt0111161".
func digitsOf(s string) int {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return n
}
