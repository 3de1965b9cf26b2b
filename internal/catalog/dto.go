package catalog

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// listResponse is the envelope for GET /titles
type listResponse struct {
	Page    int          `json:"page"`
	Next    *string      `json:"next"`
	Entries *int         `json:"entries"`
	Results *[]*TitleDTO `json:"results"`
}

// genresResponse is the envelope for GET /titles/utils/genres.
// The catalog returns null members, so entries are pointers.
type genresResponse struct {
	Results *[]*string `json:"results"`
}

// detailResponse is the envelope for GET /titles/{id}
type detailResponse struct {
	Results *TitleDTO `json:"results"`
}

// TitleDTO is a movie record as returned by the catalog
type TitleDTO struct {
	MongoID      string       `json:"_id,omitempty"`
	ID           flexID       `json:"id"`
	TitleText    *textDTO     `json:"titleText,omitempty"`
	ReleaseYear  *yearDTO     `json:"releaseYear,omitempty"`
	PrimaryImage *imageDTO    `json:"primaryImage,omitempty"`
	Genres       *genreSetDTO `json:"genres,omitempty"`
	Overview     string       `json:"overview,omitempty"`
	Plot         *plotDTO     `json:"plot,omitempty"`
	VoteAverage  float64      `json:"vote_average,omitempty"`
	Ratings      *ratingsDTO  `json:"ratingsSummary,omitempty"`
}

type textDTO struct {
	Text string `json:"text"`
}

type yearDTO struct {
	Year int `json:"year"`
}

type imageDTO struct {
	URL string `json:"url"`
}

type genreSetDTO struct {
	Genres []textDTO `json:"genres"`
}

type plotDTO struct {
	PlotText *struct {
		PlainText string `json:"plainText"`
	} `json:"plotText,omitempty"`
}

type ratingsDTO struct {
	AggregateRating float64 `json:"aggregateRating"`
}

// flexID accepts both numeric ids and string keys such as "tt0111161".
type flexID struct {
	Num int
	Str string
}

func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &f.Str)
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		var fl float64
		if err := json.Unmarshal(data, &fl); err != nil {
			return err
		}
		n = int(fl)
	}
	f.Num = n
	return nil
}

func (f flexID) MarshalJSON() ([]byte, error) {
	if f.Str != "" {
		return json.Marshal(f.Str)
	}
	if f.Num != 0 {
		return json.Marshal(f.Num)
	}
	return []byte("null"), nil
}
