package state

import (
	"strings"
	"unicode/utf8"

	"github.com/mmcdole/cinelist/internal/domain"
)

// Review form limits
const (
	MinCommentLength = 10
	MinRating        = 1
	MaxRating        = 5
)

// Review form field names
const (
	FieldAuthor  = "author"
	FieldRating  = "rating"
	FieldComment = "comment"
)

// validator collects field-level failures in declaration order.
type validator struct {
	errs []domain.FieldError
}

func (v *validator) check(field string, failed bool, message string) *validator {
	if failed {
		v.errs = append(v.errs, domain.FieldError{Field: field, Message: message})
	}
	return v
}

func (v *validator) err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return &domain.ValidationError{Fields: v.errs}
}

// ValidateReview checks a review form before any I/O.
func ValidateReview(in domain.ReviewInput) error {
	comment := strings.TrimSpace(in.Comment)

	v := &validator{}
	v.check(FieldAuthor, strings.TrimSpace(in.Author) == "", "Name is required")
	v.check(FieldRating, in.Rating < MinRating || in.Rating > MaxRating, "Rating must be between 1 and 5")
	if comment == "" {
		v.check(FieldComment, true, "Comment is required")
	} else {
		v.check(FieldComment, utf8.RuneCountInString(comment) < MinCommentLength,
			"Comment must be at least 10 characters long")
	}
	return v.err()
}
