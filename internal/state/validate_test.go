package state

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/cinelist/internal/domain"
)

func TestValidateReview_Accepts(t *testing.T) {
	inputs := []domain.ReviewInput{
		{Author: "ana", Rating: 1, Comment: "0123456789"},
		{Author: " bo ", Rating: 5, Comment: "  exactly ten  "},
		{Author: "cy", Rating: 3, Comment: "ten runes: éééééééééé"},
	}
	for _, in := range inputs {
		assert.NoError(t, ValidateReview(in), "%+v", in)
	}
}

func TestValidateReview_CollectsAllFields(t *testing.T) {
	err := ValidateReview(domain.ReviewInput{Author: " ", Rating: 9, Comment: "short"})
	require.Error(t, err)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 3)
	assert.Equal(t, "Name is required", verr.Message(FieldAuthor))
	assert.Equal(t, "Rating must be between 1 and 5", verr.Message(FieldRating))
	assert.Equal(t, "Comment must be at least 10 characters long", verr.Message(FieldComment))
}

func TestValidateReview_EmptyComment(t *testing.T) {
	err := ValidateReview(domain.ReviewInput{Author: "ana", Rating: 3, Comment: "   "})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Comment is required", verr.Message(FieldComment))
	assert.Empty(t, verr.Message(FieldAuthor))
}
