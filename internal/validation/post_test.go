package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePost(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		title   string
		content string
		wantErr error
	}{
		{"Valid", "a title", "some content", nil},
		{"Title At Max", strings.Repeat("a", 200), "content", nil},
		{"Title Over Max", strings.Repeat("a", 201), "content", ErrTitleTooLong},
		{"Title Empty", "", "content", ErrTitleTooShort},
		{"Content At Max", "title", strings.Repeat("b", 5000), nil},
		{"Content Over Max", "title", strings.Repeat("b", 5001), ErrContentTooLong},
		{"Content Empty", "title", "", ErrContentTooShort},
		{"Title Checked Before Content", "", "", ErrTitleTooShort},
		{"Too Long Checked Before Too Short", strings.Repeat("a", 201), "", ErrTitleTooLong},
		{"Multibyte Title At Max", strings.Repeat("ä", 200), "content", nil},
		{"Multibyte Content Over Max", "title", strings.Repeat("ä", 5001), ErrContentTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePost(tt.title, tt.content)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestFieldErrorStatus(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 413, ErrTitleTooLong.Status)
	assert.Equal(t, 422, ErrTitleTooShort.Status)
	assert.Equal(t, 413, ErrContentTooLong.Status)
	assert.Equal(t, 422, ErrContentTooShort.Status)
}
