// Package validation contains input validation rules for user-supplied fields.
package validation

import "unicode/utf8"

// Length bounds for post fields, counted in characters (runes), inclusive.
const (
	TitleMinLen   = 1
	TitleMaxLen   = 200
	ContentMinLen = 1
	ContentMaxLen = 5000
)

// FieldError describes a length-bound violation on a post field. Each variant
// carries its own HTTP status so handlers can distinguish too-long (413) from
// too-short (422) without inspecting the field.
type FieldError struct {
	Field   string
	Status  int
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

var (
	ErrTitleTooLong = &FieldError{
		Field:   "title",
		Status:  413,
		Message: "post title length cannot exceed 200 character limit",
	}
	ErrTitleTooShort = &FieldError{
		Field:   "title",
		Status:  422,
		Message: "post title length cannot be < 1",
	}
	ErrContentTooLong = &FieldError{
		Field:   "content",
		Status:  413,
		Message: "post content length cannot exceed 5000 character limit",
	}
	ErrContentTooShort = &FieldError{
		Field:   "content",
		Status:  422,
		Message: "post content length cannot be < 1",
	}
)

// ValidatePost checks the length bounds on title and content. The check order
// is fixed: title too long, title too short, content too long, content too
// short. When several bounds are violated at once the first in this order is
// the one reported, and both create and edit share it.
func ValidatePost(title, content string) error {
	if utf8.RuneCountInString(title) > TitleMaxLen {
		return ErrTitleTooLong
	}
	if utf8.RuneCountInString(title) < TitleMinLen {
		return ErrTitleTooShort
	}
	if utf8.RuneCountInString(content) > ContentMaxLen {
		return ErrContentTooLong
	}
	if utf8.RuneCountInString(content) < ContentMinLen {
		return ErrContentTooShort
	}
	return nil
}
