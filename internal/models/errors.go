package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the standardized API error body. Every failure the API can
// produce is reported as a single message string.
type ErrorResponse struct {
	Message string `json:"message"`
}

// AppError is a custom application error carrying a machine-readable code
// alongside the user-facing message.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Sentinel errors for the recurring domain outcomes. Handlers compare with
// errors.Is to pick the HTTP status; the Message field is the exact body text
// the client contract requires.
var (
	ErrUserExists    = &AppError{Code: "USER_EXISTS", Message: "User already exists!"}
	ErrMissingLogin  = &AppError{Code: "MISSING_CREDENTIALS", Message: "Could not verify!"}
	ErrUnknownUser   = &AppError{Code: "UNKNOWN_USER", Message: "Could not verify user!"}
	ErrWrongPassword = &AppError{Code: "WRONG_PASSWORD", Message: "Could not verify password!"}
	ErrMissingToken  = &AppError{Code: "MISSING_TOKEN", Message: "Token is missing"}
	ErrInvalidToken  = &AppError{Code: "INVALID_TOKEN", Message: "Invalid token!"}
	ErrPostNotFound  = &AppError{Code: "POST_NOT_FOUND", Message: "post does not exist"}
	ErrNotPostOwner  = &AppError{Code: "NOT_POST_OWNER", Message: "post does not belong to user"}
)

// NewValidationError creates a validation error with the given message.
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: message,
	}
}

// NewInternalError wraps an unexpected error. The wrapped cause is logged but
// never serialized to the client.
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "Internal server error",
		Err:     err,
	}
}

// RespondWithError writes a standardized error response.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	if appErr, ok := err.(*AppError); ok {
		response = ErrorResponse{Message: appErr.Message}
	} else {
		response = ErrorResponse{Message: err.Error()}
	}

	return c.Status(status).JSON(response)
}
