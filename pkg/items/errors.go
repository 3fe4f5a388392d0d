package items

import (
	"errors"
	"fmt"
	"net/http"
)

// NotFoundMessage is the message clients see for a missing item.
const NotFoundMessage = "Item not found"

// ErrNotFound matches any *NotFoundError via errors.Is.
var ErrNotFound = errors.New("item not found")

// NotFoundError is returned when no item has the requested identifier.
type NotFoundError struct {
	// ID is the identifier as the caller supplied it. It may not be numeric.
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("item %q not found", e.ID)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// StatusCode returns the HTTP status code for this error.
func (e *NotFoundError) StatusCode() int {
	return http.StatusNotFound
}

// ValidationError is returned when request input cannot be used.
type ValidationError struct {
	Message string
	Field   string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %q: %s", e.Field, e.Message)
	}
	return e.Message
}

// StatusCode returns the HTTP status code for this error.
func (e *ValidationError) StatusCode() int {
	return http.StatusBadRequest
}

// Hint returns a user-friendly suggestion for resolving this error.
func (e *ValidationError) Hint() string {
	if e.Field == "filter" {
		return `Filters are boolean expressions over item fields, e.g. name == "Item1".`
	}
	return "Send a JSON object as the request body."
}

// PayloadTooLargeError is returned when a request body exceeds the limit.
type PayloadTooLargeError struct {
	MaxSize int64
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("request body too large: max %d bytes allowed", e.MaxSize)
}

// StatusCode returns the HTTP status code for this error.
func (e *PayloadTooLargeError) StatusCode() int {
	return http.StatusRequestEntityTooLarge
}

// Hint returns a user-friendly suggestion for resolving this error.
func (e *PayloadTooLargeError) Hint() string {
	return fmt.Sprintf("Reduce request body size to under %d bytes.", e.MaxSize)
}

// StatusCodeError is an interface for errors that have an HTTP status code.
type StatusCodeError interface {
	error
	StatusCode() int
}

// HintError is an interface for errors that provide resolution hints.
type HintError interface {
	error
	Hint() string
}

// ErrorResponse is the JSON body written for every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Hint    string `json:"hint,omitempty"`
}

// ToErrorResponse converts an error to a status code and response body.
// A not-found error renders exactly {"message":"Item not found"}.
func ToErrorResponse(err error) (int, *ErrorResponse) {
	var (
		notFound *NotFoundError
		invalid  *ValidationError
		tooLarge *PayloadTooLargeError
	)

	switch {
	case errors.As(err, &notFound):
		return notFound.StatusCode(), &ErrorResponse{Message: NotFoundMessage}
	case errors.As(err, &invalid):
		return invalid.StatusCode(), &ErrorResponse{
			Message: invalid.Message,
			Field:   invalid.Field,
			Hint:    invalid.Hint(),
		}
	case errors.As(err, &tooLarge):
		return tooLarge.StatusCode(), &ErrorResponse{
			Message: tooLarge.Error(),
			Hint:    tooLarge.Hint(),
		}
	default:
		return http.StatusInternalServerError, &ErrorResponse{Message: "internal error"}
	}
}
