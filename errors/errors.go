package errors

import (
	"net/http"
)

// Error is the client-facing error type. Status is the HTTP status the API
// boundary responds with when the error surfaces there.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *Error) Error() string {
	return e.Message
}

// New creates a new Error with the given message and status code.
func New(message string, status int) *Error {
	return &Error{
		Message: message,
		Status:  status,
	}
}

var (
	ErrNotFound            = New("record not found", http.StatusNotFound)
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrUnauthorized        = New("unauthorized", http.StatusUnauthorized)

	// Vote business rules. Rejected actions, not system faults.
	ErrSelfVote      = New("you cannot vote on your own report", http.StatusConflict)
	ErrDuplicateVote = New("you have already voted on this report", http.StatusConflict)

	// ErrInvalidState means the report's current status does not permit the
	// attempted operation. State is left untouched.
	ErrInvalidState = New("action not available in the report's current status", http.StatusBadRequest)

	// ErrForbidden means the actor lacks the required relationship to the
	// report (not the assigned worker, not an admin).
	ErrForbidden = New("you are not permitted to act on this report", http.StatusForbidden)

	// ErrConflict is an optimistic-concurrency collision on a status
	// transition. Refetch and retry once.
	ErrConflict = New("report was modified concurrently, please retry", http.StatusConflict)
)

// StatusFor maps an error to the HTTP status it should surface with. Unknown
// errors are treated as internal faults.
func StatusFor(err error) int {
	if e, ok := err.(*Error); ok {
		return e.Status
	}
	return http.StatusInternalServerError
}
