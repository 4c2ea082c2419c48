package api

import (
	"errors"
	"net/http"

	service "github.com/iPranay05/OneAthleteOneNation-sub000/internal/app"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest      = errors.New("bad request")
	ErrAthleteNotFound = errors.New("athlete not found")
)

// Error codes written in errorResponse.Code.
const (
	codeBadRequest    = "bad_request"
	codeNotFound      = "not_found"
	codeBackpressure  = "backpressure"
	codePersistFailed = "persist_failed"
	codeInternal      = "internal"
)

// classify maps an engine error to a status and code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, codeBadRequest
	case errors.Is(err, ErrAthleteNotFound), errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, service.ErrBackpressure):
		return http.StatusTooManyRequests, codeBackpressure
	case errors.Is(err, service.ErrPersist):
		return http.StatusServiceUnavailable, codePersistFailed
	default:
		return http.StatusInternalServerError, codeInternal
	}
}
