package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/career-coach/internal/aggregate"
	"github.com/jonathan/career-coach/internal/generate"
	"github.com/jonathan/career-coach/internal/orchestrator"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		precursor   *orchestrator.PrecursorMissingError
		invalidArg  *orchestrator.InvalidArgumentError
		unknown     *orchestrator.UnknownActionError
		inflight    *orchestrator.InFlightError
		genFailed   *orchestrator.GenerationFailedError
		persistence *orchestrator.PersistenceFailedError
		aggregation *aggregate.AggregationFailedError
		rateLimited *generate.RateLimitedError
		quota       *generate.QuotaExhaustedError
	)
	switch {
	case errors.As(err, &invalidArg):
		return http.StatusBadRequest
	case errors.As(err, &unknown):
		return http.StatusNotFound
	case errors.As(err, &precursor), errors.As(err, &inflight):
		return http.StatusConflict
	case errors.As(err, &rateLimited), errors.As(err, &quota):
		return http.StatusTooManyRequests
	case errors.As(err, &genFailed):
		return http.StatusBadGateway
	case errors.As(err, &persistence), errors.As(err, &aggregation):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
