package rest

import (
	"errors"
	"net/http"

	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/domain"
)

// Error kinds reported to clients.
const (
	KindInvalidRequest  = "invalid_request"
	KindUnknownLocation = "unknown_location"
	KindOutOfRange      = "out_of_range"
	KindScoringFailed   = "scoring_failed"
	KindNotFound        = "not_found"
	KindInternal        = "internal"
)

// mapDomainError turns a use case error into a status code and a client-facing body.
func mapDomainError(err error) (int, ErrorResponse) {
	var unknownLoc *domain.UnknownLocationError
	var outOfRange *domain.OutOfRangeError

	switch {
	case errors.As(err, &unknownLoc):
		return http.StatusUnprocessableEntity, ErrorResponse{
			Error: err.Error(),
			Kind:  KindUnknownLocation,
			Field: domain.FieldLocation,
		}
	case errors.As(err, &outOfRange):
		return http.StatusUnprocessableEntity, ErrorResponse{
			Error: err.Error(),
			Kind:  KindOutOfRange,
			Field: outOfRange.Field,
			Min:   &outOfRange.Min,
			Max:   &outOfRange.Max,
		}
	case errors.Is(err, domain.ErrScoring):
		return http.StatusBadGateway, ErrorResponse{
			Error: "the pricing model could not score this query",
			Kind:  KindScoringFailed,
		}
	case errors.Is(err, domain.ErrPredictionNotFound):
		return http.StatusNotFound, ErrorResponse{Error: err.Error(), Kind: KindNotFound}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "internal error", Kind: KindInternal}
	}
}
