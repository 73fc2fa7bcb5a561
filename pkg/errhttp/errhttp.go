// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/beantrail/pkg/httpx"
	supplydomain "github.com/ghuser/beantrail/services/supplychain/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, supplydomain.ErrItemNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, supplydomain.ErrDuplicateUPC):
		return http.StatusConflict // 409
	case errors.Is(err, supplydomain.ErrUnauthorized):
		return http.StatusForbidden // 403
	case errors.Is(err, supplydomain.ErrInvalidState):
		return http.StatusConflict // 409
	case errors.Is(err, supplydomain.ErrInsufficientFunds):
		return http.StatusPaymentRequired // 402
	case errors.Is(err, supplydomain.ErrInvalidPrice):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, supplydomain.ErrUnknownRole):
		return http.StatusUnprocessableEntity // 422
	default:
		return http.StatusInternalServerError // 500
	}
}
