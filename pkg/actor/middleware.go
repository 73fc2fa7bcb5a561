// Package actor carries the caller identity through the request lifecycle.
// Every write operation is attributed to the identity the caller supplies with
// the call; transition guards check that identity against the role registry
// and the item's recorded owner.
package actor

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/beantrail/pkg/httpx"
	"github.com/ghuser/beantrail/pkg/logger"
)

// Header names the HTTP header carrying the caller identity.
const Header = "X-Actor-Id"

// Require is a chi middleware that enforces a caller identity on the request.
// It parses the X-Actor-Id header and injects it into the request context.
// Returns 401 Unauthorized if the header is missing or not a valid UUID.
//
// After this middleware, handlers can safely call actor.FromCtx(r.Context()).
func Require(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(Header)
			if raw == "" {
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "caller identity required"})
				return
			}

			id, err := uuid.Parse(raw)
			if err != nil || id == uuid.Nil {
				log.WarnContext(r.Context(), "invalid actor identity header", "value", raw, "error", err)
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid caller identity"})
				return
			}

			ctx := WithActorID(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
