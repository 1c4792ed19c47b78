package middleware

import (
	"net/http"

	"github.com/isaacstephens/gymman-backend/api/responses"
	"github.com/isaacstephens/gymman-backend/pkg/enums"
	pkgerrors "github.com/isaacstephens/gymman-backend/pkg/errors"
	"github.com/isaacstephens/gymman-backend/pkg/logger"
)

// RequireRole gates a route on the rank order member < trainer < staff <
// owner. An insufficient role gets the same UNAUTHORIZED answer as a
// missing login, deliberately leaking nothing about the gate itself.
func RequireRole(min enums.Role, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, err := enums.ParseRole(RoleFromContext(r.Context()))
			if err != nil || !role.AtLeast(min) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
