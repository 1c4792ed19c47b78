package controllers

import (
	"net/http"

	"github.com/isaacstephens/gymman-backend/api/responses"
	"github.com/isaacstephens/gymman-backend/internal/dashboard"
	"github.com/isaacstephens/gymman-backend/pkg/logger"
)

// DashboardSummary serves the owner counters.
func DashboardSummary(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := svc.Summary(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}
