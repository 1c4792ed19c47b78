package controllers

import (
	"context"
	"net/http"

	"github.com/isaacstephens/gymman-backend/api/middleware"
	"github.com/isaacstephens/gymman-backend/api/responses"
	"github.com/isaacstephens/gymman-backend/api/validators"
	"github.com/isaacstephens/gymman-backend/internal/checkins"
	pkgerrors "github.com/isaacstephens/gymman-backend/pkg/errors"
	"github.com/isaacstephens/gymman-backend/pkg/logger"
)

// CheckinLimiter is the session-backed page counter behind the recent
// check-ins view.
type CheckinLimiter interface {
	CheckinLimit(ctx context.Context, sessionID string) (int, error)
	GrowCheckinLimit(ctx context.Context, sessionID string) (int, error)
}

type checkInRequest struct {
	MemberSearch string `json:"member_search" validate:"required"`
}

// CheckinsCreate records a front-desk check-in resolved from free-form
// search input.
func CheckinsCreate(svc checkins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body checkInRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.CheckIn(r.Context(), body.MemberSearch)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// CheckinsRecent lists the newest check-ins, capped at the caller's
// session page counter.
func CheckinsRecent(svc checkins.Service, limiter CheckinLimiter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}

		limit, err := limiter.CheckinLimit(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load page counter"))
			return
		}

		list, err := svc.ListRecent(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"limit": limit, "checkins": list})
	}
}

// CheckinsLoadMore grows the caller's page counter and returns the
// extended listing.
func CheckinsLoadMore(svc checkins.Service, limiter CheckinLimiter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}

		limit, err := limiter.GrowCheckinLimit(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "grow page counter"))
			return
		}

		list, err := svc.ListRecent(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"limit": limit, "checkins": list})
	}
}
