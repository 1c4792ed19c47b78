package controllers

import (
	"net/http"

	"github.com/isaacstephens/gymman-backend/api/middleware"
	"github.com/isaacstephens/gymman-backend/api/responses"
	"github.com/isaacstephens/gymman-backend/api/validators"
	"github.com/isaacstephens/gymman-backend/internal/trainers"
	pkgerrors "github.com/isaacstephens/gymman-backend/pkg/errors"
	"github.com/isaacstephens/gymman-backend/pkg/logger"
)

type assignClientRequest struct {
	MemberID uint   `json:"member_id" validate:"required"`
	Notes    string `json:"notes,omitempty"`
}

// TrainersAssign pairs a trainer with a member, upserting on repeats.
func TrainersAssign(svc trainers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trainerID, err := validators.URLParamUint(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body assignClientRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Assign(r.Context(), trainerID, body.MemberID, body.Notes); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"assigned": true})
	}
}

// TrainersRelationships lists every trainer-client pairing, optionally
// filtered by name: GET /trainers/relationships?q=.
func TrainersRelationships(svc trainers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListRelationships(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// TrainersMyClients serves the authenticated trainer's own client list.
func TrainersMyClients(svc trainers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}

		list, err := svc.ListClientsForUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}
