package controllers

import (
	"net/http"

	"github.com/isaacstephens/gymman-backend/api/responses"
	"github.com/isaacstephens/gymman-backend/pkg/config"
	"github.com/isaacstephens/gymman-backend/pkg/db"
	pkgerrors "github.com/isaacstephens/gymman-backend/pkg/errors"
	"github.com/isaacstephens/gymman-backend/pkg/logger"
	"go.uber.org/multierr"
)

const envHeader = "X-Gymman-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the datasources; any failure makes the instance
// unready.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		var combined error
		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				combined = multierr.Append(combined, err)
			}
		}
		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				combined = multierr.Append(combined, err)
			}
		}

		if combined != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "dependencies unavailable"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
