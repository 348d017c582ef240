package controllers

import (
	"net/http"

	"github.com/angelmondragon/roster-backend/api/responses"
	"github.com/angelmondragon/roster-backend/pkg/config"
	"github.com/angelmondragon/roster-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/roster-backend/pkg/errors"
	"github.com/angelmondragon/roster-backend/pkg/logger"
	pkgredis "github.com/angelmondragon/roster-backend/pkg/redis"
)

const envHeader = "X-Roster-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP pkgredis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
				return
			}
		}
		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
