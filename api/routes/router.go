package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/roster-backend/api/controllers"
	"github.com/angelmondragon/roster-backend/api/middleware"
	"github.com/angelmondragon/roster-backend/internal/assignments"
	"github.com/angelmondragon/roster-backend/internal/shifts"
	"github.com/angelmondragon/roster-backend/internal/timeslots"
	"github.com/angelmondragon/roster-backend/internal/users"
	"github.com/angelmondragon/roster-backend/pkg/config"
	"github.com/angelmondragon/roster-backend/pkg/db"
	"github.com/angelmondragon/roster-backend/pkg/logger"
	pkgredis "github.com/angelmondragon/roster-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *pkgredis.Client,
	registry *prometheus.Registry,
	timeslotService timeslots.Service,
	userService users.Service,
	shiftService shifts.Service,
	assignmentService assignments.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		if redisClient != nil {
			r.Use(middleware.Idempotency(redisClient, logg, cfg.Idempotency.TTL))
		}

		r.Route("/timeslots", func(r chi.Router) {
			r.Post("/", controllers.TimeslotCreate(timeslotService, logg))
			r.Get("/", controllers.TimeslotList(timeslotService, logg))
			r.Get("/{timeslotId}", controllers.TimeslotFetch(timeslotService, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", controllers.UserCreate(userService, logg))
			r.Get("/", controllers.UserList(userService, logg))
			r.Get("/{userId}", controllers.UserFetch(userService, logg))
			r.Patch("/{userId}", controllers.UserUpdate(userService, logg))
			r.Delete("/{userId}", controllers.UserDelete(userService, logg))

			r.Route("/{userId}/assignments", func(r chi.Router) {
				r.Get("/", controllers.UserAssignmentList(assignmentService, logg))
				r.Get("/day/{date}", controllers.UserAssignmentDay(assignmentService, logg))
				r.Get("/week/{startDate}", controllers.UserAssignmentWeek(assignmentService, logg))
			})
		})

		r.Route("/shifts", func(r chi.Router) {
			r.Post("/", controllers.ShiftCreate(shiftService, logg))
			r.Get("/", controllers.ShiftList(shiftService, logg))
			r.Get("/open", controllers.ShiftListOpen(shiftService, logg))
			r.Post("/repeat", controllers.ShiftRepeat(shiftService, logg))
			r.Get("/{shiftId}", controllers.ShiftFetch(shiftService, logg))
			r.Patch("/{shiftId}", controllers.ShiftUpdate(shiftService, logg))
			r.Delete("/{shiftId}", controllers.ShiftDelete(shiftService, logg))
			r.Post("/{shiftId}/pickup", controllers.ShiftPickup(assignmentService, logg))
		})

		r.Route("/assignments", func(r chi.Router) {
			r.Post("/", controllers.AssignmentCreate(assignmentService, logg))
			r.Get("/", controllers.AssignmentList(assignmentService, logg))
			r.Get("/{assignmentId}", controllers.AssignmentFetch(assignmentService, logg))
			r.Post("/{assignmentId}/withdraw", controllers.AssignmentWithdraw(assignmentService, logg))
			r.Delete("/{assignmentId}", controllers.AssignmentDelete(assignmentService, logg))
		})
	})

	return r
}
