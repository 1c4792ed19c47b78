package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/isaacstephens/gymman-backend/api/controllers"
	"github.com/isaacstephens/gymman-backend/api/middleware"
	"github.com/isaacstephens/gymman-backend/internal/auth"
	"github.com/isaacstephens/gymman-backend/internal/checkins"
	"github.com/isaacstephens/gymman-backend/internal/dashboard"
	"github.com/isaacstephens/gymman-backend/internal/exercises"
	"github.com/isaacstephens/gymman-backend/internal/members"
	"github.com/isaacstephens/gymman-backend/internal/payments"
	"github.com/isaacstephens/gymman-backend/internal/staff"
	"github.com/isaacstephens/gymman-backend/internal/trainers"
	"github.com/isaacstephens/gymman-backend/pkg/auth/session"
	"github.com/isaacstephens/gymman-backend/pkg/config"
	"github.com/isaacstephens/gymman-backend/pkg/db"
	"github.com/isaacstephens/gymman-backend/pkg/enums"
	"github.com/isaacstephens/gymman-backend/pkg/logger"
	"github.com/isaacstephens/gymman-backend/pkg/metrics"
)

type sessionManager interface {
	session.Checker
	CheckinLimit(ctx context.Context, sessionID string) (int, error)
	GrowCheckinLimit(ctx context.Context, sessionID string) (int, error)
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP db.Pinger,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	sessions sessionManager,
	authService auth.Service,
	membersService members.Service,
	staffService staff.Service,
	trainersService trainers.Service,
	paymentsService payments.Service,
	exercisesService exercises.Service,
	checkinsService checkins.Service,
	dashboardService dashboard.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(httpMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(authService, logg))
		r.Post("/register", controllers.AuthRegister(authService, logg))
		r.With(middleware.Auth(cfg.JWT, sessions, logg)).Post("/logout", controllers.AuthLogout(authService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))

		// Any authenticated account. Roles rank member < trainer < staff
		// < owner, so the higher roles pass through every gate below.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.RoleMember, logg))
			r.Post("/exercises", controllers.ExercisesLog(exercisesService, logg))
			r.Patch("/exercises/{id}", controllers.ExercisesModify(exercisesService, logg))
			r.Delete("/exercises/{id}", controllers.ExercisesDelete(exercisesService, logg))
			r.Get("/members/{id}/exercises", controllers.ExercisesList(exercisesService, logg))
			r.Get("/members/{id}/exercises/stats", controllers.ExercisesStats(exercisesService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.RoleTrainer, logg))
			r.Get("/trainers/me/clients", controllers.TrainersMyClients(trainersService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.RoleStaff, logg))

			r.Get("/members", controllers.MembersLookup(membersService, logg))
			r.Patch("/members/{id}/email", controllers.MembersUpdateEmail(membersService, logg))
			r.Post("/members/{id}/phones", controllers.MembersAddPhone(membersService, logg))
			r.Delete("/members/{id}/phones/{phoneId}", controllers.MembersDeletePhone(membersService, logg))
			r.Post("/members/{id}/contacts", controllers.MembersAddContact(membersService, logg))
			r.Put("/members/{id}/contacts/{contactId}", controllers.MembersUpdateContact(membersService, logg))
			r.Delete("/members/{id}/contacts/{contactId}", controllers.MembersDeleteContact(membersService, logg))

			r.Post("/trainers/{id}/clients", controllers.TrainersAssign(trainersService, logg))
			r.Get("/trainers/relationships", controllers.TrainersRelationships(trainersService, logg))

			r.Route("/payments", func(r chi.Router) {
				r.Post("/", controllers.PaymentsAdd(paymentsService, logg))
				r.Get("/", controllers.PaymentsSearch(paymentsService, logg))
				r.Get("/pending", controllers.PaymentsPending(paymentsService, logg))
				r.Get("/revenue", controllers.PaymentsRevenue(paymentsService, logg))
			})

			r.Route("/checkins", func(r chi.Router) {
				r.Post("/", controllers.CheckinsCreate(checkinsService, logg))
				r.Get("/recent", controllers.CheckinsRecent(checkinsService, sessions, logg))
				r.Post("/load-more", controllers.CheckinsLoadMore(checkinsService, sessions, logg))
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.RoleOwner, logg))
			r.Get("/dashboard", controllers.DashboardSummary(dashboardService, logg))
			r.Post("/members", controllers.MembersCreate(membersService, logg))
			r.Delete("/members/{id}", controllers.MembersDelete(membersService, logg))
			r.Post("/staff", controllers.StaffRegister(staffService, logg))
			r.Post("/staff/{id}/trainer", controllers.StaffRegisterTrainer(trainersService, logg))
		})
	})

	return r
}
