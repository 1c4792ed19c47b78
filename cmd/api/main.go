package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/isaacstephens/gymman-backend/api/routes"
	"github.com/isaacstephens/gymman-backend/internal/auth"
	"github.com/isaacstephens/gymman-backend/internal/checkins"
	"github.com/isaacstephens/gymman-backend/internal/dashboard"
	"github.com/isaacstephens/gymman-backend/internal/exercises"
	"github.com/isaacstephens/gymman-backend/internal/members"
	"github.com/isaacstephens/gymman-backend/internal/payments"
	"github.com/isaacstephens/gymman-backend/internal/staff"
	"github.com/isaacstephens/gymman-backend/internal/trainers"
	"github.com/isaacstephens/gymman-backend/internal/users"
	"github.com/isaacstephens/gymman-backend/pkg/auth/session"
	"github.com/isaacstephens/gymman-backend/pkg/config"
	"github.com/isaacstephens/gymman-backend/pkg/db"
	"github.com/isaacstephens/gymman-backend/pkg/logger"
	"github.com/isaacstephens/gymman-backend/pkg/metrics"
	"github.com/isaacstephens/gymman-backend/pkg/migrate"
	"github.com/isaacstephens/gymman-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.Session)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	usersRepo := users.NewRepository(dbClient.DB())
	membersRepo := members.NewRepository(dbClient.DB())
	trainersRepo := trainers.NewRepository(dbClient.DB())
	paymentsRepo := payments.NewRepository(dbClient.DB())

	membersService, err := members.NewService(dbClient, membersRepo, usersRepo, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create members service", err)
		os.Exit(1)
	}

	staffService, err := staff.NewService(dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create staff service", err)
		os.Exit(1)
	}

	trainersService, err := trainers.NewService(dbClient, trainersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create trainers service", err)
		os.Exit(1)
	}

	paymentsService, err := payments.NewService(dbClient, paymentsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create payments service", err)
		os.Exit(1)
	}

	exercisesService, err := exercises.NewService(dbClient, exercises.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create exercises service", err)
		os.Exit(1)
	}

	checkinsService, err := checkins.NewService(checkins.NewRepository(dbClient.DB()), membersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkins service", err)
		os.Exit(1)
	}

	dashboardService, err := dashboard.NewService(membersRepo, paymentsRepo, trainersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(usersRepo, membersService, sessionManager, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			registry,
			httpMetrics,
			sessionManager,
			authService,
			membersService,
			staffService,
			trainersService,
			paymentsService,
			exercisesService,
			checkinsService,
			dashboardService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
