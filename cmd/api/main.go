package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/okpyo/crewledger/docs"
	"github.com/okpyo/crewledger/internal/activity"
	"github.com/okpyo/crewledger/internal/billing"
	"github.com/okpyo/crewledger/internal/config"
	"github.com/okpyo/crewledger/internal/database"
	"github.com/okpyo/crewledger/internal/exchange"
	"github.com/okpyo/crewledger/internal/ledger"
	"github.com/okpyo/crewledger/internal/metrics"
	"github.com/okpyo/crewledger/internal/report"
	"github.com/okpyo/crewledger/internal/site"
	"github.com/okpyo/crewledger/internal/team"
	"github.com/okpyo/crewledger/internal/worker"
	mw "github.com/okpyo/crewledger/pkg/middleware"
)

// @title           CrewLedger API
// @version         1.0
// @description     Construction back-office: labor reports, exchange settlement and accommodation billing.
// @BasePath        /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Connected to database successfully")

	metrics.Init()

	// Activity feature
	activityRepo := activity.NewRepository(db)
	activityService := activity.NewService(activityRepo)
	activityHandler := activity.NewHandler(activityService)

	// Team feature (with rate profiles)
	teamRepo := team.NewRepository(db)
	teamService := team.NewService(teamRepo)
	teamHandler := team.NewHandler(teamService, activityService)

	// Worker feature
	workerRepo := worker.NewRepository(db)
	workerService := worker.NewService(workerRepo)
	workerHandler := worker.NewHandler(workerService)

	// Site feature
	siteRepo := site.NewRepository(db)
	siteService := site.NewService(siteRepo)
	siteHandler := site.NewHandler(siteService)

	// Report feature
	reportRepo := report.NewRepository(db)
	reportService := report.NewService(reportRepo)
	reportHandler := report.NewHandler(reportService, activityService)

	// Exchange settlement (reads shifts and rate profiles)
	exchangeService := exchange.NewService(reportRepo, teamRepo)
	exchangeHandler := exchange.NewHandler(exchangeService)

	// Deduction ledger
	ledgerRepo := ledger.NewRepository(db)
	ledgerHandler := ledger.NewHandler(ledgerRepo)

	// Billing feature (posts into the ledger)
	billingRepo := billing.NewRepository(db)
	billingService := billing.NewService(billingRepo, ledgerRepo)
	billingHandler := billing.NewHandler(billingService, activityService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(metrics.Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// API routes (health, metrics and swagger stay outside auth)
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.JWTSecret != "" {
			r.Use(mw.Auth([]byte(cfg.JWTSecret)))
		} else {
			log.Println("JWT_SECRET not set, running with test user middleware")
			r.Use(mw.TestUserMiddleware)
		}

		// Mount feature routers
		r.Mount("/teams", teamHandler.Routes())
		r.Mount("/workers", workerHandler.Routes())
		r.Mount("/sites", siteHandler.Routes())
		r.Mount("/reports", reportHandler.Routes())
		r.Mount("/exchange", exchangeHandler.Routes())
		r.Mount("/billing", billingHandler.Routes())
		r.Mount("/ledger", ledgerHandler.Routes())
		r.Mount("/activity", activityHandler.Routes())
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
