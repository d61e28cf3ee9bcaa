package api

import (
	"net/http"
	"path"
	"velvetbite_server/api/middleware"
	"velvetbite_server/config"
	"velvetbite_server/database"
	"velvetbite_server/lib"
	"velvetbite_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	chiware "github.com/go-chi/chi/v5/middleware"
)

func App() chi.Router {
	r := chi.NewRouter()

	// create loggers
	logLevel := gecho.ParseLogLevel(config.GetLogLevel())
	mwLogger := gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(false), gecho.WithLogLevel(logLevel)))
	standardLogger := gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(true), gecho.WithLogLevel(logLevel)))

	// db
	db := database.GetInstance()

	// config
	cfg := config.GetConfig()

	// Initialize services
	sm := services.NewServiceManager(standardLogger, cfg, db)

	if err := sm.BlobService.EnsureDir(); err != nil {
		standardLogger.Fatal("Failed to create upload directory", gecho.Field("error", err))
	}

	// Initialize middleware
	mw := middleware.NewMiddleware(cfg, mwLogger, sm.AuthService)

	// Core infra
	r.Use(chiware.RequestID)
	r.Use(chiware.RealIP)
	r.Use(chiware.Recoverer)

	// Limits & security
	r.Use(mw.BodyLimit(10 * 1024 * 1024))
	r.Use(mw.SecurityHeaders())

	// Observability
	r.Use(gecho.Handlers.CreateLoggingMiddleware(mwLogger))
	r.Use(middleware.MetricsMiddleware)

	// CORS (must be before auth)
	r.Use(mw.SetupCORS().Handler)

	// Register all routes
	NewRouterManager(standardLogger, sm, mw).RegisterRoutes(r)

	// Product image blobs are served straight off disk
	uploadPrefix := path.Join("/", lib.UploadURLPrefix)
	r.Handle(uploadPrefix+"/*", http.StripPrefix(uploadPrefix+"/", http.FileServer(http.Dir(cfg.Upload.Dir))))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		gecho.Success(w,
			gecho.WithMessage("Welcome to the VelvetBite API"),
			gecho.Send(),
		)
	})

	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		gecho.NotFound(w,
			gecho.Send(),
		)
	})

	return r
}
