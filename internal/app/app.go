package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/NourJadiri/invox-app/internal/config"
	"github.com/NourJadiri/invox-app/internal/delivery/httpd"
	"github.com/NourJadiri/invox-app/internal/document"
	"github.com/NourJadiri/invox-app/internal/repository"
	"github.com/NourJadiri/invox-app/internal/service"
	"github.com/NourJadiri/invox-app/internal/service/integration"
	"github.com/NourJadiri/invox-app/internal/storage"
)

type App struct {
	server *http.Server
	logger zerolog.Logger
	config *config.Config
	db     *sql.DB
}

func New(cfg *config.Config, log zerolog.Logger, db *sql.DB) (*App, error) {
	calendarClient := integration.NewGoogleCalendarClient(
		cfg.Google.CalendarID,
		cfg.Google.TimeZone,
		cfg.Google.Timeout,
		cfg.Google.RetryCount,
		cfg.Google.RetryDelay,
		log,
	)

	var archive storage.Archive
	if cfg.Storage.Enabled {
		var err error
		archive, err = storage.NewMinIOArchive(cfg.Storage, log)
		if err != nil {
			log.Error().Err(err).Msg("Failed to create PDF archive")
			// The archive is optional, PDFs are still generated on the fly
			archive = nil
		}
	}

	studentRepo := repository.NewStudentRepository(db, log)
	lessonRepo := repository.NewLessonRepository(db, log)
	invoiceRepo := repository.NewInvoiceRepository(db, log)

	studentService := service.NewStudentService(studentRepo, lessonRepo, log)
	lessonService := service.NewLessonService(lessonRepo, studentRepo, calendarClient, cfg.Google.EventColorID, log)
	invoiceService := service.NewInvoiceService(invoiceRepo, lessonRepo, log)
	pricingService := service.NewPricingService(lessonRepo, log)
	syncService := service.NewCalendarSyncService(lessonRepo, studentRepo, calendarClient, cfg.Google.EventColorID, log)

	renderer := document.NewWkhtmltopdfRenderer(log)

	handler := httpd.NewHandler(
		studentService,
		lessonService,
		invoiceService,
		pricingService,
		syncService,
		renderer,
		archive,
		cfg.Invoice,
		log,
	)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		server: server,
		logger: log,
		config: cfg,
		db:     db,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info().Msgf("Starting invox on %s", a.config.Server.Address)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down invox...")

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close database connection")
		}
	}

	return a.server.Shutdown(ctx)
}
