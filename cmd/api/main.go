package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Lelo88/monument-catalog/internal/config"
	"github.com/Lelo88/monument-catalog/internal/db"
	"github.com/Lelo88/monument-catalog/internal/docs"
	"github.com/Lelo88/monument-catalog/internal/health"
	"github.com/Lelo88/monument-catalog/internal/httpx"
	"github.com/Lelo88/monument-catalog/internal/leads"
	"github.com/Lelo88/monument-catalog/internal/logging"
	"github.com/Lelo88/monument-catalog/internal/metrics"
	"github.com/Lelo88/monument-catalog/internal/products"
	"github.com/Lelo88/monument-catalog/internal/uploads"
)

// appPool es lo que la app usa del pool de pgx.
type appPool interface {
	Ping(ctx context.Context) error
	Close()
	products.Querier
	db.Execer
}

type appDeps struct {
	loadConfig     func() (config.API, error)
	newLogger      func(mode string) (*zap.Logger, error)
	newPool        func(ctx context.Context, url string) (appPool, error)
	listenAndServe func(addr string, handler http.Handler) error
}

// Seams para tests.
var (
	loadConfigFn = func() (config.API, error) {
		if err := config.LoadDotEnv(); err != nil {
			return config.API{}, err
		}
		return config.LoadAPI()
	}
	newLoggerFn = logging.New
	newPoolFn   = func(ctx context.Context, url string) (appPool, error) {
		pool, err := db.NewPool(ctx, url)
		if err != nil {
			return nil, err
		}
		return pool, nil
	}
	listenAndServeFn = http.ListenAndServe
	fatalf           = log.Fatal
)

func main() {
	deps := appDeps{
		loadConfig:     loadConfigFn,
		newLogger:      newLoggerFn,
		newPool:        newPoolFn,
		listenAndServe: listenAndServeFn,
	}

	// Contexto raíz del proceso.
	if err := run(context.Background(), deps); err != nil {
		fatalf(err)
	}
}

func run(ctx context.Context, deps appDeps) error {
	cfg, err := deps.loadConfig()
	if err != nil {
		return err
	}

	logger, err := deps.newLogger(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	pool, err := deps.newPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		return err
	}

	if !cfg.TelegramEnabled() {
		logger.Warn("telegram credentials not configured, POST /leads will fail")
	} else if cfg.PublicBaseURL == "" {
		logger.Warn("PUBLIC_BASE_URL not set, photo URLs are built from the request host")
	}

	router := buildRouter(pool, cfg, logger)

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr))
	return deps.listenAndServe(addr, router)
}

func buildRouter(pool appPool, cfg config.API, logger *zap.Logger) http.Handler {
	m := metrics.New()
	r := chi.NewRouter()

	// Middlewares base para trazabilidad y estabilidad.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(logger))
	r.Use(m.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	// Errores de routing se manejan a nivel router.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, r, http.StatusNotFound, "not_found", "resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	healthHandler := health.New(pool)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Method(http.MethodGet, "/metrics", m.Handler())
	docs.RegisterRoutes(r)

	service := products.NewService(
		products.NewRepository(pool),
		products.WithImportObserver(m),
		products.WithLogger(logger),
	)
	products.RegisterRoutes(r, products.NewHandler(service, cfg.MaxUploadBytes))

	store := uploads.NewDiskStore(cfg.UploadDir)
	uploads.RegisterRoutes(r, uploads.NewHandler(store, cfg.PublicBaseURL, cfg.MaxUploadBytes, logger), store.Dir())

	sender := leads.NewTelegramSender(cfg.TelegramBotToken, cfg.TelegramChatID)
	leads.RegisterRoutes(r, leads.NewHandler(sender, logger, leads.WithPublicBaseURL(cfg.PublicBaseURL)))

	// CORS va por fuera del router para contestar preflight de cualquier ruta.
	return httpx.CORS(r)
}
