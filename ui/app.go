package ui

import (
	"encoding/json"
	"fmt"
	"net/http"

	"cacscope/internal"
	"cacscope/internal/engine"
	"cacscope/internal/errors"
	"cacscope/internal/testkit"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// App is the headless JSON-only API surface over the same engine the
// dashboard uses. Every request recomputes from the series - the input
// is small enough that caching buys nothing here.
type App struct {
	router *chi.Mux
	kit    *testkit.Kit
	engine *engine.Engine
	target float64
	port   string
	log    *internal.Logger
}

// AppConfig holds API application configuration
type AppConfig struct {
	Port   string
	Target float64
}

// NewApp creates a new API application
func NewApp(cfg AppConfig) (*App, error) {
	kit, err := testkit.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize fixture kit: %w", err)
	}

	target := cfg.Target
	if target == 0 {
		target = kit.Target()
	}

	app := &App{
		router: chi.NewRouter(),
		kit:    kit,
		engine: engine.New(),
		target: target,
		port:   cfg.Port,
		log:    internal.DefaultLogger,
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app, nil
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

func (a *App) setupRoutes() {
	a.router.Get("/api/observations", a.handleObservations)
	a.router.Get("/api/summary", a.handleSummary)
	a.router.Get("/api/trend", a.handleTrend)
	a.router.Get("/api/target", a.handleTarget)
}

func (a *App) handleObservations(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"observations": a.kit.Series().Observations(),
		"count":        a.kit.Series().Len(),
	})
}

func (a *App) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := a.engine.ComputeSummary(a.kit.Series())
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, summary)
}

func (a *App) handleTrend(w http.ResponseWriter, r *http.Request) {
	trend, err := a.engine.ComputeTrend(a.kit.Series())
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, trend)
}

func (a *App) handleTarget(w http.ResponseWriter, r *http.Request) {
	comparison, err := a.engine.ComputeTargetComparison(a.kit.Series(), a.target)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, comparison)
}

func (a *App) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		a.log.Error("error encoding response: %v", err)
	}
}

func (a *App) writeError(w http.ResponseWriter, err error) {
	a.log.Error("engine failure: %v", err)
	a.writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
		"error":   errors.GetCode(err),
		"message": err.Error(),
	})
}

// Router exposes the underlying handler for tests.
func (a *App) Router() http.Handler {
	return a.router
}

// Start starts the HTTP server
func (a *App) Start() error {
	addr := ":" + a.port
	a.log.Info("starting API server on %s", addr)
	return http.ListenAndServe(addr, a.router)
}
