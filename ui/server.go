package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"sync"
	"time"

	"cacscope/domain/metrics"
	"cacscope/domain/series"
	"cacscope/internal"
	"cacscope/internal/config"
	"cacscope/internal/engine"
	"cacscope/internal/testkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// Server is the interactive dashboard over the engine's output. It is a
// thin read-only view: the only meaningful input it accepts is a
// recompute trigger.
type Server struct {
	router    *gin.Engine
	kit       *testkit.Kit
	engine    *engine.Engine
	templates *template.Template
	target    float64
	log       *internal.Logger

	// Cached derived records, refreshed on recompute
	cacheMutex sync.RWMutex
	records    *Records
	computedAt time.Time
}

// Records bundles everything the dashboard displays for one run.
type Records struct {
	RunID        string                   `json:"run_id"`
	Observations []series.Observation     `json:"observations"`
	Summary      metrics.Summary          `json:"summary"`
	Trend        metrics.Trend            `json:"trend"`
	Target       metrics.TargetComparison `json:"target"`
}

// NewServer creates the dashboard server and computes the initial records.
func NewServer(kit *testkit.Kit, eng *engine.Engine, cfg *config.Config) (*Server, error) {
	gin.SetMode(cfg.Server.GinMode)

	funcMap := template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
		"pct":   func(v float64) string { return fmt.Sprintf("%.2f%%", v) },
		"upper": strings.ToUpper,
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		router:    gin.Default(),
		kit:       kit,
		engine:    eng,
		templates: templates,
		target:    cfg.Analysis.Target,
		log:       internal.DefaultLogger,
	}

	if _, err := s.recompute(); err != nil {
		return nil, err
	}

	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	staticSub, err := fs.Sub(embeddedFiles, "static")
	if err == nil {
		s.router.StaticFS("/static", http.FS(staticSub))
	} else {
		s.log.Error("static filesystem unavailable: %v", err)
	}

	s.router.GET("/", s.handleIndex)

	api := s.router.Group("/api")
	{
		api.GET("/observations", s.handleObservations)
		api.GET("/summary", s.handleSummary)
		api.GET("/trend", s.handleTrend)
		api.GET("/target", s.handleTarget)
		api.GET("/dashboard", s.handleDashboard)
		api.GET("/status", s.handleStatus)
		api.POST("/recompute", s.handleRecompute)
	}
}

// recompute re-runs all three operations over the fixture series and
// swaps the cached records.
func (s *Server) recompute() (*Records, error) {
	srs := s.kit.Series()

	summary, err := s.engine.ComputeSummary(srs)
	if err != nil {
		return nil, err
	}
	trend, err := s.engine.ComputeTrend(srs)
	if err != nil {
		return nil, err
	}
	comparison, err := s.engine.ComputeTargetComparison(srs, s.target)
	if err != nil {
		return nil, err
	}

	records := &Records{
		RunID:        uuid.NewString(),
		Observations: srs.Observations(),
		Summary:      summary,
		Trend:        trend,
		Target:       comparison,
	}

	s.cacheMutex.Lock()
	s.records = records
	s.computedAt = time.Now()
	s.cacheMutex.Unlock()

	s.log.Info("dashboard records recomputed, run %s", records.RunID)
	return records, nil
}

// Router exposes the underlying handler for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	s.log.Info("starting dashboard server on %s", addr)
	return s.router.Run(addr)
}
