package ui

import (
	"net/http"
	"time"

	"cacscope/internal/errors"

	"github.com/gin-gonic/gin"
)

func (s *Server) currentRecords() (*Records, time.Time) {
	s.cacheMutex.RLock()
	defer s.cacheMutex.RUnlock()
	return s.records, s.computedAt
}

func (s *Server) handleIndex(c *gin.Context) {
	records, computedAt := s.currentRecords()

	data := map[string]interface{}{
		"Title":      "CAC Analysis Dashboard - 2024",
		"Records":    records,
		"ComputedAt": computedAt.Format("2006-01-02 15:04:05"),
	}
	s.renderTemplate(c, "index.html", data)
}

func (s *Server) handleObservations(c *gin.Context) {
	records, _ := s.currentRecords()
	c.JSON(http.StatusOK, gin.H{
		"observations": records.Observations,
		"count":        len(records.Observations),
	})
}

func (s *Server) handleSummary(c *gin.Context) {
	records, _ := s.currentRecords()
	c.JSON(http.StatusOK, records.Summary)
}

func (s *Server) handleTrend(c *gin.Context) {
	records, _ := s.currentRecords()
	c.JSON(http.StatusOK, records.Trend)
}

func (s *Server) handleTarget(c *gin.Context) {
	records, _ := s.currentRecords()
	c.JSON(http.StatusOK, records.Target)
}

func (s *Server) handleDashboard(c *gin.Context) {
	records, computedAt := s.currentRecords()
	c.JSON(http.StatusOK, gin.H{
		"records":     records,
		"computed_at": computedAt,
	})
}

func (s *Server) handleStatus(c *gin.Context) {
	_, computedAt := s.currentRecords()
	c.JSON(http.StatusOK, gin.H{
		"status":      "ready",
		"computed_at": computedAt.Format("2006-01-02 15:04:05"),
	})
}

// handleRecompute re-runs the engine over the series and returns the
// fresh records. Engine failures surface with their error code - the
// cached records are left untouched and nothing is defaulted.
func (s *Server) handleRecompute(c *gin.Context) {
	records, err := s.recompute()
	if err != nil {
		s.respondEngineError(c, err)
		return
	}

	_, computedAt := s.currentRecords()
	c.JSON(http.StatusOK, gin.H{
		"records":     records,
		"computed_at": computedAt,
	})
}

func (s *Server) respondEngineError(c *gin.Context, err error) {
	s.log.Error("engine failure: %v", err)
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":   errors.GetCode(err),
		"message": err.Error(),
	})
}
