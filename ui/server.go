// Package ui exposes the analysis engine over HTTP: spreadsheet upload,
// Meta API pulls, and per-session metric/recommendation/report endpoints.
package ui

import (
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"adpulse/adapters/meta"
	"adpulse/domain/ads"
	"adpulse/internal/config"
	apperrors "adpulse/internal/errors"
	"adpulse/internal/session"
)

// Server wires the HTTP routes to the session store and, once connected,
// a Meta API client.
type Server struct {
	router   *gin.Engine
	cfg      *config.Config
	sessions *session.Store

	metaMu     sync.RWMutex
	metaClient *meta.Client
}

func NewServer(cfg *config.Config) *Server {
	s := &Server{
		router:   gin.Default(),
		cfg:      cfg,
		sessions: session.NewStore(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	api := s.router.Group("/api")

	api.POST("/upload", s.handleUpload)

	api.POST("/meta/connect", s.handleMetaConnect)
	api.GET("/meta/campaigns", s.handleMetaCampaigns)
	api.GET("/meta/adsets", s.handleMetaAdSets)
	api.GET("/meta/ads", s.handleMetaAds)
	api.POST("/meta/fetch", s.handleMetaFetch)

	api.GET("/benchmarks", s.handleBenchmarks)

	api.GET("/sessions", s.handleSessionList)
	api.DELETE("/sessions/:id", s.handleSessionDelete)

	sess := api.Group("/sessions/:id")
	sess.GET("/metrics", s.handleMetrics)
	sess.GET("/daily", s.handleDaily)
	sess.GET("/funnel", s.handleFunnel)
	sess.GET("/recommendations", s.handleRecommendations)
	sess.GET("/notes", s.handleNotes)
	sess.GET("/rows", s.handleRows)
	sess.GET("/compare", s.handleCompare)
	sess.GET("/report", s.handleReport)
	sess.GET("/report.md", s.handleReportMarkdown)
}

// Start runs the HTTP server on addr, blocking until it exits.
func (s *Server) Start(addr string) error {
	log.Printf("[Server] Listening on %s", addr)
	return s.router.Run(addr)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// metaAPI returns the connected client, or an invalid-input error when
// /api/meta/connect has not been called yet.
func (s *Server) metaAPI() (*meta.Client, error) {
	s.metaMu.RLock()
	defer s.metaMu.RUnlock()
	if s.metaClient == nil {
		return nil, apperrors.InvalidInput("meta api not connected; call /api/meta/connect first")
	}
	return s.metaClient, nil
}

// respondError maps application error codes onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch apperrors.GetCode(err) {
	case apperrors.CodeInvalidInput:
		status = http.StatusBadRequest
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
	case apperrors.CodeExternalService:
		status = http.StatusBadGateway
	case apperrors.CodeConfigInvalid:
		status = http.StatusBadRequest
	}

	// Sheet rejections mean the payload was readable but unusable.
	if ads.IsSheetRejection(err) || errors.Is(err, ads.ErrNoData) {
		status = http.StatusUnprocessableEntity
	}

	log.Printf("[Server] Request failed: %v", err)
	c.JSON(status, gin.H{"error": err.Error()})
}
