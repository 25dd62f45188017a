package ui

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"adpulse/adapters/meta"
	"adpulse/domain/ads"
	apperrors "adpulse/internal/errors"
	"adpulse/internal/session"
)

// connectRequest overrides config-level Meta credentials per deployment.
type connectRequest struct {
	AccessToken string `json:"access_token"`
	AdAccountID string `json:"ad_account_id"`
}

// handleMetaConnect builds (or replaces) the Meta API client. Token and
// account fall back to the environment configuration when omitted.
func (s *Server) handleMetaConnect(c *gin.Context) {
	var req connectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.CodeInvalidInput, "parse connect request"))
		return
	}

	token := req.AccessToken
	if token == "" {
		token = s.cfg.Meta.AccessToken
	}
	accountID := req.AdAccountID
	if accountID == "" {
		accountID = s.cfg.Meta.AdAccountID
	}

	client, err := meta.NewClient(meta.Config{
		BaseURL:     s.cfg.Meta.BaseURL,
		APIVersion:  s.cfg.Meta.APIVersion,
		AccessToken: token,
		AdAccountID: accountID,
		Timeout:     s.cfg.Meta.HTTPTimeout,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	// Probe the credentials before accepting them.
	if _, err := client.ListCampaigns(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	s.metaMu.Lock()
	s.metaClient = client
	s.metaMu.Unlock()

	log.Printf("[Server] Meta API connected (account %s)", client.AccountID())
	c.JSON(http.StatusOK, gin.H{"connected": true, "ad_account_id": client.AccountID()})
}

func (s *Server) handleMetaCampaigns(c *gin.Context) {
	s.listMetaEntities(c, func(client *meta.Client) ([]meta.Entity, error) {
		return client.ListCampaigns(c.Request.Context())
	})
}

func (s *Server) handleMetaAdSets(c *gin.Context) {
	s.listMetaEntities(c, func(client *meta.Client) ([]meta.Entity, error) {
		return client.ListAdSets(c.Request.Context())
	})
}

func (s *Server) handleMetaAds(c *gin.Context) {
	s.listMetaEntities(c, func(client *meta.Client) ([]meta.Entity, error) {
		return client.ListAds(c.Request.Context())
	})
}

func (s *Server) listMetaEntities(c *gin.Context, list func(*meta.Client) ([]meta.Entity, error)) {
	client, err := s.metaAPI()
	if err != nil {
		respondError(c, err)
		return
	}
	entities, err := list(client)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entities, "count": len(entities)})
}

// fetchRequest selects what to pull from the insights endpoint.
type fetchRequest struct {
	Level     string         `json:"level"`
	EntityIDs []string       `json:"entity_ids"`
	Range     meta.DateRange `json:"date_range"`
}

// handleMetaFetch pulls daily insights and stores them as a new session,
// so API data flows through the exact same analysis path as uploads.
func (s *Server) handleMetaFetch(c *gin.Context) {
	client, err := s.metaAPI()
	if err != nil {
		respondError(c, err)
		return
	}

	var req fetchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.CodeInvalidInput, "parse fetch request"))
		return
	}

	level := meta.Level(req.Level)
	switch level {
	case meta.LevelCampaign, meta.LevelAdSet, meta.LevelAd:
	case "":
		level = meta.LevelCampaign
	default:
		respondError(c, apperrors.InvalidInput("unknown level: "+req.Level))
		return
	}

	rows, err := client.Insights(c.Request.Context(), meta.InsightsQuery{
		Level:             level,
		EntityIDs:         req.EntityIDs,
		Range:             req.Range,
		AverageOrderValue: s.cfg.Analytics.AverageOrderValue,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	if len(rows) == 0 {
		respondError(c, ads.ErrNoData)
		return
	}

	label := fmt.Sprintf("meta %s insights (%d entities)", level, len(req.EntityIDs))
	sess := s.sessions.Put(session.SourceMeta, label, rows, nil)
	log.Printf("[Server] Meta fetch -> session %s (%d rows)", sess.ID, len(rows))

	c.JSON(http.StatusOK, gin.H{
		"session_id": sess.ID,
		"source":     sess.Source,
		"label":      sess.Label,
		"row_count":  len(rows),
	})
}
