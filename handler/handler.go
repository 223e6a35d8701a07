package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"comment-insights-service/config"
	"comment-insights-service/fetcher"
	"comment-insights-service/model"
	"comment-insights-service/session"
)

const sessionCookie = "session_id"

// CommentSource retrieves comment tables for a set of video ids.
type CommentSource interface {
	FetchComments(videoIDs []string, opts fetcher.Options) (model.CommentTable, error)
}

// Analyst answers a question about a comment table.
type Analyst interface {
	Ask(ctx context.Context, question string, table model.CommentTable) (string, error)
}

// CommentHandler wires the HTTP surface to the fetcher, the analyzer and
// the per-browser session store.
type CommentHandler struct {
	config   *config.Config
	source   CommentSource
	analyst  Analyst
	sessions *session.Store
}

func NewCommentHandler(cfg *config.Config, source CommentSource, analyst Analyst, sessions *session.Store) *CommentHandler {
	return &CommentHandler{
		config:   cfg,
		source:   source,
		analyst:  analyst,
		sessions: sessions,
	}
}

// sessionID resolves the caller's session from the request cookie, minting
// a new session (and setting the cookie) when none is valid.
func (h *CommentHandler) sessionID(c *gin.Context) string {
	cookie, _ := c.Cookie(sessionCookie)
	id := h.sessions.GetOrCreate(cookie)
	if id != cookie {
		c.SetCookie(sessionCookie, id, int(h.config.SessionTTL.Seconds()), "/", "", false, true)
	}
	return id
}

// HealthCheck reports liveness.
func (h *CommentHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "comment-insights-service",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
