package handler

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"comment-insights-service/analyzer"
	"comment-insights-service/model"
)

// Ask answers a free-form question about the session's comment table.
func (h *CommentHandler) Ask(c *gin.Context) {
	sid := h.sessionID(c)

	var req model.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[WARN] Invalid ask request body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		log.Printf("[WARN] Blank question in ask request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	table, _ := h.sessions.Table(sid)
	if len(table) == 0 {
		log.Printf("[WARN] Ask called with no comments in session")
		c.JSON(http.StatusConflict, gin.H{"error": "no comments loaded, fetch a video first"})
		return
	}

	log.Printf("[INFO] Ask called with question (%d chars) over %d comments", len(question), len(table))

	answer, err := h.analyst.Ask(c.Request.Context(), question, table)
	if err != nil {
		log.Printf("[ERROR] Analysis failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	turn := model.ConversationTurn{Question: question, Answer: answer, AskedAt: time.Now().UTC()}
	h.sessions.AppendTurn(sid, turn)
	log.Printf("[INFO] Answered in %d chars: %q", len(answer), turn.TruncatedAnswer(80))

	c.JSON(http.StatusOK, model.AskResponse{
		Question: turn.Question,
		Answer:   turn.Answer,
		AskedAt:  turn.AskedAt,
	})
}

// GetHistory returns the session's Q&A history, oldest first.
func (h *CommentHandler) GetHistory(c *gin.Context) {
	sid := h.sessionID(c)

	history := h.sessions.History(sid)
	c.JSON(http.StatusOK, gin.H{
		"count":   len(history),
		"history": history,
	})
}

// ClearHistory drops the session's Q&A history.
func (h *CommentHandler) ClearHistory(c *gin.Context) {
	sid := h.sessionID(c)

	h.sessions.ClearHistory(sid)
	log.Printf("[INFO] Cleared Q&A history for session")
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "History cleared",
	})
}

// GetSuggestions returns canned questions the UI can offer.
func (h *CommentHandler) GetSuggestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"suggestions": analyzer.Suggestions(),
	})
}
