package handler

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"comment-insights-service/export"
	"comment-insights-service/fetcher"
	"comment-insights-service/metrics"
	"comment-insights-service/model"
	"comment-insights-service/utils"
)

// previewLimit caps the number of records echoed back in fetch responses.
const previewLimit = 20

// FetchComments resolves video ids from the request, retrieves their
// comments and stores the resulting table in the caller's session.
func (h *CommentHandler) FetchComments(c *gin.Context) {
	sid := h.sessionID(c)

	var req model.FetchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[WARN] Invalid fetch request body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	raw := strings.Join(append([]string{req.Input}, req.Inputs...), "\n")
	videoIDs := utils.ExtractVideoIDs(raw)
	if len(videoIDs) == 0 {
		log.Printf("[WARN] No valid video ID found in fetch request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "no valid YouTube video ID or URL found"})
		return
	}

	log.Printf("[INFO] FetchComments called for %d video(s): %v", len(videoIDs), videoIDs)
	metrics.FetchProgress.Set(0)

	maxPages := req.MaxPages
	if maxPages <= 0 {
		maxPages = h.config.MaxCommentPages
	}
	opts := fetcher.Options{
		IncludeReplies: req.IncludeReplies,
		Order:          req.Order,
		MaxPages:       maxPages,
		Progress: func(count int) {
			metrics.FetchProgress.Set(float64(count))
			log.Printf("[DEBUG] Fetch progress: %d record(s)", count)
		},
	}

	table, err := h.source.FetchComments(videoIDs, opts)
	if err != nil {
		log.Printf("[ERROR] FetchComments failed for %v: %v", videoIDs, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	videos := videoSummaries(videoIDs, table)
	h.sessions.SetTable(sid, table, videos)

	preview := table
	if len(preview) > previewLimit {
		preview = preview[:previewLimit]
	}
	result := model.FetchResult{
		Count:     len(table),
		Videos:    videos,
		Preview:   preview,
		FetchedAt: time.Now().UTC(),
	}
	if len(table) == 0 {
		result.Message = "No comments found. The video may have comments disabled."
	} else {
		result.Message = fmt.Sprintf("Fetched %d comments from %d video(s)", len(table), len(videoIDs))
	}

	log.Printf("[INFO] Stored %d comments in session for %d video(s)", len(table), len(videoIDs))
	c.JSON(http.StatusOK, result)
}

// GetComments returns the session's current comment table.
func (h *CommentHandler) GetComments(c *gin.Context) {
	sid := h.sessionID(c)

	table, _ := h.sessions.Table(sid)
	c.JSON(http.StatusOK, gin.H{
		"count":    len(table),
		"videos":   h.sessions.Videos(sid),
		"comments": table,
	})
}

// ExportCSV streams the session's comment table as a UTF-8 CSV download.
func (h *CommentHandler) ExportCSV(c *gin.Context) {
	sid := h.sessionID(c)

	table, _ := h.sessions.Table(sid)
	if len(table) == 0 {
		log.Printf("[WARN] CSV export requested with no comments in session")
		c.JSON(http.StatusNotFound, gin.H{"error": "no comments to export, fetch a video first"})
		return
	}

	videoID := ""
	if ids := table.VideoIDs(); len(ids) == 1 {
		videoID = ids[0]
	}
	filename := export.Filename(videoID, time.Now())

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	if err := export.Write(c.Writer, table); err != nil {
		log.Printf("[ERROR] CSV export failed after headers were sent: %v", err)
		return
	}
	log.Printf("[INFO] Exported %d comments as %s", len(table), filename)
}

// GetVideo returns the summaries of the videos behind the current table.
func (h *CommentHandler) GetVideo(c *gin.Context) {
	sid := h.sessionID(c)

	videos := h.sessions.Videos(sid)
	c.JSON(http.StatusOK, gin.H{
		"count":  len(videos),
		"videos": videos,
	})
}

func videoSummaries(requested []string, table model.CommentTable) []model.VideoSummary {
	summaries := make([]model.VideoSummary, 0, len(requested))
	for _, id := range requested {
		title := table.TitleFor(id)
		if title == "" {
			title = fetcher.UnknownTitle
		}
		summaries = append(summaries, model.VideoSummary{
			VideoID:  id,
			Title:    title,
			WatchURL: "https://www.youtube.com/watch?v=" + id,
			EmbedURL: "https://www.youtube.com/embed/" + id,
		})
	}
	return summaries
}
