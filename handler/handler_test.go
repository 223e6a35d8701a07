package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comment-insights-service/config"
	"comment-insights-service/fetcher"
	"comment-insights-service/model"
	"comment-insights-service/session"
)

type fakeSource struct {
	table   model.CommentTable
	err     error
	gotIDs  []string
	gotOpts fetcher.Options
}

func (f *fakeSource) FetchComments(videoIDs []string, opts fetcher.Options) (model.CommentTable, error) {
	f.gotIDs = videoIDs
	f.gotOpts = opts
	return f.table, f.err
}

type fakeAnalyst struct {
	answer      string
	err         error
	gotQuestion string
	gotRows     int
}

func (f *fakeAnalyst) Ask(_ context.Context, question string, table model.CommentTable) (string, error) {
	f.gotQuestion = question
	f.gotRows = len(table)
	return f.answer, f.err
}

func newRig(source CommentSource, analyst Analyst) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{SessionTTL: time.Hour}
	h := NewCommentHandler(cfg, source, analyst, session.NewStore())

	r := gin.New()
	r.GET("/health", h.HealthCheck)
	r.POST("/api/comments/fetch", h.FetchComments)
	r.GET("/api/comments", h.GetComments)
	r.GET("/api/comments/export", h.ExportCSV)
	r.GET("/api/video", h.GetVideo)
	r.POST("/api/analysis/ask", h.Ask)
	r.GET("/api/analysis/history", h.GetHistory)
	r.DELETE("/api/analysis/history", h.ClearHistory)
	r.GET("/api/analysis/suggestions", h.GetSuggestions)
	return r
}

func doJSON(r *gin.Engine, method, path, body, cookie string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionFrom(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookie {
			return c.Value
		}
	}
	t.Fatal("no session cookie set")
	return ""
}

func sampleTable() model.CommentTable {
	likes := int64(3)
	return model.CommentTable{
		{VideoID: "dQw4w9WgXcQ", CommentID: "c1", VideoTitle: "Never Gonna Give You Up", Comment: "a classic", LikeCount: &likes},
		{VideoID: "dQw4w9WgXcQ", CommentID: "r1", ParentID: "c1", IsReply: true, VideoTitle: "Never Gonna Give You Up", Comment: "agreed"},
	}
}

func TestFetchStoresTableInSession(t *testing.T) {
	source := &fakeSource{table: sampleTable()}
	r := newRig(source, &fakeAnalyst{})

	w := doJSON(r, http.MethodPost, "/api/comments/fetch",
		`{"input":"https://www.youtube.com/watch?v=dQw4w9WgXcQ"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"dQw4w9WgXcQ"}, source.gotIDs)

	var result model.FetchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 2, result.Count)
	require.Len(t, result.Videos, 1)
	assert.Equal(t, "Never Gonna Give You Up", result.Videos[0].Title)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", result.Videos[0].WatchURL)
	assert.Contains(t, result.Message, "Fetched 2 comments")

	sid := sessionFrom(t, w)
	w = doJSON(r, http.MethodGet, "/api/comments", "", sid)
	require.Equal(t, http.StatusOK, w.Code)

	var listing struct {
		Count    int                  `json:"count"`
		Comments model.CommentTable   `json:"comments"`
		Videos   []model.VideoSummary `json:"videos"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Equal(t, 2, listing.Count)
	require.Len(t, listing.Comments, 2)
	assert.Equal(t, "c1", listing.Comments[0].CommentID)
}

func TestFetchRejectsInputWithoutVideoID(t *testing.T) {
	r := newRig(&fakeSource{}, &fakeAnalyst{})

	w := doJSON(r, http.MethodPost, "/api/comments/fetch", `{"input":"just some words"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no valid YouTube video ID")
}

func TestFetchDefaultsRepliesOff(t *testing.T) {
	source := &fakeSource{table: model.CommentTable{}}
	r := newRig(source, &fakeAnalyst{})

	// Omitting the field keeps the reply pass off; every extra reply page
	// costs upstream quota.
	doJSON(r, http.MethodPost, "/api/comments/fetch", `{"input":"dQw4w9WgXcQ"}`, "")
	assert.False(t, source.gotOpts.IncludeReplies)

	doJSON(r, http.MethodPost, "/api/comments/fetch",
		`{"input":"dQw4w9WgXcQ","includeReplies":true}`, "")
	assert.True(t, source.gotOpts.IncludeReplies)
}

func TestFetchPassesOrderAndPageCap(t *testing.T) {
	source := &fakeSource{table: model.CommentTable{}}
	r := newRig(source, &fakeAnalyst{})

	doJSON(r, http.MethodPost, "/api/comments/fetch",
		`{"input":"dQw4w9WgXcQ","order":"relevance","maxPages":3}`, "")
	assert.Equal(t, "relevance", source.gotOpts.Order)
	assert.Equal(t, 3, source.gotOpts.MaxPages)
}

func TestFetchEmptyResultIsInformational(t *testing.T) {
	source := &fakeSource{table: model.CommentTable{}}
	r := newRig(source, &fakeAnalyst{})

	w := doJSON(r, http.MethodPost, "/api/comments/fetch", `{"input":"dQw4w9WgXcQ"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	var result model.FetchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 0, result.Count)
	assert.Contains(t, result.Message, "No comments found")
	require.Len(t, result.Videos, 1)
	assert.Equal(t, fetcher.UnknownTitle, result.Videos[0].Title)
}

func TestAskAnswersAndRecordsHistory(t *testing.T) {
	source := &fakeSource{table: sampleTable()}
	analyst := &fakeAnalyst{answer: "viewers love it"}
	r := newRig(source, analyst)

	w := doJSON(r, http.MethodPost, "/api/comments/fetch", `{"input":"dQw4w9WgXcQ"}`, "")
	sid := sessionFrom(t, w)

	w = doJSON(r, http.MethodPost, "/api/analysis/ask", `{"question":"overall sentiment?"}`, sid)
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.AskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "viewers love it", resp.Answer)
	assert.Equal(t, "overall sentiment?", analyst.gotQuestion)
	assert.Equal(t, 2, analyst.gotRows)

	w = doJSON(r, http.MethodGet, "/api/analysis/history", "", sid)
	require.Equal(t, http.StatusOK, w.Code)

	var hist struct {
		Count   int                      `json:"count"`
		History []model.ConversationTurn `json:"history"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &hist))
	require.Equal(t, 1, hist.Count)
	assert.Equal(t, "overall sentiment?", hist.History[0].Question)
}

func TestAskRejectsBlankQuestion(t *testing.T) {
	source := &fakeSource{table: sampleTable()}
	r := newRig(source, &fakeAnalyst{})

	w := doJSON(r, http.MethodPost, "/api/comments/fetch", `{"input":"dQw4w9WgXcQ"}`, "")
	sid := sessionFrom(t, w)

	w = doJSON(r, http.MethodPost, "/api/analysis/ask", `{"question":"   "}`, sid)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "question is required")
}

func TestAskWithoutTableConflicts(t *testing.T) {
	r := newRig(&fakeSource{}, &fakeAnalyst{answer: "unused"})

	w := doJSON(r, http.MethodPost, "/api/analysis/ask", `{"question":"anything?"}`, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "no comments loaded")
}

func TestAskSurfacesGenerationFailure(t *testing.T) {
	source := &fakeSource{table: sampleTable()}
	analyst := &fakeAnalyst{err: errors.New("model overloaded")}
	r := newRig(source, analyst)

	w := doJSON(r, http.MethodPost, "/api/comments/fetch", `{"input":"dQw4w9WgXcQ"}`, "")
	sid := sessionFrom(t, w)

	w = doJSON(r, http.MethodPost, "/api/analysis/ask", `{"question":"q"}`, sid)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "model overloaded")

	w = doJSON(r, http.MethodGet, "/api/analysis/history", "", sid)
	assert.Contains(t, w.Body.String(), `"count":0`)
}

func TestClearHistory(t *testing.T) {
	source := &fakeSource{table: sampleTable()}
	r := newRig(source, &fakeAnalyst{answer: "a"})

	w := doJSON(r, http.MethodPost, "/api/comments/fetch", `{"input":"dQw4w9WgXcQ"}`, "")
	sid := sessionFrom(t, w)
	doJSON(r, http.MethodPost, "/api/analysis/ask", `{"question":"q"}`, sid)

	w = doJSON(r, http.MethodDelete, "/api/analysis/history", "", sid)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/analysis/history", "", sid)
	assert.Contains(t, w.Body.String(), `"count":0`)

	// Clearing history keeps the table.
	w = doJSON(r, http.MethodGet, "/api/comments", "", sid)
	assert.Contains(t, w.Body.String(), `"count":2`)
}

func TestExportCSVDownload(t *testing.T) {
	source := &fakeSource{table: sampleTable()}
	r := newRig(source, &fakeAnalyst{})

	w := doJSON(r, http.MethodPost, "/api/comments/fetch", `{"input":"dQw4w9WgXcQ"}`, "")
	sid := sessionFrom(t, w)

	w = doJSON(r, http.MethodGet, "/api/comments/export", "", sid)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "youtube_comments_dQw4w9WgXcQ_")

	body := w.Body.Bytes()
	require.True(t, bytes.HasPrefix(body, []byte{0xEF, 0xBB, 0xBF}))
	assert.True(t, strings.HasPrefix(string(body[3:]), "video_id,comment_id"))
	assert.Contains(t, string(body), "a classic")
}

func TestExportCSVWithoutTable(t *testing.T) {
	r := newRig(&fakeSource{}, &fakeAnalyst{})

	w := doJSON(r, http.MethodGet, "/api/comments/export", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionsAreIsolated(t *testing.T) {
	source := &fakeSource{table: sampleTable()}
	r := newRig(source, &fakeAnalyst{})

	w := doJSON(r, http.MethodPost, "/api/comments/fetch", `{"input":"dQw4w9WgXcQ"}`, "")
	first := sessionFrom(t, w)

	w = doJSON(r, http.MethodGet, "/api/comments", "", "")
	assert.Contains(t, w.Body.String(), `"count":0`)

	w = doJSON(r, http.MethodGet, "/api/comments", "", first)
	assert.Contains(t, w.Body.String(), `"count":2`)
}

func TestSuggestions(t *testing.T) {
	r := newRig(&fakeSource{}, &fakeAnalyst{})

	w := doJSON(r, http.MethodGet, "/api/analysis/suggestions", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Suggestions []model.Suggestion `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Suggestions, 3)
}

func TestHealthCheck(t *testing.T) {
	r := newRig(&fakeSource{}, &fakeAnalyst{})

	w := doJSON(r, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
