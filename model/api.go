package model

import "time"

// Request and response shapes for the HTTP surface.

// FetchRequest is the body of POST /api/comments/fetch. Input holds free
// text (a video URL or bare id); Inputs allows several at once. Tokens
// that do not resolve to an 11-character id are dropped silently.
type FetchRequest struct {
	Input          string   `json:"input"`
	Inputs         []string `json:"inputs"`
	IncludeReplies bool     `json:"includeReplies"`
	Order          string   `json:"order"`
	MaxPages       int      `json:"maxPages"`
}

// FetchResult summarizes one completed retrieval.
type FetchResult struct {
	Count     int             `json:"count"`
	Videos    []VideoSummary  `json:"videos"`
	Message   string          `json:"message,omitempty"`
	Preview   []CommentRecord `json:"preview,omitempty"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

// VideoSummary describes one processed video for the UI preview.
type VideoSummary struct {
	VideoID  string `json:"videoId"`
	Title    string `json:"title"`
	WatchURL string `json:"watchUrl"`
	EmbedURL string `json:"embedUrl"`
}

type AskRequest struct {
	Question string `json:"question"`
}

type AskResponse struct {
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	AskedAt  time.Time `json:"askedAt"`
}

// Suggestion is a canned question offered by the UI.
type Suggestion struct {
	Label    string `json:"label"`
	Question string `json:"question"`
}
