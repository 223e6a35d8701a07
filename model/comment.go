package model

import (
	"strconv"
	"strings"
	"time"
)

// CommentRecord is one retrieved comment or reply, flattened from the
// YouTube API's nested thread shape into a single tabular row.
type CommentRecord struct {
	VideoID         string `json:"video_id"`
	CommentID       string `json:"comment_id"`
	ParentID        string `json:"parent_id,omitempty"`
	IsReply         bool   `json:"is_reply"`
	VideoTitle      string `json:"video_title"`
	Author          string `json:"author,omitempty"`
	AuthorChannelID string `json:"author_channel_id,omitempty"`
	Comment         string `json:"comment"`
	LikeCount       *int64 `json:"like_count,omitempty"`
	PublishedAt     string `json:"published_at,omitempty"`
	UpdatedAt       string `json:"updated_at,omitempty"`
	TotalReplyCount *int64 `json:"total_reply_count,omitempty"`
}

// CommentTable is an ordered batch of records as returned by one fetch.
// The caller owns it exclusively; a new fetch replaces it wholesale.
type CommentTable []CommentRecord

// Columns returns the table header in canonical order. The order matches
// the CSV export and the per-record JSON field names.
func (t CommentTable) Columns() []string {
	return []string{
		"video_id",
		"comment_id",
		"parent_id",
		"is_reply",
		"video_title",
		"author",
		"author_channel_id",
		"comment",
		"like_count",
		"published_at",
		"updated_at",
		"total_reply_count",
	}
}

// Rows renders every record as strings in Columns() order. Absent numeric
// fields become empty cells rather than zeroes.
func (t CommentTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, r := range t {
		rows = append(rows, []string{
			r.VideoID,
			r.CommentID,
			r.ParentID,
			strconv.FormatBool(r.IsReply),
			r.VideoTitle,
			r.Author,
			r.AuthorChannelID,
			r.Comment,
			formatCount(r.LikeCount),
			r.PublishedAt,
			r.UpdatedAt,
			formatCount(r.TotalReplyCount),
		})
	}
	return rows
}

// VideoIDs returns the distinct video ids in first-appearance order.
func (t CommentTable) VideoIDs() []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, r := range t {
		if _, ok := seen[r.VideoID]; !ok {
			seen[r.VideoID] = struct{}{}
			ids = append(ids, r.VideoID)
		}
	}
	return ids
}

// TitleFor returns the resolved title for a video id, or "" when the id is
// not part of the table.
func (t CommentTable) TitleFor(videoID string) string {
	for _, r := range t {
		if r.VideoID == videoID {
			return r.VideoTitle
		}
	}
	return ""
}

func formatCount(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

// ConversationTurn is one question/answer exchange kept in the session
// history.
type ConversationTurn struct {
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	AskedAt  time.Time `json:"askedAt"`
}

// TruncatedAnswer shortens the answer for compact history listings. The
// cut counts runes, not bytes, so multi-byte text stays valid UTF-8.
func (ct ConversationTurn) TruncatedAnswer(max int) string {
	answer := strings.TrimSpace(ct.Answer)
	runes := []rune(answer)
	if len(runes) <= max {
		return answer
	}
	return string(runes[:max]) + "..."
}
