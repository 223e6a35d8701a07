package model

// YouTube Data API v3 response structures for the three endpoints the
// fetcher consumes: /videos, /commentThreads and /comments.

type VideoListResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			PublishedAt  string `json:"publishedAt"`
		} `json:"snippet"`
	} `json:"items"`
}

// CommentSnippet carries the fields shared by top-level comments and
// replies. textDisplay is the rendered body; textOriginal the raw one.
type CommentSnippet struct {
	VideoID         string `json:"videoId"`
	ParentID        string `json:"parentId"`
	TextDisplay     string `json:"textDisplay"`
	TextOriginal    string `json:"textOriginal"`
	AuthorName      string `json:"authorDisplayName"`
	AuthorChannelID struct {
		Value string `json:"value"`
	} `json:"authorChannelId"`
	LikeCount   *int64 `json:"likeCount"`
	PublishedAt string `json:"publishedAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// Text returns the display-ready body, preferring the rendered form.
func (s CommentSnippet) Text() string {
	if s.TextDisplay != "" {
		return s.TextDisplay
	}
	return s.TextOriginal
}

type CommentResource struct {
	ID      string         `json:"id"`
	Snippet CommentSnippet `json:"snippet"`
}

type CommentThread struct {
	ID      string `json:"id"`
	Snippet struct {
		TopLevelComment CommentResource `json:"topLevelComment"`
		TotalReplyCount int64           `json:"totalReplyCount"`
	} `json:"snippet"`
}

type CommentThreadListResponse struct {
	Items         []CommentThread `json:"items"`
	NextPageToken string          `json:"nextPageToken,omitempty"`
}

type CommentListResponse struct {
	Items         []CommentResource `json:"items"`
	NextPageToken string            `json:"nextPageToken,omitempty"`
}
