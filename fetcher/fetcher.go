package fetcher

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"comment-insights-service/config"
	"comment-insights-service/export"
	"comment-insights-service/metrics"
	"comment-insights-service/model"
)

// APIBase is the YouTube Data API v3 root. Tests point it at a local
// server through the BaseURL field.
const APIBase = "https://www.googleapis.com/youtube/v3"

// UnknownTitle is substituted when the title lookup fails for any reason.
const UnknownTitle = "Unknown Title"

const pageSize = 100

// overloadBackoff is the fixed delay before the single reissue of an
// overloaded request. Tests shorten it.
var overloadBackoff = 2 * time.Second

// Options controls one FetchComments call.
type Options struct {
	// IncludeReplies also pages through every top-level comment's replies.
	IncludeReplies bool
	// Order is "time" (newest first) or "relevance" (default).
	Order string
	// TimeoutSeconds overrides the per-request timeout; 0 uses the default.
	TimeoutSeconds int
	// MaxPages caps the top-level pages fetched per video; 0 means
	// unbounded. Reply pagination is never capped.
	MaxPages int
	// Progress, when set, is called synchronously after each completed
	// top-level page with the cumulative record count for the current
	// video.
	Progress func(count int)
	// SaveCSV writes the final table to CSVPath as UTF-8 (with BOM) CSV.
	SaveCSV bool
	CSVPath string
}

// Fetcher retrieves comments from the YouTube Data API. Every
// FetchComments call builds its own HTTP client, so concurrent calls
// share nothing but the API key.
type Fetcher struct {
	apiKey         string
	defaultTimeout time.Duration

	// BaseURL defaults to APIBase.
	BaseURL string
}

func New(cfg *config.Config) *Fetcher {
	return &Fetcher{
		apiKey:         cfg.YouTubeAPIKey,
		defaultTimeout: cfg.YouTubeTimeout,
		BaseURL:        APIBase,
	}
}

// FetchComments retrieves the comments for every valid id in videoIDs,
// sequentially and in input order. Identifiers that are not exactly 11
// characters after trimming are dropped silently. A failing video yields
// whatever was accumulated for it and never aborts the videos after it.
// The returned error only reports failures outside the page-fetch path
// (currently just the optional CSV persistence).
func (f *Fetcher) FetchComments(videoIDs []string, opts Options) (model.CommentTable, error) {
	ids := filterVideoIDs(videoIDs)
	log.Printf("[INFO] Fetching comments for %d video(s) (dropped %d malformed id(s))",
		len(ids), len(videoIDs)-len(ids))

	timeout := f.defaultTimeout
	if opts.TimeoutSeconds > 0 {
		timeout = time.Duration(opts.TimeoutSeconds) * time.Second
	}
	client := &http.Client{Timeout: timeout}

	table := model.CommentTable{}
	for _, vid := range ids {
		title := f.videoTitle(client, vid)

		records := f.fetchTopLevel(client, vid, opts)

		if opts.IncludeReplies {
			var parents []string
			for _, r := range records {
				if r.CommentID != "" {
					parents = append(parents, r.CommentID)
				}
			}
			records = append(records, f.fetchReplies(client, vid, parents)...)
		}

		for i := range records {
			records[i].VideoTitle = title
		}

		table = append(table, records...)
		log.Printf("[INFO] Collected %d record(s) for video %s", len(records), vid)
	}

	if opts.SaveCSV {
		if err := saveCSV(opts.CSVPath, table); err != nil {
			return table, fmt.Errorf("saving CSV to %s: %w", opts.CSVPath, err)
		}
		log.Printf("[INFO] Saved %d record(s) to %s", len(table), opts.CSVPath)
	}

	return table, nil
}

// videoTitle resolves the title with a single best-effort lookup. Any
// failure degrades to UnknownTitle so retrieval is never blocked.
func (f *Fetcher) videoTitle(client *http.Client, videoID string) string {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("id", videoID)
	params.Set("key", f.apiKey)

	var resp model.VideoListResponse
	if err := f.getJSON(client, "videos", params, &resp); err != nil {
		log.Printf("[WARN] Title lookup failed for %s: %v", videoID, err)
		return UnknownTitle
	}
	if len(resp.Items) == 0 {
		log.Printf("[WARN] Title lookup returned no items for %s", videoID)
		return UnknownTitle
	}
	return resp.Items[0].Snippet.Title
}

// fetchTopLevel pages through the commentThreads listing. Any
// unrecoverable page error ends the pass and keeps the partial results.
func (f *Fetcher) fetchTopLevel(client *http.Client, videoID string, opts Options) []model.CommentRecord {
	order := opts.Order
	if order == "" {
		order = "relevance"
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("videoId", videoID)
	params.Set("key", f.apiKey)
	params.Set("maxResults", strconv.Itoa(pageSize))
	params.Set("textFormat", "plainText")
	params.Set("order", order)

	var records []model.CommentRecord
	page := 0
	for {
		if opts.MaxPages > 0 && page >= opts.MaxPages {
			log.Printf("[INFO] Page cap %d reached for video %s", opts.MaxPages, videoID)
			break
		}

		var resp model.CommentThreadListResponse
		if err := f.getJSON(client, "commentThreads", params, &resp); err != nil {
			log.Printf("[WARN] Stopping pagination for video %s after %d page(s): %v", videoID, page, err)
			break
		}

		for _, item := range resp.Items {
			records = append(records, threadRecord(videoID, item))
		}
		metrics.CommentsFetchedTotal.WithLabelValues("top_level").Add(float64(len(resp.Items)))

		page++
		if opts.Progress != nil {
			opts.Progress(len(records))
		}

		if resp.NextPageToken == "" {
			break
		}
		params.Set("pageToken", resp.NextPageToken)
	}
	return records
}

// fetchReplies pages through the replies of every parent id. An
// unrecoverable page error abandons the remaining reply fetching for
// this video and keeps what was accumulated.
func (f *Fetcher) fetchReplies(client *http.Client, videoID string, parentIDs []string) []model.CommentRecord {
	var replies []model.CommentRecord
	for _, pid := range parentIDs {
		params := url.Values{}
		params.Set("part", "snippet")
		params.Set("parentId", pid)
		params.Set("key", f.apiKey)
		params.Set("maxResults", strconv.Itoa(pageSize))
		params.Set("textFormat", "plainText")

		for {
			var resp model.CommentListResponse
			if err := f.getJSON(client, "comments", params, &resp); err != nil {
				log.Printf("[WARN] Stopping reply retrieval for video %s at parent %s: %v", videoID, pid, err)
				return replies
			}

			for _, item := range resp.Items {
				replies = append(replies, replyRecord(videoID, pid, item))
			}
			metrics.CommentsFetchedTotal.WithLabelValues("reply").Add(float64(len(resp.Items)))

			if resp.NextPageToken == "" {
				break
			}
			params.Set("pageToken", resp.NextPageToken)
		}
	}
	return replies
}

// getJSON issues one GET and decodes the JSON body. An overload status
// (quota, rate limit, server busy) triggers exactly one fixed-delay
// reissue of the same request; there is no retry loop.
func (f *Fetcher) getJSON(client *http.Client, endpoint string, params url.Values, out interface{}) error {
	reqURL := f.BaseURL + "/" + endpoint + "?" + params.Encode()

	resp, err := client.Get(reqURL)
	if err != nil {
		metrics.YouTubeRequestsTotal.WithLabelValues(endpoint, "transport_error").Inc()
		return err
	}

	if isOverload(resp.StatusCode) {
		resp.Body.Close()
		log.Printf("[WARN] YouTube API returned %d for %s, backing off %v and retrying once",
			resp.StatusCode, endpoint, overloadBackoff)
		metrics.YouTubeRetriesTotal.Inc()
		time.Sleep(overloadBackoff)

		resp, err = client.Get(reqURL)
		if err != nil {
			metrics.YouTubeRequestsTotal.WithLabelValues(endpoint, "transport_error").Inc()
			return err
		}
	}
	defer resp.Body.Close()

	metrics.YouTubeRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("YouTube API error: %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func isOverload(status int) bool {
	return status == http.StatusForbidden ||
		status == http.StatusTooManyRequests ||
		status == http.StatusServiceUnavailable
}

func threadRecord(videoID string, item model.CommentThread) model.CommentRecord {
	tlc := item.Snippet.TopLevelComment
	s := tlc.Snippet
	total := item.Snippet.TotalReplyCount
	return model.CommentRecord{
		VideoID:         videoID,
		CommentID:       tlc.ID,
		IsReply:         false,
		Author:          s.AuthorName,
		AuthorChannelID: s.AuthorChannelID.Value,
		Comment:         s.Text(),
		LikeCount:       s.LikeCount,
		PublishedAt:     s.PublishedAt,
		UpdatedAt:       s.UpdatedAt,
		TotalReplyCount: &total,
	}
}

func replyRecord(videoID, parentID string, item model.CommentResource) model.CommentRecord {
	s := item.Snippet
	vid := s.VideoID
	if vid == "" {
		vid = videoID
	}
	return model.CommentRecord{
		VideoID:         vid,
		CommentID:       item.ID,
		ParentID:        parentID,
		IsReply:         true,
		Author:          s.AuthorName,
		AuthorChannelID: s.AuthorChannelID.Value,
		Comment:         s.Text(),
		LikeCount:       s.LikeCount,
		PublishedAt:     s.PublishedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func filterVideoIDs(videoIDs []string) []string {
	var ids []string
	for _, raw := range videoIDs {
		id := strings.TrimSpace(raw)
		if len(id) == 11 {
			ids = append(ids, id)
		}
	}
	return ids
}

func saveCSV(path string, table model.CommentTable) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return export.Write(file, table)
}
