// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/courses-api/internal/httputil"
	"github.com/pdiddy/courses-api/pkg/types"
)

// youtubeAPIBase is the YouTube Data API v3 base URL. Declared as a var so
// tests can substitute an httptest server.
var youtubeAPIBase = "https://www.googleapis.com/youtube/v3"

// youtubeMaxItems is the Data API maxResults ceiling.
const youtubeMaxItems = 50

// errMissingYouTubeKey is returned by Fetch when the provider was
// constructed without a credential. The aggregator absorbs it into the
// redirect-only result like any other provider failure.
var errMissingYouTubeKey = fmt.Errorf("youtube api key not configured")

// youtubeSearchPhrase returns the language-specific phrase appended to the
// query so results skew toward full-length courses rather than clips.
func youtubeSearchPhrase(code string) string {
	if code == "es" {
		return "curso completo español"
	}
	return "full course"
}

// YouTubeProvider queries the YouTube Data API v3 for course-length videos.
// The credential is captured at construction; a missing key leaves the
// provider in a degraded state where every Fetch fails cleanly instead of
// preventing startup.
type YouTubeProvider struct {
	client *http.Client
	apiKey string
}

// NewYouTubeProvider constructs the provider. apiKey may be empty.
func NewYouTubeProvider(client *http.Client, apiKey string) *YouTubeProvider {
	return &YouTubeProvider{client: client, apiKey: apiKey}
}

// Name returns the provider identifier.
func (p *YouTubeProvider) Name() string { return types.ProviderYouTube }

// RedirectURL returns the YouTube results page for the query plus the
// course phrase.
func (p *YouTubeProvider) RedirectURL(query Query) string {
	return "https://www.youtube.com/results?search_query=" +
		url.QueryEscape(query.Text+" "+youtubeSearchPhrase(query.Language))
}

// Fetch runs the two-step Data API flow: search.list to find candidate
// videos, then videos.list for the durations and full snippets the search
// endpoint does not return.
func (p *YouTubeProvider) Fetch(ctx context.Context, query Query, cfg types.SearchConfig) ([]types.Course, error) {
	if p.apiKey == "" {
		return nil, errMissingYouTubeKey
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	limit := query.Limit
	if limit > youtubeMaxItems {
		limit = youtubeMaxItems
	}

	params := url.Values{
		"part":          {"snippet"},
		"maxResults":    {fmt.Sprintf("%d", limit)},
		"q":             {query.Text + " " + youtubeSearchPhrase(query.Language)},
		"type":          {"video"},
		"videoDuration": {"long"},
		"order":         {"relevance"},
		"key":           {p.apiKey},
	}

	headers := map[string]string{
		"User-Agent": cfg.UserAgent,
	}

	var searchResp youtubeSearchResponse
	if err := httputil.GetJSON(ctx, p.client, youtubeAPIBase+"/search?"+params.Encode(), headers, &searchResp); err != nil {
		return nil, fmt.Errorf("youtube search: %w", err)
	}

	var ids []string
	for _, item := range searchResp.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}
	if len(ids) == 0 {
		return []types.Course{}, nil
	}

	detailParams := url.Values{
		"part": {"snippet,contentDetails"},
		"id":   {strings.Join(ids, ",")},
		"key":  {p.apiKey},
	}

	var videoResp youtubeVideoResponse
	if err := httputil.GetJSON(ctx, p.client, youtubeAPIBase+"/videos?"+detailParams.Encode(), headers, &videoResp); err != nil {
		return nil, fmt.Errorf("youtube videos: %w", err)
	}

	return normalizeYouTubeVideos(videoResp.Items), nil
}

// normalizeYouTubeVideos maps video resources to the unified schema in
// upstream order. YouTube has no difficulty, rating or skill data.
func normalizeYouTubeVideos(items []youtubeVideo) []types.Course {
	var courses []types.Course
	for _, item := range items {
		title := strings.TrimSpace(item.Snippet.Title)
		if item.ID == "" || title == "" {
			continue
		}

		c := types.Course{
			Title:    title,
			URL:      "https://youtube.com/watch?v=" + item.ID,
			ImageURL: bestThumbnail(item.Snippet.Thumbnails),
			Provider: item.Snippet.ChannelTitle,
		}

		if item.ContentDetails.Duration != "" {
			c.Duration = formatISODuration(item.ContentDetails.Duration)
		}

		courses = append(courses, c)
	}
	return courses
}

// bestThumbnail prefers the highest available resolution.
func bestThumbnail(t youtubeThumbnails) string {
	switch {
	case t.High.URL != "":
		return t.High.URL
	case t.Medium.URL != "":
		return t.Medium.URL
	default:
		return t.Default.URL
	}
}

// YouTube Data API v3 response structures.
type youtubeSearchResponse struct {
	Items []youtubeSearchItem `json:"items"`
}

type youtubeSearchItem struct {
	ID struct {
		VideoID string `json:"videoId"`
	} `json:"id"`
}

type youtubeVideoResponse struct {
	Items []youtubeVideo `json:"items"`
}

type youtubeVideo struct {
	ID             string                `json:"id"`
	Snippet        youtubeSnippet        `json:"snippet"`
	ContentDetails youtubeContentDetails `json:"contentDetails"`
}

type youtubeSnippet struct {
	Title        string            `json:"title"`
	ChannelTitle string            `json:"channelTitle"`
	Thumbnails   youtubeThumbnails `json:"thumbnails"`
}

type youtubeThumbnails struct {
	Default youtubeThumbnail `json:"default"`
	Medium  youtubeThumbnail `json:"medium"`
	High    youtubeThumbnail `json:"high"`
}

type youtubeThumbnail struct {
	URL string `json:"url"`
}

type youtubeContentDetails struct {
	Duration string `json:"duration"`
}
