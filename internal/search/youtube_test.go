// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const sampleYouTubeSearchJSON = `{
  "items": [
    {"id": {"videoId": "vid1"}},
    {"id": {"videoId": "vid2"}},
    {"id": {}}
  ]
}`

const sampleYouTubeVideosJSON = `{
  "items": [
    {
      "id": "vid1",
      "snippet": {
        "title": "Python Full Course for Beginners",
        "channelTitle": "freeCodeCamp.org",
        "thumbnails": {
          "default": {"url": "https://i.ytimg.com/vi/vid1/default.jpg"},
          "medium": {"url": "https://i.ytimg.com/vi/vid1/mq.jpg"},
          "high": {"url": "https://i.ytimg.com/vi/vid1/hq.jpg"}
        }
      },
      "contentDetails": {"duration": "PT4H26M52S"}
    },
    {
      "id": "vid2",
      "snippet": {
        "title": "Learn Python in 40 Minutes",
        "channelTitle": "Tech Channel",
        "thumbnails": {
          "default": {"url": "https://i.ytimg.com/vi/vid2/default.jpg"}
        }
      },
      "contentDetails": {"duration": "PT40M"}
    }
  ]
}`

// youtubeTestServer serves both Data API endpoints and records the request
// URLs it saw.
func youtubeTestServer(t *testing.T) *[]string {
	t.Helper()
	var seen []string
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.URL.String())
		fmt.Fprint(w, sampleYouTubeSearchJSON)
	})
	mux.HandleFunc("/videos", func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.URL.String())
		fmt.Fprint(w, sampleYouTubeVideosJSON)
	})
	ts := httptest.NewServer(mux)

	orig := youtubeAPIBase
	youtubeAPIBase = ts.URL
	t.Cleanup(func() {
		youtubeAPIBase = orig
		ts.Close()
	})
	return &seen
}

func TestYouTubeProviderFetch(t *testing.T) {
	seen := youtubeTestServer(t)

	p := NewYouTubeProvider(http.DefaultClient, "test-key")
	courses, err := p.Fetch(context.Background(), testQuery(), testCfg())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if len(courses) != 2 {
		t.Fatalf("got %d courses, want 2", len(courses))
	}

	first := courses[0]
	if first.Title != "Python Full Course for Beginners" {
		t.Errorf("title = %q", first.Title)
	}
	if first.URL != "https://youtube.com/watch?v=vid1" {
		t.Errorf("url = %q", first.URL)
	}
	if first.Duration != "4h 26m" {
		t.Errorf("duration = %q, want \"4h 26m\"", first.Duration)
	}
	if first.Provider != "freeCodeCamp.org" {
		t.Errorf("provider = %q, want channel title", first.Provider)
	}
	if first.ImageURL != "https://i.ytimg.com/vi/vid1/hq.jpg" {
		t.Errorf("image = %q, want high-res thumbnail", first.ImageURL)
	}
	if first.Difficulty != "" || first.AvgRating != nil || len(first.Skills) != 0 {
		t.Errorf("youtube invented fields it does not have: %+v", first)
	}

	second := courses[1]
	if second.Duration != "40m" {
		t.Errorf("duration = %q, want \"40m\"", second.Duration)
	}
	if second.ImageURL != "https://i.ytimg.com/vi/vid2/default.jpg" {
		t.Errorf("image = %q, want fallback to default thumbnail", second.ImageURL)
	}

	// search.list then videos.list, both carrying the key and course phrase.
	urls := *seen
	if len(urls) != 2 {
		t.Fatalf("saw %d upstream calls, want 2", len(urls))
	}
	if !strings.Contains(urls[0], "key=test-key") || !strings.Contains(urls[0], "full+course") {
		t.Errorf("search call = %q", urls[0])
	}
	if !strings.Contains(urls[1], "id=vid1%2Cvid2") && !strings.Contains(urls[1], "id=vid1,vid2") {
		t.Errorf("videos call missing ids: %q", urls[1])
	}
}

func TestYouTubeProviderMissingKey(t *testing.T) {
	// No test server: a degraded provider must fail before any network calls.
	p := NewYouTubeProvider(http.DefaultClient, "")

	_, err := p.Fetch(context.Background(), testQuery(), testCfg())
	if err == nil {
		t.Fatal("Fetch() without credential: want error")
	}
	if !strings.Contains(err.Error(), "not configured") {
		t.Errorf("error = %v", err)
	}
}

func TestYouTubeProviderNoSearchHits(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items":[]}`)
	})
	mux.HandleFunc("/videos", func(w http.ResponseWriter, r *http.Request) {
		t.Error("videos.list called with no search hits")
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	orig := youtubeAPIBase
	youtubeAPIBase = ts.URL
	defer func() { youtubeAPIBase = orig }()

	p := NewYouTubeProvider(http.DefaultClient, "test-key")
	courses, err := p.Fetch(context.Background(), testQuery(), testCfg())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(courses) != 0 {
		t.Errorf("courses = %v, want empty", courses)
	}
}

func TestYouTubeProviderUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error": {"code": 403, "message": "quotaExceeded"}}`)
	}))
	defer ts.Close()

	orig := youtubeAPIBase
	youtubeAPIBase = ts.URL
	defer func() { youtubeAPIBase = orig }()

	p := NewYouTubeProvider(http.DefaultClient, "test-key")
	if _, err := p.Fetch(context.Background(), testQuery(), testCfg()); err == nil {
		t.Error("Fetch() = nil error, want failure on quota error")
	}
}

func TestYouTubeSearchPhrase(t *testing.T) {
	if got := youtubeSearchPhrase("es"); got != "curso completo español" {
		t.Errorf("es phrase = %q", got)
	}
	if got := youtubeSearchPhrase("en"); got != "full course" {
		t.Errorf("en phrase = %q", got)
	}
}

func TestYouTubeRedirectURL(t *testing.T) {
	p := NewYouTubeProvider(nil, "")
	got := p.RedirectURL(Query{Text: "python", Language: "en", Limit: 6})
	if !strings.Contains(got, "youtube.com/results?search_query=python+full+course") {
		t.Errorf("RedirectURL() = %q", got)
	}
}
