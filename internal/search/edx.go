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

// edxAlgoliaBase is the Algolia multi-query endpoint behind edx.org search.
// Declared as a var so tests can substitute an httptest server.
var edxAlgoliaBase = "https://igsyv1z1xi-dsn.algolia.net/1/indexes/*/queries"

// Publishable Algolia credentials shipped with the edx.org frontend; they
// grant search-only access and are not a secret.
const (
	edxAlgoliaAppID  = "IGSYV1Z1XI"
	edxAlgoliaAPIKey = "6658746ce52e30dacfdd8ba5f8e8cf18"
)

// edxMaxItems is the Algolia hitsPerPage cap edx.org itself uses.
const edxMaxItems = 50

// edxProductFilter restricts hits to course-like products.
const edxProductFilter = `(product:"Course" OR product:"Program" OR product:"Executive Education" OR product:"2U Degree")`

// EdxProvider queries the edX Algolia index for available courses.
type EdxProvider struct {
	Client *http.Client
}

// Name returns the provider identifier.
func (p *EdxProvider) Name() string { return types.ProviderEdx }

// RedirectURL returns the edX search page for the query.
func (p *EdxProvider) RedirectURL(query Query) string {
	return "https://www.edx.org/search?q=" + url.QueryEscape(query.Text) +
		"&language=" + url.QueryEscape(platformLanguage(query.Language)) +
		"&availability=Available+now"
}

// Fetch posts an Algolia multi-query filtered to currently available
// courses in the query language and normalizes the hits.
func (p *EdxProvider) Fetch(ctx context.Context, query Query, cfg types.SearchConfig) ([]types.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	limit := query.Limit
	if limit > edxMaxItems {
		limit = edxMaxItems
	}

	params := url.Values{
		"x-algolia-agent":          {"Algolia for JavaScript (5.0.0); Search (5.0.0)"},
		"x-algolia-api-key":        {edxAlgoliaAPIKey},
		"x-algolia-application-id": {edxAlgoliaAppID},
	}
	reqURL := edxAlgoliaBase + "?" + params.Encode()

	body := edxRequest{
		Requests: []edxQuery{{
			IndexName: "product",
			FacetFilters: [][]string{
				{"availability:Available now"},
				{"language:" + platformLanguage(query.Language)},
			},
			Facets:            []string{"availability", "language", "learning_type", "level", "product", "program_type", "skills.skill", "subject"},
			Filters:           edxProductFilter,
			HitsPerPage:       limit,
			MaxValuesPerFacet: 100,
			Query:             query.Text,
			Page:              0,
		}},
	}

	headers := map[string]string{
		"User-Agent": cfg.UserAgent,
		"Referer":    "https://www.edx.org/",
		"Origin":     "https://www.edx.org",
	}

	var resp edxResponse
	if err := httputil.PostJSON(ctx, p.Client, reqURL, headers, body, &resp); err != nil {
		return nil, fmt.Errorf("edx search: %w", err)
	}
	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("edx search: empty response")
	}

	return normalizeEdxHits(resp.Results[0].Hits), nil
}

// normalizeEdxHits maps Algolia hits to the unified schema in upstream
// order. edX reports no ratings, so those fields stay absent.
func normalizeEdxHits(hits []edxHit) []types.Course {
	var courses []types.Course
	for _, hit := range hits {
		title := strings.TrimSpace(hit.Title)
		if title == "" || hit.MarketingURL == "" {
			continue
		}

		c := types.Course{
			Title:    title,
			URL:      hit.MarketingURL,
			ImageURL: hit.CardImageURL,
		}

		if len(hit.Owners) > 0 {
			c.Provider = hit.Owners[0].Name
			c.ProviderImg = hit.Owners[0].LogoImageURL
		}
		if hit.WeeksToComplete > 0 {
			c.Duration = fmt.Sprintf("%d weeks", hit.WeeksToComplete)
		}
		if len(hit.Level) > 0 {
			c.Difficulty = strings.ToLower(hit.Level[0])
		}
		for _, s := range hit.Skills {
			if s.Skill != "" {
				c.Skills = append(c.Skills, s.Skill)
			}
		}

		courses = append(courses, c)
	}
	return courses
}

// edX Algolia request/response structures.
type edxRequest struct {
	Requests []edxQuery `json:"requests"`
}

type edxQuery struct {
	IndexName         string     `json:"indexName"`
	ClickAnalytics    bool       `json:"clickAnalytics"`
	FacetFilters      [][]string `json:"facetFilters"`
	Facets            []string   `json:"facets"`
	Filters           string     `json:"filters"`
	HitsPerPage       int        `json:"hitsPerPage"`
	MaxValuesPerFacet int        `json:"maxValuesPerFacet"`
	Query             string     `json:"query"`
	Page              int        `json:"page"`
}

type edxResponse struct {
	Results []edxResult `json:"results"`
}

type edxResult struct {
	Hits []edxHit `json:"hits"`
}

type edxHit struct {
	Title           string     `json:"title"`
	MarketingURL    string     `json:"marketing_url"`
	CardImageURL    string     `json:"card_image_url"`
	Owners          []edxOwner `json:"owners"`
	WeeksToComplete int        `json:"weeks_to_complete"`
	Level           []string   `json:"level"`
	Skills          []edxSkill `json:"skills"`
}

type edxOwner struct {
	Name         string `json:"name"`
	LogoImageURL string `json:"logoImageUrl"`
}

type edxSkill struct {
	Skill string `json:"skill"`
}
