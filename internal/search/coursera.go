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

// courseraGatewayURL is the Coursera GraphQL search gateway. Declared as a
// var so tests can substitute an httptest server.
var courseraGatewayURL = "https://www.coursera.org/graphql-gateway?opname=Search"

// courseraSearchQuery requests product hits with the fields the unified
// schema consumes.
const courseraSearchQuery = `query Search($requests: [Search_Request!]!) {
    SearchResult {
        search(requests: $requests) {
            elements {
                ... on Search_ProductHit {
                    name
                    url
                    imageUrl
                    productDifficultyLevel
                    productDuration
                    avgProductRating
                    numProductRatings
                    skills
                    partners
                    partnerLogos
                }
            }
        }
    }
}`

// CourseraProvider queries the Coursera search gateway for free courses.
type CourseraProvider struct {
	Client *http.Client
}

// Name returns the provider identifier.
func (p *CourseraProvider) Name() string { return types.ProviderCoursera }

// RedirectURL returns the Coursera search page for the query.
func (p *CourseraProvider) RedirectURL(query Query) string {
	return "https://coursera.org/search?query=" + url.QueryEscape(query.Text) +
		"&language=" + url.QueryEscape(platformLanguage(query.Language))
}

// Fetch posts the search to the GraphQL gateway, filtered to free courses
// in the query language, and normalizes the product hits.
func (p *CourseraProvider) Fetch(ctx context.Context, query Query, cfg types.SearchConfig) ([]types.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	body := []courseraRequest{{
		OperationName: "Search",
		Variables: courseraVariables{
			Requests: []courseraSearchRequest{{
				EntityType:        "PRODUCTS",
				Limit:             query.Limit,
				Facets:            []string{"topic", "language"},
				SortBy:            "BEST_MATCH",
				MaxValuesPerFacet: 1000,
				FacetFilters:      [][]string{{"language:" + platformLanguage(query.Language), "price:Free"}},
				Cursor:            "0",
				Query:             query.Text,
			}},
		},
		Query: courseraSearchQuery,
	}}

	headers := map[string]string{
		"User-Agent": cfg.UserAgent,
	}

	// The gateway answers with one response object per request object.
	var responses []courseraResponse
	if err := httputil.PostJSON(ctx, p.Client, courseraGatewayURL, headers, body, &responses); err != nil {
		return nil, fmt.Errorf("coursera search: %w", err)
	}
	if len(responses) == 0 {
		return nil, fmt.Errorf("coursera search: empty response")
	}

	return normalizeCourseraHits(responses[0]), nil
}

// normalizeCourseraHits maps gateway product hits to the unified schema in
// upstream order. Hits without a title or URL are skipped.
func normalizeCourseraHits(resp courseraResponse) []types.Course {
	var courses []types.Course
	for _, search := range resp.Data.SearchResult.Search {
		for _, hit := range search.Elements {
			if hit.Name == "" || hit.URL == "" {
				continue
			}

			c := types.Course{
				Title:      hit.Name,
				URL:        hit.URL,
				ImageURL:   hit.ImageURL,
				Difficulty: strings.ToLower(hit.ProductDifficultyLevel),
				Skills:     hit.Skills,
			}

			// Gateway URLs are site-relative.
			if strings.HasPrefix(c.URL, "/") {
				c.URL = "https://www.coursera.org" + c.URL
			}

			if hit.ProductDuration != "" {
				c.Duration = humanizeEnum(hit.ProductDuration)
			}
			if len(hit.Partners) > 0 {
				c.Provider = hit.Partners[0]
			}
			if len(hit.PartnerLogos) > 0 {
				c.ProviderImg = hit.PartnerLogos[0]
			}
			if hit.AvgProductRating != nil {
				c.AvgRating = ratingPtr(*hit.AvgProductRating)
			}
			if hit.NumProductRatings != nil {
				c.CountRating = countPtr(*hit.NumProductRatings)
			}

			courses = append(courses, c)
		}
	}
	return courses
}

// Coursera GraphQL request/response structures.
type courseraRequest struct {
	OperationName string            `json:"operationName"`
	Variables     courseraVariables `json:"variables"`
	Query         string            `json:"query"`
}

type courseraVariables struct {
	Requests []courseraSearchRequest `json:"requests"`
}

type courseraSearchRequest struct {
	EntityType        string     `json:"entityType"`
	Limit             int        `json:"limit"`
	Facets            []string   `json:"facets"`
	SortBy            string     `json:"sortBy"`
	MaxValuesPerFacet int        `json:"maxValuesPerFacet"`
	FacetFilters      [][]string `json:"facetFilters"`
	Cursor            string     `json:"cursor"`
	Query             string     `json:"query"`
}

type courseraResponse struct {
	Data struct {
		SearchResult struct {
			Search []courseraSearch `json:"search"`
		} `json:"SearchResult"`
	} `json:"data"`
}

type courseraSearch struct {
	Elements []courseraHit `json:"elements"`
}

type courseraHit struct {
	Name                   string   `json:"name"`
	URL                    string   `json:"url"`
	ImageURL               string   `json:"imageUrl"`
	ProductDifficultyLevel string   `json:"productDifficultyLevel"`
	ProductDuration        string   `json:"productDuration"`
	AvgProductRating       *float64 `json:"avgProductRating"`
	NumProductRatings      *int     `json:"numProductRatings"`
	Skills                 []string `json:"skills"`
	Partners               []string `json:"partners"`
	PartnerLogos           []string `json:"partnerLogos"`
}

// platformLanguage maps an API language code to the full language name
// Coursera and edX use as facet values.
func platformLanguage(code string) string {
	if code == "es" {
		return "Spanish"
	}
	return "English"
}
