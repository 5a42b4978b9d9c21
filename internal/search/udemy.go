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

// udemyGraphQLURL is the Udemy course search GraphQL endpoint. Declared as
// a var so tests can substitute an httptest server.
var udemyGraphQLURL = "https://www.udemy.com/api/2024-01/graphql/"

// udemySearchQuery requests course results with the fields the unified
// schema consumes.
const udemySearchQuery = `query SrpMxCourseSearch($query: String!, $page: NonNegativeInt!, $pageSize: MaxResultsPerPage!, $sortOrder: CourseSearchSortType, $filters: CourseSearchFilters, $context: CourseSearchContext) {
  courseSearch(
    query: $query
    page: $page
    pageSize: $pageSize
    sortOrder: $sortOrder
    filters: $filters
    context: $context
  ) {
    count
    results {
      course {
        durationInSeconds
        images { px240x135 }
        instructors { name }
        learningOutcomes
        level
        rating { average count }
        title
        urlCourseLanding
      }
    }
  }
}`

// UdemyProvider queries the Udemy GraphQL API for free courses.
type UdemyProvider struct {
	Client *http.Client
}

// Name returns the provider identifier.
func (p *UdemyProvider) Name() string { return types.ProviderUdemy }

// RedirectURL returns the Udemy free-course search page for the query.
func (p *UdemyProvider) RedirectURL(query Query) string {
	return "https://www.udemy.com/courses/search/?lang=" + udemyLanguage(query.Language) +
		"&price=price-free&q=" + url.QueryEscape(query.Text)
}

// Fetch posts the course search filtered to free courses in the query
// language and normalizes the results.
func (p *UdemyProvider) Fetch(ctx context.Context, query Query, cfg types.SearchConfig) ([]types.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	body := udemyRequest{
		Query: udemySearchQuery,
		Variables: udemyVariables{
			Page:      0,
			Query:     query.Text,
			SortOrder: "RELEVANCE",
			PageSize:  query.Limit,
			Context:   udemyContext{TriggerType: "USER_QUERY"},
			Filters: udemyFilters{
				Price:    []string{"FREE"},
				Language: []string{udemyLanguage(query.Language)},
			},
		},
	}

	headers := map[string]string{
		"User-Agent": cfg.UserAgent,
	}

	var resp udemyResponse
	if err := httputil.PostJSON(ctx, p.Client, udemyGraphQLURL, headers, body, &resp); err != nil {
		return nil, fmt.Errorf("udemy search: %w", err)
	}

	return normalizeUdemyResults(resp.Data.CourseSearch.Results), nil
}

// normalizeUdemyResults maps GraphQL course results to the unified schema
// in upstream order.
func normalizeUdemyResults(results []udemyResult) []types.Course {
	var courses []types.Course
	for _, res := range results {
		course := res.Course
		title := strings.TrimSpace(course.Title)
		if title == "" || course.URLCourseLanding == "" {
			continue
		}

		c := types.Course{
			Title:    title,
			URL:      course.URLCourseLanding,
			ImageURL: course.Images.Px240x135,
			Skills:   course.LearningOutcomes,
		}

		if course.DurationInSeconds > 0 {
			c.Duration = formatSeconds(course.DurationInSeconds)
		}
		if len(course.Instructors) > 0 {
			c.Provider = course.Instructors[0].Name
		}
		if course.Level != "" {
			c.Difficulty = humanizeEnum(course.Level)
		}
		if course.Rating != nil {
			c.AvgRating = ratingPtr(course.Rating.Average)
			c.CountRating = countPtr(course.Rating.Count)
		}

		courses = append(courses, c)
	}
	return courses
}

// udemyLanguage maps an API language code to Udemy's upper-cased locale
// filter value.
func udemyLanguage(code string) string {
	return strings.ToUpper(code)
}

// Udemy GraphQL request/response structures.
type udemyRequest struct {
	Query     string         `json:"query"`
	Variables udemyVariables `json:"variables"`
}

type udemyVariables struct {
	Page      int          `json:"page"`
	Query     string       `json:"query"`
	SortOrder string       `json:"sortOrder"`
	PageSize  int          `json:"pageSize"`
	Context   udemyContext `json:"context"`
	Filters   udemyFilters `json:"filters"`
}

type udemyContext struct {
	TriggerType string `json:"triggerType"`
}

type udemyFilters struct {
	Price    []string `json:"price"`
	Language []string `json:"language"`
}

type udemyResponse struct {
	Data struct {
		CourseSearch struct {
			Count   int           `json:"count"`
			Results []udemyResult `json:"results"`
		} `json:"courseSearch"`
	} `json:"data"`
}

type udemyResult struct {
	Course udemyCourse `json:"course"`
}

type udemyCourse struct {
	DurationInSeconds int               `json:"durationInSeconds"`
	Images            udemyImages       `json:"images"`
	Instructors       []udemyInstructor `json:"instructors"`
	LearningOutcomes  []string          `json:"learningOutcomes"`
	Level             string            `json:"level"`
	Rating            *udemyRating      `json:"rating"`
	Title             string            `json:"title"`
	URLCourseLanding  string            `json:"urlCourseLanding"`
}

type udemyImages struct {
	Px240x135 string `json:"px240x135"`
}

type udemyInstructor struct {
	Name string `json:"name"`
}

type udemyRating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}
