// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the courses-api service.
package types

// Known provider keys. These are the exact keys of SearchResponse.Results;
// every response carries all four regardless of individual provider outcome.
const (
	ProviderCoursera = "coursera"
	ProviderEdx      = "edx"
	ProviderUdemy    = "udemy"
	ProviderYouTube  = "youtube"
)

// ProviderNames lists the known providers in envelope order.
var ProviderNames = []string{ProviderCoursera, ProviderEdx, ProviderUdemy, ProviderYouTube}

// Course is the normalized, platform-agnostic course representation. Fields
// beyond Title and URL are optional: a missing upstream value stays absent
// in the serialized form rather than degrading to a zero placeholder, which
// is why the rating fields are pointers.
type Course struct {
	// Title is the course title as returned by the platform.
	Title string `json:"title" yaml:"title"`

	// URL is the absolute link to the course landing page.
	URL string `json:"url" yaml:"url"`

	// ImageURL is the course card or thumbnail image.
	ImageURL string `json:"image_url,omitempty" yaml:"image_url,omitempty"`

	// Duration is free text in platform-defined units (e.g. "4 weeks", "3h 20m").
	Duration string `json:"duration,omitempty" yaml:"duration,omitempty"`

	// Provider is the display name of the course author or organization,
	// not the platform (e.g. a Coursera partner university, a YouTube channel).
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty"`

	// ProviderImg is the author/organization logo URL.
	ProviderImg string `json:"provider_img,omitempty" yaml:"provider_img,omitempty"`

	// Difficulty is a lowercased level such as "beginner", "intermediate",
	// "advanced", or empty when the platform reports none.
	Difficulty string `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`

	// AvgRating is the average user rating in [0, 5], rounded to one decimal.
	AvgRating *float64 `json:"avg_rating,omitempty" yaml:"avg_rating,omitempty"`

	// CountRating is the number of ratings behind AvgRating.
	CountRating *int `json:"count_rating,omitempty" yaml:"count_rating,omitempty"`

	// Skills lists skill tags in platform order.
	Skills []string `json:"skills,omitempty" yaml:"skills,omitempty"`
}

// ProviderResult is one platform's contribution to a search. When the
// platform call fails or yields nothing, Courses is an empty (never nil)
// slice and RedirectURL still points at the platform's own search page for
// the query, so the caller always has something to render.
type ProviderResult struct {
	Courses     []Course `json:"courses" yaml:"courses"`
	RedirectURL string   `json:"redirect_url" yaml:"redirect_url"`
}

// SearchResponse is the aggregate envelope: results keyed by provider name.
// All four known providers are always present. encoding/json emits map keys
// sorted, which for {coursera, edx, udemy, youtube} is also the canonical
// envelope order.
type SearchResponse struct {
	Results map[string]ProviderResult `json:"results" yaml:"results"`
}
