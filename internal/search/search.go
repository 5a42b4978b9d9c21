// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search aggregates free-course listings from multiple learning
// platforms into one envelope keyed by provider.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/pdiddy/courses-api/pkg/types"
)

// Provider searches a single learning platform. Each platform (Coursera,
// edX, Udemy, YouTube) implements this interface with its own request
// construction and response normalization.
type Provider interface {
	// Name returns the envelope key for this platform.
	Name() string

	// Fetch performs exactly one upstream search and returns normalized
	// courses in upstream order. Any failure (network, non-2xx, malformed
	// payload, missing credential) is returned as an error; Fetch never
	// partially succeeds.
	Fetch(ctx context.Context, query Query, cfg types.SearchConfig) ([]types.Course, error)

	// RedirectURL returns the platform's own search-results page for the
	// query. It is purely computed and cannot fail, so it is usable even
	// when Fetch is not.
	RedirectURL(query Query) string
}

// SupportedLanguages lists the accepted lang codes.
var SupportedLanguages = map[string]bool{
	"en": true,
	"es": true,
}

// Query holds the search parameters shared by all providers.
type Query struct {
	// Text is the search term, already trimmed.
	Text string

	// Language is a supported code ("en", "es"). Each provider maps it to
	// its own native language parameter.
	Language string

	// Limit is the per-provider result count.
	Limit int
}

// Validate reports whether the query can be dispatched to providers.
func (q Query) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("search query cannot be empty")
	}
	if !SupportedLanguages[q.Language] {
		return fmt.Errorf("unsupported language %q (supported: en, es)", q.Language)
	}
	if q.Limit <= 0 {
		return fmt.Errorf("num_items must be positive, got %d", q.Limit)
	}
	return nil
}

// SearchOutput holds the aggregate envelope and per-provider error strings.
// Provider errors are informational: the corresponding envelope entries are
// already degraded to redirect-only form.
type SearchOutput struct {
	Response       types.SearchResponse
	ProviderErrors []string
}

// Search fans the query out to all providers concurrently and assembles the
// envelope. Every provider contributes an entry: a failed or empty-handed
// provider yields an empty course list plus its redirect URL, never a
// missing key and never an aborted search. Warnings for failed providers
// are written to w.
//
// No cross-provider timeout is applied here; each provider bounds its own
// upstream calls with cfg.Timeout.
func Search(ctx context.Context, query Query, providers []Provider, cfg types.SearchConfig, w io.Writer) (SearchOutput, error) {
	if err := query.Validate(); err != nil {
		return SearchOutput{}, err
	}
	if len(providers) == 0 {
		return SearchOutput{}, fmt.Errorf("no course providers configured")
	}

	type outcome struct {
		name     string
		redirect string
		courses  []types.Course
		err      error
	}

	ch := make(chan outcome, len(providers))
	var wg sync.WaitGroup

	for _, p := range providers {
		wg.Add(1)
		go func(p Provider) {
			defer wg.Done()
			courses, err := p.Fetch(ctx, query, cfg)
			ch <- outcome{name: p.Name(), redirect: p.RedirectURL(query), courses: courses, err: err}
		}(p)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	results := make(map[string]types.ProviderResult, len(providers))
	var providerErrors []string
	for oc := range ch {
		if oc.err != nil {
			providerErrors = append(providerErrors, fmt.Sprintf("%s: %v", oc.name, oc.err))
			fmt.Fprintf(w, "warning: provider %s failed: %v\n", oc.name, oc.err)
			results[oc.name] = types.ProviderResult{Courses: []types.Course{}, RedirectURL: oc.redirect}
			continue
		}
		if oc.courses == nil {
			oc.courses = []types.Course{}
		}
		results[oc.name] = types.ProviderResult{Courses: oc.courses, RedirectURL: oc.redirect}
	}

	sort.Strings(providerErrors)

	return SearchOutput{
		Response:       types.SearchResponse{Results: results},
		ProviderErrors: providerErrors,
	}, nil
}

// FormatTable writes the envelope as a human-readable listing to w, one
// section per provider in canonical order.
func FormatTable(out SearchOutput, w io.Writer) {
	for _, name := range types.ProviderNames {
		pr, ok := out.Response.Results[name]
		if !ok {
			continue
		}

		fmt.Fprintf(w, "%s (%d courses)\n", name, len(pr.Courses))
		if len(pr.Courses) == 0 {
			fmt.Fprintf(w, "  no results, browse %s\n\n", pr.RedirectURL)
			continue
		}

		fmt.Fprintf(w, "  %-60s  %-24s  %-10s  %-12s  %s\n",
			"Title", "Provider", "Duration", "Difficulty", "Rating")
		fmt.Fprintln(w, "  "+strings.Repeat("-", 118))
		for _, c := range pr.Courses {
			rating := ""
			if c.AvgRating != nil {
				rating = fmt.Sprintf("%.1f", *c.AvgRating)
				if c.CountRating != nil {
					rating = fmt.Sprintf("%s (%d)", rating, *c.CountRating)
				}
			}
			fmt.Fprintf(w, "  %-60s  %-24s  %-10s  %-12s  %s\n",
				truncate(c.Title, 60), truncate(c.Provider, 24), c.Duration, c.Difficulty, rating)
		}
		fmt.Fprintln(w)
	}
}

// FormatJSON writes the envelope as indented JSON to w.
func FormatJSON(out SearchOutput, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out.Response)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
