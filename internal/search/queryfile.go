// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/courses-api/pkg/types"
)

// QueryFile is the on-disk representation of a search and its results. The
// user can save a terminal search to a file and reload it later without
// re-querying the platforms.
type QueryFile struct {
	Query   QueryParams                      `yaml:"query"`
	Config  QueryFileConfig                  `yaml:"config"`
	Results map[string]types.ProviderResult `yaml:"results"`
	Summary QuerySummary                     `yaml:"summary"`
}

// QueryParams stores the query parameters in a serializable form.
type QueryParams struct {
	Text     string `yaml:"text"`
	Language string `yaml:"language"`
	NumItems int    `yaml:"num_items"`
}

// QueryFileConfig stores the search configuration that produced the results.
type QueryFileConfig struct {
	Timeout   string `yaml:"timeout"`
	UserAgent string `yaml:"user_agent"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	TotalCourses   int       `yaml:"total_courses"`
	ProviderErrors []string  `yaml:"provider_errors,omitempty"`
	Timestamp      time.Time `yaml:"timestamp"`
}

// ToQuery converts stored QueryParams back into a Query struct.
func (p QueryParams) ToQuery() Query {
	return Query{Text: p.Text, Language: p.Language, Limit: p.NumItems}
}

// WriteQueryFile saves the query, config snapshot and results to a YAML file.
func WriteQueryFile(path string, query Query, cfg types.SearchConfig, out SearchOutput) error {
	total := 0
	for _, pr := range out.Response.Results {
		total += len(pr.Courses)
	}

	qf := QueryFile{
		Query: QueryParams{
			Text:     query.Text,
			Language: query.Language,
			NumItems: query.Limit,
		},
		Config: QueryFileConfig{
			Timeout:   cfg.Timeout.String(),
			UserAgent: cfg.UserAgent,
		},
		Results: out.Response.Results,
		Summary: QuerySummary{
			TotalCourses:   total,
			ProviderErrors: out.ProviderErrors,
			Timestamp:      time.Now(),
		},
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}
