// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/courses-api/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search all platforms once from the terminal",
	Long: `Search queries Coursera, edX, Udemy and YouTube concurrently for free
courses matching the query and prints the merged results. A platform that
fails contributes a redirect link instead of aborting the search.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		queryText, _ := cmd.Flags().GetString("query")
		lang, _ := cmd.Flags().GetString("lang")
		numItems, _ := cmd.Flags().GetInt("num-items")
		asJSON, _ := cmd.Flags().GetBool("json")
		outPath, _ := cmd.Flags().GetString("out")

		cfg := searchConfig()
		client := newHTTPClient(cfg)

		query := search.Query{Text: queryText, Language: lang, Limit: numItems}
		out, err := search.Search(cmd.Context(), query, newProviders(client, cfg), cfg, os.Stderr)
		if err != nil {
			return err
		}

		if asJSON {
			if err := search.FormatJSON(out, os.Stdout); err != nil {
				return err
			}
		} else {
			search.FormatTable(out, os.Stdout)
		}

		if outPath != "" {
			if err := search.WriteQueryFile(outPath, query, cfg, out); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, "Saved results to", outPath)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().String("query", "", "search term (required)")
	searchCmd.Flags().String("lang", "en", "search language: en or es")
	searchCmd.Flags().Int("num-items", 6, "results per platform")
	searchCmd.Flags().Bool("json", false, "output the envelope as JSON")
	searchCmd.Flags().String("out", "", "save query and results to a YAML file")

	rootCmd.AddCommand(searchCmd)
}
