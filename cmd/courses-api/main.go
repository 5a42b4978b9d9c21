// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the courses-api binary: an HTTP
// service (and one-shot CLI) that aggregates free-course listings from
// Coursera, edX, Udemy and YouTube.
package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/courses-api/internal/httputil"
	"github.com/pdiddy/courses-api/internal/search"
	"github.com/pdiddy/courses-api/internal/secrets"
	"github.com/pdiddy/courses-api/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the courses-api CLI.
var rootCmd = &cobra.Command{
	Use:   "courses-api",
	Short: "Aggregated free-course search across learning platforms",
	Long: `courses-api aggregates free-course listings from Coursera, edX, Udemy and
YouTube behind one unified search. Run "serve" to expose the search as an
HTTP endpoint, or "search" for a one-shot query from the terminal.

Each platform is queried concurrently; a platform that fails or times out
degrades to a redirect link instead of failing the whole search.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./courses-api.yaml or ~/.config/courses-api/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("courses-api")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "courses-api"))
		}
	}

	viper.SetEnvPrefix("COURSES_API")
	viper.AutomaticEnv()

	viper.SetDefault("search.timeout", 10*time.Second)
	viper.SetDefault("search.user_agent", "courses-api/"+version)
	viper.SetDefault("search.default_items", 6)
	viper.SetDefault("search.max_items", 50)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// searchConfig assembles the search configuration from viper and the
// loaded secrets. Environment/config values win over key files.
func searchConfig() types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("search.timeout"),
			UserAgent: viper.GetString("search.user_agent"),
		},
		DefaultItems:  viper.GetInt("search.default_items"),
		MaxItems:      viper.GetInt("search.max_items"),
		YouTubeAPIKey: secrets.Get(loadedSecrets, secrets.YouTubeAPIKey, viper.GetString("youtube_api_key")),
	}
}

// newProviders wires the four platform adapters onto one shared client.
// All four are always constructed so the envelope always carries all four
// keys; a YouTube adapter without a credential degrades per request.
func newProviders(client *http.Client, cfg types.SearchConfig) []search.Provider {
	return []search.Provider{
		&search.CourseraProvider{Client: client},
		&search.EdxProvider{Client: client},
		&search.UdemyProvider{Client: client},
		search.NewYouTubeProvider(client, cfg.YouTubeAPIKey),
	}
}

// newHTTPClient builds the shared upstream client. The client timeout sits
// above the per-call timeout so contexts, not the transport, decide when a
// provider has failed.
func newHTTPClient(cfg types.SearchConfig) *http.Client {
	return httputil.NewClient(cfg.Timeout + 5*time.Second)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
