// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pdiddy/courses-api/internal/server"
	"github.com/pdiddy/courses-api/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the course search over HTTP",
	Long: `Serve exposes GET /resources/courses, which queries all platforms
concurrently and returns results keyed by provider. The process stops
cleanly on SIGINT/SIGTERM, letting in-flight searches finish.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		host, _ := cmd.Flags().GetString("host")
		port, _ := cmd.Flags().GetInt("port")

		searchCfg := searchConfig()
		client := newHTTPClient(searchCfg)

		log := logrus.New()
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		if searchCfg.YouTubeAPIKey == "" {
			log.Warn("youtube api key not configured; youtube results degrade to redirect-only")
		}

		serverCfg := types.ServerConfig{
			Host:        host,
			Port:        port,
			ReadTimeout: 5 * time.Second,
			// Leave headroom above the per-provider timeout so a degraded
			// response can still be written.
			WriteTimeout: searchCfg.Timeout + 10*time.Second,
		}

		srv := server.New(serverCfg, searchCfg, newProviders(client, searchCfg), log)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("host", "0.0.0.0", "bind address")
	serveCmd.Flags().Int("port", 8000, "listen port")

	rootCmd.AddCommand(serveCmd)
}
