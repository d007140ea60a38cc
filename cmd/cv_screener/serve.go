package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/db"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/server"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/server/ratelimit"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the extraction and scoring pipeline.
Candidates are persisted to PostgreSQL when database.url (or DATABASE_URL) is set.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	port := appConfig.Server.Port
	if servePort > 0 {
		port = servePort
	}

	databaseURL := appConfig.Database.URL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}

	var store server.CandidateStore
	if databaseURL != "" {
		database, err := db.Connect(ctx, databaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()

		if err := database.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to prepare database schema: %w", err)
		}
		store = database
	} else {
		appLogger.Warn("no database configured, candidates will not be persisted")
	}

	rl := ratelimit.NewConfig(appConfig.RateLimit.Enabled, appConfig.RateLimit.RequestsPerMinute)
	if rl.Enabled {
		rl.Whitelist = ratelimit.ParseIPList(appConfig.RateLimit.Whitelist)
		rl.Blacklist = ratelimit.ParseIPList(appConfig.RateLimit.Blacklist)
	}

	cfg := server.Config{
		Port:              port,
		MaxUploadBytes:    appConfig.Server.MaxUploadBytes,
		ExtractionTimeout: appConfig.Extraction.Timeout,
		AcceptThreshold:   appConfig.Ranking.AcceptThreshold,
		RateLimit:         rl,
	}

	appLogger.Info("serve configuration",
		zap.Int("port", port),
		zap.Bool("persistence", store != nil),
		zap.Bool("rate_limit", appConfig.RateLimit.Enabled))

	return server.New(cfg, newExtractor(), store, appLogger).Start(ctx)
}
