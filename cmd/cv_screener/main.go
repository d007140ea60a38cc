// Package main provides the cv_screener CLI for extracting, scoring and serving CV screening results.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/config"
	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/logger"
)

var (
	cfgFile   string
	appConfig *config.Config
	appLogger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "cv_screener",
	Short: "CV extraction and candidate screening",
	Long: "cv_screener extracts contact details and skills from PDF CVs, scores candidates against " +
		"job requirements and exposes the same pipeline over a REST API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentPreRunE = initApp
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to a YAML or JSON config file")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Emit logs as JSON")
}

// initApp loads configuration and builds the logger shared by every subcommand.
func initApp(_ *cobra.Command, _ []string) error {
	v := viper.New()
	if err := v.BindPFlag("log.debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		return fmt.Errorf("failed to bind debug flag: %w", err)
	}
	if err := v.BindPFlag("log.json", rootCmd.PersistentFlags().Lookup("json")); err != nil {
		return fmt.Errorf("failed to bind json flag: %w", err)
	}

	cfg, err := config.LoadWith(v, cfgFile)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	appConfig = cfg
	appLogger = log
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = appLogger.Sync()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
