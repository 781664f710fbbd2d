package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/ai/gemini"
	"github.com/spigell/career-navigator/internal/career"
	"github.com/spigell/career-navigator/internal/filtering"
	"github.com/spigell/career-navigator/internal/logger"
	"github.com/spigell/career-navigator/internal/secrets"
	"github.com/spigell/career-navigator/internal/server"
)

const geminiAPIKeyEnv = "GEMINI_API_KEY"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the career path scoring endpoint and the demo fixture",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "address to listen on")
	serveCmd.Flags().Bool("ai", false, "score profiles with Gemini instead of the demo fixture")

	viper.BindPFlag("server.listen", serveCmd.Flags().Lookup("listen"))
	viper.BindPFlag("ai.enabled", serveCmd.Flags().Lookup("ai"))
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig(viper.GetViper())
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config.Server == nil {
		logger.Fatal("server configuration is required")
	}

	source, err := buildScorer(ctx, config.AI, config.Server.MaxResults, logger)
	if err != nil {
		logger.Fatal("building the scorer", zap.Error(err))
	}

	filters := filtering.New(filtering.Default(config.Server.MaxResults), logger.Named("filtering"))

	srv := server.New(server.Config{
		Listen: config.Server.Listen,
		Debug:  viper.GetBool("debug"),
	}, source, filters, logger.Named("server"))

	logger.Info("starting the career-navigator server",
		zap.String("version", version),
		zap.Strings("filters", filters.Names()),
	)

	if err := srv.Run(ctx); err != nil {
		logger.Fatal("serving", zap.Error(err))
	}
}

// buildScorer returns the Gemini navigator when ai is enabled and the demo fixture otherwise.
func buildScorer(ctx context.Context, cfg *AIConfig, maxPaths int, base *zap.Logger) (career.Source, error) {
	if cfg == nil || !cfg.Enabled {
		base.Info("ai scoring is disabled, serving the demo fixture")
		return career.DemoSource{}, nil
	}

	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
		Env:   geminiAPIKeyEnv,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or %s)", err, geminiAPIKeyEnv)
	}

	aiLogger := logger.WithAI(base, "gemini", cfg.Gemini.Model)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, aiLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewNavigator(generator, aiLogger, maxPaths, cfg.Gemini.MaxLogLength), nil
}
