package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/career"
	"github.com/spigell/career-navigator/internal/console"
	"github.com/spigell/career-navigator/internal/flow/chat"
	"github.com/spigell/career-navigator/internal/flow/quiz"
	"github.com/spigell/career-navigator/internal/logger"
	"github.com/spigell/career-navigator/internal/page"
)

const (
	sourceRemote  = "remote"
	sourceFixture = "fixture"
	sourceDemo    = "demo"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive career navigator session",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringSliceP("skills", "s", nil, "initial skills, repeat the flag or separate with commas")
	runCmd.Flags().StringP("source", "m", "", "where career paths come from: remote, fixture or demo")
	runCmd.Flags().String("url", "", "scoring endpoint or fixture location")

	viper.BindPFlag("source.mode", runCmd.Flags().Lookup("source"))
	viper.BindPFlag("source.url", runCmd.Flags().Lookup("url"))
}

// run is the interactive session command.
func run(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// stdout belongs to the session, logs go to stderr.
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"), "stderr")
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig(viper.GetViper())
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the career-navigator", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	skills, _ := cmd.Flags().GetStringSlice("skills")

	pageConfig, err := buildPageConfig(config, strings.Join(skills, "\n"), logger)
	if err != nil {
		logger.Fatal("preparing the session", zap.Error(err))
	}

	session, err := console.NewSession(pageConfig, console.TerminalPrompter{}, os.Stdout, logger)
	if err != nil {
		logger.Fatal("creating the session", zap.Error(err))
	}

	if err := session.Run(ctx); err != nil {
		logger.Fatal("exiting", zap.Error(err))
	}

	logger.Info("exiting", zap.String("reason", "session finished"))
}

func buildPageConfig(config *Config, skills string, base *zap.Logger) (page.Config, error) {
	if config == nil || config.Source == nil {
		return page.Config{}, fmt.Errorf("source configuration is required")
	}

	source, err := buildSource(config.Source, base)
	if err != nil {
		return page.Config{}, err
	}

	cfg := page.Config{
		Skills: skills,
		Source: source,
	}

	if config.Quiz != nil {
		cfg.Quiz.PassScore = config.Quiz.PassScore
		if config.Quiz.QuestionsFile != "" {
			questions, err := quiz.LoadQuestions(config.Quiz.QuestionsFile)
			if err != nil {
				return page.Config{}, err
			}
			cfg.Quiz.Questions = questions
		}
	}

	if config.Chat != nil {
		cfg.ReplyDelay = config.Chat.ReplyDelay
		if config.Chat.ScriptFile != "" {
			script, err := chat.LoadScript(config.Chat.ScriptFile)
			if err != nil {
				return page.Config{}, err
			}
			cfg.Script = script
		}
	}

	return cfg, nil
}

func buildSource(cfg *SourceConfig, base *zap.Logger) (career.Source, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))

	switch mode {
	case sourceDemo:
		logger.WithSource(base, mode, "embedded").Info("using the embedded demo fixture")
		return career.DemoSource{}, nil
	case sourceRemote, sourceFixture:
	default:
		return nil, fmt.Errorf("unsupported source mode: %s", cfg.Mode)
	}

	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		return nil, fmt.Errorf("source.url is required for the %s source", mode)
	}

	client := career.NewClient(logger.WithSource(base, mode, url), cfg.Timeout)
	if mode == sourceFixture {
		return career.NewFixtureSource(client, url), nil
	}

	return career.NewRemoteSource(client, url), nil
}
