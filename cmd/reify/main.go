package main

import (
	"os"

	"github.com/belgraph/reifier/internal/config"
	"github.com/belgraph/reifier/internal/util"
	"github.com/belgraph/reifier/pkg/logger"
	"github.com/belgraph/reifier/pkg/logger/console"

	"github.com/spf13/cobra"
)

func main() {
	util.LoadEnv()
	cfg := config.Load()

	root := newRootCommand(cfg)
	if err := root.Execute(); err != nil {
		logger.Error("Command failed", "err", err)
		os.Exit(1)
	}
}

func newRootCommand(cfg config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "reify",
		Short:         "Reify BEL statement graphs stored as node-link JSON",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
				Debug:  cfg.Debug,
				Format: cfg.LogFormat,
				Output: cmd.ErrOrStderr(),
			}))
		},
	}

	root.PersistentFlags().BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging")
	root.PersistentFlags().StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text or json")

	root.AddCommand(
		newConvertCommand(&cfg),
		newInferCommand(),
		newDiffCommand(),
	)
	return root
}
