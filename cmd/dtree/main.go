package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootCmdConfig struct {
	verbose    bool
	logFile    string
	logFormat  string
	logger     *zap.SugaredLogger
	ctx        context.Context
	cancelFunc context.CancelFunc
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	config := &rootCmdConfig{}
	rootCmd := &cobra.Command{
		Use:   "dtree",
		Short: "dtree is a tool to grow decision trees",
		Long:  `A tool to grow decision trees from categorical data using the information gain ratio, test them, and use them to classify samples`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.initLogger()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			config.syncLogger()
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log the progress of commands")
	rootCmd.PersistentFlags().StringVar(&(config.logFile), "log-file", "", "path to a file to which logs are also written, rotated when they grow large")
	rootCmd.PersistentFlags().StringVar(&(config.logFormat), "log-format", "console", "format of log entries: console or json")
	rootCmd.AddCommand(
		versionCmd(),
		growCmd(config),
		testCmd(config),
		crossValidateCmd(config),
		splitCmd(config),
		predictCmd(config),
		describeCmd(config),
	)
	return rootCmd
}

func (rcc *rootCmdConfig) Context() context.Context {
	if rcc.ctx == nil {
		rcc.ctx, rcc.cancelFunc = context.WithCancel(context.Background())
	}
	return rcc.ctx
}
