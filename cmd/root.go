package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/autobrr/rxrule/pkg/config"
	"github.com/autobrr/rxrule/pkg/logger"
	"github.com/autobrr/rxrule/pkg/runtime"
)

var (
	// Global flags
	flagConfigFile string
	flagLogFile    string
	flagVerbosity  int

	// Global vars
	initialized bool
)

var rootCmd = &cobra.Command{
	Use:   "rxrule",
	Short: "Regular expression validation rules",
	Long: `A CLI to check values and file names against configured regular expression rules
and to print the HTML pattern attribute mirroring each rule.`,
	Version:       runtime.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "config.yaml", "Config file")
	rootCmd.PersistentFlags().StringVarP(&flagLogFile, "log", "l", "activity.log", "Log file")
	rootCmd.PersistentFlags().CountVarP(&flagVerbosity, "verbose", "v", "Verbose level")
}

func initCore(showUsing bool) {
	// init logging
	if err := logger.Init(flagVerbosity, flagLogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed initializing logging: %v\n", err)
		os.Exit(1)
	}

	// init config
	if err := config.Init(flagConfigFile); err != nil {
		logger.GetLogger("app").WithError(err).Fatal("Failed initializing config")
	}

	// show using
	if showUsing {
		config.ShowUsing()
		logger.ShowUsing()
		logger.GetLogger("app").Info("------------------")
	}
}

func ensureInitialized(showUsing bool) {
	if !initialized {
		initCore(showUsing)
		initialized = true
	}
}
