// Command simctl runs semester simulations and schedule optimizations
// offline, without the API server or a database.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/yigit/academictwin/internal/bootstrap"
	"github.com/yigit/academictwin/internal/config"
	"github.com/yigit/academictwin/internal/pkg/logger"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "simctl",
		Short:         "Simulate a semester and search for a sustainable weekly schedule",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := logger.WarnLevel
			if opts.verbose {
				level = logger.DebugLevel
			}
			logger.Configure(logger.Config{Level: level, Pretty: true, Output: cmd.ErrOrStderr()})
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", bootstrap.DefaultConfigPath, "Path to the configuration file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log optimizer progress")

	root.AddCommand(
		newRunCmd(opts),
		newOptimizeCmd(opts),
		newCurveCmd(),
		newTokenCmd(opts),
	)
	return root
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (o *rootOptions) logger() zerolog.Logger {
	return logger.Get()
}

func main() {
	_, _ = maxprocs.Set()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
