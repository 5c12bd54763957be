package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultTimeout = 5 * time.Minute

// ErrMatchesFound is returned when a scan reports a match of error severity.
var ErrMatchesFound = errors.New("matches found")

var (
	cfgFile    string
	timeout    time.Duration
	verbose    bool
	brackets   string
	jsonOutput bool
	outPath    string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:              "eslex [paths...]",
	Short:            "eslex - token-level pattern search for JavaScript sources",
	TraverseChildren: true, // Prioritize subcommands
	SilenceUsage:     true,
	SilenceErrors:    true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(verbose)
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// no subcommand
		if len(args) == 0 {
			// display help when only 'eslex' is entered
			return cmd.Help()
		}
		// Format: eslex [path1 path2 ...] => behaves like the scan subcommand
		return scanCmd.RunE(cmd, args)
	},
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// Execute runs the command line. Errors other than ErrMatchesFound are
// printed to stderr.
func Execute() error {
	defer func() {
		if logger != nil {
			_ = logger.Sync()
		}
	}()
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, ErrMatchesFound) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", ".eslex.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", defaultTimeout, "Give up after this long")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&brackets, "brackets", "", "Bracket handling: inert or balanced (default from config, else inert)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")
	rootCmd.PersistentFlags().StringVarP(&outPath, "output", "o", "", "Write output to this file instead of stdout")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(lexCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(watchCmd)
}
