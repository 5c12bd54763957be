package cmd

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/eslex/internal"
	"github.com/gnolang/eslex/matcher"
	"github.com/gnolang/eslex/search"
)

var (
	ignoreRules string
	ignorePaths string
)

// scanCmd: eslex scan [paths...]
var scanCmd = &cobra.Command{
	Use:   "scan [paths...]",
	Short: "Run every configured rule over the given files and directories",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		engine, err := newConfiguredEngine(cmd)
		if err != nil {
			return err
		}
		applyIgnores(engine)

		matches, err := search.ProcessFiles(ctx, logger, engine, args, search.ProcessFile)
		if err != nil {
			logger.Error("Error processing files", zap.Error(err))
			return err
		}
		if err := printMatches(cmd, matches, nil); err != nil {
			return err
		}
		if hasErrors(matches) {
			return ErrMatchesFound
		}
		return nil
	},
}

func init() {
	scanCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of rules to ignore")
	scanCmd.Flags().StringVar(&ignorePaths, "ignore-paths", "", "Comma-separated list of paths to ignore")
}

// newConfiguredEngine loads --config. The built-in rules stand in when the
// default configuration file does not exist.
func newConfiguredEngine(cmd *cobra.Command) (*internal.Engine, error) {
	opts := []internal.EngineOption{internal.WithLogger(logger)}
	if brackets != "" {
		mode, err := matcher.ParseBracketMode(brackets)
		if err != nil {
			return nil, err
		}
		opts = append(opts, internal.WithBrackets(mode))
	}

	engine, err := search.New(cfgFile, opts...)
	if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config") {
		logger.Debug("No configuration file, using built-in rules", zap.String("path", cfgFile))
		return search.NewFromConfig(search.DefaultConfig(), "", opts...)
	}
	return engine, err
}

func applyIgnores(engine *internal.Engine) {
	for _, rule := range splitList(ignoreRules) {
		engine.IgnoreRule(rule)
	}
	for _, path := range splitList(ignorePaths) {
		engine.IgnorePath(path)
	}
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
