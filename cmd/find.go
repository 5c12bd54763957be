package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/eslex"
	"github.com/gnolang/eslex/internal"
	tt "github.com/gnolang/eslex/internal/types"
	"github.com/gnolang/eslex/matcher"
	"github.com/gnolang/eslex/search"
)

const findRuleName = "pattern"

var findExtensions []string

// findCmd: eslex find PATTERN [paths...]
var findCmd = &cobra.Command{
	Use:   "find PATTERN [paths...]",
	Short: "Report every place PATTERN occurs, ignoring whitespace and comments",
	Long: `Report every place PATTERN occurs. PATTERN is tokenized like source code;
whitespace and comments between its tokens never affect a match.

With no paths the document is read from stdin. In that mode --json prints
the bare ranges.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := matcher.ParseBracketMode(brackets)
		if err != nil {
			return err
		}
		pattern, paths := args[0], args[1:]

		if len(paths) == 0 && jsonOutput {
			_, data, err := readInput(cmd, nil)
			if err != nil {
				return err
			}
			d, err := eslex.FindRangesJSON(string(data), pattern,
				matcher.WithBrackets(mode),
				matcher.WithLogger(logger),
			)
			if err != nil {
				return err
			}
			return writeOutput(cmd, append(d, '\n'))
		}

		engine, err := internal.NewEngine(
			map[string]tt.ConfigRule{
				findRuleName: {Pattern: pattern, Severity: tt.SeverityInfo},
			},
			internal.WithBrackets(mode),
			internal.WithExtensions(findExtensions...),
			internal.WithLogger(logger),
		)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		if len(paths) == 0 {
			name, data, err := readInput(cmd, nil)
			if err != nil {
				return err
			}
			matches, err := search.ProcessSources(ctx, logger, engine,
				[]search.Source{{Name: name, Data: data}}, search.ProcessSource)
			if err != nil {
				return err
			}
			return printMatches(cmd, matches, map[string]*internal.SourceCode{
				name: internal.NewSourceCode(string(data)),
			})
		}

		matches, err := search.ProcessFiles(ctx, logger, engine, paths, search.ProcessFile)
		if err != nil {
			logger.Error("Error processing files", zap.Error(err))
			return err
		}
		return printMatches(cmd, matches, nil)
	},
}

func init() {
	findCmd.Flags().StringSliceVar(&findExtensions, "ext", nil, "File extensions to search (default .js,.jsx,.mjs,.cjs,.ts,.tsx)")
}
