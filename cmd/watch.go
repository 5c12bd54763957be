package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/eslex/formatter"
	"github.com/gnolang/eslex/internal"
	tt "github.com/gnolang/eslex/internal/types"
)

// watchCmd: eslex watch [dirs...]
var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Rescan files as they change (current directory when omitted)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			args = []string{"."}
		}

		engine, err := newConfiguredEngine(cmd)
		if err != nil {
			return err
		}
		applyIgnores(engine)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return engine.Watch(ctx, args, watchReporter(cmd))
	},
}

// watchReporter prints each rescanned file. Reports arrive from separate
// goroutines, so writes are serialized.
func watchReporter(cmd *cobra.Command) internal.ReportFunc {
	var mu sync.Mutex
	out := cmd.OutOrStdout()
	return func(filename string, matches []tt.Match, err error) {
		mu.Lock()
		defer mu.Unlock()

		if err != nil {
			logger.Error("Error scanning file", zap.String("file", filename), zap.Error(err))
			return
		}
		if len(matches) == 0 {
			fmt.Fprintf(out, "%s: no matches\n", filename)
			return
		}
		sourceCode, err := internal.ReadSourceCode(filename)
		if err != nil {
			logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
			return
		}
		fmt.Fprint(out, formatter.GenerateFormattedMatches(matches, sourceCode))
		fmt.Fprint(out, formatter.FormatSummary(1, matches))
	}
}

