package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/eslex/formatter"
	"github.com/gnolang/eslex/internal"
	tt "github.com/gnolang/eslex/internal/types"
)

const stdinName = "<stdin>"

// readInput reads the named file, or stdin for "-" or no name.
func readInput(cmd *cobra.Command, args []string) (string, []byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", nil, fmt.Errorf("error reading stdin: %w", err)
		}
		return stdinName, data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", nil, fmt.Errorf("error reading %s: %w", args[0], err)
	}
	return args[0], data, nil
}

// writeOutput sends d to --output when set, else to the command's stdout.
func writeOutput(cmd *cobra.Command, d []byte) error {
	if outPath == "" {
		_, err := cmd.OutOrStdout().Write(d)
		return err
	}
	if err := os.WriteFile(outPath, d, 0o644); err != nil {
		return fmt.Errorf("error writing output file: %w", err)
	}
	return nil
}

// printMatches reports matches grouped by file. sources supplies text for
// files that are not on disk; any other file is read back for its snippet.
func printMatches(cmd *cobra.Command, matches []tt.Match, sources map[string]*internal.SourceCode) error {
	matchesByFile := make(map[string][]tt.Match)
	for _, m := range matches {
		matchesByFile[m.Filename] = append(matchesByFile[m.Filename], m)
	}

	if jsonOutput {
		d, err := json.Marshal(matchesByFile)
		if err != nil {
			return fmt.Errorf("error marshalling matches to JSON: %w", err)
		}
		return writeOutput(cmd, append(d, '\n'))
	}

	sortedFiles := make([]string, 0, len(matchesByFile))
	for filename := range matchesByFile {
		sortedFiles = append(sortedFiles, filename)
	}
	sort.Strings(sortedFiles)

	var out []byte
	for _, filename := range sortedFiles {
		sourceCode, ok := sources[filename]
		if !ok {
			var err error
			sourceCode, err = internal.ReadSourceCode(filename)
			if err != nil {
				logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
				continue
			}
		}
		out = append(out, formatter.GenerateFormattedMatches(matchesByFile[filename], sourceCode)...)
	}
	out = append(out, formatter.FormatSummary(len(sortedFiles), matches)...)
	return writeOutput(cmd, out)
}

func hasErrors(matches []tt.Match) bool {
	for _, m := range matches {
		if m.Severity == tt.SeverityError {
			return true
		}
	}
	return false
}
