package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gnolang/eslex"
	"github.com/gnolang/eslex/formatter"
	"github.com/gnolang/eslex/lexer"
)

// lexCmd: eslex lex [file|-]
var lexCmd = &cobra.Command{
	Use:   "lex [file|-]",
	Short: "Print the tokens of a file (stdin when omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, data, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		if jsonOutput {
			d, err := eslex.LexJSON(string(data))
			if err != nil {
				return err
			}
			return writeOutput(cmd, append(d, '\n'))
		}
		return writeOutput(cmd, []byte(formatter.FormatTokens(lexer.Tokenize(string(data)))))
	},
}
