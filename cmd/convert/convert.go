// Package convert handles statement conversion with automatic parser choice
package convert

import (
	"jortiz/resumen-csv/cmd/common"
	"jortiz/resumen-csv/cmd/root"
	"jortiz/resumen-csv/internal/selector"
	"jortiz/resumen-csv/internal/validation"

	"github.com/spf13/cobra"
)

// Method is the explicit parser override ("ai" or "tabular").
var Method string

// Cmd represents the convert command
var Cmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a statement file to CSV",
	Long: `Convert a bank or credit card statement to CSV. The parser is picked
from the filename and the document content; use --method to force the AI or
tabular parser.`,
	Run: convertFunc,
}

func init() {
	Cmd.Flags().StringVarP(&Method, "method", "m", "", "Force a parser: 'ai' or 'tabular'")
}

func convertFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Convert command called")

	if err := validation.IsValidParserMethod(Method); err != nil {
		root.Log.Fatalf("Invalid method: %v", err)
	}

	common.ProcessFile(root.App, root.SharedFlags.Input, root.SharedFlags.Output,
		selector.Kind(Method), root.Log)
}
