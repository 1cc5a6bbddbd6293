// Package tarjeta handles credit card statement commands
package tarjeta

import (
	"jortiz/resumen-csv/cmd/common"
	"jortiz/resumen-csv/cmd/root"
	"jortiz/resumen-csv/internal/selector"

	"github.com/spf13/cobra"
)

// Cmd represents the tarjeta command
var Cmd = &cobra.Command{
	Use:   "tarjeta",
	Short: "Convert a credit card statement to CSV",
	Long: `Convert a credit card statement to CSV, resolving per-card owners and
re-dating installment purchases to the billing month.`,
	Run: tarjetaFunc,
}

func tarjetaFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Credit card statement command called")
	common.ProcessFile(root.App, root.SharedFlags.Input, root.SharedFlags.Output,
		selector.KindCard, root.Log)
}
