// Package banco handles bank account statement commands
package banco

import (
	"jortiz/resumen-csv/cmd/common"
	"jortiz/resumen-csv/cmd/root"
	"jortiz/resumen-csv/internal/selector"

	"github.com/spf13/cobra"
)

// Cmd represents the banco command
var Cmd = &cobra.Command{
	Use:   "banco",
	Short: "Convert a bank account statement to CSV",
	Long:  `Convert a bank account statement to CSV, one transaction per statement line.`,
	Run:   bancoFunc,
}

func bancoFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Bank statement command called")
	common.ProcessFile(root.App, root.SharedFlags.Input, root.SharedFlags.Output,
		selector.KindBank, root.Log)
}
