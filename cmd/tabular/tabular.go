// Package tabular handles CSV export conversion commands
package tabular

import (
	"jortiz/resumen-csv/cmd/common"
	"jortiz/resumen-csv/cmd/root"
	"jortiz/resumen-csv/internal/selector"

	"github.com/spf13/cobra"
)

// Cmd represents the tabular command
var Cmd = &cobra.Command{
	Use:   "tabular",
	Short: "Convert a tabular export to CSV",
	Long:  `Convert a CSV export from another tool into the normalized transaction CSV.`,
	Run:   tabularFunc,
}

func tabularFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Tabular export command called")
	common.ProcessFile(root.App, root.SharedFlags.Input, root.SharedFlags.Output,
		selector.KindTabular, root.Log)
}
