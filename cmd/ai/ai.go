// Package ai handles AI-assisted statement conversion commands
package ai

import (
	"jortiz/resumen-csv/cmd/common"
	"jortiz/resumen-csv/cmd/root"
	"jortiz/resumen-csv/internal/selector"

	"github.com/spf13/cobra"
)

// Cmd represents the ai command
var Cmd = &cobra.Command{
	Use:   "ai",
	Short: "Convert a statement with model assistance",
	Long: `Convert a low-structure statement to CSV by delegating extraction to a
generative model. Requires GEMINI_API_KEY and ai.enabled in the configuration.`,
	Run: aiFunc,
}

func aiFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("AI-assisted conversion command called")
	common.ProcessFile(root.App, root.SharedFlags.Input, root.SharedFlags.Output,
		selector.KindAI, root.Log)
}
