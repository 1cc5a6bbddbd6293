// Package root contains the root command for the application
package root

import (
	"jortiz/resumen-csv/internal/common"
	"jortiz/resumen-csv/internal/config"
	"jortiz/resumen-csv/internal/container"
	"jortiz/resumen-csv/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input  string
	Output string
}

var (
	// Log is the shared logger instance for commands
	Log = logging.GetLogger()

	// Cfg holds the loaded configuration, available after PersistentPreRun
	Cfg *config.Config

	// App holds the wired dependencies, available after PersistentPreRun
	App *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "resumen-csv",
		Short: "A CLI tool to convert bank and credit card statements to CSV.",
		Long: `resumen-csv converts Argentinian bank and credit card statement text
to normalized CSV, categorizing each transaction along the way.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to resumen-csv!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Error loading configuration: %v", err)
			}
			Cfg = cfg

			app, err := container.NewContainer(cfg)
			if err != nil {
				Log.Fatalf("Error wiring dependencies: %v", err)
			}
			App = app
			Log = app.GetLogger()
			logging.SetDefaultLogger(Log)

			common.SetLogger(Log)
			common.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if App != nil {
				if err := App.Close(); err != nil {
					Log.WithError(err).Warn("Failed to close dependencies")
				}
			}
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}

	// Specific batch command flags
	InputDir  string
	OutputDir string

	// Specific categorize command flags
	Description string
	Amount      string
	Owner       string
	Account     string
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
}
