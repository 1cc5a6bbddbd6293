package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"jortiz/resumen-csv/cmd/ai"
	"jortiz/resumen-csv/cmd/banco"
	"jortiz/resumen-csv/cmd/batch"
	"jortiz/resumen-csv/cmd/categorize"
	"jortiz/resumen-csv/cmd/convert"
	"jortiz/resumen-csv/cmd/recurring"
	"jortiz/resumen-csv/cmd/root"
	"jortiz/resumen-csv/cmd/tabular"
	"jortiz/resumen-csv/cmd/tarjeta"
	"jortiz/resumen-csv/internal/logging"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	loadEnvSilently()

	// 2. Configure global log level directly - this affects ALL new loggers
	logLevel := configureLogLevelDirectly()

	// 3. Force this level on ALL existing and future loggers
	logging.SetAllLogLevels(logLevel)

	// 4. Now that logging is properly configured, initialize root command
	root.Init()

	// 5. Add all subcommands
	root.Cmd.AddCommand(convert.Cmd)
	root.Cmd.AddCommand(banco.Cmd)
	root.Cmd.AddCommand(tarjeta.Cmd)
	root.Cmd.AddCommand(tabular.Cmd)
	root.Cmd.AddCommand(ai.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(recurring.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

// configureLogLevelDirectly sets the global log level for all logrus
// instances and returns the configured level
func configureLogLevelDirectly() logrus.Level {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}

	// Set the global logrus level before any logging happens so it affects
	// all existing and future loggers.
	logrus.SetLevel(logLevel)

	return logLevel
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
