// Package recurring handles recurring-expense detection commands
package recurring

import (
	"os"

	"jortiz/resumen-csv/cmd/root"
	"jortiz/resumen-csv/internal/logging"
	"jortiz/resumen-csv/internal/models"
	"jortiz/resumen-csv/internal/recurrence"

	csvio "jortiz/resumen-csv/internal/common"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"
)

// Cmd represents the recurring command
var Cmd = &cobra.Command{
	Use:   "recurring",
	Short: "Detect recurring expenses from a transactions CSV",
	Long: `Scan a previously converted transactions CSV and detect recurring
expense candidates (subscriptions, services, rent) from the regularity of
their payment intervals.`,
	Run: recurringFunc,
}

func recurringFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Recurring expense detection command called")

	transactions, err := csvio.ReadCSVFile[models.Transaction](root.SharedFlags.Input)
	if err != nil {
		root.Log.Fatalf("Error reading transactions CSV: %v", err)
	}

	cfg := root.Cfg.Recurrence
	detector := recurrence.New(root.Log, cfg.MinOccurrences, cfg.StdDevThreshold, int64(cfg.AmountBucket))
	candidates := detector.Detect(transactions)

	if len(candidates) == 0 {
		root.Log.Info("No recurring expenses detected")
		return
	}

	output := root.SharedFlags.Output
	if output == "" {
		output = "recurring.csv"
	}

	file, err := os.Create(output)
	if err != nil {
		root.Log.Fatalf("Error creating output file: %v", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			root.Log.WithError(err).Warn("Failed to close output file")
		}
	}()

	if err := gocsv.MarshalFile(&candidates, file); err != nil {
		root.Log.Fatalf("Error writing recurring expenses CSV: %v", err)
	}

	root.Log.WithFields(
		logging.Field{Key: logging.FieldOutputFile, Value: output},
		logging.Field{Key: logging.FieldCount, Value: len(candidates)},
	).Info("Recurring expense detection completed successfully!")
}
