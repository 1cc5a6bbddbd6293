// Package batch handles multi-file statement processing commands
package batch

import (
	"path/filepath"
	"strings"

	"jortiz/resumen-csv/cmd/common"
	"jortiz/resumen-csv/cmd/root"
	"jortiz/resumen-csv/internal/batch"
	"jortiz/resumen-csv/internal/fileutils"
	"jortiz/resumen-csv/internal/logging"
	"jortiz/resumen-csv/internal/models"
	"jortiz/resumen-csv/internal/selector"
	"jortiz/resumen-csv/internal/validation"

	csvio "jortiz/resumen-csv/internal/common"

	"github.com/spf13/cobra"
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Convert a directory of statement files to CSV",
	Long: `Convert every statement file in a directory. Files are grouped by the
account identifier embedded in their filenames and each group is merged into
one chronologically sorted CSV.`,
	Run: batchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.InputDir, "input-dir", "d", "", "Directory with statement files")
	Cmd.Flags().StringVarP(&root.OutputDir, "output-dir", "u", "", "Directory for the generated CSV files")
	if err := Cmd.MarkFlagRequired("input-dir"); err != nil {
		panic(err)
	}
}

func batchFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Batch command called")

	files, err := fileutils.ListFilesWithExtensions(root.InputDir, ".txt", ".csv", ".tsv")
	if err != nil {
		root.Log.Fatalf("Error listing input directory: %v", err)
	}
	if len(files) == 0 {
		root.Log.Fatal("No statement files found in the input directory")
	}

	outputDir := root.OutputDir
	if outputDir == "" {
		outputDir = root.InputDir
	}
	if err := fileutils.EnsureDirectoryExists(outputDir); err != nil {
		root.Log.Fatalf("Error creating output directory: %v", err)
	}

	aggregator := batch.NewAggregator(root.Log)
	groups := aggregator.GroupFilesByAccount(files)

	for _, group := range groups {
		transactions, err := aggregator.AggregateTransactions(group, parseOne)
		if err != nil {
			root.Log.WithError(err).Error("Failed to aggregate account group",
				logging.Field{Key: "account", Value: group.AccountID})
			continue
		}

		common.ClassifyAll(root.App, transactions, group.AccountID)
		if err := validation.ValidateTransactions(transactions); err != nil {
			root.Log.WithError(err).Error("Aggregated transactions failed validation",
				logging.Field{Key: "account", Value: group.AccountID})
			continue
		}

		name := group.AccountID
		if r := group.DateRange.String(); r != "" {
			name += "_" + r
		}
		outputFile := filepath.Join(outputDir, name+".csv")
		if err := csvio.WriteTransactionsToCSV(transactions, outputFile); err != nil {
			root.Log.WithError(err).Error("Failed to write account CSV",
				logging.Field{Key: "account", Value: group.AccountID})
			continue
		}
		root.Log.WithField(logging.FieldOutputFile, outputFile).Info("Wrote account CSV")
	}

	root.Log.Info("Batch processing completed successfully!")
}

// parseOne parses a single file with the auto-selected parser.
func parseOne(file string) ([]models.Transaction, error) {
	text, err := fileutils.ReadFileText(file)
	if err != nil {
		return nil, err
	}
	p, _, err := root.App.SelectParser(text, file, selector.Options{})
	if err != nil {
		return nil, err
	}
	return p.Parse(strings.NewReader(text))
}
