// Package categorize handles transaction categorization commands
package categorize

import (
	"jortiz/resumen-csv/cmd/root"
	"jortiz/resumen-csv/internal/classifier"
	"jortiz/resumen-csv/internal/logging"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a single transaction description",
	Long: `Categorize a transaction description using the configured rules and the
built-in heuristics, printing the resolved type and category.`,
	Run: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.Description, "description", "d", "", "Transaction description to categorize")
	Cmd.Flags().StringVarP(&root.Amount, "amount", "a", "0", "Transaction amount (optional)")
	Cmd.Flags().StringVarP(&root.Owner, "owner", "w", "", "Transaction owner (optional)")
	Cmd.Flags().StringVarP(&root.Account, "account", "c", "", "Transaction account (optional)")
	if err := Cmd.MarkFlagRequired("description"); err != nil {
		panic(err)
	}
}

func categorizeFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Categorize command called")

	amount, err := decimal.NewFromString(root.Amount)
	if err != nil {
		root.Log.Fatalf("Invalid amount %q: %v", root.Amount, err)
	}

	result := classifier.Classify(classifier.Input{
		Description: root.Description,
		Amount:      amount,
		Owner:       root.Owner,
		Account:     root.Account,
	}, root.App.GetRules())

	root.Log.WithFields(
		logging.Field{Key: "type", Value: result.Type},
		logging.Field{Key: logging.FieldCategory, Value: result.Category},
		logging.Field{Key: "subcategory", Value: result.Subcategory},
	).Info("Transaction categorized")
}
