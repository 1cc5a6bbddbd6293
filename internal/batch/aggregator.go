// Package batch groups statement files by account and aggregates their
// transactions into one chronological list per account.
package batch

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"jortiz/resumen-csv/internal/dateutils"
	"jortiz/resumen-csv/internal/logging"
	"jortiz/resumen-csv/internal/models"
)

// DateRange is the period covered by one or more statement files.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// String renders the range as "YYYY-MM-DD_YYYY-MM-DD", empty when unset.
func (dr DateRange) String() string {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s_%s",
		dr.Start.Format("2006-01-02"),
		dr.End.Format("2006-01-02"))
}

// Merge combines this range with another, returning the overall range.
func (dr DateRange) Merge(other DateRange) DateRange {
	start := dr.Start
	end := dr.End

	if dr.Start.IsZero() {
		start = other.Start
	} else if !other.Start.IsZero() && other.Start.Before(start) {
		start = other.Start
	}

	if dr.End.IsZero() {
		end = other.End
	} else if !other.End.IsZero() && other.End.After(end) {
		end = other.End
	}

	return DateRange{Start: start, End: end}
}

// FileGroup is the set of statement files belonging to one account.
type FileGroup struct {
	AccountID string
	Files     []string
	DateRange DateRange
}

// Aggregator groups and merges statement files.
type Aggregator struct {
	logger logging.Logger
}

// NewAggregator creates an Aggregator.
func NewAggregator(logger logging.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

// Statement files are commonly named "<account>-YYYY-MM.<ext>" or carry a
// trailing period fragment; the period part is stripped to get the account.
var periodSuffixPattern = regexp.MustCompile(`[-_](\d{4})[-_](\d{2})$`)

// GroupFilesByAccount groups files by the account identifier embedded in
// their filenames. Files whose names carry no period fragment group under
// the full base name.
func (a *Aggregator) GroupFilesByAccount(files []string) []FileGroup {
	accountGroups := make(map[string]*FileGroup)

	for _, file := range files {
		accountID, fileRange := splitAccountAndPeriod(file)

		a.logger.Debug("File mapped to account",
			logging.Field{Key: logging.FieldFile, Value: filepath.Base(file)},
			logging.Field{Key: "account", Value: accountID})

		group, exists := accountGroups[accountID]
		if !exists {
			group = &FileGroup{AccountID: accountID}
			accountGroups[accountID] = group
		}
		group.Files = append(group.Files, file)
		group.DateRange = group.DateRange.Merge(fileRange)
	}

	groups := make([]FileGroup, 0, len(accountGroups))
	for _, group := range accountGroups {
		sort.Strings(group.Files)
		groups = append(groups, *group)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].AccountID < groups[j].AccountID
	})

	a.logger.Info("Grouped files into account groups",
		logging.Field{Key: "total_files", Value: len(files)},
		logging.Field{Key: "account_groups", Value: len(groups)})
	return groups
}

// splitAccountAndPeriod derives the account identifier and, when the name
// carries a "YYYY-MM" fragment, the month range it covers.
func splitAccountAndPeriod(file string) (string, DateRange) {
	base := filepath.Base(file)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ToLower(base)

	m := periodSuffixPattern.FindStringSubmatch(base)
	if m == nil {
		return base, DateRange{}
	}

	account := base[:len(base)-len(m[0])]
	start, err := time.Parse("2006-01", m[1]+"-"+m[2])
	if err != nil {
		return account, DateRange{}
	}
	end := start.AddDate(0, 1, -1)
	return account, DateRange{Start: start, End: end}
}

// AggregateTransactions parses every file in the group and returns the
// merged, chronologically sorted transactions. A file that fails to parse is
// logged and skipped. Each transaction is stamped with its source file.
func (a *Aggregator) AggregateTransactions(group FileGroup, parseFunc func(string) ([]models.Transaction, error)) ([]models.Transaction, error) {
	var all []models.Transaction

	a.logger.Info("Aggregating transactions for account",
		logging.Field{Key: "account", Value: group.AccountID},
		logging.Field{Key: logging.FieldCount, Value: len(group.Files)})

	for _, file := range group.Files {
		transactions, err := parseFunc(file)
		if err != nil {
			a.logger.Error("Failed to parse file",
				logging.Field{Key: logging.FieldFile, Value: file},
				logging.Field{Key: logging.FieldError, Value: err})
			continue
		}
		for i := range transactions {
			transactions[i].SourceFile = filepath.Base(file)
		}
		all = append(all, transactions...)
	}

	sortChronologically(all)
	a.logDuplicates(all, group.AccountID)

	a.logger.Info("Aggregated transactions for account",
		logging.Field{Key: "account", Value: group.AccountID},
		logging.Field{Key: logging.FieldCount, Value: len(all)})
	return all, nil
}

// sortChronologically orders by date, then description, then amount so the
// merge is deterministic across runs.
func sortChronologically(transactions []models.Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		di, erri := dateutils.ParseStatementDate(transactions[i].Date)
		dj, errj := dateutils.ParseStatementDate(transactions[j].Date)
		if erri == nil && errj == nil && !di.Equal(dj) {
			return di.Before(dj)
		}
		if transactions[i].Description != transactions[j].Description {
			return transactions[i].Description < transactions[j].Description
		}
		return transactions[i].Amount.LessThan(transactions[j].Amount)
	})
}

// logDuplicates warns about same date/description/amount pairs coming from
// different files. Overlapping statements are kept, not deduplicated: the
// user decides.
func (a *Aggregator) logDuplicates(transactions []models.Transaction, accountID string) {
	seen := make(map[string]string)
	duplicates := 0
	for _, tx := range transactions {
		key := tx.Date + "|" + tx.Description + "|" + tx.Amount.String()
		if prev, ok := seen[key]; ok && prev != tx.SourceFile {
			duplicates++
			continue
		}
		seen[key] = tx.SourceFile
	}
	if duplicates > 0 {
		a.logger.Warn("Potential duplicate transactions across files",
			logging.Field{Key: "account", Value: accountID},
			logging.Field{Key: logging.FieldCount, Value: duplicates})
	}
}
