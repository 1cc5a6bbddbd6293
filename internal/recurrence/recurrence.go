// Package recurrence infers recurring-expense candidates from a transaction
// history. Grouping and scoring are deterministic: re-running over the same
// history reproduces the same candidates.
package recurrence

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"jortiz/resumen-csv/internal/dateutils"
	"jortiz/resumen-csv/internal/logging"
	"jortiz/resumen-csv/internal/models"
)

// Detector groups expenses by a composite key and checks the regularity of
// their day intervals.
type Detector struct {
	logger          logging.Logger
	minOccurrences  int
	stdDevThreshold float64
	amountBucket    int64
}

// New creates a detector. minOccurrences is the smallest group size worth
// considering, stdDevThreshold the interval tightness gate in days, and
// amountBucket the rounding granularity used in the grouping key.
func New(logger logging.Logger, minOccurrences int, stdDevThreshold float64, amountBucket int64) *Detector {
	if minOccurrences < 2 {
		minOccurrences = 2
	}
	if amountBucket <= 0 {
		amountBucket = 100
	}
	return &Detector{
		logger:          logger,
		minOccurrences:  minOccurrences,
		stdDevThreshold: stdDevThreshold,
		amountBucket:    amountBucket,
	}
}

type occurrence struct {
	tx   models.Transaction
	date time.Time
}

// Detect returns recurring-expense candidates ordered by group key.
func (d *Detector) Detect(transactions []models.Transaction) []models.RecurringExpense {
	groups := make(map[string][]occurrence)
	for _, tx := range transactions {
		if !tx.IsExpense() {
			continue
		}
		date, err := dateutils.ParseStatementDate(tx.Date)
		if err != nil {
			continue
		}
		key := d.groupKey(tx)
		groups[key] = append(groups[key], occurrence{tx: tx, date: date})
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var candidates []models.RecurringExpense
	for _, key := range keys {
		group := groups[key]
		if len(group) < d.minOccurrences {
			continue
		}
		if candidate, ok := d.evaluate(group); ok {
			candidates = append(candidates, candidate)
		}
	}

	d.logger.WithField(logging.FieldCount, len(candidates)).
		Info("Detected recurring expense candidates")
	return candidates
}

// evaluate decides whether one group is recurring and builds the candidate.
func (d *Detector) evaluate(group []occurrence) (models.RecurringExpense, bool) {
	sort.Slice(group, func(i, j int) bool {
		if !group[i].date.Equal(group[j].date) {
			return group[i].date.Before(group[j].date)
		}
		return group[i].tx.Description < group[j].tx.Description
	})

	intervals := make([]float64, 0, len(group)-1)
	for i := 1; i < len(group); i++ {
		days := group[i].date.Sub(group[i-1].date).Hours() / 24
		intervals = append(intervals, days)
	}

	mean := meanOf(intervals)
	stdDev := stdDevOf(intervals, mean)

	frequency, gated := frequencyForInterval(mean)
	if !gated || stdDev > d.stdDevThreshold {
		return models.RecurringExpense{}, false
	}

	confidence := int(math.Round(100 - stdDev*10))
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}

	last := group[len(group)-1]
	next := dateutils.AddPeriod(last.date, frequency).Format(dateutils.DateLayoutStatement)

	ids := make([]string, 0, len(group))
	for _, occ := range group {
		ids = append(ids, occ.tx.Date+"|"+occ.tx.Description)
	}

	return models.RecurringExpense{
		Name:                 last.tx.Description,
		Amount:               last.tx.Amount.Abs(),
		Currency:             last.tx.Currency,
		Frequency:            frequency,
		LastOccurrence:       last.tx.Date,
		NextOccurrence:       next,
		Confidence:           confidence,
		LinkedTransactionIDs: ids,
		Active:               true,
	}, true
}

// frequencyForInterval maps a mean day interval to a frequency label. Only
// the weekly, biweekly and monthly bands gate detection; the longer bands
// label a group but the current heuristic does not accept them.
func frequencyForInterval(mean float64) (string, bool) {
	switch {
	case mean >= 5 && mean <= 9:
		return models.FrequencyWeekly, true
	case mean >= 12 && mean <= 16:
		return models.FrequencyBiweekly, true
	case mean >= 25 && mean <= 35:
		return models.FrequencyMonthly, true
	case mean >= 80 && mean <= 100:
		return models.FrequencyQuarterly, false
	case mean >= 350 && mean <= 380:
		return models.FrequencyYearly, false
	default:
		return "", false
	}
}

var descriptionNoise = regexp.MustCompile(`[\d[:punct:]]+`)

// groupKey builds the composite grouping key: normalized description,
// rounded amount bucket and currency.
func (d *Detector) groupKey(tx models.Transaction) string {
	desc := strings.ToLower(tx.Description)
	desc = descriptionNoise.ReplaceAllString(desc, " ")
	desc = strings.Join(strings.Fields(desc), " ")
	if runes := []rune(desc); len(runes) > 24 {
		// Truncate by rune so accented descriptions are never split mid-rune.
		desc = string(runes[:24])
	}

	bucket := tx.Amount.Abs().Div(decimal.NewFromInt(d.amountBucket)).Floor().IntPart()
	return fmt.Sprintf("%s|%d|%s", desc, bucket, tx.Currency)
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stdDevOf(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		diff := v - mean
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(values)))
}
