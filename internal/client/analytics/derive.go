// Package analytics derives spending statistics from a list of expenses and
// renders them as an HTML panel that can be exported to PDF.
package analytics

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/expenses/internal/client/filter"
	"github.com/dmitrijs2005/expenses/internal/client/models"
	"github.com/shopspring/decimal"
)

// DefaultTopN is the size of the largest-expenses table.
const DefaultTopN = 5

const (
	LabelWithAttachment = "With attachment"
	LabelNoAttachment   = "No attachment"
)

type MonthlyTotal struct {
	Month string // YYYY-MM
	Total decimal.Decimal
}

type TopEntry struct {
	Rank   int
	Label  string
	Amount decimal.Decimal
}

type SplitBucket struct {
	Label string
	Count int
}

type Stats struct {
	Count           int
	Total           decimal.Decimal
	Average         decimal.Decimal
	RecurringCount  int
	RecurringTotal  decimal.Decimal
	OneTimeCount    int
	OneTimeTotal    decimal.Decimal
	AttachmentCount int
	// Coverage is AttachmentCount/Count, 0 for an empty set.
	Coverage float64
}

// Report bundles everything the analytics view shows for one view mode.
type Report struct {
	Mode    models.RecurrenceFilter
	Stats   Stats
	Monthly []MonthlyTotal
	Top     []TopEntry
	Split   []SplitBucket
}

// Build pre-filters expenses by mode and derives the full report.
func Build(expenses []models.Expense, mode models.RecurrenceFilter) Report {
	if mode == "" {
		mode = models.RecurrenceAll
	}
	subset := filter.ByViewMode(expenses, mode)
	return Report{
		Mode:    mode,
		Stats:   Summarize(subset),
		Monthly: MonthlyTotals(subset),
		Top:     TopN(subset, DefaultTopN),
		Split:   AttachmentSplit(subset),
	}
}

// parseDate reads "Y-M-D" leniently: each part must be an integer, empty
// parts count as zero and out-of-range values roll over into adjacent
// months the way time.Date normalises them.
func parseDate(s string) (time.Time, bool) {
	parts := strings.Split(s, "-")
	if len(parts) < 3 {
		return time.Time{}, false
	}

	var n [3]int
	for i := 0; i < 3; i++ {
		p := strings.TrimSpace(parts[i])
		if p == "" {
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, false
		}
		n[i] = v
	}

	return time.Date(n[0], time.Month(n[1]), n[2], 0, 0, 0, 0, time.UTC), true
}

// MonthlyTotals sums amounts per year-month, ascending by month. Entries
// whose date cannot be parsed are skipped; totals are rounded to cents.
func MonthlyTotals(expenses []models.Expense) []MonthlyTotal {
	sums := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		d, ok := parseDate(e.Date)
		if !ok {
			continue
		}
		key := fmt.Sprintf("%04d-%02d", d.Year(), int(d.Month()))
		sums[key] = sums[key].Add(e.Amount)
	}

	out := make([]MonthlyTotal, 0, len(sums))
	for month, total := range sums {
		out = append(out, MonthlyTotal{Month: month, Total: total.Round(2)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

func topLabel(e models.Expense) string {
	switch {
	case e.Description != "":
		return e.Description
	case e.Date != "":
		return e.Date
	default:
		return "Expense " + strconv.FormatInt(e.ID, 10)
	}
}

// TopN returns the n largest expenses. Equal amounts keep their input order.
func TopN(expenses []models.Expense, n int) []TopEntry {
	sorted := append([]models.Expense(nil), expenses...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount.GreaterThan(sorted[j].Amount)
	})

	if n < 0 {
		n = 0
	}
	if len(sorted) > n {
		sorted = sorted[:n]
	}

	out := make([]TopEntry, 0, len(sorted))
	for i, e := range sorted {
		out = append(out, TopEntry{Rank: i + 1, Label: topLabel(e), Amount: e.Amount})
	}
	return out
}

// AttachmentSplit counts entries with and without an attachment.
func AttachmentSplit(expenses []models.Expense) []SplitBucket {
	with := 0
	for _, e := range expenses {
		if e.HasAttachment() {
			with++
		}
	}
	return []SplitBucket{
		{Label: LabelWithAttachment, Count: with},
		{Label: LabelNoAttachment, Count: len(expenses) - with},
	}
}

func Summarize(expenses []models.Expense) Stats {
	var s Stats
	for _, e := range expenses {
		s.Count++
		s.Total = s.Total.Add(e.Amount)
		if e.IsRecurring {
			s.RecurringCount++
			s.RecurringTotal = s.RecurringTotal.Add(e.Amount)
		} else {
			s.OneTimeCount++
			s.OneTimeTotal = s.OneTimeTotal.Add(e.Amount)
		}
		if e.HasAttachment() {
			s.AttachmentCount++
		}
	}

	if s.Count > 0 {
		s.Average = s.Total.Div(decimal.NewFromInt(int64(s.Count)))
		s.Coverage = float64(s.AttachmentCount) / float64(s.Count)
	}
	return s
}
