// Package analytics computes derived views over expense snapshots. Every
// function is pure: no mutation, no I/O, recomputed from the live collection
// on each call.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/studentplanner/core/internal/domain/entities"
)

// OtherCategory absorbs expenses with an empty category in group-bys.
const OtherCategory = "Other"

// CategoryShare is one slice of the category breakdown.
type CategoryShare struct {
	Category string
	Total    int64
	Percent  int
}

// Series is a zero-filled time-bucketed chart: Labels[i] captions Values[i].
type Series struct {
	Labels []string
	Values []int64
}

// amountOf clamps invalid amounts to zero so a bad record can never corrupt
// a sum.
func amountOf(e entities.Expense) int64 {
	if e.Amount < 0 {
		return 0
	}
	return e.Amount
}

// TotalAmount sums the amounts of the input set.
func TotalAmount(expenses []entities.Expense) int64 {
	var total int64
	for _, e := range expenses {
		total += amountOf(e)
	}
	return total
}

// CategoryTotals groups by category, summing amounts per group. Expenses
// without a category land in OtherCategory.
func CategoryTotals(expenses []entities.Expense) map[string]int64 {
	totals := make(map[string]int64)
	for _, e := range expenses {
		cat := e.Category
		if cat == "" {
			cat = OtherCategory
		}
		totals[cat] += amountOf(e)
	}
	return totals
}

// CategoryShares returns the category breakdown with percentage of the grand
// total, sorted descending by total. Ties keep first-encountered category
// order; percent is defined as 0 when the grand total is 0.
func CategoryShares(expenses []entities.Expense) []CategoryShare {
	var order []string
	totals := make(map[string]int64)
	for _, e := range expenses {
		cat := e.Category
		if cat == "" {
			cat = OtherCategory
		}
		if _, seen := totals[cat]; !seen {
			order = append(order, cat)
		}
		totals[cat] += amountOf(e)
	}

	var grand int64
	for _, t := range totals {
		grand += t
	}

	shares := make([]CategoryShare, 0, len(order))
	for _, cat := range order {
		percent := 0
		if grand > 0 {
			percent = int(math.Round(100 * float64(totals[cat]) / float64(grand)))
		}
		shares = append(shares, CategoryShare{Category: cat, Total: totals[cat], Percent: percent})
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Total > shares[j].Total
	})
	return shares
}

// DailySeries buckets expense amounts into the last rangeDays calendar days
// including today, using each expense's local calendar date. Expenses outside
// the window or with unparseable dates are dropped silently.
func DailySeries(expenses []entities.Expense, rangeDays int, now time.Time) Series {
	if rangeDays <= 0 {
		return Series{}
	}

	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	keys := make([]string, 0, rangeDays)
	index := make(map[string]int, rangeDays)
	for i := rangeDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		key := day.Format("2006-01-02")
		index[key] = len(keys)
		keys = append(keys, key)
	}

	series := Series{
		Labels: make([]string, len(keys)),
		Values: make([]int64, len(keys)),
	}
	for i, key := range keys {
		day, _ := time.ParseInLocation("2006-01-02", key, loc)
		series.Labels[i] = day.Format("01/02")
	}

	for _, e := range expenses {
		d, err := entities.ParseDate(e.Date)
		if err != nil {
			continue
		}
		// Bucket by the expense's own calendar date; converting to the
		// viewer's zone would shift bare dates across midnight.
		if i, ok := index[d.Format("2006-01-02")]; ok {
			series.Values[i] += amountOf(e)
		}
	}
	return series
}

// MonthlySeries buckets expense amounts into the trailing monthCount months
// including the current one. Labels are short month names.
func MonthlySeries(expenses []entities.Expense, monthCount int, now time.Time) Series {
	if monthCount <= 0 {
		return Series{}
	}

	loc := now.Location()
	index := make(map[string]int, monthCount)
	series := Series{
		Labels: make([]string, 0, monthCount),
		Values: make([]int64, monthCount),
	}
	for i := monthCount - 1; i >= 0; i-- {
		m := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc).AddDate(0, -i, 0)
		index[m.Format("2006-01")] = len(series.Labels)
		series.Labels = append(series.Labels, m.Format("Jan"))
	}

	for _, e := range expenses {
		d, err := entities.ParseDate(e.Date)
		if err != nil {
			continue
		}
		if i, ok := index[d.Format("2006-01")]; ok {
			series.Values[i] += amountOf(e)
		}
	}
	return series
}

// FilterMonth keeps expenses whose date falls in the given "2006-01" month.
// Unparseable dates never match. Archived expenses are dropped unless
// includeArchived is set.
func FilterMonth(expenses []entities.Expense, month string, includeArchived bool) []entities.Expense {
	var out []entities.Expense
	for _, e := range expenses {
		if !includeArchived && e.Archived {
			continue
		}
		d, err := entities.ParseDate(e.Date)
		if err != nil || d.Format("2006-01") != month {
			continue
		}
		out = append(out, e)
	}
	return out
}
