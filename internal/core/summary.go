package core

import "sort"

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// Summary is a derived view over a user's record set. It is recomputed from
// the live records on every request and never persisted or cached.
type Summary struct {
	Total      Money
	ByCategory []CategoryAmount
}

// Summarize computes the total and per-category sums of a record set.
// Signs are preserved as entered, so income entries net against expenses.
// Grouping is by exact category string. An empty record set yields a zero
// total and no categories.
func Summarize(records []Record) Summary {
	var s Summary
	if len(records) == 0 {
		return s
	}

	byName := make(map[string]int64, len(records))
	for _, r := range records {
		s.Total.Cents += r.Amount.Cents
		byName[r.Category] += r.Amount.Cents
	}

	s.ByCategory = make([]CategoryAmount, 0, len(byName))
	for name, cents := range byName {
		s.ByCategory = append(s.ByCategory, CategoryAmount{Name: name, Amount: Money{Cents: cents}})
	}
	// Map order is arbitrary; sort for stable presentation, largest
	// absolute amount first.
	sort.Slice(s.ByCategory, func(i, j int) bool {
		a, b := abs(s.ByCategory[i].Amount.Cents), abs(s.ByCategory[j].Amount.Cents)
		if a != b {
			return a > b
		}
		return s.ByCategory[i].Name < s.ByCategory[j].Name
	})
	return s
}

// PositiveShare returns the percentage of cents against the sum of all
// positive category totals, rounded to the nearest integer. Returns 0 when
// cents is not positive or nothing positive exists to compare against.
func (s Summary) PositiveShare(cents int64) int {
	if cents <= 0 {
		return 0
	}
	var positive int64
	for _, ca := range s.ByCategory {
		if ca.Amount.Cents > 0 {
			positive += ca.Amount.Cents
		}
	}
	if positive == 0 {
		return 0
	}
	return int((cents*100 + positive/2) / positive)
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
