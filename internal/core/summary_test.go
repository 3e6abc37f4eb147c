package core

import (
	"math/rand"
	"testing"
)

func rec(cents int64, category string) Record {
	return Record{Amount: Money{Cents: cents}, Description: "x", Category: category}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Total.Cents != 0 {
		t.Fatalf("expected zero total, got %d", s.Total.Cents)
	}
	if len(s.ByCategory) != 0 {
		t.Fatalf("expected no categories, got %d", len(s.ByCategory))
	}
}

func TestSummarizeGroupsByCategory(t *testing.T) {
	s := Summarize([]Record{
		rec(1000, "food"),
		rec(500, "food"),
		rec(300, "transport"),
	})
	if s.Total.Cents != 1800 {
		t.Fatalf("expected total 1800, got %d", s.Total.Cents)
	}
	if len(s.ByCategory) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(s.ByCategory))
	}
	if s.ByCategory[0].Name != "food" || s.ByCategory[0].Amount.Cents != 1500 {
		t.Fatalf("expected food=1500 first, got %s=%d", s.ByCategory[0].Name, s.ByCategory[0].Amount.Cents)
	}
	if s.ByCategory[1].Name != "transport" || s.ByCategory[1].Amount.Cents != 300 {
		t.Fatalf("expected transport=300, got %s=%d", s.ByCategory[1].Name, s.ByCategory[1].Amount.Cents)
	}
}

func TestSummarizeNetsIncomeAgainstExpenses(t *testing.T) {
	s := Summarize([]Record{
		rec(5000, "rent"),
		rec(-20000, "salary"),
		rec(1500, "rent"),
	})
	if s.Total.Cents != -13500 {
		t.Fatalf("expected total -13500, got %d", s.Total.Cents)
	}
	for _, ca := range s.ByCategory {
		switch ca.Name {
		case "rent":
			if ca.Amount.Cents != 6500 {
				t.Fatalf("rent: expected 6500, got %d", ca.Amount.Cents)
			}
		case "salary":
			if ca.Amount.Cents != -20000 {
				t.Fatalf("salary: expected -20000, got %d", ca.Amount.Cents)
			}
		default:
			t.Fatalf("unexpected category %q", ca.Name)
		}
	}
}

func TestSummarizeOrderIndependent(t *testing.T) {
	records := []Record{
		rec(100, "a"), rec(250, "b"), rec(-75, "c"), rec(4200, "a"), rec(1, "b"),
	}
	want := Summarize(records)

	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := make([]Record, len(records))
		copy(shuffled, records)
		rnd.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		got := Summarize(shuffled)
		if got.Total != want.Total {
			t.Fatalf("total changed under reordering: %d vs %d", got.Total.Cents, want.Total.Cents)
		}
		if len(got.ByCategory) != len(want.ByCategory) {
			t.Fatalf("category count changed under reordering")
		}
		for j := range got.ByCategory {
			if got.ByCategory[j] != want.ByCategory[j] {
				t.Fatalf("category %d changed under reordering: %+v vs %+v", j, got.ByCategory[j], want.ByCategory[j])
			}
		}
	}
}

func TestPositiveShare(t *testing.T) {
	s := Summarize([]Record{
		rec(7500, "food"),
		rec(2500, "transport"),
		rec(-5000, "salary"),
	})
	if got := s.PositiveShare(7500); got != 75 {
		t.Fatalf("expected 75, got %d", got)
	}
	if got := s.PositiveShare(2500); got != 25 {
		t.Fatalf("expected 25, got %d", got)
	}
	if got := s.PositiveShare(-5000); got != 0 {
		t.Fatalf("expected 0 for negative, got %d", got)
	}
}

func TestRecordValidate(t *testing.T) {
	good := Record{Amount: Money{Cents: 100}, Description: "lunch", Category: "food"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Record{
		{Amount: Money{Cents: 0}, Description: "a", Category: "c"},
		{Amount: Money{Cents: 1}, Description: "", Category: "c"},
		{Amount: Money{Cents: 1}, Description: "  ", Category: "c"},
		{Amount: Money{Cents: 1}, Description: "a", Category: ""},
		{Amount: Money{Cents: 1}, Description: "a", Category: "  "},
	}
	for i, r := range bads {
		if err := r.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}
