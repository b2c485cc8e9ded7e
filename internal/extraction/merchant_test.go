package extraction

import (
	"testing"
)

func testSnapshot() MappingSnapshot {
	return NewMappingSnapshot([]MappingEntry{
		{Keyword: "SWIGGY", Category: CategoryFood},
		{Keyword: "ZOMATO", Category: CategoryFood},
		{Keyword: "UBER", Category: CategoryTransportation},
		{Keyword: "APPLE", Category: CategoryShopping},
		{Keyword: "APPLE SERVICES", Category: CategoryEntertainment},
		{Keyword: "NETFLIX", Category: CategoryEntertainment},
	})
}

func TestNewMappingSnapshot(t *testing.T) {
	t.Run("normalizes and deduplicates", func(t *testing.T) {
		snap := NewMappingSnapshot([]MappingEntry{
			{Keyword: " swiggy ", Category: "Food"},
			{Keyword: "SWIGGY", Category: "Groceries"},
			{Keyword: "", Category: "Food"},
		})
		if snap.Len() != 1 {
			t.Fatalf("Len = %d, want 1", snap.Len())
		}
		entry := snap.Entries()[0]
		if entry.Keyword != "SWIGGY" || entry.Category != CategoryFood {
			t.Fatalf("entry = %+v, want SWIGGY/Food (first occurrence wins)", entry)
		}
	})

	t.Run("unknown category collapses to Other", func(t *testing.T) {
		snap := NewMappingSnapshot([]MappingEntry{{Keyword: "ACME", Category: "Gadgets"}})
		if got := snap.Entries()[0].Category; got != CategoryOther {
			t.Fatalf("category = %s, want %s", got, CategoryOther)
		}
	})

	t.Run("orders longer keywords first", func(t *testing.T) {
		snap := testSnapshot()
		entries := snap.Entries()
		if entries[0].Keyword != "APPLE SERVICES" {
			t.Fatalf("first entry = %s, want APPLE SERVICES", entries[0].Keyword)
		}
	})
}

func TestResolve(t *testing.T) {
	snap := testSnapshot()

	tests := []struct {
		name     string
		input    string
		merchant string
		category string
	}{
		{"exact keyword", "Rs.1250 debited for SWIGGY order", "SWIGGY", CategoryFood},
		{"case insensitive", "payment to swiggy bangalore", "SWIGGY", CategoryFood},
		{"keyword inside longer token", "UPI-SWIGGYINSTAMART-BLR", "SWIGGY", CategoryFood},
		{"longest match wins at same position", "APPLE SERVICES subscription renewed", "APPLE SERVICES", CategoryEntertainment},
		{"earlier occurrence wins", "NETFLIX then UBER on the same card", "NETFLIX", CategoryEntertainment},
		{"earlier shorter beats later longer", "UBER ride before APPLE SERVICES renewal", "UBER", CategoryTransportation},
		{"no match", "payment to corner shop", UnknownMerchant, CategoryOther},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			merchant, category := snap.Resolve(tc.input)
			if merchant != tc.merchant || category != tc.category {
				t.Fatalf("Resolve(%q) = %s/%s, want %s/%s", tc.input, merchant, category, tc.merchant, tc.category)
			}
		})
	}

	t.Run("idempotent", func(t *testing.T) {
		m1, c1 := snap.Resolve("SWIGGY order")
		m2, c2 := snap.Resolve("SWIGGY order")
		if m1 != m2 || c1 != c2 {
			t.Fatalf("Resolve is not idempotent: %s/%s vs %s/%s", m1, c1, m2, c2)
		}
	})
}

func TestCoerceCategory(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Food", CategoryFood},
		{"food", CategoryFood},
		{"TRAVEL", CategoryTravel},
		{"Dining Out", CategoryOther},
		{"", CategoryOther},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := CoerceCategory(tc.input); got != tc.expected {
				t.Fatalf("CoerceCategory(%q) = %s, want %s", tc.input, got, tc.expected)
			}
		})
	}
}
