package extraction

import (
	"sort"
	"strings"
)

// MappingEntry associates one biller keyword with a spending category.
// Keywords are stored case-normalized (upper-case) and unique.
type MappingEntry struct {
	Keyword  string `json:"keyword"`
	Category string `json:"category"`
}

// MappingSnapshot is an immutable point-in-time view of the biller mapping
// table. The engine never mutates it, so one snapshot is safe to share
// across any number of concurrent parse calls.
type MappingSnapshot struct {
	entries []MappingEntry
}

// NewMappingSnapshot normalizes, deduplicates and orders the given entries.
// Keywords are upper-cased; categories outside the fixed vocabulary collapse
// to CategoryOther. Entries are sorted by descending keyword length so that
// a specific keyword like "APPLE SERVICES" is tried before the generic
// "APPLE" at any given position.
func NewMappingSnapshot(entries []MappingEntry) MappingSnapshot {
	seen := make(map[string]struct{}, len(entries))
	normalized := make([]MappingEntry, 0, len(entries))
	for _, e := range entries {
		kw := strings.ToUpper(strings.TrimSpace(e.Keyword))
		if kw == "" {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		normalized = append(normalized, MappingEntry{
			Keyword:  kw,
			Category: CoerceCategory(e.Category),
		})
	}
	sort.SliceStable(normalized, func(i, j int) bool {
		if len(normalized[i].Keyword) != len(normalized[j].Keyword) {
			return len(normalized[i].Keyword) > len(normalized[j].Keyword)
		}
		return normalized[i].Keyword < normalized[j].Keyword
	})
	return MappingSnapshot{entries: normalized}
}

// Len reports the number of mappings in the snapshot.
func (s MappingSnapshot) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the normalized mapping entries.
func (s MappingSnapshot) Entries() []MappingEntry {
	out := make([]MappingEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Resolve scans the text case-insensitively for every known biller keyword
// and returns the matched keyword and its category. Length ordering decides
// which keyword wins at a given position; among hits at different positions
// the earliest occurrence in the text wins. No match yields
// (UnknownMerchant, CategoryOther).
//
// Resolve is a pure function of (text, snapshot): re-running it is
// idempotent, which is what makes bulk re-categorization safe.
func (s MappingSnapshot) Resolve(text string) (merchant, category string) {
	upper := strings.ToUpper(text)
	bestIdx := -1
	var best MappingEntry
	for _, e := range s.entries {
		idx := strings.Index(upper, e.Keyword)
		if idx < 0 {
			continue
		}
		// Strictly earlier wins; ties keep the longer keyword already held.
		if bestIdx == -1 || idx < bestIdx {
			bestIdx = idx
			best = e
		}
	}
	if bestIdx == -1 {
		return UnknownMerchant, CategoryOther
	}
	return best.Keyword, best.Category
}
