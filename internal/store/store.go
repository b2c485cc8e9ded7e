// Package store persists the editable biller→category mapping table.
package store

import (
	"context"
	"errors"

	"github.com/spendlens/spendlens/internal/extraction"
)

var (
	ErrEmptyKeyword    = errors.New("store: mapping keyword is empty")
	ErrMappingNotFound = errors.New("store: mapping not found")
)

// Store defines the persistence interface for the mapping table. The
// extraction engine only ever consumes Snapshot; the mutating operations
// belong to the management surface.
type Store interface {
	UpsertMapping(ctx context.Context, m extraction.MappingEntry) error
	DeleteMapping(ctx context.Context, keyword string) error
	ListMappings(ctx context.Context) ([]extraction.MappingEntry, error)

	// Snapshot returns an immutable point-in-time view of the table for
	// one parse call.
	Snapshot(ctx context.Context) (extraction.MappingSnapshot, error)
}

// DefaultMappings seeds a fresh mapping table with common Indian billers.
// The table is fully editable afterwards; this is only a starting point.
var DefaultMappings = []extraction.MappingEntry{
	{Keyword: "SWIGGY", Category: extraction.CategoryFood},
	{Keyword: "ZOMATO", Category: extraction.CategoryFood},
	{Keyword: "DOMINOS", Category: extraction.CategoryFood},
	{Keyword: "MCDONALDS", Category: extraction.CategoryFood},
	{Keyword: "STARBUCKS", Category: extraction.CategoryFood},
	{Keyword: "BIGBASKET", Category: extraction.CategoryGroceries},
	{Keyword: "BLINKIT", Category: extraction.CategoryGroceries},
	{Keyword: "ZEPTO", Category: extraction.CategoryGroceries},
	{Keyword: "DMART", Category: extraction.CategoryGroceries},
	{Keyword: "AMAZON", Category: extraction.CategoryShopping},
	{Keyword: "FLIPKART", Category: extraction.CategoryShopping},
	{Keyword: "MYNTRA", Category: extraction.CategoryShopping},
	{Keyword: "APPLE", Category: extraction.CategoryShopping},
	{Keyword: "APPLE SERVICES", Category: extraction.CategoryEntertainment},
	{Keyword: "UBER", Category: extraction.CategoryTransportation},
	{Keyword: "OLA", Category: extraction.CategoryTransportation},
	{Keyword: "RAPIDO", Category: extraction.CategoryTransportation},
	{Keyword: "INDIAN OIL", Category: extraction.CategoryTransportation},
	{Keyword: "IRCTC", Category: extraction.CategoryTravel},
	{Keyword: "INDIGO", Category: extraction.CategoryTravel},
	{Keyword: "MAKEMYTRIP", Category: extraction.CategoryTravel},
	{Keyword: "AIRBNB", Category: extraction.CategoryTravel},
	{Keyword: "NETFLIX", Category: extraction.CategoryEntertainment},
	{Keyword: "SPOTIFY", Category: extraction.CategoryEntertainment},
	{Keyword: "HOTSTAR", Category: extraction.CategoryEntertainment},
	{Keyword: "BOOKMYSHOW", Category: extraction.CategoryEntertainment},
	{Keyword: "AIRTEL", Category: extraction.CategoryUtilities},
	{Keyword: "JIO", Category: extraction.CategoryUtilities},
	{Keyword: "VODAFONE", Category: extraction.CategoryUtilities},
	{Keyword: "TATA POWER", Category: extraction.CategoryUtilities},
	{Keyword: "APOLLO", Category: extraction.CategoryHealthcare},
	{Keyword: "PHARMEASY", Category: extraction.CategoryHealthcare},
	{Keyword: "PRACTO", Category: extraction.CategoryHealthcare},
	{Keyword: "ATM WITHDRAWAL", Category: extraction.CategoryBanking},
	{Keyword: "BANK CHARGES", Category: extraction.CategoryBanking},
}
