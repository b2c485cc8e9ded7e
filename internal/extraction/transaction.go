// Package extraction turns unstructured financial text into structured
// transaction records using ordered pattern cascades with an optional
// AI-assisted strategy.
package extraction

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Currency identifies the currency of an extracted amount.
type Currency string

const (
	CurrencyINR     Currency = "INR"
	CurrencyUSD     Currency = "USD"
	CurrencyEUR     Currency = "EUR"
	CurrencyGBP     Currency = "GBP"
	CurrencyAED     Currency = "AED"
	CurrencySGD     Currency = "SGD"
	CurrencyAUD     Currency = "AUD"
	CurrencyCAD     Currency = "CAD"
	CurrencyJPY     Currency = "JPY"
	CurrencyUnknown Currency = "Unknown"
)

// Expense categories. The vocabulary is closed: every resolved category is
// one of these strings, and anything else is coerced to CategoryOther.
const (
	CategoryFood           = "Food"
	CategoryGroceries      = "Groceries"
	CategoryShopping       = "Shopping"
	CategoryTransportation = "Transportation"
	CategoryEntertainment  = "Entertainment"
	CategoryHealthcare     = "Healthcare"
	CategoryUtilities      = "Utilities"
	CategoryHousing        = "Housing"
	CategoryEducation      = "Education"
	CategoryTravel         = "Travel"
	CategoryBanking        = "Banking"
	CategoryOther          = "Other"
)

// Categories is the fixed, ordered category vocabulary.
var Categories = []string{
	CategoryFood,
	CategoryGroceries,
	CategoryShopping,
	CategoryTransportation,
	CategoryEntertainment,
	CategoryHealthcare,
	CategoryUtilities,
	CategoryHousing,
	CategoryEducation,
	CategoryTravel,
	CategoryBanking,
	CategoryOther,
}

// UnknownMerchant is the merchant label used when no biller keyword matches.
const UnknownMerchant = "Unknown"

const maxMerchantLen = 50

// CoerceCategory maps a free-form category string onto the fixed vocabulary.
// Unknown values collapse to CategoryOther.
func CoerceCategory(s string) string {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, c) {
			return c
		}
	}
	return CategoryOther
}

// Transaction is the engine's output unit. Records are handed to callers by
// value and never mutated by the engine afterwards.
type Transaction struct {
	ID         string    `json:"id"`
	Amount     float64   `json:"amount"`
	Currency   Currency  `json:"currency"`
	Merchant   string    `json:"merchant"`
	Category   string    `json:"category"`
	Date       time.Time `json:"date"`
	SourceText string    `json:"sourceText"`
	ParsedByAI bool      `json:"parsedByAI"`
}

// newTransaction assembles a record, applying the engine's field defaults.
// Callers must have validated amount > 0 before reaching this point.
func newTransaction(amount float64, currency Currency, merchant, category string, date time.Time, source string, byAI bool) Transaction {
	if merchant == "" {
		merchant = UnknownMerchant
	}
	if len(merchant) > maxMerchantLen {
		merchant = merchant[:maxMerchantLen]
	}
	if currency == "" {
		currency = CurrencyUnknown
	}
	return Transaction{
		ID:         uuid.New().String(),
		Amount:     amount,
		Currency:   currency,
		Merchant:   merchant,
		Category:   CoerceCategory(category),
		Date:       date,
		SourceText: source,
		ParsedByAI: byAI,
	}
}

// NewManualTransaction builds a record from already-structured input, for
// example a voice assistant that hands over a pre-parsed amount and category.
// Extraction is bypassed entirely; the amount invariant still holds.
func NewManualTransaction(amount float64, currency Currency, merchant, category string, date time.Time, source string) (Transaction, error) {
	if amount <= 0 {
		return Transaction{}, &ExtractionError{
			Code:    CodeNoAmountFound,
			Message: "amount must be positive",
		}
	}
	if date.IsZero() {
		date = today(time.Now())
	}
	return newTransaction(amount, currency, merchant, category, date, source, false), nil
}

// today truncates a time to its calendar date.
func today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
