package extraction

import (
	"testing"
)

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		amount   float64
		currency Currency
		found    bool
	}{
		{"rupee symbol", "Paid ₹450 at the counter", 450, CurrencyINR, true},
		{"rs prefix with dot", "Rs.1,250.00 debited from your account", 1250, CurrencyINR, true},
		{"rs prefix no dot", "rs 99 charged", 99, CurrencyINR, true},
		{"inr code before", "INR 2500 transferred via NEFT", 2500, CurrencyINR, true},
		{"amount before inr", "500 INR sent to merchant", 500, CurrencyINR, true},
		{"dollar symbol", "Charged $12.99 for subscription", 12.99, CurrencyUSD, true},
		{"usd code", "USD 100 withdrawn", 100, CurrencyUSD, true},
		{"euro symbol", "Paid €45.50 at checkout", 45.50, CurrencyEUR, true},
		{"pound symbol", "£20 spent on travel", 20, CurrencyGBP, true},
		{"aed code", "AED 150 paid at Dubai Mall", 150, CurrencyAED, true},
		{"dhs variant", "Dhs. 75.25 charged", 75.25, CurrencyAED, true},
		{"singapore dollar prefix", "S$8.50 at hawker centre", 8.50, CurrencySGD, true},
		{"australian dollar prefix", "A$30 fuel purchase", 30, CurrencyAUD, true},
		{"canadian dollar prefix", "C$15.75 coffee run", 15.75, CurrencyCAD, true},
		{"yen symbol", "¥1500 at konbini", 1500, CurrencyJPY, true},
		{"priority over reading order", "total 200 and ₹100 later", 100, CurrencyINR, true},
		{"keyword anchored bare number", "debited 840 from your account via UPI", 840, CurrencyINR, true},
		{"keyword without india context", "charged 55.20 to your card", 55.20, CurrencyUnknown, true},
		{"largest two decimal fallback", "Item A 120.00\nItem B 340.50\nGST 18.00", 340.50, CurrencyUnknown, true},
		{"two decimal at or below one excluded", "qty 1.00 rate 0.50", 0, CurrencyUnknown, false},
		{"zero amount rejected", "debited 0 from account", 0, CurrencyUnknown, false},
		{"no amount at all", "Thank you for shopping with us", 0, CurrencyUnknown, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			amount, currency, found := ExtractAmount(tc.input)
			if found != tc.found {
				t.Fatalf("ExtractAmount(%q) found = %v, want %v", tc.input, found, tc.found)
			}
			if !tc.found {
				return
			}
			if amount != tc.amount {
				t.Fatalf("ExtractAmount(%q) amount = %f, want %f", tc.input, amount, tc.amount)
			}
			if currency != tc.currency {
				t.Fatalf("ExtractAmount(%q) currency = %s, want %s", tc.input, currency, tc.currency)
			}
		})
	}
}

func TestExtractBillAmount(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		amount float64
		found  bool
	}{
		{"paid to anchor", "Paid to Sharma General Store 458", 458, true},
		{"total anchor", "Total: 1,299.00", 1299, true},
		{"net payable anchor", "Net Payable 640.50", 640.50, true},
		{"to pay anchor", "To Pay - 220", 220, true},
		{"standalone decimal line", "Swiggy Order\nButter Naan x2\n458.00\nThank you", 458, true},
		{"nothing billish", "see you next time", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			amount, _, found := extractBillAmount(tc.input)
			if found != tc.found {
				t.Fatalf("extractBillAmount(%q) found = %v, want %v", tc.input, found, tc.found)
			}
			if tc.found && amount != tc.amount {
				t.Fatalf("extractBillAmount(%q) amount = %f, want %f", tc.input, amount, tc.amount)
			}
		})
	}
}

func TestInferContextCurrency(t *testing.T) {
	if got := inferContextCurrency("sent via UPI to friend"); got != CurrencyINR {
		t.Fatalf("expected INR for UPI context, got %s", got)
	}
	if got := inferContextCurrency("card payment at store"); got != CurrencyUnknown {
		t.Fatalf("expected Unknown without India context, got %s", got)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input string
		value float64
		ok    bool
	}{
		{"1,250.00", 1250, true},
		{"45", 45, true},
		{"0", 0, false},
		{"0.00", 0, false},
		{"abc", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			v, ok := parseNumber(tc.input)
			if ok != tc.ok || v != tc.value {
				t.Fatalf("parseNumber(%q) = %f, %v, want %f, %v", tc.input, v, ok, tc.value, tc.ok)
			}
		})
	}
}
