package extraction

import (
	"regexp"
	"strconv"
	"strings"
)

// amountGroup matches a number with optional grouping separators and up to
// two decimal places, e.g. "1,250.00" or "45".
const amountGroup = `([0-9][0-9,]*(?:\.[0-9]{1,2})?)`

// currencyPattern binds one currency to one amount-bearing regexp.
type currencyPattern struct {
	currency Currency
	re       *regexp.Regexp
}

// currencyPatterns is the ordered cascade for explicit currency markers:
// symbol-before-number, code-before-number and number-before-code shapes for
// each supported currency. The first pattern that matches anywhere in the
// text wins, which is why the prefixed dollar variants (S$, A$, C$) sit
// before the bare dollar sign.
var currencyPatterns = []currencyPattern{
	{CurrencyINR, regexp.MustCompile(`₹\s*` + amountGroup)},
	{CurrencyINR, regexp.MustCompile(`(?i)\b(?:rs\.?|inr)\s*` + amountGroup)},
	{CurrencyINR, regexp.MustCompile(`(?i)` + amountGroup + `\s*(?:inr|rs)\b`)},
	{CurrencySGD, regexp.MustCompile(`(?i)s\$\s*` + amountGroup)},
	{CurrencyAUD, regexp.MustCompile(`(?i)a\$\s*` + amountGroup)},
	{CurrencyCAD, regexp.MustCompile(`(?i)c\$\s*` + amountGroup)},
	{CurrencyUSD, regexp.MustCompile(`\$\s*` + amountGroup)},
	{CurrencyUSD, regexp.MustCompile(`(?i)\busd\s*` + amountGroup)},
	{CurrencyUSD, regexp.MustCompile(`(?i)` + amountGroup + `\s*usd\b`)},
	{CurrencyEUR, regexp.MustCompile(`€\s*` + amountGroup)},
	{CurrencyEUR, regexp.MustCompile(`(?i)\beur\s*` + amountGroup)},
	{CurrencyEUR, regexp.MustCompile(`(?i)` + amountGroup + `\s*eur\b`)},
	{CurrencyGBP, regexp.MustCompile(`£\s*` + amountGroup)},
	{CurrencyGBP, regexp.MustCompile(`(?i)\bgbp\s*` + amountGroup)},
	{CurrencyGBP, regexp.MustCompile(`(?i)` + amountGroup + `\s*gbp\b`)},
	{CurrencyAED, regexp.MustCompile(`(?i)\b(?:aed|dhs?)\.?\s*` + amountGroup)},
	{CurrencyAED, regexp.MustCompile(`(?i)` + amountGroup + `\s*aed\b`)},
	{CurrencySGD, regexp.MustCompile(`(?i)\bsgd\s*` + amountGroup)},
	{CurrencySGD, regexp.MustCompile(`(?i)` + amountGroup + `\s*sgd\b`)},
	{CurrencyAUD, regexp.MustCompile(`(?i)\baud\s*` + amountGroup)},
	{CurrencyAUD, regexp.MustCompile(`(?i)` + amountGroup + `\s*aud\b`)},
	{CurrencyCAD, regexp.MustCompile(`(?i)\bcad\s*` + amountGroup)},
	{CurrencyCAD, regexp.MustCompile(`(?i)` + amountGroup + `\s*cad\b`)},
	{CurrencyJPY, regexp.MustCompile(`¥\s*` + amountGroup)},
	{CurrencyJPY, regexp.MustCompile(`(?i)\bjpy\s*` + amountGroup)},
	{CurrencyJPY, regexp.MustCompile(`(?i)` + amountGroup + `\s*jpy\b`)},
}

// keywordAmountRe anchors a bare number to transaction vocabulary when no
// explicit currency marker is present.
var keywordAmountRe = regexp.MustCompile(
	`(?i)\b(?:debited|credited|paid|spent|charged|deducted|total|amount\s+due|grand\s+total|amount)\b` +
		`\s*(?:of|with|by|for|:|-)?\s*` + amountGroup)

// twoDecimalRe matches numbers with exactly two decimal places, the shape
// grand totals take in itemized bills.
var twoDecimalRe = regexp.MustCompile(`\b[0-9][0-9,]*\.[0-9]{2}\b`)

// indiaContextRe detects India-specific banking and transfer-network
// vocabulary, used to assume INR for untagged amounts.
var indiaContextRe = regexp.MustCompile(
	`(?i)\b(?:upi|imps|neft|rtgs|paytm|phonepe|gpay|bhim|vpa|a/c|rupees?|lakhs?)\b`)

// ExtractAmount finds a monetary amount and its currency in a text blob.
//
// The explicit currency cascade is tried first; the first pattern in
// priority order that matches anywhere in the text wins, regardless of
// reading order. Failing that, keyword-anchored bare numbers are tried with
// context-inferred currency, and as a last resort the largest two-decimal
// number in the text (grand totals are usually the largest figure in a
// bill). An amount of exactly zero is a failure, never a result.
func ExtractAmount(text string) (float64, Currency, bool) {
	for _, cp := range currencyPatterns {
		m := cp.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v, ok := parseNumber(m[1]); ok {
			return v, cp.currency, true
		}
	}

	if m := keywordAmountRe.FindStringSubmatch(text); m != nil {
		if v, ok := parseNumber(m[1]); ok {
			return v, inferContextCurrency(text), true
		}
	}

	if v, ok := largestTwoDecimal(text); ok {
		return v, inferContextCurrency(text), true
	}

	return 0, CurrencyUnknown, false
}

// billAnchorRes are bill-specific phrase anchors, tried in order when the
// main cascade finds nothing in a shared bill or receipt text.
var billAnchorRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bpaid\s+to\b[^0-9\n]{0,40}` + amountGroup),
	regexp.MustCompile(`(?i)\btotal\b[^0-9\n]{0,20}` + amountGroup),
	regexp.MustCompile(`(?i)\bnet\s+payable\b[^0-9\n]{0,20}` + amountGroup),
	regexp.MustCompile(`(?i)\bto\s+pay\b[^0-9\n]{0,20}` + amountGroup),
	regexp.MustCompile(`(?m)^\s*([0-9][0-9,]*\.[0-9]{2})\s*$`),
}

// extractBillAmount is the bill-mode fallback pass of the message parser.
func extractBillAmount(text string) (float64, Currency, bool) {
	for _, re := range billAnchorRes {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v, ok := parseNumber(m[1]); ok {
			return v, inferContextCurrency(text), true
		}
	}
	return 0, CurrencyUnknown, false
}

// largestTwoDecimal returns the largest two-decimal-place number in the
// text. Values at or below 1 are excluded so percentages and unit counts
// don't masquerade as totals.
func largestTwoDecimal(text string) (float64, bool) {
	var best float64
	for _, m := range twoDecimalRe.FindAllString(text, -1) {
		v, ok := parseNumber(m)
		if ok && v > 1 && v > best {
			best = v
		}
	}
	return best, best > 0
}

// inferContextCurrency assumes INR when the surrounding text carries
// India-specific vocabulary, Unknown otherwise.
func inferContextCurrency(text string) Currency {
	if indiaContextRe.MatchString(text) {
		return CurrencyINR
	}
	return CurrencyUnknown
}

// parseNumber strips grouping separators and converts to a positive float.
func parseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
