package extraction

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// contextWindowLines is the date-bearing line plus the lines pulled in
	// after it to recover one statement transaction.
	contextWindowLines = 3

	maxDescriptionLen = 40

	// fallbackDescription labels a window whose text is empty after
	// stripping dates, amounts, markers and references.
	fallbackDescription = "Bank Transaction"
)

// debitMarkerRe classifies a window as a likely debit. DEBITED and plural
// WITHDRAWALS are accepted alongside the bare markers.
var debitMarkerRe = regexp.MustCompile(
	`(?i)\b(?:DR|DEBITED|DEBIT|POS|ATM|IMPS|NEFT|UPI|RTGS|WITHDRAWALS?)\b`)

// creditMarkerRe disqualifies a window that carries credit markers.
var creditMarkerRe = regexp.MustCompile(`(?i)\b(?:CR|CREDITED|CREDIT)\b`)

// referenceRe matches long reference numbers that carry no merchant signal.
var referenceRe = regexp.MustCompile(`\b[A-Za-z]*\d{6,}[A-Za-z0-9]*\b`)

var whitespaceRe = regexp.MustCompile(`\s+`)

// SegmentStatement walks a multi-line statement document and recovers zero
// or more debit transactions, used when no schema-aware or AI-assisted
// parser is available. It is CPU-bound over a potentially large text and
// honors ctx cancellation between windows; a cancelled call returns the
// context error and no records.
//
// Every line containing a recognizable date starts a context window of that
// line plus the next few lines. A window is kept when it carries debit
// vocabulary, no credit marker, and a two-decimal amount. Overlapping
// windows sometimes re-emit the same line, so results are deduplicated by
// (date, amount), keeping the first occurrence.
func SegmentStatement(ctx context.Context, text string, snap MappingSnapshot) ([]Transaction, error) {
	return segmentStatementAt(ctx, text, snap, time.Now())
}

func segmentStatementAt(ctx context.Context, text string, snap MappingSnapshot, now time.Time) ([]Transaction, error) {
	lines := strings.Split(text, "\n")

	var out []Transaction
	seen := make(map[string]struct{})

	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		date, ok := extractDateAt(line, now)
		if !ok {
			continue
		}

		end := i + contextWindowLines
		if end > len(lines) {
			end = len(lines)
		}
		window := strings.TrimSpace(strings.Join(lines[i:end], " "))

		if !debitMarkerRe.MatchString(window) || creditMarkerRe.MatchString(window) {
			continue
		}

		m := twoDecimalRe.FindString(window)
		if m == "" {
			continue
		}
		amount, ok := parseNumber(m)
		if !ok {
			continue
		}

		key := fmt.Sprintf("%s|%.2f", date.Format("2006-01-02"), amount)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		merchant, category := snap.Resolve(window)
		if merchant == UnknownMerchant {
			merchant = describeWindow(window)
		}

		currency := inferContextCurrency(window)
		out = append(out, newTransaction(amount, currency, merchant, category, date, window, false))
	}

	return out, nil
}

var descCaser = cases.Title(language.English)

// describeWindow derives a merchant description from a context window by
// stripping dates, amounts, transaction-type markers and long reference
// numbers, then title-casing and trimming to a bounded length.
func describeWindow(window string) string {
	s := window
	for _, dp := range datePatterns {
		s = dp.re.ReplaceAllString(s, " ")
	}
	s = twoDecimalRe.ReplaceAllString(s, " ")
	s = debitMarkerRe.ReplaceAllString(s, " ")
	s = referenceRe.ReplaceAllString(s, " ")
	s = strings.Trim(whitespaceRe.ReplaceAllString(s, " "), " -*/|:")
	if s == "" {
		return fallbackDescription
	}

	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 2 {
			words[i] = descCaser.String(strings.ToLower(w))
		} else {
			words[i] = strings.ToUpper(w)
		}
	}
	s = strings.Join(words, " ")

	if len(s) > maxDescriptionLen {
		s = strings.TrimSpace(s[:maxDescriptionLen])
	}
	return s
}
