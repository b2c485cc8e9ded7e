package extraction

import (
	"regexp"
	"strings"
	"time"
)

const monthNames = `(?:January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Oct|Nov|Dec)`

// datePattern is one entry in the ordered date-shape cascade. Layouts are
// tried in order per match: the strict 2-digit-year layout first, then the
// 4-digit retry.
type datePattern struct {
	re      *regexp.Regexp
	layouts []string
}

// datePatterns covers the regional and bill-specific date shapes the engine
// understands. First pattern in list order that yields a valid date wins.
var datePatterns = []datePattern{
	{regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{2,4})\b`), []string{"2/1/06", "2/1/2006"}},
	{regexp.MustCompile(`\b(\d{1,2}-\d{1,2}-\d{2,4})\b`), []string{"2-1-06", "2-1-2006"}},
	{regexp.MustCompile(`\b(\d{1,2}\.\d{1,2}\.\d{2,4})\b`), []string{"2.1.06", "2.1.2006"}},
	{regexp.MustCompile(`(?i)\b(\d{1,2}-` + monthNames + `-\d{2,4})\b`), []string{"2-Jan-06", "2-Jan-2006", "2-January-2006"}},
	{regexp.MustCompile(`(?i)\b(\d{1,2}\s+` + monthNames + `\s+\d{4})\b`), []string{"2 Jan 2006", "2 January 2006"}},
	{regexp.MustCompile(`(?i)\b(` + monthNames + `\.?\s+\d{1,2},?\s+\d{4})\b`), []string{"Jan 2, 2006", "Jan 2 2006", "January 2, 2006", "January 2 2006"}},
	{regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`), []string{"2006-01-02"}},
	{regexp.MustCompile(`(?i)\b(\d{1,2}\s+` + monthNames + `,?\s+\d{2})\b`), []string{"2 Jan 06", "2 Jan, 06"}},
	{regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{2,4}\s+\d{1,2}:\d{2})\b`), []string{"2/1/06 15:04", "2/1/2006 15:04"}},
}

// monthCanonRe rewrites month names to the canonical casing time.Parse
// expects. Long names are listed before their prefixes.
var monthCanonRe = regexp.MustCompile(`(?i)\b(January|February|March|April|June|July|August|September|October|November|December|May|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\b`)

func canonMonths(s string) string {
	return monthCanonRe.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ToUpper(m[:1]) + strings.ToLower(m[1:])
	})
}

// ExtractDate finds and normalizes a transaction date in the text, or
// reports that none was found. Callers substitute "today" on failure.
func ExtractDate(text string) (time.Time, bool) {
	return extractDateAt(text, time.Now())
}

// extractDateAt is ExtractDate with an injectable clock for the year sanity
// window.
func extractDateAt(text string, now time.Time) (time.Time, bool) {
	for _, dp := range datePatterns {
		m := dp.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		candidate := canonMonths(strings.TrimSpace(m[1]))
		for _, layout := range dp.layouts {
			t, err := time.Parse(layout, candidate)
			if err != nil {
				continue
			}
			return sanitizeYear(t, now), true
		}
	}
	return time.Time{}, false
}

// sanitizeYear guards against a 2-digit year misread as a distant-future
// 4-digit year: anything more than one year ahead of now is reinterpreted
// through the 2000 window.
func sanitizeYear(t time.Time, now time.Time) time.Time {
	if t.Year() > now.Year()+1 {
		y := 2000 + t.Year()%100
		return time.Date(y, t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
	}
	return t
}
