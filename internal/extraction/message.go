package extraction

import "time"

// ParseMessage turns one short text blob (a bank SMS, a payment
// notification, a shared receipt) into a single transaction record.
//
// Amount is the mandatory field: if neither the currency cascade nor the
// bill-mode anchors find one, parsing fails outright with
// CodeNoAmountFound. Merchant, category and date all have defaults and can
// never cause failure.
func ParseMessage(text string, snap MappingSnapshot) (Transaction, error) {
	return parseMessageAt(text, snap, time.Now())
}

func parseMessageAt(text string, snap MappingSnapshot, now time.Time) (Transaction, error) {
	amount, currency, ok := ExtractAmount(text)
	if !ok {
		amount, currency, ok = extractBillAmount(text)
	}
	if !ok {
		return Transaction{}, &ExtractionError{
			Code:     CodeNoAmountFound,
			Message:  "no amount found in message",
			Strategy: "heuristic",
		}
	}

	merchant, category := snap.Resolve(text)

	date, found := extractDateAt(text, now)
	if !found {
		date = today(now)
	}

	return newTransaction(amount, currency, merchant, category, date, text, false), nil
}
