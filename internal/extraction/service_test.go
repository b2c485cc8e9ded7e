package extraction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// staticMappings serves a fixed snapshot, optionally failing.
type staticMappings struct {
	snap MappingSnapshot
	err  error
}

func (s staticMappings) Snapshot(context.Context) (MappingSnapshot, error) {
	return s.snap, s.err
}

func newTestService(snap MappingSnapshot, ai AIExtractor) *Service {
	nop := zerolog.Nop()
	return NewService(staticMappings{snap: snap}, NewSelector(ai, ai != nil, nop), nop)
}

func TestServiceParseMessage(t *testing.T) {
	svc := newTestService(testSnapshot(), nil)

	tx, err := svc.ParseMessage(context.Background(), "Rs.450 paid to ZOMATO via UPI")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.Merchant != "ZOMATO" || tx.Category != CategoryFood || tx.Amount != 450 {
		t.Fatalf("unexpected record: %+v", tx)
	}

	t.Run("snapshot failure propagates", func(t *testing.T) {
		broken := NewService(staticMappings{err: errors.New("store down")}, NewSelector(nil, false, zerolog.Nop()), zerolog.Nop())
		if _, err := broken.ParseMessage(context.Background(), "₹100 paid"); err == nil {
			t.Fatal("expected store error to propagate")
		}
	})
}

func TestServiceExtractStatement(t *testing.T) {
	svc := newTestService(testSnapshot(), nil)

	t.Run("heuristic extraction", func(t *testing.T) {
		res, err := svc.ExtractStatement(context.Background(), sampleStatement())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ParsedByAI {
			t.Fatal("no AI configured, result must be heuristic")
		}
		if len(res.Transactions) != 3 {
			t.Fatalf("got %d transactions, want 3", len(res.Transactions))
		}
	})

	t.Run("nothing extractable is not an error", func(t *testing.T) {
		res, err := svc.ExtractStatement(context.Background(), "just some prose")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Transactions) != 0 {
			t.Fatalf("got %d transactions, want 0", len(res.Transactions))
		}
	})
}

func TestServiceExtractStatementPDF(t *testing.T) {
	svc := newTestService(testSnapshot(), nil)

	_, err := svc.ExtractStatementPDF(context.Background(), []byte("not a pdf"))
	if err == nil {
		t.Fatal("expected error for invalid PDF")
	}
	var extErr *ExtractionError
	if !errors.As(err, &extErr) || extErr.Code != CodeInvalidDocument {
		t.Fatalf("err = %v, want %s", err, CodeInvalidDocument)
	}
}

func TestServiceRecategorize(t *testing.T) {
	svc := newTestService(testSnapshot(), nil)
	date := time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)

	records := []Transaction{
		newTransaction(1250, CurrencyINR, UnknownMerchant, CategoryOther, date, "UPI-SWIGGY BANGALORE", false),
		newTransaction(900, CurrencyINR, "Corner Shop", CategoryOther, date, "corner shop pos", false),
	}

	out, err := svc.Recategorize(context.Background(), records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out[0].Merchant != "SWIGGY" || out[0].Category != CategoryFood {
		t.Fatalf("matched record not updated: %+v", out[0])
	}
	if out[0].Amount != 1250 || !out[0].Date.Equal(date) || out[0].SourceText != "UPI-SWIGGY BANGALORE" {
		t.Fatalf("recategorize touched non-category fields: %+v", out[0])
	}

	if out[1].Merchant != "Corner Shop" || out[1].Category != CategoryOther {
		t.Fatalf("unmatched record must be untouched: %+v", out[1])
	}

	t.Run("idempotent", func(t *testing.T) {
		again, err := svc.Recategorize(context.Background(), out)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := range again {
			if again[i].Merchant != out[i].Merchant || again[i].Category != out[i].Category {
				t.Fatalf("second pass changed record %d: %+v vs %+v", i, again[i], out[i])
			}
		}
	})
}
