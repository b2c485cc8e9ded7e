package extraction

import (
	"errors"
	"testing"
	"time"
)

func TestParseMessage(t *testing.T) {
	snap := testSnapshot()
	now := time.Date(2025, time.March, 20, 10, 30, 0, 0, time.UTC)

	t.Run("bank debit sms", func(t *testing.T) {
		text := "Rs.1,250.00 debited from A/c XX1234 on 05-01-25 to SWIGGY BANGALORE. Ref 403912."
		tx, err := parseMessageAt(text, snap, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tx.Amount != 1250 {
			t.Fatalf("amount = %f, want 1250", tx.Amount)
		}
		if tx.Currency != CurrencyINR {
			t.Fatalf("currency = %s, want INR", tx.Currency)
		}
		if tx.Merchant != "SWIGGY" {
			t.Fatalf("merchant = %s, want SWIGGY", tx.Merchant)
		}
		if tx.Category != CategoryFood {
			t.Fatalf("category = %s, want Food", tx.Category)
		}
		if got := tx.Date.Format("2006-01-02"); got != "2025-01-05" {
			t.Fatalf("date = %s, want 2025-01-05", got)
		}
		if tx.ParsedByAI {
			t.Fatal("message parsing must never be marked AI")
		}
		if tx.SourceText != text {
			t.Fatalf("source text not preserved")
		}
		if tx.ID == "" {
			t.Fatal("transaction ID not assigned")
		}
	})

	t.Run("dateless message defaults to today", func(t *testing.T) {
		tx, err := parseMessageAt("₹300 paid to UBER", snap, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := tx.Date.Format("2006-01-02"); got != "2025-03-20" {
			t.Fatalf("date = %s, want today 2025-03-20", got)
		}
	})

	t.Run("unknown merchant defaults", func(t *testing.T) {
		tx, err := parseMessageAt("₹99 paid at corner kirana", snap, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tx.Merchant != UnknownMerchant || tx.Category != CategoryOther {
			t.Fatalf("got %s/%s, want %s/%s", tx.Merchant, tx.Category, UnknownMerchant, CategoryOther)
		}
	})

	t.Run("shared bill text", func(t *testing.T) {
		text := "Swiggy Order #8812\nPaneer Tikka x1\nButter Naan x2\nTotal: 458.00\nThanks for ordering!"
		tx, err := parseMessageAt(text, snap, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tx.Amount != 458 {
			t.Fatalf("amount = %f, want 458", tx.Amount)
		}
		if tx.Merchant != "SWIGGY" {
			t.Fatalf("merchant = %s, want SWIGGY", tx.Merchant)
		}
	})

	t.Run("no amount fails", func(t *testing.T) {
		_, err := parseMessageAt("Your OTP is ready, do not share it", snap, now)
		if err == nil {
			t.Fatal("expected error for amountless message")
		}
		var extErr *ExtractionError
		if !errors.As(err, &extErr) {
			t.Fatalf("expected ExtractionError, got %T", err)
		}
		if extErr.Code != CodeNoAmountFound {
			t.Fatalf("code = %s, want %s", extErr.Code, CodeNoAmountFound)
		}
		if extErr.IsRetryable() {
			t.Fatal("missing amount must not be retryable")
		}
	})
}
