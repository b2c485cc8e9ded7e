package extraction

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// MappingSource provides a point-in-time snapshot of the biller mapping
// table. The engine only ever reads snapshots; mutation belongs to the
// management layer that owns the table.
type MappingSource interface {
	Snapshot(ctx context.Context) (MappingSnapshot, error)
}

// Service is the extraction engine's entry point: it composes the message
// parser, the strategy selector and the mapping-table snapshot per call.
type Service struct {
	mappings MappingSource
	selector *Selector
	log      zerolog.Logger
}

// NewService creates an extraction service.
func NewService(mappings MappingSource, selector *Selector, log zerolog.Logger) *Service {
	return &Service{
		mappings: mappings,
		selector: selector,
		log:      log,
	}
}

// ParseMessage parses one short text blob into a single transaction record.
func (s *Service) ParseMessage(ctx context.Context, text string) (Transaction, error) {
	snap, err := s.mappings.Snapshot(ctx)
	if err != nil {
		return Transaction{}, err
	}
	return ParseMessage(text, snap)
}

// ExtractStatement parses a multi-line statement text into zero or more
// transaction records via the strategy selector. Zero transactions with a
// nil error means the document had nothing extractable.
func (s *Service) ExtractStatement(ctx context.Context, text string) (Result, error) {
	snap, err := s.mappings.Snapshot(ctx)
	if err != nil {
		return Result{}, err
	}
	res, err := s.selector.Extract(ctx, text, snap)
	if err != nil {
		return Result{}, err
	}
	s.log.Info().
		Int("transactions", len(res.Transactions)).
		Bool("parsed_by_ai", res.ParsedByAI).
		Msg("statement extraction complete")
	return res, nil
}

// ExtractStatementPDF extracts text from a statement PDF and runs statement
// extraction over it. Scanned PDFs have no extractable text and are
// rejected with CodeInvalidDocument.
func (s *Service) ExtractStatementPDF(ctx context.Context, data []byte) (Result, error) {
	analysis := AnalyzeStatementPDF(data)
	if analysis.Error != nil {
		return Result{}, &ExtractionError{
			Code:    CodeInvalidDocument,
			Message: "could not analyze PDF",
			Cause:   analysis.Error,
		}
	}
	if analysis.IsScanned {
		return Result{}, &ExtractionError{
			Code:    CodeInvalidDocument,
			Message: "scanned PDF has no extractable text",
		}
	}
	s.log.Debug().
		Int("pages", analysis.PageCount).
		Int("estimated_transactions", analysis.EstimatedTxCount).
		Msg("statement PDF analyzed")
	return s.ExtractStatement(ctx, strings.Join(analysis.TextLines, "\n"))
}

// Recategorize re-runs the merchant/category resolver over existing
// records' source text against the current mapping table. Records whose
// source matches a keyword get the new merchant and category; everything
// else, including amount, date and source text, is left untouched. The
// operation is idempotent.
func (s *Service) Recategorize(ctx context.Context, txs []Transaction) ([]Transaction, error) {
	snap, err := s.mappings.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Transaction, len(txs))
	for i, tx := range txs {
		merchant, category := snap.Resolve(tx.SourceText)
		if merchant != UnknownMerchant {
			tx.Merchant = merchant
			tx.Category = category
		}
		out[i] = tx
	}
	return out, nil
}

// AIAvailable reports whether the AI-assisted strategy is enabled and
// reachable.
func (s *Service) AIAvailable() bool {
	return s.selector.AIAvailable()
}
