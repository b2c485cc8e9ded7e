package extraction

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// Result is a batch of extracted transactions plus its provenance flag.
type Result struct {
	Transactions []Transaction `json:"transactions"`
	ParsedByAI   bool          `json:"parsedByAI"`
}

// AIExtractor is the optional generative-model capability. Implementations
// take a raw statement text and return structured transactions; they may be
// unavailable (misconfigured key, network egress blocked) at any time.
type AIExtractor interface {
	Available() bool
	Extract(ctx context.Context, text string) ([]Transaction, error)
}

// Selector chooses between the AI-assisted extractor and the heuristic
// statement segmenter.
//
// If the AI capability is enabled and available it is attempted first; on an
// empty result, malformed output or transport failure the attempt is retried
// once with a truncated input, and on continued failure the heuristic path
// runs unconditionally. The heuristic never runs speculatively in parallel
// with the AI attempt, which would risk duplicate records. Transport errors
// are logged and degraded, never surfaced to the caller.
type Selector struct {
	ai         AIExtractor // nil when the capability is absent
	enabled    bool
	retryLimit int // character budget for the truncated retry
	log        zerolog.Logger
}

// retryTruncateLimit bounds the input of the single truncated retry, small
// enough to fit a context window that the full document overflowed.
const retryTruncateLimit = 6000

// NewSelector builds a Selector. ai may be nil and enabled false; the
// heuristic path is always available.
func NewSelector(ai AIExtractor, enabled bool, log zerolog.Logger) *Selector {
	return &Selector{
		ai:         ai,
		enabled:    enabled,
		retryLimit: retryTruncateLimit,
		log:        log,
	}
}

// AIAvailable reports whether the AI-assisted strategy would be attempted.
func (s *Selector) AIAvailable() bool {
	return s.enabled && s.ai != nil && s.ai.Available()
}

// Extract runs the strategy state machine over a statement-like document.
// A nil error with zero transactions means the document had nothing
// extractable, which is distinct from any transport condition. The only
// error ever returned is the caller's own context cancellation, which the
// caller must treat as "no result".
func (s *Selector) Extract(ctx context.Context, text string, snap MappingSnapshot) (Result, error) {
	if s.AIAvailable() {
		txs, err := s.ai.Extract(ctx, text)
		if err != nil || len(txs) == 0 {
			if ctx.Err() != nil {
				return Result{}, ctx.Err()
			}
			if err != nil {
				s.log.Warn().Err(err).Msg("AI extraction failed, retrying with truncated input")
			}
			txs, err = s.ai.Extract(ctx, truncateText(text, s.retryLimit))
		}
		if err == nil && len(txs) > 0 {
			// The mapping table outranks the model when it knows the biller.
			for i := range txs {
				if txs[i].Category != CategoryOther {
					continue
				}
				if m, c := snap.Resolve(txs[i].SourceText); m != UnknownMerchant {
					txs[i].Merchant = m
					txs[i].Category = c
				}
			}
			return Result{Transactions: txs, ParsedByAI: true}, nil
		}
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		s.log.Warn().Err(err).Msg("AI extraction exhausted, falling back to heuristic segmenter")
	}

	txs, err := SegmentStatement(ctx, text, snap)
	if err != nil {
		return Result{}, err
	}
	return Result{Transactions: txs, ParsedByAI: false}, nil
}

// truncateText cuts text to at most limit bytes without splitting a line.
func truncateText(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := text[:limit]
	if idx := strings.LastIndexByte(cut, '\n'); idx > 0 {
		cut = cut[:idx]
	}
	return cut
}
