package extraction

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"
)

const (
	maxTextBytes     = 100 * 1024 // cap for extracted statement text
	defaultMaxTokens = 8192
	minMaxTokens     = 2048
	maxMaxTokens     = 32768
	tokenRoundTo     = 1024
	scannedThreshold = 50 // chars per page below which a PDF is considered scanned
)

// DocumentAnalysis contains the results of pre-processing a statement PDF.
type DocumentAnalysis struct {
	PageCount        int
	ExtractedText    string
	TextLines        []string
	EstimatedTxCount int
	IsScanned        bool
	MaxOutputTokens  int
	Error            error
}

// AnalyzeStatementPDF extracts text and metadata from a statement PDF. It is
// wrapped in recover() and never panics or blocks extraction; on any error
// it returns conservative defaults (scanned, single page).
func AnalyzeStatementPDF(data []byte) (result *DocumentAnalysis) {
	result = &DocumentAnalysis{
		PageCount:       1,
		IsScanned:       true,
		MaxOutputTokens: defaultMaxTokens,
	}

	defer func() {
		if r := recover(); r != nil {
			log.Warn().Interface("panic", r).Msg("recovered during PDF analysis")
			result.Error = fmt.Errorf("panic during PDF analysis: %v", r)
			result.IsScanned = true
			result.MaxOutputTokens = defaultMaxTokens
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		result.Error = fmt.Errorf("open PDF reader: %w", err)
		return result
	}

	result.PageCount = reader.NumPage()
	if result.PageCount < 1 {
		result.PageCount = 1
	}

	plainText, err := reader.GetPlainText()
	if err != nil {
		result.Error = fmt.Errorf("extract plain text: %w", err)
		return result
	}

	textBytes, err := io.ReadAll(io.LimitReader(plainText, int64(maxTextBytes)))
	if err != nil {
		result.Error = fmt.Errorf("read plain text: %w", err)
		return result
	}

	result.ExtractedText = string(textBytes)
	result.IsScanned = isLikelyScanned(result.ExtractedText, result.PageCount)

	for _, line := range strings.Split(result.ExtractedText, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			result.TextLines = append(result.TextLines, trimmed)
		}
	}

	result.EstimatedTxCount = countTransactionLines(result.TextLines)
	result.MaxOutputTokens = estimateOutputTokens(result.EstimatedTxCount)

	return result
}

// countTransactionLines counts lines that look like statement transactions:
// a recognizable date shape plus a monetary amount on the same line.
func countTransactionLines(lines []string) int {
	count := 0
	for _, line := range lines {
		if !twoDecimalRe.MatchString(line) {
			continue
		}
		for _, dp := range datePatterns {
			if dp.re.MatchString(line) {
				count++
				break
			}
		}
	}
	return count
}

// estimateOutputTokens recommends a generation budget for the AI strategy
// from the estimated transaction count.
// Formula: (150 + txCount * 100) * 1.5, clamped to [2048, 32768], rounded up
// to the nearest 1024.
func estimateOutputTokens(txCount int) int {
	if txCount <= 0 {
		return defaultMaxTokens
	}

	tokens := int(float64(150+txCount*100) * 1.5)

	if tokens < minMaxTokens {
		tokens = minMaxTokens
	}
	if tokens > maxMaxTokens {
		tokens = maxMaxTokens
	}

	if tokens%tokenRoundTo != 0 {
		tokens = ((tokens / tokenRoundTo) + 1) * tokenRoundTo
	}

	return tokens
}

// isLikelyScanned returns true if the PDF appears to be a scanned image
// (very little extractable text per page).
func isLikelyScanned(text string, pages int) bool {
	if pages <= 0 {
		pages = 1
	}
	return len(text)/pages < scannedThreshold
}
