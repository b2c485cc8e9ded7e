package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/spendlens/spendlens/internal/api/middleware"
	"github.com/spendlens/spendlens/internal/extraction"
	"github.com/spendlens/spendlens/internal/store"
)

// 10MB cap on uploaded statement PDFs.
const maxUploadBytes = 10 << 20

// ParseHandler handles transaction extraction endpoints.
type ParseHandler struct {
	service *extraction.Service
	log     zerolog.Logger
}

// NewParseHandler creates a new parse handler.
func NewParseHandler(service *extraction.Service, log zerolog.Logger) *ParseHandler {
	return &ParseHandler{service: service, log: log}
}

// ParseMessage handles POST /api/parse/message
func (h *ParseHandler) ParseMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Text is required")
		return
	}

	tx, err := h.service.ParseMessage(r.Context(), req.Text)
	if err != nil {
		h.writeExtractionError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, tx)
}

// ParseStatement handles POST /api/parse/statement. It accepts either a JSON
// body with the statement text or a multipart upload with a PDF file field.
func (h *ParseHandler) ParseStatement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "File is required")
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Failed to read file")
			return
		}

		result, err := h.service.ExtractStatementPDF(ctx, data)
		if err != nil {
			h.writeExtractionError(w, err)
			return
		}
		middleware.WriteJSON(w, http.StatusOK, result)
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Text is required")
		return
	}

	result, err := h.service.ExtractStatement(ctx, req.Text)
	if err != nil {
		h.writeExtractionError(w, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, result)
}

// Recategorize handles POST /api/recategorize. It re-resolves merchant and
// category for previously parsed transactions against the current mapping
// table.
func (h *ParseHandler) Recategorize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Transactions []extraction.Transaction `json:"transactions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	txs, err := h.service.Recategorize(r.Context(), req.Transactions)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to recategorize transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to recategorize transactions")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": txs,
		"count":        len(txs),
	})
}

// Health handles GET /health
func (h *ParseHandler) Health(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "ok",
		"ai_available": h.service.AIAvailable(),
	})
}

func (h *ParseHandler) writeExtractionError(w http.ResponseWriter, err error) {
	var extErr *extraction.ExtractionError
	if errors.As(err, &extErr) {
		switch extErr.Code {
		case extraction.CodeNoAmountFound, extraction.CodeNoTransactions:
			middleware.WriteError(w, http.StatusUnprocessableEntity, extErr.Message)
		case extraction.CodeInvalidDocument:
			middleware.WriteError(w, http.StatusBadRequest, extErr.Message)
		case extraction.CodeAIRateLimited:
			middleware.WriteError(w, http.StatusTooManyRequests, extErr.Message)
		default:
			middleware.WriteError(w, http.StatusBadGateway, extErr.Message)
		}
		return
	}
	h.log.Error().Err(err).Msg("Extraction failed")
	middleware.WriteError(w, http.StatusInternalServerError, "Extraction failed")
}

// MappingsHandler handles the mapping table CRUD endpoints.
type MappingsHandler struct {
	store store.Store
	log   zerolog.Logger
}

// NewMappingsHandler creates a new mappings handler.
func NewMappingsHandler(s store.Store, log zerolog.Logger) *MappingsHandler {
	return &MappingsHandler{store: s, log: log}
}

// ListMappings handles GET /api/mappings
func (h *MappingsHandler) ListMappings(w http.ResponseWriter, r *http.Request) {
	mappings, err := h.store.ListMappings(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list mappings")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list mappings")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"mappings": mappings,
		"count":    len(mappings),
	})
}

// UpsertMapping handles PUT /api/mappings
func (h *MappingsHandler) UpsertMapping(w http.ResponseWriter, r *http.Request) {
	var req extraction.MappingEntry
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.store.UpsertMapping(r.Context(), req); err != nil {
		if errors.Is(err, store.ErrEmptyKeyword) {
			middleware.WriteError(w, http.StatusBadRequest, "Keyword is required")
			return
		}
		h.log.Error().Err(err).Str("keyword", req.Keyword).Msg("Failed to upsert mapping")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to upsert mapping")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, extraction.MappingEntry{
		Keyword:  strings.ToUpper(strings.TrimSpace(req.Keyword)),
		Category: extraction.CoerceCategory(req.Category),
	})
}

// DeleteMapping handles DELETE /api/mappings/{keyword}
func (h *MappingsHandler) DeleteMapping(w http.ResponseWriter, r *http.Request) {
	keyword := r.PathValue("keyword")
	if strings.TrimSpace(keyword) == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Keyword is required")
		return
	}

	if err := h.store.DeleteMapping(r.Context(), keyword); err != nil {
		if errors.Is(err, store.ErrMappingNotFound) {
			middleware.WriteError(w, http.StatusNotFound, "Mapping not found")
			return
		}
		h.log.Error().Err(err).Str("keyword", keyword).Msg("Failed to delete mapping")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to delete mapping")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"deleted": strings.ToUpper(strings.TrimSpace(keyword))})
}
