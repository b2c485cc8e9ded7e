package main

import (
	"context"
	"fmt"
	"net/http"

	"cloud.google.com/go/firestore"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/spendlens/spendlens/internal/api/handlers"
	"github.com/spendlens/spendlens/internal/api/middleware"
	"github.com/spendlens/spendlens/internal/config"
	"github.com/spendlens/spendlens/internal/extraction"
	"github.com/spendlens/spendlens/internal/logger"
	"github.com/spendlens/spendlens/internal/store"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	log := logger.New(cfg.LogLevel)

	var mappingStore store.Store
	if cfg.UseMemoryStore {
		log.Info().Msg("Using in-memory mapping store for local development")
		mappingStore = store.NewMemoryStore()
	} else {
		firestoreClient, err := firestore.NewClient(ctx, cfg.ProjectID)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Firestore client")
		}
		defer firestoreClient.Close()

		fs := store.NewFirestoreStore(firestoreClient)
		if err := fs.Seed(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed mapping table")
		}
		mappingStore = fs
	}

	// AI extraction is optional. When the client cannot be built the server
	// still starts and every statement falls back to the heuristic segmenter.
	var ai extraction.AIExtractor
	if cfg.AIParsingEnabled {
		gemini, err := extraction.NewGeminiExtractor(ctx, cfg.AIModel, cfg.AIPromptBudget, log)
		if err != nil {
			log.Warn().Err(err).Msg("AI extractor unavailable, falling back to heuristic parsing")
		} else {
			ai = gemini
		}
	}

	selector := extraction.NewSelector(ai, cfg.AIParsingEnabled, log)
	service := extraction.NewService(mappingStore, selector, log)

	parseHandler := handlers.NewParseHandler(service, log)
	mappingsHandler := handlers.NewMappingsHandler(mappingStore, log)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/parse/message", parseHandler.ParseMessage)
	mux.HandleFunc("POST /api/parse/statement", parseHandler.ParseStatement)
	mux.HandleFunc("POST /api/recategorize", parseHandler.Recategorize)
	mux.HandleFunc("GET /api/mappings", mappingsHandler.ListMappings)
	mux.HandleFunc("PUT /api/mappings", mappingsHandler.UpsertMapping)
	mux.HandleFunc("DELETE /api/mappings/{keyword}", mappingsHandler.DeleteMapping)
	mux.HandleFunc("GET /health", parseHandler.Health)

	var handler http.Handler = mux
	handler = middleware.Logger(log)(handler)
	handler = middleware.Recovery(log)(handler)
	handler = middleware.RequestID(handler)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Request-ID",
		},
	})
	handler = c.Handler(handler)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: h2c.NewHandler(handler, &http2.Server{}),
	}

	log.Info().Str("port", cfg.Port).Bool("ai_enabled", ai != nil).Msg("Starting server")
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
