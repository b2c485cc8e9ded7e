// Seeds the Firestore biller mapping table with the default keywords.
// Existing entries are never overwritten.
//
// Usage:
//
//	GOOGLE_CLOUD_PROJECT=my-project go run ./scripts/seed-mappings
package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"

	"github.com/spendlens/spendlens/internal/store"
)

func main() {
	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		log.Fatal("GOOGLE_CLOUD_PROJECT must be set")
	}

	ctx := context.Background()

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer client.Close()

	s := store.NewFirestoreStore(client)
	if err := s.Seed(ctx); err != nil {
		log.Fatalf("Failed to seed mappings: %v", err)
	}

	mappings, err := s.ListMappings(ctx)
	if err != nil {
		log.Fatalf("Failed to list mappings: %v", err)
	}

	log.Printf("Mapping table ready with %d entries", len(mappings))
}
