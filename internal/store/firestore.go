package store

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/spendlens/spendlens/internal/extraction"
)

const mappingCollection = "billerMappings"

// FirestoreStore implements the Store interface using Firestore. Documents
// are keyed by the upper-cased keyword so upserts stay idempotent.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// Seed writes DefaultMappings for any keyword not already present. Existing
// documents are never overwritten, so user edits survive restarts.
func (s *FirestoreStore) Seed(ctx context.Context) error {
	for _, m := range DefaultMappings {
		key := strings.ToUpper(strings.TrimSpace(m.Keyword))
		ref := s.client.Collection(mappingCollection).Doc(key)
		if _, err := ref.Get(ctx); err == nil {
			continue
		}
		entry := extraction.MappingEntry{Keyword: key, Category: m.Category}
		if _, err := ref.Set(ctx, entry); err != nil {
			return fmt.Errorf("failed to seed mapping %s: %w", key, err)
		}
	}
	return nil
}

func (s *FirestoreStore) UpsertMapping(ctx context.Context, m extraction.MappingEntry) error {
	key := strings.ToUpper(strings.TrimSpace(m.Keyword))
	if key == "" {
		return ErrEmptyKeyword
	}
	entry := extraction.MappingEntry{Keyword: key, Category: extraction.CoerceCategory(m.Category)}
	_, err := s.client.Collection(mappingCollection).Doc(key).Set(ctx, entry)
	return err
}

func (s *FirestoreStore) DeleteMapping(ctx context.Context, keyword string) error {
	key := strings.ToUpper(strings.TrimSpace(keyword))
	if _, err := s.client.Collection(mappingCollection).Doc(key).Get(ctx); err != nil {
		return ErrMappingNotFound
	}
	_, err := s.client.Collection(mappingCollection).Doc(key).Delete(ctx)
	return err
}

func (s *FirestoreStore) ListMappings(ctx context.Context) ([]extraction.MappingEntry, error) {
	query := s.client.Collection(mappingCollection).OrderBy(firestore.DocumentID, firestore.Asc)
	iter := query.Documents(ctx)
	defer iter.Stop()

	var out []extraction.MappingEntry
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list mappings: %w", err)
		}
		var entry extraction.MappingEntry
		if err := doc.DataTo(&entry); err != nil {
			return nil, fmt.Errorf("failed to parse mapping %s: %w", doc.Ref.ID, err)
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *FirestoreStore) Snapshot(ctx context.Context) (extraction.MappingSnapshot, error) {
	entries, err := s.ListMappings(ctx)
	if err != nil {
		return extraction.MappingSnapshot{}, err
	}
	return extraction.NewMappingSnapshot(entries), nil
}
