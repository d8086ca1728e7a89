// Package store is the persistence port for keyed entity collections.
//
// A collection is one JSON document holding the full ordered record list for
// its key. Replacing a collection overwrites whatever was stored before:
// last writer wins, no merge, no optimistic locking. Malformed stored data
// is logged and treated as empty rather than surfaced as an error.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

// Stable logical keys, one per entity kind.
const (
	KeyClients   = "clients"
	KeyContracts = "contracts"
	KeyProjects  = "projects"
	KeyInvoices  = "invoices"
)

// PendingContractsKey is the buyer-scoped view of contracts awaiting that
// buyer's decision.
func PendingContractsKey(buyerID string) string {
	return "contracts/pending/" + buyerID
}

// Store reads and writes whole collection documents by key.
type Store interface {
	// Load returns the stored document for key, or (nil, nil) if absent.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save overwrites the document for key.
	Save(ctx context.Context, key string, doc []byte) error
}

// LoadAll decodes the collection at key into records of type T. An absent
// key yields an empty slice. A document that fails to parse is logged and
// also yields an empty slice; corruption degrades, it never crashes the
// caller.
func LoadAll[T any](ctx context.Context, s Store, key string) ([]T, error) {
	doc, err := s.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if len(doc) == 0 {
		return nil, nil
	}
	var records []T
	if err := json.Unmarshal(doc, &records); err != nil {
		log.Printf("store: discarding malformed collection %q: %v", key, err)
		return nil, nil
	}
	return records, nil
}

// ReplaceAll overwrites the collection at key with records. The previous
// contents are not consulted.
func ReplaceAll[T any](ctx context.Context, s Store, key string, records []T) error {
	if records == nil {
		records = []T{}
	}
	doc, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Save(ctx, key, doc); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// AppendOne appends record to the collection at key, built from
// load + replace.
func AppendOne[T any](ctx context.Context, s Store, key string, record T) error {
	records, err := LoadAll[T](ctx, s, key)
	if err != nil {
		return err
	}
	return ReplaceAll(ctx, s, key, append(records, record))
}
