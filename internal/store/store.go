// Package store owns the persisted client collection. All operations are
// synchronous read-modify-write against a single slot; there is no
// cross-process locking, so concurrent writers follow last-writer-wins.
package store

import (
	"strings"

	"github.com/fitcrm/fitcrm/internal/models"
)

// Store manages client record persistence.
type Store interface {
	// Load returns the full collection in stored order, newest first.
	// A corrupt slot is recovered as an empty collection; the corruption
	// is logged, never returned as a failure.
	Load() ([]models.ClientRecord, error)

	// Save overwrites the entire collection with the given sequence.
	Save(records []models.ClientRecord) error

	// Create assigns a fresh unique id, prepends the new record and
	// persists. Fields must already have passed validation; the store
	// does not re-check them.
	Create(fields models.ClientFields) (*models.ClientRecord, error)

	// Update merges the partial edit over the record with the given id,
	// preserving id and history. Returns models.ErrClientNotFound when
	// the id is absent.
	Update(id string, update models.ClientUpdate) (*models.ClientRecord, error)

	// Delete removes the record with the given id. Confirmation of intent
	// is the caller's responsibility. Returns models.ErrClientNotFound
	// when the id is absent; the collection is unchanged in that case.
	Delete(id string) error

	// FindByID returns the record or models.ErrClientNotFound.
	FindByID(id string) (*models.ClientRecord, error)

	// Search returns records whose full name contains the query,
	// case-insensitive. A blank query returns the full collection in
	// stored order.
	Search(query string) ([]models.ClientRecord, error)

	// Close releases resources.
	Close() error
}

// hasID reports whether a record with the id exists in the sequence.
func hasID(records []models.ClientRecord, id string) bool {
	for i := range records {
		if records[i].ID == id {
			return true
		}
	}
	return false
}

// filterByName applies the case-insensitive substring match against the
// full name only. Blank queries pass everything through.
func filterByName(records []models.ClientRecord, query string) []models.ClientRecord {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return records
	}

	matched := make([]models.ClientRecord, 0, len(records))
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.FullName), q) {
			matched = append(matched, rec)
		}
	}
	return matched
}
