package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error codes for structured error handling.
const (
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeNotFound   = "CLIENT_NOT_FOUND"
	ErrCodeStorage    = "STORAGE_ERROR"
	ErrCodeEnrichment = "ENRICHMENT_UNAVAILABLE"
)

// Sentinel errors
var (
	ErrClientNotFound     = errors.New("client not found")
	ErrCollectionCorrupt  = errors.New("client collection is corrupt")
	ErrNoSelection        = errors.New("no client selected")
	ErrDeleteNotConfirmed = errors.New("delete not confirmed")
)

// ValidationError reports per-field validation failures. It is
// user-correctable and never fatal.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

// EnrichmentError represents a failed exercise suggestion fetch. Callers
// degrade to an unavailable placeholder rather than surfacing it.
type EnrichmentError struct {
	Reason string
	Err    error
}

func (e *EnrichmentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("enrichment: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("enrichment: %s", e.Reason)
}

func (e *EnrichmentError) Unwrap() error {
	return e.Err
}
