package models

// Exercise is one item from the suggestion provider's catalog.
type Exercise struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Suggestion is a display-ready exercise pick.
type Suggestion struct {
	Name        string
	Description string
	Truncated   bool
}

// SuggestionSet is the outcome of one enrichment fetch. Unavailable means
// the fetch failed or returned nothing usable; the detail view shows a
// placeholder instead of the items.
type SuggestionSet struct {
	Items       []Suggestion
	Unavailable bool
}
