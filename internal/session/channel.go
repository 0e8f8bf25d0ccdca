// Package session carries view-to-view intent across page transitions:
// which client is selected, whose edit form should auto-open, and which
// record was just created. The edit and just-created slots are at-most-once
// signals; selection persists until overwritten.
package session

import "errors"

// Channel is the handoff mechanism between the create, list and detail
// views. Implementations must make Consume* read-and-clear atomic from the
// caller's perspective.
type Channel interface {
	// SetSelected records the client chosen for detail viewing. The value
	// persists until overwritten; it is never auto-cleared.
	SetSelected(id string) error

	// Selected returns the last selected id, or "" when none was set.
	Selected() (string, error)

	// SignalEditRequest asks the list view to open its edit form for id
	// on next load. Writing again overwrites the pending value.
	SignalEditRequest(id string) error

	// ConsumeEditRequest returns the pending edit id and clears it.
	// A second call returns "" until the signal is set again.
	ConsumeEditRequest() (string, error)

	// SignalJustCreated marks id for the one-shot highlight on the list.
	SignalJustCreated(id string) error

	// ConsumeJustCreated returns the just-created id and clears it.
	ConsumeJustCreated() (string, error)
}

// ErrChannelCorrupt reports an unreadable session slot file. The file
// channel recovers by starting from empty slots.
var ErrChannelCorrupt = errors.New("session slots are corrupt")
