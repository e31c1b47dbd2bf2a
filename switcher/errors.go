package switcher

import "errors"

var (
	// ErrEmptyCatalog is returned when a default selection is requested from an empty catalog.
	ErrEmptyCatalog = errors.New("catalog has no sources")

	// ErrEmptySelection is returned when SwitchTo is called without sources.
	ErrEmptySelection = errors.New("selection has no sources")

	// ErrUnknownLabel is returned by SwitchToLabel for a label missing from the catalog.
	ErrUnknownLabel = errors.New("unknown label")

	// ErrSwitchTimeout is returned when the player never reported the new source as ready.
	// The display label keeps the requested value.
	ErrSwitchTimeout = errors.New("switch timed out waiting for source")

	// ErrStaleSwitch reports that a newer switch superseded this one. Its restoration was dropped.
	// It is not a failure of the player.
	ErrStaleSwitch = errors.New("switch superseded")
)
