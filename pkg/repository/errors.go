package repository

import "errors"

// Sentinel errors for repository operations. Store-level failures are wrapped
// with ErrStore so the boundary can map them to a 500 without inspecting
// driver-specific error types.
var (
	// ErrInvalidOrderField is returned when a page request orders by a
	// property the entity schema does not declare as queryable.
	ErrInvalidOrderField = errors.New("invalid order field")

	// ErrInvalidFilterField is returned when a filter condition references a
	// property the entity schema does not declare as queryable.
	ErrInvalidFilterField = errors.New("invalid filter field")

	// ErrStore wraps connection and constraint failures from the persistence
	// layer.
	ErrStore = errors.New("store error")
)
