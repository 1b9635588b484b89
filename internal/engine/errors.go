package engine

import "errors"

// Errors returned by target computation. They indicate a broken viewer
// integration, never a condition to clamp around silently.
var (
	// ErrInvalidPageRange indicates a reported max page below 1.
	ErrInvalidPageRange = errors.New("max page must be at least 1")

	// ErrPageOutOfRange indicates a current page outside [1, max page].
	ErrPageOutOfRange = errors.New("current page outside document range")

	// ErrBadTriggerIndex indicates a trigger index outside the surface list.
	ErrBadTriggerIndex = errors.New("trigger index outside surface list")

	// ErrBadStep indicates a per-window page step below 1.
	ErrBadStep = errors.New("page step must be at least 1")
)
