package domain

import "errors"

// ErrScriptNotFound is returned when a script ID cannot be resolved by a loader.
var ErrScriptNotFound = errors.New("script not found")

// ErrSectionNotFound is returned when a section ID is not part of the page.
var ErrSectionNotFound = errors.New("section not found")

// ErrSessionNotFound is returned when a widget session ID is unknown or expired.
var ErrSessionNotFound = errors.New("session not found")

// ErrDisposed is returned when an operation targets a widget that was torn down.
var ErrDisposed = errors.New("widget disposed")
