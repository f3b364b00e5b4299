package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidMode is returned when a mode outside the enumeration reaches a list builder.
var ErrInvalidMode = errors.New("invalid mode")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrItemNotFound is returned when a key path does not name a toolbar item.
var ErrItemNotFound = errors.New("toolbar item not found")

// ErrNoAction is returned when activating an item that carries no intent producer.
var ErrNoAction = errors.New("toolbar item has no action")

// ErrInvalidTree is returned when a tree fails structural validation.
var ErrInvalidTree = errors.New("invalid tree")

// ErrInvalidPatch is returned when a state patch cannot be applied.
var ErrInvalidPatch = errors.New("invalid patch")

// ErrUnknownIntent is returned when decoding an intent whose type is not registered.
var ErrUnknownIntent = errors.New("unknown intent type")

// InvalidModeError carries the offending mode value.
type InvalidModeError struct {
	Mode Mode
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("unknown mode: %d", int(e.Mode))
}

func (e *InvalidModeError) Unwrap() error {
	return ErrInvalidMode
}
