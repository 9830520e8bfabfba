package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCapability is returned when a capability method is called on
	// an entity that does not carry the capability.
	ErrMissingCapability = errors.New("missing capability")
	// ErrDuplicateCapability is returned when a capability name or group is
	// attached twice to the same entity, or registered twice.
	ErrDuplicateCapability = errors.New("duplicate capability")
	// ErrUnknownCapability is returned when a registry lookup fails.
	ErrUnknownCapability = errors.New("unknown capability")
)

// MissingCapabilityError names the entity and capability involved in a failed call.
type MissingCapabilityError struct {
	Entity     string
	Capability string
}

func (e *MissingCapabilityError) Error() string {
	return fmt.Sprintf("%s: %s lacks %s", ErrMissingCapability, e.Entity, e.Capability)
}

// Is lets errors.Is match ErrMissingCapability.
func (e *MissingCapabilityError) Is(target error) bool {
	return target == ErrMissingCapability
}

// ListenerError reports the listener that aborted an event dispatch.
type ListenerError struct {
	Event      Event
	Capability string
	Err        error
}

func (e *ListenerError) Error() string {
	return fmt.Sprintf("listener %s.%s: %v", e.Capability, e.Event, e.Err)
}

func (e *ListenerError) Unwrap() error {
	return e.Err
}
