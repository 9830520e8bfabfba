package inventory

import "errors"

var (
	// ErrBadSlot is returned for an inventory index outside the slot array.
	ErrBadSlot = errors.New("no such inventory slot")
	// ErrEmptySlot is returned when an operation needs an item but the slot is empty.
	ErrEmptySlot = errors.New("inventory slot is empty")
	// ErrNotWieldable is returned when wielding an item that cannot be wielded.
	ErrNotWieldable = errors.New("item cannot be wielded")
	// ErrNotWearable is returned when wearing an item that cannot be worn.
	ErrNotWearable = errors.New("item cannot be worn")
)
