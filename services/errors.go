package services

import "errors"

var (
	// ErrUserNotFound is returned before any write when the submitting user
	// does not resolve to a known academy user.
	ErrUserNotFound = errors.New("user not found")

	// ErrUnknownActivityType is returned for submissions outside the closed
	// activity enumeration. Unknown types are rejected rather than recorded
	// as zero-point events.
	ErrUnknownActivityType = errors.New("unknown activity type")

	// ErrGroupNotFound is returned when a group id does not resolve.
	ErrGroupNotFound = errors.New("group not found")
)
