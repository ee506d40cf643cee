package chat

import "errors"

var (
	// ErrUserNotFound is returned when an operation references a user id
	// with no matching row.
	ErrUserNotFound = errors.New("user not found")

	// ErrThreadNotFound is returned when an operation references a thread id
	// with no matching row.
	ErrThreadNotFound = errors.New("thread not found")
)
