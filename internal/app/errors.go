package app

import (
	"errors"
	"fmt"
)

// ErrNotFound reports an operation against an unknown session id.
var ErrNotFound = errors.New("chat not found")

// ErrNoActiveChat reports an append without an active session.
var ErrNoActiveChat = errors.New("no active chat")

// StorageError wraps an underlying read/write failure, distinct from
// ErrNotFound (permission, disk full, corrupt file).
type StorageError struct {
	Op   string // "read", "write", "delete"
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// RetryBudgetError is the terminal failure after every allowed attempt
// produced an invalid reply.
type RetryBudgetError struct {
	Budget int
}

func (e *RetryBudgetError) Error() string {
	return fmt.Sprintf("no valid response with a trailing reasoning block after %d attempts", e.Budget)
}
