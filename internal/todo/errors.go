package todo

import "errors"

// ErrNotFound covers both genuinely missing records and records owned by
// another user: foreign resources are indistinguishable from absent ones.
var ErrNotFound = errors.New("todo: not found")

// ErrInvalidInput flags malformed list/task payloads.
var ErrInvalidInput = errors.New("todo: invalid input")
