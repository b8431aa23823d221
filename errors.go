package sniff

import (
	"errors"
)

// Package-level errors for file and container helpers. Classification itself never fails.
var (
	ErrNotRegular = errors.New("path is not a regular file")
	ErrNoMember   = errors.New("container has no regular file member")

	// RPM.

	ErrUnsupportedRPMCompression = errors.New("unsupported rpm compression")
	ErrUnsupportedRPMArchiveFmt  = errors.New("unsupported rpm archive format")
)

// errPeekPanic wraps a panic recovered from a container decoder.
var errPeekPanic = errors.New("decoder panicked")

// PeekError is returned when a container matched by signature could not be opened
// or read. Consumers can use errors.As to retrieve it.
type PeekError struct {
	// Container is the name of the matched container format, e.g. "gzip" or "tar".
	Container string
	// Member is the name of the member being read, if one was reached.
	Member string
	// Err is the underlying failure.
	Err error
}

// Error satisfies the error interface.
func (e *PeekError) Error() string {
	msg := "peeking into " + e.Container + ": " + e.Err.Error()
	if e.Member != "" {
		msg += " (member: " + e.Member + ")"
	}

	return msg
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *PeekError) Unwrap() error {
	return e.Err
}

// newPeekError wraps err with the container name. Returns nil if err is nil.
func newPeekError(container, member string, err error) error {
	if err == nil {
		return nil
	}

	var peekErr *PeekError
	if errors.As(err, &peekErr) {
		return err
	}

	return &PeekError{Container: container, Member: member, Err: err}
}
