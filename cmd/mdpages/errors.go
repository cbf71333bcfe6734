package main

import "errors"

// Sentinel errors raised by the CLI itself.
var (
	ErrUsage       = errors.New("invalid usage")
	ErrPagesFailed = errors.New("pages failed")
)

// hintedError appends an actionable hint to an error's message while
// keeping it matchable with errors.Is.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string { return e.err.Error() + e.hint }

func (e *hintedError) Unwrap() error { return e.err }

// withHint returns err unchanged when hint is empty.
func withHint(err error, hint string) error {
	if err == nil || hint == "" {
		return err
	}
	return &hintedError{err: err, hint: hint}
}
