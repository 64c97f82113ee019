package model

import "errors"

// Domain-level errors. Callers wrap them with context and match with errors.Is.
var (
	// ErrInvalidArgument covers nil/missing entities, out-of-range values and sub-minimum team counts.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidState covers precondition violations: replaying a match, advancing out of sequence.
	ErrInvalidState = errors.New("invalid state")
	// ErrCapacity is returned when a roster or competition is full.
	ErrCapacity = errors.New("capacity exceeded")
	// ErrAlreadyExists is returned for duplicate jersey numbers and team names.
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
)
