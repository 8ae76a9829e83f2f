package domain

import "errors"

var (
	// ErrSectionNotFound is returned when a section code is not in the registry
	ErrSectionNotFound = errors.New("section not found")

	// ErrInvalidRegistry is returned when a rule table entry violates a registry invariant
	ErrInvalidRegistry = errors.New("invalid section registry")
)
