package model

import "errors"

var (
	// ErrNotFound is returned when a task does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotValid is returned when an argument or configuration is not valid.
	ErrNotValid = errors.New("not valid")
)
