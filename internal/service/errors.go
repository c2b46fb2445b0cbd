package service

import "errors"

var (
	// ErrNoCategorySelected is returned when an item is submitted with the
	// sentinel category id 0.
	ErrNoCategorySelected = errors.New("no category selected")
	ErrUnknownCategory    = errors.New("unknown category")
	ErrInvalidInput       = errors.New("invalid input")
)
