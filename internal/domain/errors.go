package domain

import "errors"

var (
	ErrEmptyDomain   = errors.New("domain is required")
	ErrEmptyLocation = errors.New("location is required")
	ErrEmptyInput    = errors.New("empty input")
)
