package models

import "errors"

// Precondition failures reported before any scoring work starts. Each one is
// a distinct user-visible message.
var (
	ErrNoVariants     = errors.New("no variants loaded: provide a variants file or text")
	ErrNoRounds       = errors.New("no winning rounds loaded: provide a rounds file or text")
	ErrInvalidWeights = errors.New("invalid weights")
	ErrEmptyVariant   = errors.New("variant has no numbers")
	ErrInvalidConfig  = errors.New("invalid configuration")
)
