package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidWater      = errors.New("total water must be a positive, finite amount")
	ErrUnknownMethod     = errors.New("unknown brew method")
	ErrEmptyRecipe       = errors.New("recipe has no phases")
	ErrInvalidResolution = errors.New("sample resolution must be positive")
	ErrInvalidSpeed      = errors.New("speed multiplier must be positive")
)
