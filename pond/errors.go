package pond

import "errors"

var (
	ErrInvalidScale     = errors.New("pond: scale must be positive")
	ErrInvalidTuning    = errors.New("pond: invalid tuning")
	ErrInvalidTimeScale = errors.New("pond: time scale must be positive")
	ErrUnknownResource  = errors.New("pond: unknown resource")
	ErrDuplicateDuck    = errors.New("pond: duplicate duck id")
	ErrDuckNotFound     = errors.New("pond: duck not found")
	ErrNotFinite        = errors.New("pond: value must be finite")
)
