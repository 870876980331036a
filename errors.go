package authlens

import "errors"

var (
	ErrDecode            = errors.New("authlens: cannot decode report")
	ErrInvalidGeneration = errors.New("authlens: invalid generation token")
	ErrStaleGeneration   = errors.New("authlens: stale generation")
)
