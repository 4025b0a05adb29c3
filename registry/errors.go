package registry

import "errors"

var (
	ErrTypeNil       = errors.New("type cannot be nil")
	ErrNotAssignable = errors.New("instance is not assignable to type")
)
