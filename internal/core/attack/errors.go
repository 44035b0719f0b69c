package attack

import "errors"

var (
	ErrInvalidParam = errors.New("invalid attack leaf parameter")
	ErrUnknownType  = errors.New("unknown attack type")
)
