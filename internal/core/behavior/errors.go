package behavior

import "errors"

var (
	ErrInvalidDefinition = errors.New("invalid tree definition")
	ErrUnknownNode       = errors.New("unknown node type")
	ErrUnknownLeaf       = errors.New("unknown leaf kind")
)
