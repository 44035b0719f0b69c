package arena

import "errors"

var (
	ErrUnknownArchetype = errors.New("unknown archetype")
	ErrPlayerDown       = errors.New("player is down")
)
