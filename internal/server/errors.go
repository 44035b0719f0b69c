package server

import "errors"

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrListenerFailed = errors.New("failed to create listener")
	ErrClientTooSlow  = errors.New("client send buffer full")
)
