package brain

import "errors"

var (
	ErrScriptRunning = errors.New("script already running")
	ErrInvalidBudget = errors.New("budget must be positive")
)
