package minion

import "errors"

var ErrInvalidParam = errors.New("invalid minion leaf parameter")
