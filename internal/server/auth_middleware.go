package server

import (
	"crypto/subtle"
	"fmt"
	"net/http"
)

// TokenAuth admits monitor clients that present the shared token in the
// "token" query parameter. An empty token disables the check.
type TokenAuth struct {
	Token string
}

func (a TokenAuth) OnConnect(r *http.Request) error {
	if a.Token == "" {
		return nil
	}
	got := r.URL.Query().Get("token")
	if subtle.ConstantTimeCompare([]byte(got), []byte(a.Token)) != 1 {
		return fmt.Errorf("%w: bad token from %s", ErrUnauthorized, r.RemoteAddr)
	}
	return nil
}
