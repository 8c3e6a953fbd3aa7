package server

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
)

var ErrUnauthorized = errors.New("unauthorized")

// Authenticator decides who may call the upload endpoint.
type Authenticator interface {
	Authenticate(r *http.Request) error
}

var _ Authenticator = TokenAuth("")

// TokenAuth accepts requests that carry "Authorization: Bearer <token>".
// An empty TokenAuth accepts every request.
type TokenAuth string

func (a TokenAuth) Authenticate(r *http.Request) error {
	if a == "" {
		return nil
	}
	got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(a)) != 1 {
		return ErrUnauthorized
	}
	return nil
}
