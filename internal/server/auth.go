// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// IdentityHeader carries the caller identity set by an upstream auth proxy.
const IdentityHeader = "X-Caller-ID"

// ErrUnauthenticated is returned by an Authenticator that rejects a request.
var ErrUnauthenticated = errors.New("missing or invalid credentials")

// Authenticator resolves the caller of a request. Credential checking is
// owned by the deployment; the extraction handler only needs an identity.
type Authenticator interface {
	Authenticate(r *http.Request) (string, error)
}

// TokenAuthenticator accepts "Authorization: Bearer <token>" headers whose
// token is in a fixed list.
type TokenAuthenticator struct {
	tokens []string
}

// NewTokenAuthenticator creates a TokenAuthenticator. Empty tokens are ignored.
func NewTokenAuthenticator(tokens []string) *TokenAuthenticator {
	a := &TokenAuthenticator{}
	for _, t := range tokens {
		if t = strings.TrimSpace(t); t != "" {
			a.tokens = append(a.tokens, t)
		}
	}
	return a
}

func (a *TokenAuthenticator) Authenticate(r *http.Request) (string, error) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		return "", ErrUnauthenticated
	}
	for i, t := range a.tokens {
		if subtle.ConstantTimeCompare([]byte(t), []byte(token)) == 1 {
			return "token-" + strconv.Itoa(i), nil
		}
	}
	return "", ErrUnauthenticated
}

// HeaderAuthenticator trusts the identity already validated by a proxy and
// forwarded in IdentityHeader.
type HeaderAuthenticator struct{}

func (HeaderAuthenticator) Authenticate(r *http.Request) (string, error) {
	id := strings.TrimSpace(r.Header.Get(IdentityHeader))
	if id == "" {
		return "", ErrUnauthenticated
	}
	return id, nil
}

type callerKey struct{}

// Caller returns the identity stored by the auth middleware.
func Caller(ctx context.Context) string {
	id, _ := ctx.Value(callerKey{}).(string)
	return id
}

func requireCaller(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := auth.Authenticate(r)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Não autorizado"})
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), callerKey{}, id)))
		})
	}
}
