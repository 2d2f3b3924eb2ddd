// internal/httpserver/auth.go
//
// Bearer/cookie JWT authentication for the ladder routes.
// Tokens are issued elsewhere (or by `ladderctl token`); this side only
// verifies HS256 signatures and exposes the "id" claim as the principal.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ctxPrincipalKey is the context key type for the authenticated principal.
type ctxPrincipalKey struct{}

// Principal returns the authenticated user id stored by requireAuth.
func Principal(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxPrincipalKey{}).(string)
	return id, ok && id != ""
}

// SignToken issues an HS256 token carrying id (and optional username)
// that expires after ttl.
func SignToken(secret, id, username string, ttl time.Duration) (string, time.Time, error) {
	if id == "" {
		return "", time.Time{}, errors.New("token subject is empty")
	}
	exp := time.Now().Add(ttl)
	claims := jwt.MapClaims{
		"id":  id,
		"sub": id,
		"exp": exp.Unix(),
		"iat": time.Now().Unix(),
	}
	if username != "" {
		claims["username"] = username
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	return tok, exp, err
}

// bearerOrCookie extracts a bearer token from the Authorization header or
// the auth cookie.
func (s *Server) bearerOrCookie(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if c, err := r.Cookie(s.cookie); err == nil {
		return c.Value
	}
	return ""
}

// requireAuth enforces a valid JWT and injects the principal into the
// request context.
func (s *Server) requireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := s.bearerOrCookie(r)
			if tokenStr == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				return s.secret, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				writeError(w, http.StatusUnauthorized, "invalid_token")
				return
			}
			id, _ := claims["id"].(string)
			if id == "" {
				writeError(w, http.StatusUnauthorized, "invalid_token")
				return
			}
			ctx := context.WithValue(r.Context(), ctxPrincipalKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
