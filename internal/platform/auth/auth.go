package auth

import (
	"context"
	"errors"
	"hash/fnv"
	"net/http"
	"strings"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Identity is the request-scoped caller identity. It is created once at the
// request boundary by RequireUser and handed to services as an explicit
// parameter; nothing below the handler layer reads it from shared state.
type Identity struct {
	// UserID is the stable numeric id used for ownership comparisons,
	// derived from the external id.
	UserID int64
	// ExternalID is the durable external identity string (token subject).
	ExternalID string
	// Token is the raw bearer credential, forwarded on outbound oracle calls.
	Token string
}

type ctxKeyIdentity struct{}

// IdentityFromContext returns the caller identity bound by RequireUser.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	v, ok := ctx.Value(ctxKeyIdentity{}).(Identity)
	return v, ok
}

// WithIdentity injects an identity into context. Useful for testing.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity{}, id)
}

// NumericUserID derives the stable numeric id from an external identity
// string. The external system only hands out string uids; ownership checks
// compare this derived value.
func NumericUserID(externalID string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(externalID))
	return int64(h.Sum64() &^ (1 << 63))
}

type Claims struct {
	jwt.RegisteredClaims
}

type JWTVerifier struct {
	Secret []byte
}

func (v JWTVerifier) Parse(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return v.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// BearerToken extracts the credential from an Authorization header value.
func BearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// RequireUser validates the bearer token and binds the caller Identity to
// the request context. Requests without a valid token are rejected.
func RequireUser(verifier JWTVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r.Header.Get("Authorization"))
			if !ok {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			claims, err := verifier.Parse(token)
			if err != nil || strings.TrimSpace(claims.Subject) == "" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			id := Identity{
				UserID:     NumericUserID(claims.Subject),
				ExternalID: claims.Subject,
				Token:      token,
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// OptionalUser binds an Identity when a valid bearer token is present and
// passes the request through untouched otherwise. Read endpoints use it to
// personalise responses without gating them.
func OptionalUser(verifier JWTVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r.Header.Get("Authorization"))
			if ok {
				if claims, err := verifier.Parse(token); err == nil && strings.TrimSpace(claims.Subject) != "" {
					id := Identity{
						UserID:     NumericUserID(claims.Subject),
						ExternalID: claims.Subject,
						Token:      token,
					}
					r = r.WithContext(WithIdentity(r.Context(), id))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
