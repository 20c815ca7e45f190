// Package tenant propagates the per-request tenant id. The value lives only
// in the request context: it is captured at the boundary and dies with the
// request, on every outcome including panics.
package tenant

import (
	"context"
	"net/http"
	"strings"
)

const Header = "X-Tenant-Id"

type ctxKeyTenant struct{}

// FromContext returns the tenant id bound to the request, if any.
func FromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKeyTenant{}).(string)
	return v, ok && v != ""
}

// WithTenant injects a tenant id into context. Useful for testing.
func WithTenant(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyTenant{}, id)
}

// Middleware captures the X-Tenant-Id header into the request context so
// downstream clients can forward it on outbound calls.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := strings.TrimSpace(r.Header.Get(Header)); id != "" {
			r = r.WithContext(WithTenant(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}
