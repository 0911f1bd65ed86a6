package auth

import (
	"context"
	"net/http"
	"strings"
)

// contextKey is an unexported type used for context keys in this package.
//
// WHY A CUSTOM TYPE FOR CONTEXT KEYS?
// context.WithValue uses any as the key type. If you use a plain string like
// context.WithValue(ctx, "token", tok), ANY package that knows the string
// "token" can read or shadow your value. A package-private key type prevents
// collisions: only THIS package can create a contextKey.
type contextKey string

const tokenKey contextKey = "token"

// BearerToken is middleware that copies the Authorization header value into
// the request context.
//
// It deliberately does NOT validate anything and never rejects a request:
// whether a token is required is decided per GraphQL operation, so a public
// operation (hello, createUser, login) must still reach its resolver when no
// token is present. Protected resolvers pull the raw value back out with
// TokenFromContext and hand it to TokenService.Validate.
//
// Clients may send either the bare token or the conventional
// "Bearer <token>" form; the prefix is stripped here, case-insensitively.
func BearerToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("Authorization")
		if len(raw) > 7 && strings.EqualFold(raw[:7], "Bearer ") {
			raw = raw[7:]
		}

		ctx := context.WithValue(r.Context(), tokenKey, raw)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TokenFromContext returns the raw bearer token carried by the request, or
// "" if the client sent none. An empty result is still passed to Validate —
// that is what produces the "Token not found" error.
func TokenFromContext(ctx context.Context) string {
	tok, _ := ctx.Value(tokenKey).(string)
	return tok
}

// WithToken returns a context carrying the given raw token. Tests use this
// to exercise protected resolvers without going through an HTTP request.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}
