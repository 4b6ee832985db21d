package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// PageSessionCookie scopes banners to one browser.
const PageSessionCookie = "guestexp_page"

type ctxKey int

const pageSessionKey ctxKey = iota

// PageSession makes sure every request carries a page-session id, issuing a cookie when it is missing or malformed.
func PageSession(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(PageSessionCookie); err == nil {
				if parsed, err := uuid.Parse(c.Value); err == nil {
					id = parsed.String()
				}
			}
			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     PageSessionCookie,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), pageSessionKey, id)))
		})
	}
}

// SessionID returns the page-session id set by PageSession, or "" outside it.
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(pageSessionKey).(string)
	return id
}

// WithSessionID attaches a page-session id to ctx.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, pageSessionKey, id)
}
