package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/AnshRaj112/guestexp-web/internal/handlers"
	"github.com/AnshRaj112/guestexp-web/internal/middleware"
	"github.com/AnshRaj112/guestexp-web/internal/render"
)

// Options carries what the routes need besides the App itself.
type Options struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
	SecureCookies  bool
	// Throttle guards feedback submissions; nil leaves them unthrottled.
	Throttle func(http.Handler) http.Handler
}

// SetupRoutes registers every UI route. It must run before any other route is added to r.
func SetupRoutes(r chi.Router, app *handlers.App, opts Options) {
	r.Use(middleware.PageSession(opts.SecureCookies))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Handle("/static/*", render.StaticHandler())

	// Websockets live outside the request timeout
	r.Get("/ws/sentiment", app.SentimentSocket(opts.AllowedOrigins))
	r.Get("/ws/alerts", app.AlertSocket(opts.AllowedOrigins))

	r.Group(func(r chi.Router) {
		if opts.RequestTimeout > 0 {
			r.Use(chimw.Timeout(opts.RequestTimeout))
		}

		// Dashboard page
		r.Get("/", app.Dashboard)

		// Feedback
		r.With(optional(opts.Throttle)).Post("/ui/feedback", app.SubmitFeedback)
		r.Get("/ui/sentiment", app.Sentiment)

		// Recommendations
		r.Get("/ui/recommendations", app.Recommendations)

		// Admin analytics
		r.Get("/ui/analytics", app.Analytics)

		// Banners
		r.Get("/ui/banners", app.ListBanners)
		r.Get("/ui/banners/{id}", app.GetBanner)
		r.Delete("/ui/banners/{id}", app.DismissBanner)
	})
}

func optional(mw func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	if mw == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return mw
}
