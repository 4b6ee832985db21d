package handlers

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AnshRaj112/guestexp-web/internal/apiclient"
	"github.com/AnshRaj112/guestexp-web/internal/middleware"
	"github.com/AnshRaj112/guestexp-web/internal/models"
	"github.com/AnshRaj112/guestexp-web/internal/render"
	"github.com/AnshRaj112/guestexp-web/internal/services"
)

// App is the page controller: every UI route is a method on it.
type App struct {
	API      *apiclient.Client
	Renderer *render.Renderer
	Banners  services.BannerStore
	Images   *services.ImageResolver
	Alerts   *services.AlertHub
	Logger   *zap.Logger

	// SentimentDebounce is the quiet period before a typed comment is analysed.
	SentimentDebounce time.Duration
}

const contentTypeHTML = "text/html; charset=utf-8"

// writeHTML sends a rendered fragment.
func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	w.Write(body)
}

// pushBanner stores a banner for the current page session. Storage failures still return a
// banner so the guest sees the message; it just will not survive a reload.
func (a *App) pushBanner(ctx context.Context, kind, message string) models.Banner {
	session := middleware.SessionID(ctx)
	b, err := a.Banners.Push(ctx, session, kind, message)
	if err != nil {
		a.Logger.Warn("store banner", zap.Error(err), zap.String("kind", kind))
		return models.Banner{ID: uuid.NewString(), Kind: kind, Message: message, CreatedAt: time.Now().UTC()}
	}
	return b
}

// writeBanners answers with banners only, leaving the request's own target untouched.
func (a *App) writeBanners(w http.ResponseWriter, r *http.Request, banners ...models.Banner) {
	var buf bytes.Buffer
	if err := a.Renderer.BannersOOB(&buf, banners); err != nil {
		a.renderFailed(w, r, err)
		return
	}
	w.Header().Set("HX-Reswap", "none")
	writeHTML(w, http.StatusOK, buf.Bytes())
}

func (a *App) renderFailed(w http.ResponseWriter, r *http.Request, err error) {
	a.Logger.Error("render_fragment", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
