package handlers

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/AnshRaj112/guestexp-web/internal/middleware"
	"github.com/AnshRaj112/guestexp-web/internal/models"
)

// ListBanners renders the live banners of this page session.
func (a *App) ListBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := a.Banners.List(r.Context(), middleware.SessionID(r.Context()))
	if err != nil {
		a.Logger.Warn("list banners", zap.Error(err))
		banners = nil
	}
	a.writeBannerList(w, r, banners)
}

// GetBanner is the expiry poll: an expired or dismissed banner answers empty, which removes it.
func (a *App) GetBanner(w http.ResponseWriter, r *http.Request) {
	b, err := a.Banners.Get(r.Context(), middleware.SessionID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		a.Logger.Warn("get banner", zap.Error(err))
	}
	if b == nil {
		writeHTML(w, http.StatusOK, nil)
		return
	}
	a.writeBannerList(w, r, []models.Banner{*b})
}

// DismissBanner removes a banner before it expires.
func (a *App) DismissBanner(w http.ResponseWriter, r *http.Request) {
	if err := a.Banners.Dismiss(r.Context(), middleware.SessionID(r.Context()), chi.URLParam(r, "id")); err != nil {
		a.Logger.Warn("dismiss banner", zap.Error(err))
	}
	writeHTML(w, http.StatusOK, nil)
}

func (a *App) writeBannerList(w http.ResponseWriter, r *http.Request, banners []models.Banner) {
	var buf bytes.Buffer
	if err := a.Renderer.Banners(&buf, banners); err != nil {
		a.renderFailed(w, r, err)
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}
