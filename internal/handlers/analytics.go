package handlers

import (
	"bytes"
	"net/http"

	"go.uber.org/zap"

	"github.com/AnshRaj112/guestexp-web/internal/models"
)

const msgAnalyticsFailed = "Failed to load analytics data"

// Analytics renders the admin dashboard. On failure the current dashboard stays and a banner explains.
func (a *App) Analytics(w http.ResponseWriter, r *http.Request) {
	dashboard, err := a.API.Dashboard(r.Context(), r.Cookies())
	if err != nil {
		a.Logger.Error("load analytics", zap.Error(err))
		a.writeBanners(w, r, a.pushBanner(r.Context(), models.BannerDanger, msgAnalyticsFailed))
		return
	}

	var buf bytes.Buffer
	if err := a.Renderer.Analytics(&buf, dashboard); err != nil {
		a.renderFailed(w, r, err)
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}
