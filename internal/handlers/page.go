package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/AnshRaj112/guestexp-web/internal/apiclient"
	"github.com/AnshRaj112/guestexp-web/internal/render"
	"github.com/AnshRaj112/guestexp-web/pkg/utils"
)

const pageTitle = "Guest Experience Dashboard"

// Dashboard renders the full page, personalised from the backend's /api/auth/me.
// Without a signed-in user the page falls back to default recommendations.
func (a *App) Dashboard(w http.ResponseWriter, r *http.Request) {
	data := render.PageData{
		Title: pageTitle,
		Today: utils.FormatDate(time.Now().Format(time.RFC3339)),
	}

	user, err := a.API.CurrentUser(r.Context(), r.Cookies())
	if err != nil {
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			a.Logger.Debug("anonymous dashboard")
		} else {
			a.Logger.Warn("load current user", zap.Error(err))
		}
	} else {
		data.User = user
		data.IsAdmin = user.IsAdmin()
		data.RecommendationsFor = user.RecommendationID()
	}

	var buf bytes.Buffer
	if err := a.Renderer.Page(&buf, data); err != nil {
		a.renderFailed(w, r, err)
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}
