package handlers

import (
	"bytes"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Recommendations renders the recommendation cards, scoped to ?guest_id= when present.
// Any failure is shown inline in the container.
func (a *App) Recommendations(w http.ResponseWriter, r *http.Request) {
	guestID := strings.TrimSpace(r.URL.Query().Get("guest_id"))

	set, err := a.API.Recommendations(r.Context(), r.Cookies(), guestID)
	if err != nil {
		a.Logger.Error("load recommendations", zap.Error(err), zap.String("guest_id", guestID))
		var buf bytes.Buffer
		if err := a.Renderer.RecommendationsError(&buf); err != nil {
			a.renderFailed(w, r, err)
			return
		}
		writeHTML(w, http.StatusOK, buf.Bytes())
		return
	}

	if a.Images != nil {
		a.Images.ResolveSet(set)
	}

	var buf bytes.Buffer
	if err := a.Renderer.Recommendations(&buf, set); err != nil {
		a.renderFailed(w, r, err)
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}
