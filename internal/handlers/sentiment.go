package handlers

import (
	"bytes"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Sentiment renders a one-shot indicator for ?text=. Blank text and backend errors answer 204 so
// htmx leaves the indicator alone.
func (a *App) Sentiment(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if strings.TrimSpace(text) == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	res, err := a.API.AnalyzeSentiment(r.Context(), r.Cookies(), text)
	if err != nil {
		a.Logger.Warn("analyze sentiment", zap.Error(err))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	var buf bytes.Buffer
	if err := a.Renderer.SentimentIndicator(&buf, res); err != nil {
		a.renderFailed(w, r, err)
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}
