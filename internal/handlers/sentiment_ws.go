package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/AnshRaj112/guestexp-web/internal/services"
)

// sentimentInput is one input event. htmx ws-send posts the whole form, so the comment field
// is accepted in place of text.
type sentimentInput struct {
	Text    *string `json:"text"`
	Comment *string `json:"comment"`
}

func (m sentimentInput) value() string {
	if m.Text != nil {
		return *m.Text
	}
	if m.Comment != nil {
		return *m.Comment
	}
	return ""
}

// SentimentSocket streams live sentiment while the guest types. Each input event restarts the
// debounce timer; only the latest text is analysed once typing pauses.
func (a *App) SentimentSocket(origins []string) http.HandlerFunc {
	upgrader := newUpgrader(origins)
	return func(w http.ResponseWriter, r *http.Request) {
		cookies := r.Cookies()

		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn := &wsConn{Conn: c}
		defer conn.Close()

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		debouncer := services.NewDebouncer(a.SentimentDebounce)
		defer debouncer.Stop()

		conn.keepAlive(ctx.Done())

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			_ = conn.SetReadDeadline(readDeadline())

			var msg sentimentInput
			if err := json.Unmarshal(data, &msg); err != nil {
				a.Logger.Debug("ignoring malformed sentiment input", zap.Error(err))
				continue
			}
			text := msg.value()
			debouncer.Trigger(func() {
				a.pushSentiment(ctx, conn, cookies, text)
			})
		}
	}
}

func (a *App) pushSentiment(ctx context.Context, conn *wsConn, cookies []*http.Cookie, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	res, err := a.API.AnalyzeSentiment(ctx, cookies, text)
	if err != nil {
		if ctx.Err() == nil {
			a.Logger.Warn("analyze sentiment", zap.Error(err))
		}
		return
	}
	var buf bytes.Buffer
	if err := a.Renderer.SentimentIndicator(&buf, res); err != nil {
		a.Logger.Error("render_fragment", zap.String("fragment", "sentiment-indicator"), zap.Error(err))
		return
	}
	if err := conn.writeHTML(buf.Bytes()); err != nil {
		a.Logger.Debug("sentiment socket write", zap.Error(err))
	}
}
