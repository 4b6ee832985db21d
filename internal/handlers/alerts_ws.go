package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/AnshRaj112/guestexp-web/internal/models"
	"github.com/AnshRaj112/guestexp-web/internal/services"
)

// AlertSocket pushes a banner to admin dashboards whenever a submission triggers an alert.
func (a *App) AlertSocket(origins []string) http.HandlerFunc {
	upgrader := newUpgrader(origins)
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := a.API.CurrentUser(r.Context(), r.Cookies())
		if err != nil || !user.IsAdmin() {
			http.Error(w, "admin access required", http.StatusForbidden)
			return
		}

		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn := &wsConn{Conn: c}
		defer conn.Close()

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		events, unsubscribe := a.Alerts.Subscribe()
		defer unsubscribe()

		conn.keepAlive(ctx.Done())

		// Reader loop only services control frames and notices the disconnect
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				if err := a.pushAlertBanner(ctx, conn, evt); err != nil {
					a.Logger.Debug("alert socket write", zap.Error(err))
					return
				}
			}
		}
	}
}

func (a *App) pushAlertBanner(ctx context.Context, conn *wsConn, evt services.AlertEvent) error {
	banner := a.pushBanner(ctx, models.BannerInfo, alertMessage(evt))
	var buf bytes.Buffer
	if err := a.Renderer.BannersOOB(&buf, []models.Banner{banner}); err != nil {
		a.Logger.Error("render_fragment", zap.String("fragment", "banners-oob"), zap.Error(err))
		return nil
	}
	return conn.writeHTML(buf.Bytes())
}

func alertMessage(evt services.AlertEvent) string {
	subject := evt.Subject
	if subject == "" {
		subject = "Feedback Alert"
	}
	if evt.Category != "" {
		return fmt.Sprintf("New %s alert: %s. Refresh analytics for details.", evt.Category, subject)
	}
	return fmt.Sprintf("New alert: %s. Refresh analytics for details.", subject)
}
