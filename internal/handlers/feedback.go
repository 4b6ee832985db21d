package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/AnshRaj112/guestexp-web/internal/apiclient"
	"github.com/AnshRaj112/guestexp-web/internal/models"
	"github.com/AnshRaj112/guestexp-web/internal/services"
)

const (
	msgFeedbackSubmitted = "Feedback submitted successfully! Thank you for your input."
	msgAlertSent         = "Alert has been sent to management for immediate attention."
	msgTooManySubmits    = "You have submitted a lot of feedback recently. Please try again later."
)

// SubmitFeedback handles the feedback form. Validation failures answer with a danger banner and
// never reach the backend.
func (a *App) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.writeBanners(w, r, a.pushBanner(r.Context(), models.BannerDanger, "Error submitting feedback: "+err.Error()))
		return
	}

	sub := services.ParseFeedbackForm(r.PostForm)
	if err := services.ValidateFeedback(sub); err != nil {
		a.writeBanners(w, r, a.pushBanner(r.Context(), models.BannerDanger, err.Error()))
		return
	}

	result, err := a.API.SubmitFeedback(r.Context(), r.Cookies(), sub)
	if err != nil {
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) {
			detail := apiErr.Detail
			if detail == "" {
				detail = "Unknown error"
			}
			a.Logger.Warn("feedback rejected", zap.Int("status", apiErr.Status), zap.String("detail", detail))
			a.writeBanners(w, r, a.pushBanner(r.Context(), models.BannerDanger, "Failed to submit feedback: "+detail))
			return
		}
		a.Logger.Error("submit feedback", zap.Error(err))
		a.writeBanners(w, r, a.pushBanner(r.Context(), models.BannerDanger, "Error submitting feedback: "+err.Error()))
		return
	}

	banners := []models.Banner{a.pushBanner(r.Context(), models.BannerSuccess, msgFeedbackSubmitted)}
	if result.AlertTriggered {
		banners = append(banners, a.pushBanner(r.Context(), models.BannerInfo, msgAlertSent))
		a.publishAlert(r, sub, result)
	}

	w.Header().Set("HX-Trigger", "feedback-submitted")

	sentiment, ok := result.SentimentResult()
	if !ok {
		a.writeBanners(w, r, banners...)
		return
	}

	var buf bytes.Buffer
	if err := a.Renderer.SentimentResult(&buf, sentiment); err != nil {
		a.renderFailed(w, r, err)
		return
	}
	if err := a.Renderer.BannersOOB(&buf, banners); err != nil {
		a.renderFailed(w, r, err)
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}

func (a *App) publishAlert(r *http.Request, sub models.FeedbackSubmission, result *models.SubmitResult) {
	if a.Alerts == nil {
		return
	}
	event := services.AlertEvent{
		FeedbackID: result.FeedbackID,
		Category:   sub.Category,
		Subject:    sub.Subject,
		Sentiment:  result.Sentiment,
		Rating:     sub.Rating,
	}
	if err := a.Alerts.Publish(r.Context(), event); err != nil {
		a.Logger.Warn("publish alert", zap.Error(err), zap.String("feedback_id", result.FeedbackID))
	}
}

// SubmissionLimited answers submissions rejected by the throttle.
func (a *App) SubmissionLimited(w http.ResponseWriter, r *http.Request) {
	a.writeBanners(w, r, a.pushBanner(r.Context(), models.BannerWarning, msgTooManySubmits))
}
