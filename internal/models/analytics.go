package models

import "encoding/json"

// Overview holds the headline counters of the analytics dashboard.
type Overview struct {
	TotalGuests   int     `json:"total_guests"`
	TotalFeedback int     `json:"total_feedback"`
	AverageRating float64 `json:"average_rating"`
	AlertCount    int     `json:"alert_count"`
}

// SentimentBreakdown is the share of feedback per sentiment, in percent.
type SentimentBreakdown struct {
	PositivePercentage float64 `json:"positive_percentage"`
	NeutralPercentage  float64 `json:"neutral_percentage"`
	NegativePercentage float64 `json:"negative_percentage"`
}

// Alert is a negative-feedback notification. The backend has emitted two field
// layouts over time; both decode into this one shape.
type Alert struct {
	Priority      string `json:"priority"`
	PriorityEmoji string `json:"priority_emoji"`
	Title         string `json:"title"`
	Message       string `json:"message"`
	GuestName     string `json:"guest_name"`
	CreatedAt     string `json:"created_at"`
}

const (
	defaultAlertTitle = "Feedback Alert"
	defaultAlertGuest = "Unknown"
	// defaultAlertPriority labels an alert without a priority; its badge still uses the empty value.
	defaultAlertPriority = "medium"
)

// wireAlert accepts both the current and the legacy field names.
type wireAlert struct {
	Priority      string `json:"priority"`
	PriorityEmoji string `json:"priority_emoji"`
	Title         string `json:"title"`
	Message       string `json:"message"`
	FeedbackText  string `json:"feedback_text"`
	GuestName     string `json:"guest_name"`
	GuestID       string `json:"guest_id"`
	CreatedAt     string `json:"created_at"`
	Timestamp     string `json:"timestamp"`
}

// UnmarshalJSON normalises legacy records (feedback_text, guest_id, timestamp).
func (a *Alert) UnmarshalJSON(data []byte) error {
	var w wireAlert
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*a = Alert{
		Priority:      w.Priority,
		PriorityEmoji: w.PriorityEmoji,
		Title:         firstNonEmpty(w.Title, defaultAlertTitle),
		Message:       firstNonEmpty(w.Message, w.FeedbackText),
		GuestName:     firstNonEmpty(w.GuestName, w.GuestID, defaultAlertGuest),
		CreatedAt:     firstNonEmpty(w.CreatedAt, w.Timestamp),
	}
	return nil
}

// PriorityLabel is the priority text shown on the badge.
func (a Alert) PriorityLabel() string {
	return firstNonEmpty(a.Priority, defaultAlertPriority)
}

// Dashboard is the data part of /api/analytics/dashboard.
type Dashboard struct {
	Overview          Overview           `json:"overview"`
	SentimentAnalysis SentimentBreakdown `json:"sentiment_analysis"`
	RecentAlerts      []Alert            `json:"recent_alerts"`
}

// DashboardResponse is the {success, data} envelope.
type DashboardResponse struct {
	Success bool      `json:"success"`
	Data    Dashboard `json:"data"`
	Detail  string    `json:"detail,omitempty"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
