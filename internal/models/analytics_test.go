package models

import (
	"encoding/json"
	"testing"
)

func TestAlertDecodesCurrentFields(t *testing.T) {
	raw := `{"priority":"high","priority_emoji":"🔴","title":"Feedback Alert: Cold room","message":"The heating is broken","guest_name":"Ana Silva","created_at":"2025-03-02T10:00:00"}`
	var a Alert
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if a.Title != "Feedback Alert: Cold room" || a.Message != "The heating is broken" {
		t.Errorf("unexpected title/message: %+v", a)
	}
	if a.GuestName != "Ana Silva" || a.CreatedAt != "2025-03-02T10:00:00" {
		t.Errorf("unexpected guest/date: %+v", a)
	}
}

func TestAlertDecodesLegacyFields(t *testing.T) {
	raw := `{"priority":"high","feedback_text":"The heating is broken","guest_id":"guest_001","timestamp":"2025-03-02T10:00:00"}`
	var a Alert
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if a.Message != "The heating is broken" {
		t.Errorf("expected message from feedback_text, got %q", a.Message)
	}
	if a.GuestName != "guest_001" {
		t.Errorf("expected guest from guest_id, got %q", a.GuestName)
	}
	if a.CreatedAt != "2025-03-02T10:00:00" {
		t.Errorf("expected created_at from timestamp, got %q", a.CreatedAt)
	}
	if a.Title != "Feedback Alert" {
		t.Errorf("expected default title, got %q", a.Title)
	}
}

func TestAlertDefaults(t *testing.T) {
	var a Alert
	if err := json.Unmarshal([]byte(`{}`), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if a.Priority != "" || a.GuestName != "Unknown" || a.Message != "" {
		t.Errorf("unexpected defaults: %+v", a)
	}
	if a.PriorityLabel() != "medium" {
		t.Errorf("expected medium label, got %q", a.PriorityLabel())
	}

	a.Priority = "high"
	if a.PriorityLabel() != "high" {
		t.Errorf("label should follow the priority, got %q", a.PriorityLabel())
	}
}

func TestDashboardResponseDecodesMixedAlerts(t *testing.T) {
	raw := `{"success":true,"data":{"overview":{"total_guests":12,"total_feedback":40,"average_rating":4.25,"alert_count":2},
	"sentiment_analysis":{"positive_percentage":70,"neutral_percentage":20,"negative_percentage":10},
	"recent_alerts":[{"message":"a","guest_name":"x"},{"feedback_text":"b","guest_id":"y"}]}}`
	var resp DashboardResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Data.RecentAlerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(resp.Data.RecentAlerts))
	}
	if resp.Data.RecentAlerts[1].Message != "b" || resp.Data.RecentAlerts[1].GuestName != "y" {
		t.Errorf("legacy alert not normalised: %+v", resp.Data.RecentAlerts[1])
	}
	if resp.Data.Overview.AverageRating != 4.25 {
		t.Errorf("expected average 4.25, got %v", resp.Data.Overview.AverageRating)
	}
}

func TestCurrentUserRecommendationID(t *testing.T) {
	u := &CurrentUser{UserID: "u1", GuestID: "g1"}
	if u.RecommendationID() != "g1" {
		t.Errorf("expected guest id, got %q", u.RecommendationID())
	}
	u.GuestID = ""
	if u.RecommendationID() != "u1" {
		t.Errorf("expected user id, got %q", u.RecommendationID())
	}
	var nilUser *CurrentUser
	if nilUser.IsAdmin() || nilUser.RecommendationID() != "" {
		t.Error("nil user should be anonymous")
	}
}
