package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AnshRaj112/guestexp-web/internal/models"
)

const recommendationsPayload = `{"success":true,"data":{
	"dining":[{"name":"Skyline Grill","description":"Rooftop steaks","rating":3.5,"recommendation_score":0.73,
		"image":"/static/img/grill.jpg","specialties":["Steak","Wine"],"price_tier":"premium"}],
	"amenities":[],
	"activities":[{"name":"Harbor Kayak","description":"Guided paddle","rating":5,"price_tier":"adventure"}]}}`

func TestRecommendationsGuestScoped(t *testing.T) {
	backend := newFakeBackend(t)
	backend.json("/api/recommendations/guest/G42", http.StatusOK, recommendationsPayload)
	h := newTestRouter(newTestApp(t, backend.URL))

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/ui/recommendations?guest_id=G42", nil))
	body := rec.Body.String()
	assertContains(t, body,
		"Skyline Grill", "73% match", "Price: $$$", "Steak",
		`src="`+backend.URL+`/static/img/grill.jpg"`,
		"No amenity recommendations available",
		"Harbor Kayak", "0% match", "Price: adventure",
	)
	if strings.Count(body, "fa-star-half-alt") != 1 {
		t.Error("3.5 rating should show exactly one half star")
	}
	if backend.callCount("/api/recommendations/guest/G42") != 1 {
		t.Error("guest-scoped endpoint not called")
	}
}

func TestRecommendationsDefaultAndFailure(t *testing.T) {
	backend := newFakeBackend(t)
	backend.json("/api/recommendations/default", http.StatusOK, `{"success":false}`)
	h := newTestRouter(newTestApp(t, backend.URL))

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/ui/recommendations", nil))
	assertContains(t, rec.Body.String(), `<div class="alert alert-danger">Failed to load recommendations</div>`)

	backend.json("/api/recommendations/default", http.StatusBadGateway, `{"detail":"down"}`)
	rec = serve(h, httptest.NewRequest(http.MethodGet, "/ui/recommendations", nil))
	assertContains(t, rec.Body.String(), "Failed to load recommendations")
}

func TestSentimentFragment(t *testing.T) {
	backend := newFakeBackend(t)
	backend.json("/api/feedback/analyze", http.StatusOK, `{"sentiment":"negative","confidence":0.64}`)
	h := newTestRouter(newTestApp(t, backend.URL))

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/ui/sentiment?text=cold+room", nil))
	assertContains(t, rec.Body.String(), "sentiment-indicator sentiment-negative", "fa-frown", "Negative (64%)")
	req, _ := backend.lastCall()
	if req.URL.Query().Get("text") != "cold room" {
		t.Errorf("text not forwarded: %q", req.URL.RawQuery)
	}

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/ui/sentiment?text=++", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("blank text: status %d", rec.Code)
	}
	if backend.callCount("/api/feedback/analyze") != 1 {
		t.Error("blank text should not be analysed")
	}

	backend.json("/api/feedback/analyze", http.StatusInternalServerError, `{}`)
	rec = serve(h, httptest.NewRequest(http.MethodGet, "/ui/sentiment?text=hello", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("backend failure should be silent, got %d", rec.Code)
	}
}

func TestAnalytics(t *testing.T) {
	backend := newFakeBackend(t)
	backend.json("/api/analytics/dashboard", http.StatusOK, `{"success":true,"data":{
		"overview":{"total_guests":120,"total_feedback":48,"average_rating":4.26,"alert_count":2},
		"sentiment_analysis":{"positive_percentage":62.5,"neutral_percentage":25,"negative_percentage":12.5},
		"recent_alerts":[{"priority":"high","feedback_text":"The shower was broken","guest_id":"G7","timestamp":"2024-03-05T10:00:00"}]}}`)
	h := newTestRouter(newTestApp(t, backend.URL))

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/ui/analytics", nil))
	assertContains(t, rec.Body.String(), "120", "4.3", "text-danger", "62.5%", "badge-danger", "🔴", "Feedback Alert",
		"The shower was broken", "Guest: G7", "3/5/2024")
}

func TestAnalyticsFailureShowsBanner(t *testing.T) {
	backend := newFakeBackend(t)
	backend.json("/api/analytics/dashboard", http.StatusForbidden, `{"detail":"admins only"}`)
	h := newTestRouter(newTestApp(t, backend.URL))

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/ui/analytics", nil))
	assertContains(t, rec.Body.String(), "alert alert-danger", "Failed to load analytics data")
	if rec.Header().Get("HX-Reswap") != "none" {
		t.Error("failed refresh should keep the current dashboard")
	}
}

func TestBannerLifecycle(t *testing.T) {
	app := newTestApp(t, "http://127.0.0.1:0")
	h := newTestRouter(app)

	b, err := app.Banners.Push(sessionContext(), testSession, models.BannerWarning, "Heads up")
	if err != nil {
		t.Fatalf("push: %v", err)
	}

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/ui/banners", nil))
	assertContains(t, rec.Body.String(), `id="banner-`+b.ID+`"`, "alert alert-warning", "Heads up")

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/ui/banners/"+b.ID, nil))
	assertContains(t, rec.Body.String(), "Heads up")

	rec = serve(h, httptest.NewRequest(http.MethodDelete, "/ui/banners/"+b.ID, nil))
	if rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Errorf("dismiss: %d %q", rec.Code, rec.Body.String())
	}

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/ui/banners/"+b.ID, nil))
	if rec.Body.Len() != 0 {
		t.Errorf("dismissed banner still served: %q", rec.Body.String())
	}
	rec = serve(h, httptest.NewRequest(http.MethodGet, "/ui/banners", nil))
	if strings.Contains(rec.Body.String(), "Heads up") {
		t.Error("dismissed banner still listed")
	}
}

func TestDashboardPage(t *testing.T) {
	backend := newFakeBackend(t)
	h := newTestRouter(newTestApp(t, backend.URL))

	backend.json("/api/auth/me", http.StatusOK, `{"user_id":"u1","username":"boss","role":"admin"}`)
	body := serve(h, httptest.NewRequest(http.MethodGet, "/", nil)).Body.String()
	assertContains(t, body, `id="current-user-data"`, `"role":"admin"`, `hx-get="/ui/analytics" hx-trigger="load"`, `ws-connect="/ws/alerts"`)
	if strings.Contains(body, `style="display:none"`) {
		t.Error("admin sections hidden for an admin")
	}

	backend.json("/api/auth/me", http.StatusOK, `{"user_id":"u2","username":"ana","role":"customer","guest_id":"G42"}`)
	body = serve(h, httptest.NewRequest(http.MethodGet, "/", nil)).Body.String()
	assertContains(t, body, `style="display:none"`, `hx-get="/ui/recommendations?guest_id=G42"`)
	if strings.Contains(body, `ws-connect="/ws/alerts"`) {
		t.Error("guests must not subscribe to the alert feed")
	}

	backend.json("/api/auth/me", http.StatusUnauthorized, `{"detail":"Not authenticated"}`)
	rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("anonymous page: %d", rec.Code)
	}
	assertContains(t, rec.Body.String(), `hx-get="/ui/recommendations" hx-trigger="load"`)
}
