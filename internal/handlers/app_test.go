package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/AnshRaj112/guestexp-web/internal/apiclient"
	"github.com/AnshRaj112/guestexp-web/internal/middleware"
	"github.com/AnshRaj112/guestexp-web/internal/render"
	"github.com/AnshRaj112/guestexp-web/internal/services"
)

const testSession = "6f1c2d1e-2b7a-4a51-9a43-3d7b1f0c9e10"

// fakeBackend records every call it receives and answers from per-path handlers.
type fakeBackend struct {
	*httptest.Server

	mu     sync.Mutex
	calls  []*http.Request
	bodies []string
	routes map[string]http.HandlerFunc
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{routes: make(map[string]http.HandlerFunc)}
	fb.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		fb.mu.Lock()
		fb.calls = append(fb.calls, r)
		fb.bodies = append(fb.bodies, string(body))
		h, ok := fb.routes[r.URL.Path]
		fb.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(fb.Close)
	return fb
}

func (fb *fakeBackend) handle(path string, h http.HandlerFunc) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.routes[path] = h
}

func (fb *fakeBackend) json(path string, status int, payload string) {
	fb.handle(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, payload)
	})
}

func (fb *fakeBackend) callCount(path string) int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	n := 0
	for _, c := range fb.calls {
		if c.URL.Path == path {
			n++
		}
	}
	return n
}

func (fb *fakeBackend) totalCalls() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return len(fb.calls)
}

func (fb *fakeBackend) lastCall() (*http.Request, string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if len(fb.calls) == 0 {
		return nil, ""
	}
	return fb.calls[len(fb.calls)-1], fb.bodies[len(fb.bodies)-1]
}

func newTestApp(t *testing.T, backendURL string) *App {
	t.Helper()
	renderer, err := render.New(services.DefaultBannerTTL)
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	images, err := services.NewImageResolver(backendURL, "", "", "")
	if err != nil {
		t.Fatalf("images: %v", err)
	}
	return &App{
		API:               apiclient.New(backendURL, 2*time.Second),
		Renderer:          renderer,
		Banners:           services.NewMemoryBannerStore(services.DefaultBannerTTL),
		Images:            images,
		Alerts:            services.NewAlertHub(nil, zap.NewNop()),
		Logger:            zap.NewNop(),
		SentimentDebounce: 500 * time.Millisecond,
	}
}

// newTestRouter wires the app the way the routes package does, minus throttling.
func newTestRouter(app *App) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithSessionID(r.Context(), testSession)))
		})
	})
	r.Get("/", app.Dashboard)
	r.Post("/ui/feedback", app.SubmitFeedback)
	r.Get("/ui/sentiment", app.Sentiment)
	r.Get("/ui/recommendations", app.Recommendations)
	r.Get("/ui/analytics", app.Analytics)
	r.Get("/ui/banners", app.ListBanners)
	r.Get("/ui/banners/{id}", app.GetBanner)
	r.Delete("/ui/banners/{id}", app.DismissBanner)
	r.Get("/ws/sentiment", app.SentimentSocket(nil))
	r.Get("/ws/alerts", app.AlertSocket(nil))
	return r
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, raw string, v interface{}) {
	t.Helper()
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
}

func sessionContext() context.Context {
	return middleware.WithSessionID(context.Background(), testSession)
}

func assertContains(t *testing.T, body string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in:\n%s", want, body)
		}
	}
}
