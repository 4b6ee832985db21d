// Package render turns backend payloads into the HTML fragments the pages swap in.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"time"

	"github.com/AnshRaj112/guestexp-web/internal/models"
	"github.com/AnshRaj112/guestexp-web/pkg/utils"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const maxRecentAlerts = 5

const minBannerPoll = 100 * time.Millisecond

// Renderer executes the embedded templates. It is safe for concurrent use.
type Renderer struct {
	tmpl      *template.Template
	bannerTTL time.Duration
}

// New parses the embedded templates once. bannerTTL drives the client-side expiry poll.
func New(bannerTTL time.Duration) (*Renderer, error) {
	funcs := template.FuncMap{
		"dict":          dict,
		"stars":         StarRating,
		"matchPercent":  MatchPercent,
		"percent":       ConfidencePercent,
		"sentimentIcon": SentimentIcon,
		"capitalize":    utils.CapitalizeFirst,
		"priceTier":     utils.FormatPriceTier,
		"priorityClass": PriorityClass,
		"priorityEmoji": PriorityEmoji,
		"truncate":      Truncate,
		"shortDate":     utils.FormatShortDate,
		"number":        utils.FormatNumber,
		"currency":      utils.FormatCurrency,
		"millis":        func(d time.Duration) int64 { return d.Milliseconds() },
		"seq":           seq,
	}
	tmpl, err := template.New("root").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, bannerTTL: bannerTTL}, nil
}

type recommendationSection struct {
	Type  string
	Title string
	Icon  string
	Empty string
	Items []models.RecommendationItem
}

type bannerView struct {
	models.Banner
	TTL time.Duration
}

type alertView struct {
	models.Alert
	Text string
}

type analyticsView struct {
	Overview          models.Overview
	SentimentAnalysis models.SentimentBreakdown
	Alerts            []alertView
}

// PageData feeds the dashboard page.
type PageData struct {
	Title   string
	User    *models.CurrentUser
	IsAdmin bool
	// RecommendationsFor is the guest id the recommendations panel preloads for; empty means defaults.
	RecommendationsFor string
	Today              string
}

// RecommendationsURL is the fragment URL the recommendations panel loads from.
func (p PageData) RecommendationsURL() string {
	if p.RecommendationsFor == "" {
		return "/ui/recommendations"
	}
	return "/ui/recommendations?" + url.Values{"guest_id": {p.RecommendationsFor}}.Encode()
}

// Recommendations renders the three recommendation sections as cards.
func (r *Renderer) Recommendations(w io.Writer, set *models.RecommendationSet) error {
	sections := []recommendationSection{
		{Type: "dining", Title: "Dining Recommendations", Icon: "utensils", Empty: "No dining recommendations available", Items: set.Dining},
		{Type: "amenity", Title: "Amenities", Icon: "spa", Empty: "No amenity recommendations available", Items: set.Amenities},
		{Type: "activity", Title: "Activities", Icon: "hiking", Empty: "No activity recommendations available", Items: set.Activities},
	}
	return r.execute(w, "recommendations", sections)
}

// RecommendationsError renders the inline failure notice for the recommendations container.
func (r *Renderer) RecommendationsError(w io.Writer) error {
	return r.execute(w, "recommendations-error", nil)
}

// SentimentIndicator renders the live indicator shown while the guest types.
func (r *Renderer) SentimentIndicator(w io.Writer, res *models.SentimentResult) error {
	return r.execute(w, "sentiment-indicator", res)
}

// SentimentResult renders the sentiment box shown after a successful submission.
func (r *Renderer) SentimentResult(w io.Writer, res models.SentimentResult) error {
	return r.execute(w, "sentiment-result", res)
}

// Analytics renders the dashboard with at most five recent alerts.
func (r *Renderer) Analytics(w io.Writer, d *models.Dashboard) error {
	alerts := d.RecentAlerts
	if len(alerts) > maxRecentAlerts {
		alerts = alerts[:maxRecentAlerts]
	}
	view := analyticsView{
		Overview:          d.Overview,
		SentimentAnalysis: d.SentimentAnalysis,
		Alerts:            make([]alertView, 0, len(alerts)),
	}
	for _, a := range alerts {
		view.Alerts = append(view.Alerts, alertView{Alert: a, Text: Truncate(a.Message, alertTextLimit)})
	}
	return r.execute(w, "analytics", view)
}

// Banners renders dismissible alert banners.
func (r *Renderer) Banners(w io.Writer, banners []models.Banner) error {
	return r.execute(w, "banners", r.bannerViews(banners))
}

// BannersOOB renders banners wrapped for an out-of-band append into #alert-container.
func (r *Renderer) BannersOOB(w io.Writer, banners []models.Banner) error {
	if len(banners) == 0 {
		return nil
	}
	return r.execute(w, "banners-oob", r.bannerViews(banners))
}

// bannerViews schedules each banner's expiry poll for the time it has left.
func (r *Renderer) bannerViews(banners []models.Banner) []bannerView {
	views := make([]bannerView, 0, len(banners))
	for _, b := range banners {
		ttl := r.bannerTTL
		if !b.CreatedAt.IsZero() {
			ttl -= time.Since(b.CreatedAt)
		}
		if ttl < minBannerPoll {
			ttl = minBannerPoll
		}
		views = append(views, bannerView{Banner: b, TTL: ttl})
	}
	return views
}

// Loading renders the spinner placeholder.
func (r *Renderer) Loading(w io.Writer) error {
	return r.execute(w, "loading", nil)
}

// Page renders the full dashboard page.
func (r *Renderer) Page(w io.Writer, data PageData) error {
	return r.execute(w, "page", data)
}

// execute buffers the output; nothing reaches w when the template fails.
func (r *Renderer) execute(w io.Writer, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// StaticHandler serves the embedded stylesheet under /static/.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
