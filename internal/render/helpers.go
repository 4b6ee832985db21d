package render

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/AnshRaj112/guestexp-web/pkg/utils"
)

// StarKind is one of the five units of a star rating.
type StarKind string

const (
	StarFull  StarKind = "full"
	StarHalf  StarKind = "half"
	StarEmpty StarKind = "empty"
)

const (
	starCount      = 5
	alertTextLimit = 80
)

// StarRating splits a 0..5 rating into five units: floor(r) full stars, one half
// star when the fractional part is at least .5, and empty stars for the rest.
func StarRating(rating float64) []StarKind {
	full := int(math.Floor(rating))
	half := rating-math.Floor(rating) >= 0.5
	stars := make([]StarKind, starCount)
	for i := range stars {
		switch {
		case i < full:
			stars[i] = StarFull
		case i == full && half:
			stars[i] = StarHalf
		default:
			stars[i] = StarEmpty
		}
	}
	return stars
}

// MatchPercent renders a 0..1 recommendation score as a whole percentage.
func MatchPercent(score float64) int {
	return utils.Percent(score)
}

// ConfidencePercent renders a 0..1 sentiment confidence as a whole percentage.
func ConfidencePercent(confidence float64) int {
	return utils.Percent(confidence)
}

// SentimentIcon returns the Font Awesome icon for a sentiment label.
func SentimentIcon(sentiment string) string {
	switch sentiment {
	case "positive":
		return "smile"
	case "negative":
		return "frown"
	default:
		return "meh"
	}
}

// PriorityClass maps an alert priority to a badge colour.
func PriorityClass(priority string) string {
	switch priority {
	case "high":
		return "danger"
	case "medium":
		return "warning"
	default:
		return "info"
	}
}

// PriorityEmoji keeps the backend's emoji when present, otherwise derives one from the priority.
func PriorityEmoji(emoji, priority string) string {
	if emoji != "" {
		return emoji
	}
	switch priority {
	case "high":
		return "🔴"
	case "medium":
		return "🟡"
	default:
		return "🟢"
	}
}

// Truncate cuts s to limit characters and appends "..." when anything was cut.
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}

// dict builds a map from alternating keys and values for passing several values to a sub-template.
func dict(pairs ...interface{}) (map[string]interface{}, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]interface{}, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

// seq returns 1..n.
func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
