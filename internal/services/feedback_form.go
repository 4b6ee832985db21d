package services

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/AnshRaj112/guestexp-web/internal/models"
)

// Validation messages, shown verbatim in a danger banner.
var (
	ErrMissingCategory = errors.New("Please select a category")
	ErrInvalidRating   = errors.New("Please select a rating between 1 and 5 stars")
	ErrMissingSubject  = errors.New("Please enter a subject for your feedback")
	ErrMissingComment  = errors.New("Please enter your feedback comment")
)

// ParseFeedbackForm reads the feedback form fields. A missing or non-numeric rating becomes 0.
func ParseFeedbackForm(form url.Values) models.FeedbackSubmission {
	rating := leadingInt(form.Get("rating"))
	return models.FeedbackSubmission{
		Category:    form.Get("category"),
		Rating:      rating,
		Subject:     form.Get("subject"),
		Comment:     form.Get("comment"),
		Location:    form.Get("location"),
		StaffMember: form.Get("staff_member"),
		Anonymous:   form.Get("anonymous") == "on",
	}
}

// ValidateFeedback returns the first failed check, in form order.
func ValidateFeedback(sub models.FeedbackSubmission) error {
	switch {
	case sub.Category == "":
		return ErrMissingCategory
	case sub.Rating < 1 || sub.Rating > 5:
		return ErrInvalidRating
	case strings.TrimSpace(sub.Subject) == "":
		return ErrMissingSubject
	case strings.TrimSpace(sub.Comment) == "":
		return ErrMissingComment
	}
	return nil
}

// leadingInt reads the integer at the start of s, so "4.0" is 4 and "3.5" is 3.
// Anything without leading digits is 0.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
