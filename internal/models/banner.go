package models

import "time"

// Banner kinds map straight onto the alert-* CSS classes.
const (
	BannerSuccess = "success"
	BannerDanger  = "danger"
	BannerInfo    = "info"
	BannerWarning = "warning"
)

// Banner is a dismissible notice shown on a page until it expires or the guest closes it.
type Banner struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
