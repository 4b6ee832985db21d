package models

const RoleAdmin = "admin"

// CurrentUser is the descriptor returned by /api/auth/me and embedded into the page.
type CurrentUser struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	GuestID   string `json:"guest_id,omitempty"`
}

// IsAdmin reports whether admin-only sections should be shown.
func (u *CurrentUser) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// RecommendationID is the identifier recommendations are scoped to.
// Customers carry a guest profile id; everyone else falls back to the user id.
func (u *CurrentUser) RecommendationID() string {
	if u == nil {
		return ""
	}
	if u.GuestID != "" {
		return u.GuestID
	}
	return u.UserID
}
