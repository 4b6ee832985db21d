package models

// RecommendationItem is a single suggested restaurant, amenity or activity.
type RecommendationItem struct {
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	Category            string   `json:"category,omitempty"`
	Rating              float64  `json:"rating,omitempty"`
	RecommendationScore float64  `json:"recommendation_score,omitempty"`
	Image               string   `json:"image,omitempty"`
	Specialties         []string `json:"specialties,omitempty"`
	PriceTier           string   `json:"price_tier,omitempty"`
}

// RecommendationSet groups the three lists the dashboard shows.
type RecommendationSet struct {
	Dining     []RecommendationItem `json:"dining"`
	Amenities  []RecommendationItem `json:"amenities"`
	Activities []RecommendationItem `json:"activities"`
}

// RecommendationsResponse is the {success, data} envelope.
type RecommendationsResponse struct {
	Success bool              `json:"success"`
	Data    RecommendationSet `json:"data"`
	Detail  string            `json:"detail,omitempty"`
}
