package services

import (
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"

	"github.com/AnshRaj112/guestexp-web/internal/models"
)

// CardImageTransformation crops recommendation images to the card's aspect ratio.
const CardImageTransformation = "c_fill,h_250,w_400"

// ImageResolver turns the image references found in recommendation items into browser-loadable URLs.
type ImageResolver struct {
	cld     *cloudinary.Cloudinary
	baseURL string
}

// NewImageResolver builds a resolver. Cloudinary is optional; pass empty credentials to skip it.
func NewImageResolver(backendURL, cloudName, apiKey, apiSecret string) (*ImageResolver, error) {
	r := &ImageResolver{baseURL: strings.TrimRight(backendURL, "/")}
	if cloudName == "" {
		return r, nil
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	r.cld = cld
	return r, nil
}

// Resolve returns the URL for ref. Absolute URLs pass through, root-relative paths are
// served by the backend, anything else is a Cloudinary public id.
func (r *ImageResolver) Resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return ""
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return ref
	case strings.HasPrefix(ref, "/"):
		return r.baseURL + ref
	case r.cld == nil:
		return ""
	}
	img, err := r.cld.Image(ref)
	if err != nil {
		return ""
	}
	img.Transformation = CardImageTransformation
	u, err := img.String()
	if err != nil {
		return ""
	}
	return u
}

// ResolveSet rewrites every item image in place.
func (r *ImageResolver) ResolveSet(set *models.RecommendationSet) {
	for _, items := range [][]models.RecommendationItem{set.Dining, set.Amenities, set.Activities} {
		for i := range items {
			items[i].Image = r.Resolve(items[i].Image)
		}
	}
}
