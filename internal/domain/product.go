package domain

import (
	"strconv"
	"strings"
	"time"
)

// DefaultWhatsAppTemplate is applied when a product carries no template of
// its own. `{label}` is replaced with the product label.
const DefaultWhatsAppTemplate = "Olá! Gostei do item {label}. Quero um desse."

type Product struct {
	ID               string    `json:"id"`
	Label            string    `json:"label"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	Price            float64   `json:"price"`
	SellerPhone      string    `json:"seller_phone,omitempty"`
	WhatsAppTemplate string    `json:"whatsapp_template,omitempty"`
	ImageURL         string    `json:"image_url,omitempty"`
	Tags             []string  `json:"tags"`
	Available        bool      `json:"available"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ImageFilename returns the last path segment of the image reference, or ""
// when the product has no image.
func (p Product) ImageFilename() string {
	if p.ImageURL == "" {
		return ""
	}
	parts := strings.Split(p.ImageURL, "/")
	return parts[len(parts)-1]
}

// RawProduct mirrors a product document before normalization. Pointer and
// loosely typed fields keep "missing" distinguishable from the zero value.
type RawProduct struct {
	ID               string      `json:"id"`
	Label            string      `json:"label"`
	Name             string      `json:"name"`
	Description      string      `json:"description"`
	Price            interface{} `json:"price"`
	SellerPhone      string      `json:"seller_phone"`
	WhatsAppTemplate string      `json:"whatsapp_template"`
	ImageURL         string      `json:"image_url"`
	Tags             []string    `json:"tags"`
	Available        *bool       `json:"available"`
	CreatedAt        string      `json:"createdAt"`
	UpdatedAt        string      `json:"updatedAt"`
}

// Normalize resolves the optional fields once, at the store boundary:
// a missing available flag means available, a missing, malformed or negative
// price becomes 0, timestamps parse as RFC 3339 or stay zero, and updatedAt
// never precedes createdAt.
func (r RawProduct) Normalize() Product {
	p := Product{
		ID:               strings.TrimSpace(r.ID),
		Label:            strings.TrimSpace(r.Label),
		Name:             strings.TrimSpace(r.Name),
		Description:      strings.TrimSpace(r.Description),
		Price:            normalizePrice(r.Price),
		SellerPhone:      strings.TrimSpace(r.SellerPhone),
		WhatsAppTemplate: strings.TrimSpace(r.WhatsAppTemplate),
		ImageURL:         strings.TrimSpace(r.ImageURL),
		Tags:             r.Tags,
		Available:        true,
		CreatedAt:        parseTimestamp(r.CreatedAt),
		UpdatedAt:        parseTimestamp(r.UpdatedAt),
	}
	if r.Available != nil {
		p.Available = *r.Available
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.UpdatedAt.Before(p.CreatedAt) {
		p.UpdatedAt = p.CreatedAt
	}
	return p
}

func normalizePrice(v interface{}) float64 {
	switch val := v.(type) {
	case float64:
		if val > 0 {
			return val
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil && f > 0 {
			return f
		}
	}
	return 0
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
