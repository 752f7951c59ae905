package seo

import (
	"encoding/json"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// WebSite returns a minimal WebSite schema with optional SearchAction.
func WebSite(name, url, searchActionURL string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if searchActionURL != "" {
		m["potentialAction"] = map[string]any{
			"@type":       "SearchAction",
			"target":      searchActionURL + "{search_term_string}",
			"query-input": "required name=search_term_string",
		}
	}
	return m
}

// Offer describes a product's purchasable offer.
type Offer struct {
	Price    float64
	Currency string
	InStock  bool
}

// Product returns a product schema payload with offer and rating data.
func Product(name, description, url, imageURL string, offer Offer, rating float64) map[string]any {
	m := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "Product",
		"name":        name,
		"description": description,
	}
	if url != "" {
		m["url"] = url
	}
	if imageURL != "" {
		m["image"] = imageURL
	}
	availability := "https://schema.org/OutOfStock"
	if offer.InStock {
		availability = "https://schema.org/InStock"
	}
	m["offers"] = map[string]any{
		"@type":         "Offer",
		"price":         offer.Price,
		"priceCurrency": offer.Currency,
		"availability":  availability,
	}
	if rating > 0 {
		m["aggregateRating"] = map[string]any{
			"@type":       "AggregateRating",
			"ratingValue": rating,
			"bestRating":  5,
		}
	}
	return m
}
