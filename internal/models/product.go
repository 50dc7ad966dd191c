package models

import (
	"math"
	"sort"
	"strings"
	"time"
)

// SortKey selects the ordering applied by the catalog pipeline.
type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortRating    SortKey = "rating"
	SortNew       SortKey = "new"
)

// ParseSortKey maps a raw query value to a SortKey, defaulting to featured.
func ParseSortKey(raw string) SortKey {
	switch SortKey(strings.TrimSpace(strings.ToLower(raw))) {
	case SortPriceAsc:
		return SortPriceAsc
	case SortPriceDesc:
		return SortPriceDesc
	case SortRating:
		return SortRating
	case SortNew:
		return SortNew
	default:
		return SortFeatured
	}
}

// Product represents a catalog entry. Immutable once loaded; all optional
// fields degrade to their zero value rather than failing the load.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Brand       string    `json:"brand,omitempty"`
	Category    string    `json:"category,omitempty"`
	Price       float64   `json:"price"`
	Rating      float64   `json:"rating"`
	Reviews     int       `json:"reviews"`
	Featured    bool      `json:"featured"`
	New         bool      `json:"new"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Normalized returns a copy of the product with defaulting rules applied:
// price clamped to non-negative, rating clamped to [0,5] and a zero
// CreatedAt backfilled with now. Applying it twice is a no-op.
func (p Product) Normalized(now time.Time) Product {
	if p.Price < 0 || math.IsNaN(p.Price) {
		p.Price = 0
	}
	if p.Rating < 0 || math.IsNaN(p.Rating) {
		p.Rating = 0
	}
	if p.Rating > 5 {
		p.Rating = 5
	}
	if p.Reviews < 0 {
		p.Reviews = 0
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	return p
}

// MatchesQuery reports whether the product matches a lowercased search term
// against title, description and brand. An empty term matches everything.
func (p Product) MatchesQuery(term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Title), term) ||
		strings.Contains(strings.ToLower(p.Description), term) ||
		strings.Contains(strings.ToLower(p.Brand), term)
}

// FilterState captures the ephemeral browse state driving the pipeline.
// It is never persisted.
type FilterState struct {
	Query    string  `json:"query"`
	Category string  `json:"category"`
	Sort     SortKey `json:"sort"`
}

// MatchesCategory reports whether the product passes the category filter.
// Empty and "all" match every product.
func (f FilterState) MatchesCategory(p Product) bool {
	if f.Category == "" || strings.EqualFold(f.Category, "all") {
		return true
	}
	return p.Category == f.Category
}

// DistinctCategories returns the sorted set of non-empty categories present
// in the given catalog.
func DistinctCategories(products []Product) []string {
	seen := make(map[string]struct{}, len(products))
	categories := make([]string, 0, len(products))
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)
	return categories
}
