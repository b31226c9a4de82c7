package domain

import (
	"errors"
	"time"
)

// ErrNotFound is a normal absent-result outcome for single-entity lookups.
var ErrNotFound = errors.New("not found")

type (
	Product struct {
		ProductID      string
		Name           string
		Price          float64
		OriginalPrice  float64
		Rating         float64
		Reviews        int
		Image          string
		Images         []string
		Category       string
		AffiliateURL   string
		Badge          string
		Description    string
		Features       []string
		Specifications map[string]string
		Tags           []string
		InStock        bool
		Brand          string
		Colors         []string
	}

	Category struct {
		CategoryID   string
		Name         string
		Description  string
		Image        string
		Gradient     string
		ProductCount int
	}
)

// Catalog is the immutable dataset loaded once at startup.
// Products and Categories keep their storage order; nothing mutates them.
type Catalog struct {
	Products   []Product
	Categories []Category
}

type ProductFilter struct {
	Category  string
	Search    string
	SortBy    string
	MinPrice  float64
	MaxPrice  float64
	MinRating float64
	Brand     string
	InStock   *bool
	Tags      []string
}

type Pagination struct {
	Page  int
	Limit int
}

type PageInfo struct {
	CurrentPage   int
	TotalPages    int
	TotalProducts int
	PageSize      int
	HasNextPage   bool
	HasPrevPage   bool
}

type ProductsPage struct {
	Products   []Product
	Pagination PageInfo
	Filter     ProductFilter
}

type CategoryStats struct {
	Category  string
	Name      string
	Count     int
	AvgPrice  float64
	AvgRating float64
}

type PriceRange struct {
	Min float64
	Max float64
}

const (
	SuggestionProduct  = "product"
	SuggestionBrand    = "brand"
	SuggestionCategory = "category"
	SuggestionTag      = "tag"
)

type Suggestion struct {
	Type      string
	Text      string
	ProductID string
	Category  string
	Count     int
}

const (
	EventSearch      = "search"
	EventProductView = "product_view"
)

// ClientEvent is outbound telemetry about catalog usage.
type ClientEvent struct {
	EventID    string
	Type       string
	Subject    string
	Query      string
	OccurredAt time.Time
}
