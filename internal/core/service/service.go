package service

import (
	"context"
	"log/slog"
	"math"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var _ port.ProductsReader = (*Service)(nil)
var _ port.CategoriesReader = (*Service)(nil)
var _ port.StatsReader = (*Service)(nil)
var _ port.SuggestionsReader = (*Service)(nil)

const (
	DefaultPage  = 1
	DefaultLimit = 12

	DefaultRelatedLimit     = 4
	DefaultFeaturedLimit    = 4
	DefaultSuggestionsLimit = 8

	minSuggestionQueryLen = 2

	categoryAll = "all"
)

// Service answers catalog queries over the immutable in-memory catalog.
// Every method is a read; the catalog is never mutated after construction.
type Service struct {
	catalog domain.Catalog
	events  port.ClientEventsProducer
}

// New returns a Service over catalog. events may be nil when client
// event telemetry is disabled.
func New(catalog domain.Catalog, events port.ClientEventsProducer) Service {
	return Service{catalog: catalog, events: events}
}

// ListProducts applies the filter predicates in a fixed order, sorts the
// working set with the strategy named by f.SortBy and slices out the
// requested page. It never fails: a page past the end is an empty slice.
func (s Service) ListProducts(
	ctx context.Context, f domain.ProductFilter, p domain.Pagination,
) domain.ProductsPage {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}

	ps := s.filterProducts(f)
	sortProducts(ps, f.SortBy)

	totalProducts := len(ps)
	totalPages := (totalProducts + p.Limit - 1) / p.Limit

	start := (p.Page - 1) * p.Limit
	end := min(start+p.Limit, totalProducts)
	if start > totalProducts {
		start, end = totalProducts, totalProducts
	}

	if f.Search != "" {
		s.emitEvent(ctx, domain.EventSearch, "", f.Search)
	}

	return domain.ProductsPage{
		Products: ps[start:end],
		Pagination: domain.PageInfo{
			CurrentPage:   p.Page,
			TotalPages:    totalPages,
			TotalProducts: totalProducts,
			PageSize:      p.Limit,
			HasNextPage:   p.Page < totalPages,
			HasPrevPage:   p.Page > 1,
		},
		Filter: f,
	}
}

func (s Service) filterProducts(f domain.ProductFilter) []domain.Product {
	ps := slices.Clone(s.catalog.Products)

	if f.Category != "" && f.Category != categoryAll {
		ps = keep(ps, func(p domain.Product) bool {
			return p.Category == f.Category
		})
	}

	if f.Search != "" {
		q := strings.ToLower(f.Search)
		ps = keep(ps, func(p domain.Product) bool {
			return searchMatch(p, q)
		})
	}

	if f.MinPrice > 0 {
		ps = keep(ps, func(p domain.Product) bool {
			return p.Price >= f.MinPrice
		})
	}

	if f.MaxPrice > 0 {
		ps = keep(ps, func(p domain.Product) bool {
			return p.Price <= f.MaxPrice
		})
	}

	if f.MinRating > 0 {
		ps = keep(ps, func(p domain.Product) bool {
			return p.Rating >= f.MinRating
		})
	}

	if f.Brand != "" {
		ps = keep(ps, func(p domain.Product) bool {
			return strings.EqualFold(p.Brand, f.Brand)
		})
	}

	if f.InStock != nil {
		ps = keep(ps, func(p domain.Product) bool {
			return p.InStock == *f.InStock
		})
	}

	if len(f.Tags) > 0 {
		ps = keep(ps, func(p domain.Product) bool {
			return tagsMatch(p.Tags, f.Tags)
		})
	}

	return ps
}

func keep(
	ps []domain.Product, pred func(domain.Product) bool,
) []domain.Product {
	filtered := ps[:0]
	for _, p := range ps {
		if pred(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func searchMatch(p domain.Product, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Brand), q) ||
		strings.Contains(strings.ToLower(p.Category), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func tagsMatch(productTags, filterTags []string) bool {
	for _, ft := range filterTags {
		ft = strings.ToLower(ft)
		for _, pt := range productTags {
			if strings.Contains(strings.ToLower(pt), ft) {
				return true
			}
		}
	}
	return false
}

// sortProducts reorders ps in place. Every strategy is stable: ties keep
// their pre-sort relative order. Unknown strategies and "relevance" keep
// the dataset order untouched.
func sortProducts(ps []domain.Product, sortBy string) {
	switch sortBy {
	case "price-low":
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].Price < ps[j].Price
		})
	case "price-high":
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].Price > ps[j].Price
		})
	case "rating":
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].Rating > ps[j].Rating
		})
	case "reviews":
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].Reviews > ps[j].Reviews
		})
	case "name":
		c := collate.New(language.English)
		sort.SliceStable(ps, func(i, j int) bool {
			return c.CompareString(ps[i].Name, ps[j].Name) < 0
		})
	case "newest":
		// Badge presence is the only recency signal the dataset carries.
		sort.SliceStable(ps, func(i, j int) bool {
			return ps[i].Badge != "" && ps[j].Badge == ""
		})
	}
}

// FeaturedProducts returns up to limit badged products in dataset order.
func (s Service) FeaturedProducts(
	ctx context.Context, limit int,
) []domain.Product {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}

	var ps []domain.Product
	for _, p := range s.catalog.Products {
		if p.Badge != "" {
			ps = append(ps, p)
			if len(ps) == limit {
				break
			}
		}
	}
	return ps
}

// ProductByID returns the product with the exact id, or
// [domain.ErrNotFound].
func (s Service) ProductByID(
	ctx context.Context, id string,
) (domain.Product, error) {
	for _, p := range s.catalog.Products {
		if p.ProductID == id {
			s.emitEvent(ctx, domain.EventProductView, p.ProductID, "")
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrNotFound
}

// RelatedProducts returns up to limit products sharing categoryID,
// excluding productID, in dataset order.
func (s Service) RelatedProducts(
	ctx context.Context, productID, categoryID string, limit int,
) []domain.Product {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	var ps []domain.Product
	for _, p := range s.catalog.Products {
		if p.Category == categoryID && p.ProductID != productID {
			ps = append(ps, p)
			if len(ps) == limit {
				break
			}
		}
	}
	return ps
}

// Categories returns every category in dataset order with a freshly
// computed product count.
func (s Service) Categories(ctx context.Context) []domain.Category {
	cs := slices.Clone(s.catalog.Categories)
	for i := range cs {
		cs[i].ProductCount = s.countCategoryProducts(cs[i].CategoryID)
	}
	return cs
}

// CategoryByID returns the category with the exact id and its computed
// product count, or [domain.ErrNotFound].
func (s Service) CategoryByID(
	ctx context.Context, id string,
) (domain.Category, error) {
	for _, c := range s.catalog.Categories {
		if c.CategoryID == id {
			c.ProductCount = s.countCategoryProducts(c.CategoryID)
			return c, nil
		}
	}
	return domain.Category{}, domain.ErrNotFound
}

func (s Service) countCategoryProducts(categoryID string) int {
	var n int
	for _, p := range s.catalog.Products {
		if p.Category == categoryID {
			n++
		}
	}
	return n
}

// CategoryStats aggregates count and mean price/rating per category.
// Empty categories yield zero averages.
func (s Service) CategoryStats(ctx context.Context) []domain.CategoryStats {
	stats := make([]domain.CategoryStats, 0, len(s.catalog.Categories))
	for _, c := range s.catalog.Categories {
		var count int
		var priceSum, ratingSum float64
		for _, p := range s.catalog.Products {
			if p.Category == c.CategoryID {
				count++
				priceSum += p.Price
				ratingSum += p.Rating
			}
		}

		var avgPrice, avgRating float64
		if count > 0 {
			avgPrice = math.Round(priceSum/float64(count)*100) / 100
			avgRating = math.Round(ratingSum/float64(count)*10) / 10
		}

		stats = append(stats, domain.CategoryStats{
			Category:  c.CategoryID,
			Name:      c.Name,
			Count:     count,
			AvgPrice:  avgPrice,
			AvgRating: avgRating,
		})
	}
	return stats
}

// Brands returns the sorted set of unique brand names.
func (s Service) Brands(ctx context.Context) []string {
	return s.brands()
}

func (s Service) brands() []string {
	set := make(map[string]struct{})
	for _, p := range s.catalog.Products {
		set[p.Brand] = struct{}{}
	}
	return sortedKeys(set)
}

// Tags returns the sorted set of unique tag strings.
func (s Service) Tags(ctx context.Context) []string {
	return s.tags()
}

func (s Service) tags() []string {
	set := make(map[string]struct{})
	for _, p := range s.catalog.Products {
		for _, t := range p.Tags {
			set[t] = struct{}{}
		}
	}
	return sortedKeys(set)
}

func sortedKeys(set map[string]struct{}) []string {
	vs := make([]string, 0, len(set))
	for v := range set {
		vs = append(vs, v)
	}
	slices.Sort(vs)
	return vs
}

// PriceRange returns the min and max product price. An empty catalog
// yields {0, 0}.
func (s Service) PriceRange(ctx context.Context) domain.PriceRange {
	if len(s.catalog.Products) == 0 {
		return domain.PriceRange{}
	}

	r := domain.PriceRange{
		Min: s.catalog.Products[0].Price,
		Max: s.catalog.Products[0].Price,
	}
	for _, p := range s.catalog.Products[1:] {
		r.Min = min(r.Min, p.Price)
		r.Max = max(r.Max, p.Price)
	}
	return r
}

// SearchSuggestions assembles up to 3 product, 2 brand, 2 category and
// 2 tag suggestions matching query, in that precedence order, truncated
// to limit. Queries shorter than 2 runes yield nothing.
func (s Service) SearchSuggestions(
	ctx context.Context, query string, limit int,
) []domain.Suggestion {
	if limit <= 0 {
		limit = DefaultSuggestionsLimit
	}
	if len(query) < minSuggestionQueryLen {
		return nil
	}

	q := strings.ToLower(query)
	var suggestions []domain.Suggestion
	suggestions = append(suggestions, s.productSuggestions(q)...)
	suggestions = append(suggestions, s.brandSuggestions(q)...)
	suggestions = append(suggestions, s.categorySuggestions(q)...)
	suggestions = append(suggestions, s.tagSuggestions(q)...)

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

func (s Service) productSuggestions(q string) []domain.Suggestion {
	const maxProducts = 3

	var vs []domain.Suggestion
	for _, p := range s.catalog.Products {
		if !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		vs = append(vs, domain.Suggestion{
			Type:      domain.SuggestionProduct,
			Text:      p.Name,
			ProductID: p.ProductID,
			Category:  p.Category,
		})
		if len(vs) == maxProducts {
			break
		}
	}
	return vs
}

func (s Service) brandSuggestions(q string) []domain.Suggestion {
	const maxBrands = 2

	var vs []domain.Suggestion
	for _, brand := range s.brands() {
		if !strings.Contains(strings.ToLower(brand), q) {
			continue
		}
		var count int
		for _, p := range s.catalog.Products {
			if p.Brand == brand {
				count++
			}
		}
		vs = append(vs, domain.Suggestion{
			Type:  domain.SuggestionBrand,
			Text:  brand,
			Count: count,
		})
		if len(vs) == maxBrands {
			break
		}
	}
	return vs
}

func (s Service) categorySuggestions(q string) []domain.Suggestion {
	const maxCategories = 2

	var vs []domain.Suggestion
	for _, c := range s.catalog.Categories {
		if !strings.Contains(strings.ToLower(c.Name), q) {
			continue
		}
		vs = append(vs, domain.Suggestion{
			Type:     domain.SuggestionCategory,
			Text:     c.Name,
			Category: c.CategoryID,
			Count:    s.countCategoryProducts(c.CategoryID),
		})
		if len(vs) == maxCategories {
			break
		}
	}
	return vs
}

func (s Service) tagSuggestions(q string) []domain.Suggestion {
	const maxTags = 2

	var vs []domain.Suggestion
	for _, tag := range s.tags() {
		if !strings.Contains(strings.ToLower(tag), q) {
			continue
		}
		var count int
		for _, p := range s.catalog.Products {
			if slices.Contains(p.Tags, tag) {
				count++
			}
		}
		vs = append(vs, domain.Suggestion{
			Type:  domain.SuggestionTag,
			Text:  tag,
			Count: count,
		})
		if len(vs) == maxTags {
			break
		}
	}
	return vs
}

func (s Service) emitEvent(ctx context.Context, evtType, subject, query string) {
	const op = "Service.emitEvent"

	if s.events == nil {
		return
	}

	evt := domain.ClientEvent{
		EventID:    uuid.NewString(),
		Type:       evtType,
		Subject:    subject,
		Query:      query,
		OccurredAt: time.Now().UTC(),
	}

	if err := s.events.ProduceEvent(ctx, evt); err != nil {
		slog.Warn("failed to produce client event",
			"op", op, "type", evtType, "err", err)
	}
}
