package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// GET v1/products?page=&limit=&sortBy=&category=&search=&minPrice=&maxPrice=&minRating=&brand=&inStock=
// GET v1/products/featured?limit=
// GET v1/products/{id}
// GET v1/categories
// GET v1/categories/{id}?page=&limit=&sortBy=
// GET v1/search/suggestions?q=&limit=
// GET v1/stats
// GET v1/health

type ProductsHandler struct {
	products port.ProductsReader
}

func RegisterProducts(mux *http.ServeMux, products port.ProductsReader) {
	h := ProductsHandler{products}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/products/featured", h.GetFeatured)
	mux.HandleFunc("GET /v1/products/{id}", h.GetProduct)
}

func (h ProductsHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProducts"

	filter := parseFilter(r.URL.Query())
	pagination := parsePagination(r.URL.Query())

	page := h.products.ListProducts(r.Context(), filter, pagination)
	writeJSON(w, op, toProductsPage(page))
}

func (h ProductsHandler) GetFeatured(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetFeatured"

	limit := queryInt(r.URL.Query(), "limit")
	ps := h.products.FeaturedProducts(r.Context(), limit)
	writeJSON(w, op, struct {
		Products []Product `json:"products"`
	}{toProducts(ps)})
}

func (h ProductsHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProduct"

	id := r.PathValue("id")
	p, err := h.products.ProductByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		slog.Error("failed to read product", "op", op, "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch product")
		return
	}

	related := h.products.RelatedProducts(r.Context(), p.ProductID, p.Category, 0)

	writeJSON(w, op, ProductDetail{
		Product:         toProduct(p),
		RelatedProducts: toProducts(related),
	})
}

type CategoriesHandler struct {
	categories port.CategoriesReader
	products   port.ProductsReader
}

func RegisterCategories(
	mux *http.ServeMux,
	categories port.CategoriesReader,
	products port.ProductsReader,
) {
	h := CategoriesHandler{categories, products}
	mux.HandleFunc("GET /v1/categories", h.GetCategories)
	mux.HandleFunc("GET /v1/categories/{id}", h.GetCategory)
}

func (h CategoriesHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	const op = "CategoriesHandler.GetCategories"

	cs := h.categories.Categories(r.Context())
	writeJSON(w, op, struct {
		Categories []Category `json:"categories"`
	}{toCategories(cs)})
}

func (h CategoriesHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	const op = "CategoriesHandler.GetCategory"

	id := r.PathValue("id")
	c, err := h.categories.CategoryByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Category not found")
			return
		}
		slog.Error("failed to read category", "op", op, "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch category")
		return
	}

	filter := domain.ProductFilter{
		Category: c.CategoryID,
		SortBy:   r.URL.Query().Get("sortBy"),
	}
	page := h.products.ListProducts(
		r.Context(), filter, parsePagination(r.URL.Query()),
	)

	writeJSON(w, op, CategoryDetail{
		Category:   toCategory(c),
		Products:   toProducts(page.Products),
		Pagination: toPagination(page.Pagination),
		Filters:    toFilter(page.Filter),
	})
}

type SearchHandler struct {
	suggestions port.SuggestionsReader
}

func RegisterSearch(mux *http.ServeMux, suggestions port.SuggestionsReader) {
	h := SearchHandler{suggestions}
	mux.HandleFunc("GET /v1/search/suggestions", h.GetSuggestions)
}

func (h SearchHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	const op = "SearchHandler.GetSuggestions"

	q := r.URL.Query().Get("q")
	limit := queryInt(r.URL.Query(), "limit")

	vs := h.suggestions.SearchSuggestions(r.Context(), q, limit)

	res := Suggestions{Suggestions: make([]Suggestion, 0, len(vs))}
	for _, v := range vs {
		res.Suggestions = append(res.Suggestions, Suggestion{
			Type:     v.Type,
			Text:     v.Text,
			Category: v.Category,
			ID:       v.ProductID,
			Count:    v.Count,
		})
	}
	writeJSON(w, op, res)
}

type StatsHandler struct {
	stats port.StatsReader
}

func RegisterStats(mux *http.ServeMux, stats port.StatsReader) {
	h := StatsHandler{stats}
	mux.HandleFunc("GET /v1/stats", h.GetStats)
}

func (h StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	const op = "StatsHandler.GetStats"
	ctx := r.Context()

	categoryStats := h.stats.CategoryStats(ctx)
	priceRange := h.stats.PriceRange(ctx)

	res := Stats{
		CategoryStats: make([]CategoryStats, 0, len(categoryStats)),
		Brands:        h.stats.Brands(ctx),
		Tags:          h.stats.Tags(ctx),
		PriceRange:    PriceRange{Min: priceRange.Min, Max: priceRange.Max},
	}
	for _, v := range categoryStats {
		res.CategoryStats = append(res.CategoryStats, CategoryStats{
			Category:  v.Category,
			Name:      v.Name,
			Count:     v.Count,
			AvgPrice:  v.AvgPrice,
			AvgRating: v.AvgRating,
		})
		res.TotalProducts += v.Count
	}
	writeJSON(w, op, res)
}

func RegisterHealth(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/health", func(w http.ResponseWriter, r *http.Request) {
		const op = "Health"
		writeJSON(w, op, Health{Status: "ok", Service: "storefront"})
	})
}

// parseFilter maps query params to the engine filter. Malformed numeric
// values count as constraint absent, the engine is never handed garbage.
func parseFilter(q url.Values) domain.ProductFilter {
	f := domain.ProductFilter{
		Category:  q.Get("category"),
		Search:    q.Get("search"),
		SortBy:    q.Get("sortBy"),
		MinPrice:  queryFloat(q, "minPrice"),
		MaxPrice:  queryFloat(q, "maxPrice"),
		MinRating: queryFloat(q, "minRating"),
		Brand:     q.Get("brand"),
	}
	if q.Get("inStock") == "true" {
		inStock := true
		f.InStock = &inStock
	}
	return f
}

func parsePagination(q url.Values) domain.Pagination {
	return domain.Pagination{
		Page:  queryInt(q, "page"),
		Limit: queryInt(q, "limit"),
	}
}

func queryFloat(q url.Values, key string) float64 {
	v, err := strconv.ParseFloat(q.Get(key), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func queryInt(q url.Values, key string) int {
	v, err := strconv.Atoi(q.Get(key))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func writeJSON(w http.ResponseWriter, op string, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(Error{Error: msg})
}

func toProduct(v domain.Product) Product {
	return Product{
		ID:             v.ProductID,
		Name:           v.Name,
		Price:          v.Price,
		OriginalPrice:  v.OriginalPrice,
		Rating:         v.Rating,
		Reviews:        v.Reviews,
		Image:          v.Image,
		Images:         v.Images,
		Category:       v.Category,
		AffiliateURL:   v.AffiliateURL,
		Badge:          v.Badge,
		Description:    v.Description,
		Features:       v.Features,
		Specifications: v.Specifications,
		Tags:           v.Tags,
		InStock:        v.InStock,
		Brand:          v.Brand,
		Colors:         v.Colors,
	}
}

func toProducts(vs []domain.Product) []Product {
	ps := make([]Product, 0, len(vs))
	for _, v := range vs {
		ps = append(ps, toProduct(v))
	}
	return ps
}

func toCategory(v domain.Category) Category {
	return Category{
		ID:           v.CategoryID,
		Name:         v.Name,
		Description:  v.Description,
		Image:        v.Image,
		Gradient:     v.Gradient,
		ProductCount: v.ProductCount,
	}
}

func toCategories(vs []domain.Category) []Category {
	cs := make([]Category, 0, len(vs))
	for _, v := range vs {
		cs = append(cs, toCategory(v))
	}
	return cs
}

func toFilter(v domain.ProductFilter) Filter {
	return Filter{
		Category:  v.Category,
		Search:    v.Search,
		SortBy:    v.SortBy,
		MinPrice:  v.MinPrice,
		MaxPrice:  v.MaxPrice,
		MinRating: v.MinRating,
		Brand:     v.Brand,
		InStock:   v.InStock,
		Tags:      v.Tags,
	}
}

func toPagination(v domain.PageInfo) Pagination {
	return Pagination{
		CurrentPage:   v.CurrentPage,
		TotalPages:    v.TotalPages,
		TotalProducts: v.TotalProducts,
		PageSize:      v.PageSize,
		HasNextPage:   v.HasNextPage,
		HasPrevPage:   v.HasPrevPage,
	}
}

func toProductsPage(v domain.ProductsPage) ProductsPage {
	return ProductsPage{
		Products:   toProducts(v.Products),
		Pagination: toPagination(v.Pagination),
		Filters:    toFilter(v.Filter),
	}
}
