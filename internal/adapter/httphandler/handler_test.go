package httphandler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() domain.Catalog {
	return domain.Catalog{
		Products: []domain.Product{
			{
				ProductID: "1", Name: "Premium Wireless Headphones",
				Price: 299.99, OriginalPrice: 399.99,
				Rating: 4.8, Reviews: 1247,
				Category: "electronics", Badge: "Best Seller",
				Brand: "AudioLux", InStock: true,
				Tags: []string{"wireless", "audio"},
			},
			{
				ProductID: "2", Name: "Smart Home Security System",
				Price: 449.99, Rating: 4.7, Reviews: 2156,
				Category: "electronics",
				Brand:    "SecureTech", InStock: true,
				Tags: []string{"security", "cameras"},
			},
			{
				ProductID: "3", Name: "Artisan Coffee Maker Pro",
				Price: 279.99, Rating: 4.6, Reviews: 743,
				Category: "home",
				Brand:    "BrewMaster", InStock: true,
				Tags: []string{"coffee", "kitchen"},
			},
		},
		Categories: []domain.Category{
			{CategoryID: "electronics", Name: "Electronics"},
			{CategoryID: "home", Name: "Home & Living"},
		},
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	s := service.New(testCatalog(), nil)

	mux := http.NewServeMux()
	httphandler.RegisterProducts(mux, s)
	httphandler.RegisterCategories(mux, s, s)
	httphandler.RegisterSearch(mux, s)
	httphandler.RegisterStats(mux, s)
	httphandler.RegisterHealth(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()

	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, "application/json",
		res.Header.Get("Content-Type"))

	err = json.NewDecoder(res.Body).Decode(v)
	require.NoError(t, err)
	return res.StatusCode
}

func TestGetProducts(t *testing.T) {
	srv := newTestServer(t)

	t.Run("All", func(t *testing.T) {
		var page httphandler.ProductsPage
		code := getJSON(t, srv.URL+"/v1/products", &page)
		assert.Equal(t, http.StatusOK, code)
		assert.Len(t, page.Products, 3)
		assert.Equal(t, 3, page.Pagination.TotalProducts)
		assert.Equal(t, 1, page.Pagination.TotalPages)
	})

	t.Run("CategoryParam", func(t *testing.T) {
		var page httphandler.ProductsPage
		code := getJSON(t, srv.URL+"/v1/products?category=electronics", &page)
		assert.Equal(t, http.StatusOK, code)
		assert.Len(t, page.Products, 2)
		assert.Equal(t, "electronics", page.Filters.Category)
	})

	t.Run("PriceAndSortParams", func(t *testing.T) {
		var page httphandler.ProductsPage
		code := getJSON(
			t,
			srv.URL+"/v1/products?minPrice=280&sortBy=price-high",
			&page,
		)
		assert.Equal(t, http.StatusOK, code)
		require.Len(t, page.Products, 2)
		assert.Equal(t, "2", page.Products[0].ID)
		assert.Equal(t, "1", page.Products[1].ID)
	})

	t.Run("PaginationParams", func(t *testing.T) {
		var page httphandler.ProductsPage
		code := getJSON(t, srv.URL+"/v1/products?page=2&limit=2", &page)
		assert.Equal(t, http.StatusOK, code)
		assert.Len(t, page.Products, 1)
		assert.Equal(t, 2, page.Pagination.CurrentPage)
		assert.True(t, page.Pagination.HasPrevPage)
		assert.False(t, page.Pagination.HasNextPage)
	})

	t.Run("MalformedNumbersAreIgnored", func(t *testing.T) {
		var page httphandler.ProductsPage
		code := getJSON(
			t,
			srv.URL+"/v1/products?minPrice=abc&page=xyz&limit=-5",
			&page,
		)
		assert.Equal(t, http.StatusOK, code)
		assert.Len(t, page.Products, 3)
		assert.Equal(t, 1, page.Pagination.CurrentPage)
	})

	t.Run("InStockParam", func(t *testing.T) {
		var page httphandler.ProductsPage
		code := getJSON(t, srv.URL+"/v1/products?inStock=true", &page)
		assert.Equal(t, http.StatusOK, code)
		assert.Len(t, page.Products, 3)
		require.NotNil(t, page.Filters.InStock)
		assert.True(t, *page.Filters.InStock)
	})
}

func TestGetFeatured(t *testing.T) {
	srv := newTestServer(t)

	var res struct {
		Products []httphandler.Product `json:"products"`
	}
	code := getJSON(t, srv.URL+"/v1/products/featured", &res)
	assert.Equal(t, http.StatusOK, code)
	require.Len(t, res.Products, 1)
	assert.Equal(t, "1", res.Products[0].ID)
}

func TestGetProduct(t *testing.T) {
	srv := newTestServer(t)

	t.Run("Found", func(t *testing.T) {
		var detail httphandler.ProductDetail
		code := getJSON(t, srv.URL+"/v1/products/1", &detail)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Premium Wireless Headphones", detail.Product.Name)

		require.Len(t, detail.RelatedProducts, 1)
		assert.Equal(t, "2", detail.RelatedProducts[0].ID)
	})

	t.Run("NotFound", func(t *testing.T) {
		var errRes httphandler.Error
		code := getJSON(t, srv.URL+"/v1/products/404", &errRes)
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "Product not found", errRes.Error)
	})
}

func TestGetCategories(t *testing.T) {
	srv := newTestServer(t)

	var res struct {
		Categories []httphandler.Category `json:"categories"`
	}
	code := getJSON(t, srv.URL+"/v1/categories", &res)
	assert.Equal(t, http.StatusOK, code)
	require.Len(t, res.Categories, 2)
	assert.Equal(t, 2, res.Categories[0].ProductCount)
	assert.Equal(t, 1, res.Categories[1].ProductCount)
}

func TestGetCategory(t *testing.T) {
	srv := newTestServer(t)

	t.Run("Found", func(t *testing.T) {
		var detail httphandler.CategoryDetail
		code := getJSON(t, srv.URL+"/v1/categories/electronics", &detail)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Electronics", detail.Category.Name)
		assert.Equal(t, 2, detail.Category.ProductCount)
		assert.Len(t, detail.Products, 2)
		assert.Equal(t, "electronics", detail.Filters.Category)
	})

	t.Run("SortApplied", func(t *testing.T) {
		var detail httphandler.CategoryDetail
		code := getJSON(
			t,
			srv.URL+"/v1/categories/electronics?sortBy=price-low",
			&detail,
		)
		assert.Equal(t, http.StatusOK, code)
		require.Len(t, detail.Products, 2)
		assert.Equal(t, "1", detail.Products[0].ID)
		assert.Equal(t, "2", detail.Products[1].ID)
	})

	t.Run("NotFound", func(t *testing.T) {
		var errRes httphandler.Error
		code := getJSON(t, srv.URL+"/v1/categories/ghost", &errRes)
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "Category not found", errRes.Error)
	})
}

func TestGetSuggestions(t *testing.T) {
	srv := newTestServer(t)

	t.Run("Regular", func(t *testing.T) {
		var res httphandler.Suggestions
		code := getJSON(t, srv.URL+"/v1/search/suggestions?q=co", &res)
		assert.Equal(t, http.StatusOK, code)

		var gotProduct bool
		for _, v := range res.Suggestions {
			if v.Type == "product" && v.Text == "Artisan Coffee Maker Pro" {
				gotProduct = true
				assert.Equal(t, "3", v.ID)
			}
		}
		assert.True(t, gotProduct, "missing product suggestion")
	})

	t.Run("ShortQueryIsEmptyList", func(t *testing.T) {
		var res httphandler.Suggestions
		code := getJSON(t, srv.URL+"/v1/search/suggestions?q=c", &res)
		assert.Equal(t, http.StatusOK, code)
		assert.NotNil(t, res.Suggestions)
		assert.Empty(t, res.Suggestions)
	})
}

func TestGetStats(t *testing.T) {
	srv := newTestServer(t)

	var res httphandler.Stats
	code := getJSON(t, srv.URL+"/v1/stats", &res)
	assert.Equal(t, http.StatusOK, code)

	assert.Equal(t, 3, res.TotalProducts)
	assert.Equal(t, []string{"AudioLux", "BrewMaster", "SecureTech"}, res.Brands)
	assert.Contains(t, res.Tags, "coffee")
	assert.Equal(t, 279.99, res.PriceRange.Min)
	assert.Equal(t, 449.99, res.PriceRange.Max)

	require.Len(t, res.CategoryStats, 2)
	assert.Equal(t, "electronics", res.CategoryStats[0].Category)
	assert.Equal(t, 2, res.CategoryStats[0].Count)
	assert.InDelta(t, 374.99, res.CategoryStats[0].AvgPrice, 0.001)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	var res httphandler.Health
	code := getJSON(t, srv.URL+"/v1/health", &res)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", res.Status)
	assert.Equal(t, "storefront", res.Service)
}
