package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CatalogLoader = (*FileStorage)(nil)

type (
	product struct {
		ID             string            `json:"id"`
		Name           string            `json:"name"`
		Price          float64           `json:"price"`
		OriginalPrice  float64           `json:"originalPrice,omitempty"`
		Rating         float64           `json:"rating"`
		Reviews        int               `json:"reviews"`
		Image          string            `json:"image"`
		Images         []string          `json:"images"`
		Category       string            `json:"category"`
		AffiliateURL   string            `json:"affiliateUrl"`
		Badge          string            `json:"badge,omitempty"`
		Description    string            `json:"description"`
		Features       []string          `json:"features"`
		Specifications map[string]string `json:"specifications"`
		Tags           []string          `json:"tags"`
		InStock        bool              `json:"inStock"`
		Brand          string            `json:"brand"`
		Colors         []string          `json:"colors"`
	}

	category struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Image       string `json:"image"`
		Gradient    string `json:"gradient"`
	}
)

// FileStorage reads the catalog from two static JSON files. The files
// are parsed once; the result is handed to the core and never touched
// again.
type FileStorage struct {
	productsPath   string
	categoriesPath string
}

func NewFileStorage(productsPath, categoriesPath string) FileStorage {
	return FileStorage{productsPath, categoriesPath}
}

// LoadCatalog parses and validates both collections. Duplicate ids fail
// the load; a product pointing at an unknown category is only warned
// about, lookups on it simply come back empty.
func (s FileStorage) LoadCatalog(ctx context.Context) (domain.Catalog, error) {
	const op = "FileStorage.LoadCatalog"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return domain.Catalog{}, fmt.Errorf("%s: %w", op, err)
	}

	ps, err := s.loadProducts()
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("%s: %w", op, err)
	}

	cs, err := s.loadCategories()
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("%s: %w", op, err)
	}

	c := domain.Catalog{Products: ps, Categories: cs}
	if err := validate(c); err != nil {
		return domain.Catalog{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("catalog is loaded",
		"nProducts", len(ps), "nCategories", len(cs))
	return c, nil
}

func (s FileStorage) loadProducts() ([]domain.Product, error) {
	data, err := os.ReadFile(s.productsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read products file: %w", err)
	}

	var vs []product
	if err := json.Unmarshal(data, &vs); err != nil {
		return nil, fmt.Errorf("failed to parse products file: %w", err)
	}

	ps := make([]domain.Product, len(vs))
	for i, v := range vs {
		ps[i] = v.toDomain()
	}
	return ps, nil
}

func (s FileStorage) loadCategories() ([]domain.Category, error) {
	data, err := os.ReadFile(s.categoriesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read categories file: %w", err)
	}

	var vs []category
	if err := json.Unmarshal(data, &vs); err != nil {
		return nil, fmt.Errorf("failed to parse categories file: %w", err)
	}

	cs := make([]domain.Category, len(vs))
	for i, v := range vs {
		cs[i] = v.toDomain()
	}
	return cs, nil
}

func validate(c domain.Catalog) error {
	categoryIDs := make(map[string]struct{}, len(c.Categories))
	for _, v := range c.Categories {
		if _, ok := categoryIDs[v.CategoryID]; ok {
			return fmt.Errorf("duplicate category id %q", v.CategoryID)
		}
		categoryIDs[v.CategoryID] = struct{}{}
	}

	productIDs := make(map[string]struct{}, len(c.Products))
	for _, v := range c.Products {
		if _, ok := productIDs[v.ProductID]; ok {
			return fmt.Errorf("duplicate product id %q", v.ProductID)
		}
		productIDs[v.ProductID] = struct{}{}

		if _, ok := categoryIDs[v.Category]; !ok {
			slog.Warn("product references unknown category",
				"productID", v.ProductID, "category", v.Category)
		}
	}
	return nil
}

func (v product) toDomain() domain.Product {
	return domain.Product{
		ProductID:      v.ID,
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

func (v category) toDomain() domain.Category {
	return domain.Category{
		CategoryID:  v.ID,
		Name:        v.Name,
		Description: v.Description,
		Image:       v.Image,
		Gradient:    v.Gradient,
	}
}
