package port

import (
	"context"

	"github.com/niksmo/storefront/internal/core/domain"
)

type ProductsReader interface {
	ListProducts(context.Context, domain.ProductFilter, domain.Pagination) domain.ProductsPage
	FeaturedProducts(ctx context.Context, limit int) []domain.Product
	ProductByID(ctx context.Context, id string) (domain.Product, error)
	RelatedProducts(ctx context.Context, productID, categoryID string, limit int) []domain.Product
}

type CategoriesReader interface {
	Categories(context.Context) []domain.Category
	CategoryByID(ctx context.Context, id string) (domain.Category, error)
}

type StatsReader interface {
	CategoryStats(context.Context) []domain.CategoryStats
	Brands(context.Context) []string
	Tags(context.Context) []string
	PriceRange(context.Context) domain.PriceRange
}

type SuggestionsReader interface {
	SearchSuggestions(ctx context.Context, query string, limit int) []domain.Suggestion
}

type ClientEventsProducer interface {
	ProduceEvent(context.Context, domain.ClientEvent) error
	Close()
}

type CatalogLoader interface {
	LoadCatalog(context.Context) (domain.Catalog, error)
}
