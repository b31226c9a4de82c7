package httphandler

type (
	Product struct {
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

	Category struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		Description  string `json:"description"`
		Image        string `json:"image"`
		Gradient     string `json:"gradient"`
		ProductCount int    `json:"productCount"`
	}

	Filter struct {
		Category  string   `json:"category,omitempty"`
		Search    string   `json:"search,omitempty"`
		SortBy    string   `json:"sortBy,omitempty"`
		MinPrice  float64  `json:"minPrice,omitempty"`
		MaxPrice  float64  `json:"maxPrice,omitempty"`
		MinRating float64  `json:"minRating,omitempty"`
		Brand     string   `json:"brand,omitempty"`
		InStock   *bool    `json:"inStock,omitempty"`
		Tags      []string `json:"tags,omitempty"`
	}

	Pagination struct {
		CurrentPage   int  `json:"currentPage"`
		TotalPages    int  `json:"totalPages"`
		TotalProducts int  `json:"totalProducts"`
		PageSize      int  `json:"pageSize"`
		HasNextPage   bool `json:"hasNextPage"`
		HasPrevPage   bool `json:"hasPrevPage"`
	}

	ProductsPage struct {
		Products   []Product  `json:"products"`
		Pagination Pagination `json:"pagination"`
		Filters    Filter     `json:"filters"`
	}

	ProductDetail struct {
		Product         Product   `json:"product"`
		RelatedProducts []Product `json:"relatedProducts"`
	}

	CategoryDetail struct {
		Category   Category   `json:"category"`
		Products   []Product  `json:"products"`
		Pagination Pagination `json:"pagination"`
		Filters    Filter     `json:"filters"`
	}

	Suggestion struct {
		Type     string `json:"type"`
		Text     string `json:"text"`
		Category string `json:"category,omitempty"`
		ID       string `json:"id,omitempty"`
		Count    int    `json:"count,omitempty"`
	}

	Suggestions struct {
		Suggestions []Suggestion `json:"suggestions"`
	}

	CategoryStats struct {
		Category  string  `json:"category"`
		Name      string  `json:"name"`
		Count     int     `json:"count"`
		AvgPrice  float64 `json:"avgPrice"`
		AvgRating float64 `json:"avgRating"`
	}

	PriceRange struct {
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	}

	Stats struct {
		CategoryStats []CategoryStats `json:"categoryStats"`
		Brands        []string        `json:"brands"`
		Tags          []string        `json:"tags"`
		PriceRange    PriceRange      `json:"priceRange"`
		TotalProducts int             `json:"totalProducts"`
	}

	Health struct {
		Status  string `json:"status"`
		Service string `json:"service"`
	}

	Error struct {
		Error string `json:"error"`
	}
)
