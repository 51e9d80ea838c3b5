package catalog

import "strconv"

// PlaceholderImage is substituted for products without an uploaded picture.
const PlaceholderImage = "/images/placeholder-product.png"

// Product is a row from the products table. ID is the opaque persisted
// identifier (a uuid string) and is the only identifier ever written back to
// the store.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	ImageURL      *string  `json:"imageUrl,omitempty"`
	StockQuantity int      `json:"stockQuantity"`
	Category      *string  `json:"category,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
}

// ProductView is the display shape handed to clients. DisplayID is a derived
// numeric id for UI payloads only; it is never a lookup key and never
// persisted.
type ProductView struct {
	DisplayID     int      `json:"displayId"`
	ProductID     string   `json:"productId"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	Image         string   `json:"image"`
	StockQuantity int      `json:"stockQuantity"`
	InStock       bool     `json:"inStock"`
	Category      *string  `json:"category,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
}

// DisplayID reads the first 8 characters of the persisted id as a base-16
// integer. Ids that are too short or not hex yield 0 rather than an error.
func DisplayID(id string) int {
	s := id
	if len(s) > 8 {
		s = s[:8]
	}
	v, err := strconv.ParseInt(s, 16, 64)
	if err != nil || v < 0 {
		return 0
	}
	return int(v)
}

// AdaptView maps a catalog row into its display shape. Pure; defensive
// defaults for every optional field.
func AdaptView(p Product) ProductView {
	img := PlaceholderImage
	if p.ImageURL != nil && *p.ImageURL != "" {
		img = *p.ImageURL
	}

	return ProductView{
		DisplayID:     DisplayID(p.ID),
		ProductID:     p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Image:         img,
		StockQuantity: p.StockQuantity,
		InStock:       p.StockQuantity > 0,
		Category:      p.Category,
		Rating:        p.Rating,
	}
}

func adaptAll(products []Product) []ProductView {
	out := make([]ProductView, 0, len(products))
	for _, p := range products {
		out = append(out, AdaptView(p))
	}
	return out
}
