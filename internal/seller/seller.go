package seller

// Product is a catalog row as seen by the seller who owns it.
type Product struct {
	ID            string  `json:"id"`
	SellerID      int     `json:"sellerId"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	ImageURL      *string `json:"imageUrl,omitempty"`
	StockQuantity int     `json:"stockQuantity"`
	Category      *string `json:"category,omitempty"`
	CreatedAt     string  `json:"createdAt,omitempty"`
	UpdatedAt     string  `json:"updatedAt,omitempty"`
}

// CreateInput is the payload for listing a new product.
type CreateInput struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	ImageURL      *string `json:"imageUrl,omitempty"`
	StockQuantity int     `json:"stockQuantity"`
	Category      *string `json:"category,omitempty"`
}
