package order

// Order is the persisted order header. Lines are attached on reads and on a
// successful checkout; the header row itself never embeds them.
type Order struct {
	ID          int     `json:"orderId"`
	CustomerID  int     `json:"customerId"`
	TotalAmount float64 `json:"totalAmount"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
	Lines       []Line  `json:"lines,omitempty"`
}

// Line is one persisted order line. ProductID is always the opaque persisted
// product identifier, never a derived display id.
type Line struct {
	OrderID         int     `json:"orderId"`
	ProductID       string  `json:"productId"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase float64 `json:"priceAtPurchase"`
}

const (
	StatusPending   = "pending"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}
