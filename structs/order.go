package structs

import "github.com/shopspring/decimal"

// OrderItemRequest is one line of a storefront cart.
type OrderItemRequest struct {
	Image    string           `json:"image" validate:"required"`
	Title    string           `json:"title" validate:"required"`
	Quantity int              `json:"quantity" validate:"required,min=1"`
	Size     string           `json:"size" validate:"required"`
	Price    *decimal.Decimal `json:"price" validate:"required"`
}

// OrderRequest captures a new order. The total is never accepted from the
// caller; it is derived from the items on every write.
type OrderRequest struct {
	Items []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderRequest replaces the full item list of an existing order.
type UpdateOrderRequest struct {
	Items []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderItemRequest patches a single item in place.
type UpdateOrderItemRequest struct {
	Image    *string          `json:"image,omitempty"`
	Title    *string          `json:"title,omitempty"`
	Quantity *int             `json:"quantity,omitempty" validate:"omitempty,min=1"`
	Size     *string          `json:"size,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
}
