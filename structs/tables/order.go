package tables

import (
	"time"
	"velvetbite_server/lib"
	"velvetbite_server/structs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is the order aggregate. Items are owned sub-documents stored as a
// JSONB array; TotalCartPrice is derived from them and never accepted from a
// caller.
type Order struct {
	tableName      struct{}        `bun:"table:orders,alias:o"`
	ID             uuid.UUID       `bun:"id,pk,type:uuid" json:"id"`
	OrderID        string          `bun:"order_id,notnull,unique" json:"order_id"`
	Items          []OrderItem     `bun:"items,notnull,type:jsonb" json:"items"`
	TotalCartPrice decimal.Decimal `bun:"total_cart_price,notnull" json:"total_cart_price"`
	CreatedAt      time.Time       `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt      time.Time       `bun:"updated_at,notnull,default:now()" json:"updated_at"`
}

// OrderItem is one cart line owned by exactly one order.
type OrderItem struct {
	ID       uuid.UUID       `json:"id"`
	Image    string          `json:"image"`
	Title    string          `json:"title"`
	Quantity int             `json:"quantity"`
	Size     string          `json:"size"`
	Price    decimal.Decimal `json:"price"`
}

// NewOrderItems converts request lines into sub-documents with fresh ids.
func NewOrderItems(items []structs.OrderItemRequest) []OrderItem {
	out := make([]OrderItem, 0, len(items))
	for _, item := range items {
		out = append(out, OrderItem{
			ID:       uuid.New(),
			Image:    item.Image,
			Title:    item.Title,
			Quantity: item.Quantity,
			Size:     item.Size,
			Price:    *item.Price,
		})
	}
	return out
}

// CalculateTotal recomputes TotalCartPrice as the exact sum of
// price x quantity over the current items. Every mutation path calls this
// explicitly before the order is persisted.
func (o *Order) CalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	o.TotalCartPrice = total
	return total
}

// Validate enforces the order invariants before any persist.
func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return lib.ErrEmptyOrder
	}
	for _, item := range o.Items {
		if item.Quantity < 1 {
			return lib.NewInvariantError("item quantity must be at least 1")
		}
		if item.Price.IsNegative() {
			return lib.NewInvariantError("item price must not be negative")
		}
	}
	return nil
}

// ItemByID returns the item with the given id, or nil.
func (o *Order) ItemByID(itemID uuid.UUID) *OrderItem {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return &o.Items[i]
		}
	}
	return nil
}

// AddItem appends a line with a fresh id and recomputes the total.
func (o *Order) AddItem(item structs.OrderItemRequest) *OrderItem {
	line := OrderItem{
		ID:       uuid.New(),
		Image:    item.Image,
		Title:    item.Title,
		Quantity: item.Quantity,
		Size:     item.Size,
		Price:    *item.Price,
	}
	o.Items = append(o.Items, line)
	o.CalculateTotal()
	return &line
}

// RemoveItem drops a line by id. A removal that would leave the order empty
// is rejected before anything is mutated, so the order is unchanged on error.
func (o *Order) RemoveItem(itemID uuid.UUID) error {
	idx := -1
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return lib.ErrOrderItemNotFound
	}
	if len(o.Items) == 1 {
		return lib.ErrEmptyOrder
	}

	o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
	o.CalculateTotal()
	return nil
}

// UpdateItem patches the provided fields of a line in place and recomputes
// the total. A rejected update leaves the item untouched.
func (o *Order) UpdateItem(itemID uuid.UUID, update structs.UpdateOrderItemRequest) (*OrderItem, error) {
	item := o.ItemByID(itemID)
	if item == nil {
		return nil, lib.ErrOrderItemNotFound
	}

	if update.Quantity != nil && *update.Quantity < 1 {
		return nil, lib.NewInvariantError("item quantity must be at least 1")
	}
	if update.Price != nil && update.Price.IsNegative() {
		return nil, lib.NewInvariantError("item price must not be negative")
	}

	if update.Image != nil {
		item.Image = *update.Image
	}
	if update.Title != nil {
		item.Title = *update.Title
	}
	if update.Quantity != nil {
		item.Quantity = *update.Quantity
	}
	if update.Size != nil {
		item.Size = *update.Size
	}
	if update.Price != nil {
		item.Price = *update.Price
	}

	o.CalculateTotal()
	return item, nil
}

// ReplaceItems swaps the full item list (fresh ids) and recomputes the total.
func (o *Order) ReplaceItems(items []structs.OrderItemRequest) error {
	if len(items) == 0 {
		return lib.ErrEmptyOrder
	}
	o.Items = NewOrderItems(items)
	o.CalculateTotal()
	return nil
}
