package tables

import (
	"testing"
	"velvetbite_server/lib"
	"velvetbite_server/structs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder(t *testing.T, lines ...structs.OrderItemRequest) *Order {
	t.Helper()
	if len(lines) == 0 {
		lines = []structs.OrderItemRequest{
			{Image: "/uploads/Products/a.jpg", Title: "Dark Desire Box", Quantity: 2, Size: "Small", Price: price("12.50")},
		}
	}
	o := &Order{
		ID:      uuid.New(),
		OrderID: "ORD-1756400000000-A1B2C3D4E",
		Items:   NewOrderItems(lines),
	}
	o.CalculateTotal()
	return o
}

func TestCalculateTotal(t *testing.T) {
	o := testOrder(t,
		structs.OrderItemRequest{Image: "a", Title: "A", Quantity: 2, Size: "Small", Price: price("12.50")},
		structs.OrderItemRequest{Image: "b", Title: "B", Quantity: 1, Size: "Large", Price: price("0.10")},
	)
	assert.True(t, o.TotalCartPrice.Equal(decimal.RequireFromString("25.10")),
		"expected 25.10, got %s", o.TotalCartPrice)
}

func TestAddItemRecomputesTotal(t *testing.T) {
	o := testOrder(t)
	before := o.TotalCartPrice

	line := o.AddItem(structs.OrderItemRequest{
		Image: "b", Title: "B", Quantity: 3, Size: "Large", Price: price("5.00"),
	})
	assert.NotEqual(t, uuid.Nil, line.ID)
	assert.True(t, o.TotalCartPrice.Equal(before.Add(decimal.RequireFromString("15.00"))))
}

func TestRemoveItem(t *testing.T) {
	o := testOrder(t,
		structs.OrderItemRequest{Image: "a", Title: "A", Quantity: 1, Size: "Small", Price: price("10.00")},
		structs.OrderItemRequest{Image: "b", Title: "B", Quantity: 1, Size: "Large", Price: price("20.00")},
	)

	err := o.RemoveItem(uuid.New())
	assert.ErrorIs(t, err, lib.ErrOrderItemNotFound)
	assert.Len(t, o.Items, 2)

	require.NoError(t, o.RemoveItem(o.Items[0].ID))
	assert.Len(t, o.Items, 1)
	assert.True(t, o.TotalCartPrice.Equal(decimal.RequireFromString("20.00")))
}

func TestRemoveLastItemRejectedBeforeMutation(t *testing.T) {
	o := testOrder(t)
	remaining := o.Items[0].ID
	before := o.TotalCartPrice

	err := o.RemoveItem(remaining)
	assert.ErrorIs(t, err, lib.ErrEmptyOrder)
	require.Len(t, o.Items, 1, "failed removal leaves the order intact")
	assert.Equal(t, remaining, o.Items[0].ID)
	assert.True(t, o.TotalCartPrice.Equal(before))
}

func TestUpdateItem(t *testing.T) {
	o := testOrder(t)
	id := o.Items[0].ID

	qty := 5
	item, err := o.UpdateItem(id, structs.UpdateOrderItemRequest{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)
	assert.True(t, o.TotalCartPrice.Equal(decimal.RequireFromString("62.50")))

	zero := 0
	_, err = o.UpdateItem(id, structs.UpdateOrderItemRequest{Quantity: &zero})
	assert.True(t, lib.IsInvariant(err))

	_, err = o.UpdateItem(uuid.New(), structs.UpdateOrderItemRequest{Quantity: &qty})
	assert.ErrorIs(t, err, lib.ErrOrderItemNotFound)
}

func TestUpdateItemRejectionLeavesLineUntouched(t *testing.T) {
	o := testOrder(t)
	id := o.Items[0].ID
	before := o.Items[0]
	total := o.TotalCartPrice

	// Valid title alongside an invalid quantity: the whole patch must be
	// rejected, not just the offending field.
	title := "Renamed"
	zero := 0
	_, err := o.UpdateItem(id, structs.UpdateOrderItemRequest{Title: &title, Quantity: &zero})
	assert.True(t, lib.IsInvariant(err))

	assert.Equal(t, before, o.Items[0])
	assert.True(t, o.TotalCartPrice.Equal(total))
}

func TestReplaceItems(t *testing.T) {
	o := testOrder(t)

	err := o.ReplaceItems(nil)
	assert.ErrorIs(t, err, lib.ErrEmptyOrder)
	assert.Len(t, o.Items, 1)

	err = o.ReplaceItems([]structs.OrderItemRequest{
		{Image: "c", Title: "C", Quantity: 4, Size: "Large", Price: price("2.25")},
	})
	require.NoError(t, err)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "C", o.Items[0].Title)
	assert.True(t, o.TotalCartPrice.Equal(decimal.RequireFromString("9.00")))
}

func TestOrderValidate(t *testing.T) {
	o := testOrder(t)
	assert.NoError(t, o.Validate())

	o.Items = nil
	assert.ErrorIs(t, o.Validate(), lib.ErrEmptyOrder)

	o = testOrder(t)
	o.Items[0].Quantity = 0
	assert.True(t, lib.IsInvariant(o.Validate()))
}
