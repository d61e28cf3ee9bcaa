package services

import (
	"context"
	"database/sql/driver"
	"strings"
	"testing"
	"time"
	"velvetbite_server/structs"
	"velvetbite_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedOrder() *tables.Order {
	order := &tables.Order{
		ID:      uuid.New(),
		OrderID: "ORD-1756400000000-A1B2C3D4E",
		Items: []tables.OrderItem{
			{ID: uuid.New(), Image: "/uploads/Products/a.jpg", Title: "Midnight Box", Quantity: 2, Size: "Small", Price: decimal.RequireFromString("24.99")},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	order.CalculateTotal()
	return order
}

func TestDeleteOrderReturnsDeletedDocument(t *testing.T) {
	order := storedOrder()
	db, queries := newStubDB(func(string) ([]string, [][]driver.Value) {
		return orderRow(order)
	})
	svc := NewOrderService(gecho.NewDefaultLogger(), &structs.Config{}, db, nil)

	deleted, err := svc.DeleteOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, order.OrderID, deleted.OrderID)
	require.Len(t, deleted.Items, 1)
	assert.Equal(t, "Midnight Box", deleted.Items[0].Title)
	assert.True(t, deleted.TotalCartPrice.Equal(order.TotalCartPrice))

	require.Len(t, *queries, 2)
	assert.Contains(t, (*queries)[0], "SELECT")
	assert.Contains(t, (*queries)[1], "DELETE FROM")
}

func TestGetAllOrdersComputesPageCount(t *testing.T) {
	order := storedOrder()
	db, _ := newStubDB(func(query string) ([]string, [][]driver.Value) {
		if strings.Contains(query, "count(*)") {
			return []string{"count"}, [][]driver.Value{{int64(25)}}
		}
		return orderRow(order)
	})
	svc := NewOrderService(gecho.NewDefaultLogger(), &structs.Config{}, db, nil)

	result, err := svc.GetAllOrders(context.Background(), &OrderListOptions{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 25, result.Pagination.Total)
	assert.Equal(t, 3, result.Pagination.TotalPages)
}
