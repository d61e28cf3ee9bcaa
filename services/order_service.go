package services

import (
	"context"
	"fmt"
	"time"
	"velvetbite_server/database"
	"velvetbite_server/lib"
	"velvetbite_server/structs"
	"velvetbite_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderService owns the order aggregate. Every mutation recomputes the cart
// total before persisting, so a stored total is always the exact sum of its
// items.
type OrderService struct {
	logger       *gecho.Logger
	cfg          *structs.Config
	db           *database.DB
	emailService *EmailService
}

func NewOrderService(logger *gecho.Logger, cfg *structs.Config, db *database.DB, emailService *EmailService) *OrderService {
	return &OrderService{
		logger:       logger,
		cfg:          cfg,
		db:           db,
		emailService: emailService,
	}
}

// OrderListOptions contains pagination and sorting options for order queries
type OrderListOptions struct {
	Page          int    `json:"page"`
	PageSize      int    `json:"page_size"`
	SortBy        string `json:"sort_by"`
	SortDirection string `json:"sort_direction"` // ASC or DESC
}

// OrderListResult wraps the order list response with metadata
type OrderListResult struct {
	Orders     []tables.Order      `json:"orders"`
	Pagination database.Pagination `json:"pagination"`
}

// CreateOrder builds a new order from the request, derives the total and
// persists it. The admin notification email is sent asynchronously and never
// blocks or fails the order.
func (os *OrderService) CreateOrder(ctx context.Context, req *structs.OrderRequest) (*tables.Order, error) {
	startTime := time.Now()

	order := &tables.Order{
		ID:      uuid.New(),
		OrderID: lib.GenerateOrderNumber(),
		Items:   tables.NewOrderItems(req.Items),
	}
	order.CalculateTotal()
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	if err := order.Validate(); err != nil {
		return nil, err
	}

	order, err := database.Query[tables.Order](os.db).Insert(ctx, order)
	if err != nil {
		os.logger.Error("Failed to create order",
			gecho.Field("error", err),
			gecho.Field("order_id", order.OrderID),
			gecho.Field("duration", time.Since(startTime)),
		)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	go os.emailService.SendOrderNotification(order)

	os.logger.Info("Order created successfully",
		gecho.Field("order_id", order.OrderID),
		gecho.Field("item_count", len(order.Items)),
		gecho.Field("total", order.TotalCartPrice),
		gecho.Field("duration", time.Since(startTime)),
	)
	return order, nil
}

// GetAllOrders retrieves orders with pagination, newest first by default.
func (os *OrderService) GetAllOrders(ctx context.Context, opts *OrderListOptions) (*OrderListResult, error) {
	if opts == nil {
		opts = &OrderListOptions{}
	}
	os.applyDefaultOptions(opts)

	if err := os.validateOptions(opts); err != nil {
		os.logger.Error("Invalid order list options", gecho.Field("error", err), gecho.Field("options", opts))
		return nil, err
	}

	direction := database.DESC
	if opts.SortDirection == "ASC" {
		direction = database.ASC
	}

	query := database.Query[tables.Order](os.db).
		OrderBy(opts.SortBy, direction).
		OrderBy("id", database.ASC)

	result, err := database.Paginate(query, ctx, opts.Page, opts.PageSize)
	if err != nil {
		os.logger.Error("Failed to fetch orders", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return &OrderListResult{
		Orders:     result.Data,
		Pagination: result.Pagination,
	}, nil
}

// GetOrderByID retrieves a single order by its internal id.
func (os *OrderService) GetOrderByID(ctx context.Context, id uuid.UUID) (*tables.Order, error) {
	order, err := database.FindByID[tables.Order](os.db, ctx, id)
	if err != nil {
		if lib.IsNotFound(err) {
			return nil, err
		}
		os.logger.Error("Failed to fetch order", gecho.Field("id", id), gecho.Field("error", err))
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	return order, nil
}

// GetOrderByNumber retrieves a single order by its customer-facing number.
func (os *OrderService) GetOrderByNumber(ctx context.Context, orderNumber string) (*tables.Order, error) {
	order, err := database.Query[tables.Order](os.db).
		Where("order_id", orderNumber).
		First(ctx)
	if err != nil {
		if lib.IsNotFound(err) {
			return nil, err
		}
		os.logger.Error("Failed to fetch order by number", gecho.Field("order_id", orderNumber), gecho.Field("error", err))
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	return order, nil
}

// UpdateOrder replaces the full item list of an existing order.
func (os *OrderService) UpdateOrder(ctx context.Context, id uuid.UUID, req *structs.UpdateOrderRequest) (*tables.Order, error) {
	order, err := os.loadForMutation(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := order.ReplaceItems(req.Items); err != nil {
		return nil, err
	}

	return os.persist(ctx, order)
}

// DeleteOrder removes an order and returns the document as it was at the
// moment of deletion.
func (os *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) (*tables.Order, error) {
	order, err := os.loadForMutation(ctx, id)
	if err != nil {
		return nil, err
	}

	affected, err := database.DeleteByID[tables.Order](os.db, ctx, id)
	if err != nil {
		os.logger.Error("Failed to delete order", gecho.Field("id", id), gecho.Field("error", err))
		return nil, fmt.Errorf("failed to delete order: %w", err)
	}
	if affected == 0 {
		return nil, lib.ErrNotFound
	}

	os.logger.Info("Order deleted", gecho.Field("id", id), gecho.Field("order_id", order.OrderID))
	return order, nil
}

// AddItem appends a line to an existing order.
func (os *OrderService) AddItem(ctx context.Context, orderID uuid.UUID, req *structs.OrderItemRequest) (*tables.Order, error) {
	order, err := os.loadForMutation(ctx, orderID)
	if err != nil {
		return nil, err
	}

	item := order.AddItem(*req)

	persisted, err := os.persist(ctx, order)
	if err != nil {
		return nil, err
	}

	os.logger.Info("Order item added",
		gecho.Field("order_id", order.OrderID),
		gecho.Field("item_id", item.ID),
	)
	return persisted, nil
}

// RemoveItem drops a line from an existing order. Removing the last item is
// rejected; the order stays untouched.
func (os *OrderService) RemoveItem(ctx context.Context, orderID, itemID uuid.UUID) (*tables.Order, error) {
	order, err := os.loadForMutation(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.RemoveItem(itemID); err != nil {
		return nil, err
	}

	persisted, err := os.persist(ctx, order)
	if err != nil {
		return nil, err
	}

	os.logger.Info("Order item removed",
		gecho.Field("order_id", order.OrderID),
		gecho.Field("item_id", itemID),
	)
	return persisted, nil
}

// UpdateItem patches one line of an existing order.
func (os *OrderService) UpdateItem(ctx context.Context, orderID, itemID uuid.UUID, req *structs.UpdateOrderItemRequest) (*tables.Order, error) {
	order, err := os.loadForMutation(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if _, err := order.UpdateItem(itemID, *req); err != nil {
		return nil, err
	}

	return os.persist(ctx, order)
}

// OrderStats aggregates order figures for the admin dashboard.
type OrderStats struct {
	TotalOrders       int             `json:"total_orders"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	AverageTotal      decimal.Decimal `json:"average_total"`
	TotalItemsOrdered int             `json:"total_items_ordered"`
	RecentOrders      []tables.Order  `json:"recent_orders"`
	Monthly           []MonthlyOrders `json:"monthly"`
}

// MonthlyOrders is one month of the trailing order/revenue rollup.
type MonthlyOrders struct {
	Month   string          `bun:"month" json:"month"` // YYYY-MM
	Orders  int             `bun:"orders" json:"orders"`
	Revenue decimal.Decimal `bun:"revenue" json:"revenue"`
}

type orderStatsRow struct {
	TotalOrders  int             `bun:"total_orders"`
	TotalRevenue decimal.Decimal `bun:"total_revenue"`
	AverageTotal decimal.Decimal `bun:"average_total"`
	TotalItems   int             `bun:"total_items"`
}

// GetOrderStats computes order counts, revenue and item volume in one SQL
// rollup over the jsonb item arrays, plus the five most recent orders and a
// six month order/revenue breakdown.
func (os *OrderService) GetOrderStats(ctx context.Context) (*OrderStats, error) {
	row, err := database.RawQueryOne[orderStatsRow](os.db, ctx, `
		SELECT
			COUNT(*) AS total_orders,
			COALESCE(SUM(total_cart_price), 0) AS total_revenue,
			COALESCE(AVG(total_cart_price), 0) AS average_total,
			COALESCE(SUM((SELECT SUM((i->>'quantity')::int) FROM jsonb_array_elements(items) AS i)), 0) AS total_items
		FROM orders`)
	if err != nil {
		os.logger.Error("Failed to compute order stats", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to compute order stats: %w", err)
	}

	recent, err := database.Query[tables.Order](os.db).
		OrderBy("created_at", database.DESC).
		Limit(5).
		All(ctx)
	if err != nil {
		os.logger.Error("Failed to fetch recent orders", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to fetch recent orders: %w", err)
	}

	monthly, err := database.RawQuery[MonthlyOrders](os.db, ctx, `
		SELECT
			to_char(date_trunc('month', created_at), 'YYYY-MM') AS month,
			COUNT(*) AS orders,
			COALESCE(SUM(total_cart_price), 0) AS revenue
		FROM orders
		WHERE created_at >= date_trunc('month', now()) - interval '5 months'
		GROUP BY 1
		ORDER BY 1`)
	if err != nil {
		os.logger.Error("Failed to compute monthly order rollup", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to compute monthly order rollup: %w", err)
	}

	return &OrderStats{
		TotalOrders:       row.TotalOrders,
		TotalRevenue:      row.TotalRevenue,
		AverageTotal:      row.AverageTotal,
		TotalItemsOrdered: row.TotalItems,
		RecentOrders:      recent,
		Monthly:           monthly,
	}, nil
}

func (os *OrderService) loadForMutation(ctx context.Context, orderID uuid.UUID) (*tables.Order, error) {
	order, err := database.FindByID[tables.Order](os.db, ctx, orderID)
	if err != nil {
		if lib.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	return order, nil
}

func (os *OrderService) persist(ctx context.Context, order *tables.Order) (*tables.Order, error) {
	order.UpdatedAt = time.Now()

	affected, err := database.Query[tables.Order](os.db).
		Where("id", order.ID).
		Update(ctx, order)
	if err != nil {
		os.logger.Error("Failed to persist order", gecho.Field("id", order.ID), gecho.Field("error", err))
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}
	if affected == 0 {
		return nil, lib.ErrNotFound
	}

	return order, nil
}

func (os *OrderService) applyDefaultOptions(opts *OrderListOptions) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PageSize < 1 {
		opts.PageSize = 20
	}
	if opts.PageSize > 100 {
		opts.PageSize = 100
	}
	if opts.SortBy == "" {
		opts.SortBy = "created_at"
	}
	if opts.SortDirection == "" {
		opts.SortDirection = "DESC"
	}
}

func (os *OrderService) validateOptions(opts *OrderListOptions) error {
	validSortFields := map[string]bool{
		"created_at":       true,
		"updated_at":       true,
		"total_cart_price": true,
		"order_id":         true,
	}
	if !validSortFields[opts.SortBy] {
		return lib.NewInvariantError("invalid sort field: %s", opts.SortBy)
	}

	if opts.SortDirection != "ASC" && opts.SortDirection != "DESC" {
		return lib.NewInvariantError("invalid sort direction: %s (must be ASC or DESC)", opts.SortDirection)
	}

	return nil
}
