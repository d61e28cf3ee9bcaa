package services

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"io"
	"velvetbite_server/database"
	"velvetbite_server/structs/tables"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

// stubConn and friends implement just enough of the database/sql driver
// interfaces to replay canned rows. bun inlines all arguments before handing
// the statement to the driver, so responders see the complete SQL text.
type stubConn struct {
	queries *[]string
	respond func(query string) ([]string, [][]driver.Value)
}

func (c *stubConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepared statements are not supported")
}
func (c *stubConn) Close() error { return nil }
func (c *stubConn) Begin() (driver.Tx, error) {
	return nil, errors.New("transactions are not supported")
}

func (c *stubConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	*c.queries = append(*c.queries, query)
	cols, rows := c.respond(query)
	return &stubRows{cols: cols, rows: rows}, nil
}

func (c *stubConn) ExecContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Result, error) {
	*c.queries = append(*c.queries, query)
	return driver.RowsAffected(1), nil
}

var (
	_ driver.QueryerContext = (*stubConn)(nil)
	_ driver.ExecerContext  = (*stubConn)(nil)
)

type stubRows struct {
	cols []string
	rows [][]driver.Value
	idx  int
}

func (r *stubRows) Columns() []string { return r.cols }
func (r *stubRows) Close() error      { return nil }
func (r *stubRows) Next(dest []driver.Value) error {
	if r.idx >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.idx])
	r.idx++
	return nil
}

type stubConnector struct{ conn *stubConn }

func (c stubConnector) Connect(context.Context) (driver.Conn, error) { return c.conn, nil }
func (c stubConnector) Driver() driver.Driver                        { return stubDriver{} }

type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("open via connector")
}

// newStubDB wires a bun handle onto the stub driver. The returned slice
// records every statement the services issue, in order.
func newStubDB(respond func(query string) ([]string, [][]driver.Value)) (*database.DB, *[]string) {
	queries := &[]string{}
	conn := &stubConn{queries: queries, respond: respond}
	sqldb := sql.OpenDB(stubConnector{conn: conn})
	return &database.DB{DB: bun.NewDB(sqldb, pgdialect.New())}, queries
}

func productRow(p *tables.Product) ([]string, [][]driver.Value) {
	variants, _ := json.Marshal(p.SizeVariants)
	images, _ := json.Marshal(p.Images)
	cols := []string{"id", "title", "description", "category", "size_variants", "images", "created_at", "updated_at"}
	row := []driver.Value{
		p.ID.String(), p.Title, p.Description, string(p.Category),
		variants, images, p.CreatedAt, p.UpdatedAt,
	}
	return cols, [][]driver.Value{row}
}

func orderRow(o *tables.Order) ([]string, [][]driver.Value) {
	items, _ := json.Marshal(o.Items)
	cols := []string{"id", "order_id", "items", "total_cart_price", "created_at", "updated_at"}
	row := []driver.Value{
		o.ID.String(), o.OrderID, items, o.TotalCartPrice.String(),
		o.CreatedAt, o.UpdatedAt,
	}
	return cols, [][]driver.Value{row}
}
