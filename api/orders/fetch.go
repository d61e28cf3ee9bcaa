package orders

import (
	"errors"
	"net/http"
	"velvetbite_server/handling"
	"velvetbite_server/lib"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// FetchAllOrders handles GET /orders with pagination and sorting
func (orm *OrderRoutesManager) FetchAllOrders(w http.ResponseWriter, r *http.Request) {
	opts, err := handling.ParseOrderListOptions(r)
	if err != nil {
		orm.logger.Warn("Invalid query parameters", gecho.Field("error", err))
		gecho.BadRequest(w,
			gecho.WithMessage("Invalid query parameters"),
			gecho.WithData(err.Error()),
			gecho.Send(),
		)
		return
	}

	result, err := orm.orderService.GetAllOrders(r.Context(), opts)
	if err != nil {
		handling.RespondDomainError(err, "Failed to fetch orders", orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"orders":     result.Orders,
			"pagination": result.Pagination,
		}),
		gecho.Send(),
	)
}

// FetchOrderByID handles GET /orders/{id}
func (orm *OrderRoutesManager) FetchOrderByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid order id"), gecho.Send())
		return
	}

	order, err := orm.orderService.GetOrderByID(r.Context(), id)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("Order not found"), gecho.Send())
			return
		}
		handling.RespondDomainError(err, "Failed to fetch order", orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"order": order,
		}),
		gecho.Send(),
	)
}

// FetchOrderByNumber handles GET /orders/number/{orderNumber} using the
// customer-facing order number.
func (orm *OrderRoutesManager) FetchOrderByNumber(w http.ResponseWriter, r *http.Request) {
	orderNumber := chi.URLParam(r, "orderNumber")
	if orderNumber == "" {
		gecho.BadRequest(w, gecho.WithMessage("Order number is required"), gecho.Send())
		return
	}

	order, err := orm.orderService.GetOrderByNumber(r.Context(), orderNumber)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("Order not found"), gecho.Send())
			return
		}
		handling.RespondDomainError(err, "Failed to fetch order by number", orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"order": order,
		}),
		gecho.Send(),
	)
}

func parseIDParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, err
	}
	if id == uuid.Nil {
		return uuid.Nil, errors.New("id must not be the zero uuid")
	}
	return id, nil
}
