package orders

import (
	"net/http"
	"velvetbite_server/handling"
	"velvetbite_server/lib"
	"velvetbite_server/structs"

	"github.com/MonkyMars/gecho"
)

// UpdateOrder handles PUT /orders/{id}, replacing the full item list. The
// total is recomputed from the new items.
func (orm *OrderRoutesManager) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid order id"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.UpdateOrderRequest](r)
	if err != nil {
		orm.logger.Warn("Failed to extract order update body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
		return
	}

	order, err := orm.orderService.UpdateOrder(r.Context(), id, body)
	if err != nil {
		handling.RespondDomainError(err, "Failed to update order", orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Order updated"),
		gecho.WithData(map[string]any{
			"order": order,
		}),
		gecho.Send(),
	)
}

// DeleteOrder handles DELETE /orders/{id}.
func (orm *OrderRoutesManager) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid order id"), gecho.Send())
		return
	}

	order, err := orm.orderService.DeleteOrder(r.Context(), id)
	if err != nil {
		handling.RespondDomainError(err, "Failed to delete order", orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Order deleted"),
		gecho.WithData(map[string]any{
			"order": order,
		}),
		gecho.Send(),
	)
}
