package orders

import (
	"net/http"
	"velvetbite_server/handling"
	"velvetbite_server/lib"
	"velvetbite_server/structs"

	"github.com/MonkyMars/gecho"
)

// AddItem handles POST /orders/{id}/items.
func (orm *OrderRoutesManager) AddItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid order id"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.OrderItemRequest](r)
	if err != nil {
		orm.logger.Warn("Failed to extract order item body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
		return
	}

	order, err := orm.orderService.AddItem(r.Context(), id, body)
	if err != nil {
		handling.RespondDomainError(err, "Failed to add order item", orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Order item added"),
		gecho.WithData(map[string]any{
			"order": order,
		}),
		gecho.Send(),
	)
}

// UpdateItem handles PUT /orders/{id}/items/{itemId}.
func (orm *OrderRoutesManager) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid order id"), gecho.Send())
		return
	}
	itemID, err := parseIDParam(r, "itemId")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid item id"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.UpdateOrderItemRequest](r)
	if err != nil {
		orm.logger.Warn("Failed to extract order item body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
		return
	}

	order, err := orm.orderService.UpdateItem(r.Context(), id, itemID, body)
	if err != nil {
		handling.RespondDomainError(err, "Failed to update order item", orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Order item updated"),
		gecho.WithData(map[string]any{
			"order": order,
		}),
		gecho.Send(),
	)
}

// RemoveItem handles DELETE /orders/{id}/items/{itemId}. Removing the last
// item is rejected; an order never exists without items.
func (orm *OrderRoutesManager) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid order id"), gecho.Send())
		return
	}
	itemID, err := parseIDParam(r, "itemId")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid item id"), gecho.Send())
		return
	}

	order, err := orm.orderService.RemoveItem(r.Context(), id, itemID)
	if err != nil {
		handling.RespondDomainError(err, "Failed to remove order item", orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Order item removed"),
		gecho.WithData(map[string]any{
			"order": order,
		}),
		gecho.Send(),
	)
}
