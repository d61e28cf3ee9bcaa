package orders

import (
	"net/http"
	"velvetbite_server/handling"
	"velvetbite_server/lib"
	"velvetbite_server/structs"

	"github.com/MonkyMars/gecho"
)

// CreateOrder handles POST /orders. The cart total is derived from the items;
// any total sent by the client is ignored.
func (orm *OrderRoutesManager) CreateOrder(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.OrderRequest](r)
	if err != nil {
		orm.logger.Warn("Failed to extract order body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
		return
	}

	order, err := orm.orderService.CreateOrder(r.Context(), body)
	if err != nil {
		handling.RespondDomainError(err, "Failed to create order", orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Order placed"),
		gecho.WithData(map[string]any{
			"order": order,
		}),
		gecho.Send(),
	)
}
