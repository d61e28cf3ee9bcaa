package orders

import (
	"net/http"
	"velvetbite_server/handling"

	"github.com/MonkyMars/gecho"
)

// GetOrderStats handles GET /orders/stats for the admin dashboard.
func (orm *OrderRoutesManager) GetOrderStats(w http.ResponseWriter, r *http.Request) {
	stats, err := orm.orderService.GetOrderStats(r.Context())
	if err != nil {
		handling.RespondDomainError(err, "Failed to compute order stats", orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(stats),
		gecho.Send(),
	)
}
