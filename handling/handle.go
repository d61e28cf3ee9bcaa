package handling

import (
	"errors"
	"net/http"
	"velvetbite_server/lib"

	"github.com/MonkyMars/gecho"
)

func HandleError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) error {
	logger.Error("An error occurred", gecho.Field("error", err), gecho.Field("msg", msg), gecho.WithCallerSkip(3))

	return gecho.InternalServerError(w, gecho.Send())
}

// RespondDomainError maps a service error onto the response envelope.
// Invariant violations become 400, missing records 404, conflicts 409;
// everything else is logged and returned as 500.
func RespondDomainError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) error {
	switch {
	case lib.IsInvariant(err):
		return gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
	case lib.IsNotFound(err):
		return gecho.NotFound(w, gecho.WithMessage(err.Error()), gecho.Send())
	case errors.Is(err, lib.ErrConflict):
		return gecho.Conflict(w, gecho.WithMessage(err.Error()), gecho.Send())
	default:
		return HandleError(err, msg, logger, w)
	}
}
