package handling

import (
	"buysell_server/lib"
	"errors"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func HandleError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) error {
	logger.Error("An error occurred", gecho.Field("error", err), gecho.Field("msg", msg), gecho.WithCallerSkip(3))

	return gecho.InternalServerError(w, gecho.Send())
}

// RespondError writes the response matching err's sentinel. Anything not
// recognised is logged and answered with a 500.
func RespondError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) error {
	var ve *lib.ValidationError
	switch {
	case errors.As(err, &ve):
		return gecho.BadRequest(w, gecho.WithMessage(msg), gecho.WithData(ve), gecho.Send())
	case errors.Is(err, lib.ErrNotFound):
		return gecho.NotFound(w, gecho.WithMessage(err.Error()), gecho.Send())
	case errors.Is(err, lib.ErrConflict):
		return gecho.Conflict(w, gecho.WithMessage(msg), gecho.Send())
	case errors.Is(err, lib.ErrForbidden):
		return gecho.Forbidden(w, gecho.WithMessage("Access denied"), gecho.Send())
	case errors.Is(err, lib.ErrUnauthorized),
		errors.Is(err, lib.ErrInvalidToken),
		errors.Is(err, lib.ErrExpiredToken):
		return gecho.Unauthorized(w, gecho.WithMessage("Invalid or missing access token"), gecho.Send())
	case errors.Is(err, lib.ErrInvalidCredentials):
		return gecho.Unauthorized(w, gecho.WithMessage("Invalid credentials"), gecho.Send())
	case errors.Is(err, lib.ErrFileTooLarge), errors.Is(err, lib.ErrTooManyFiles):
		return gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
	default:
		return HandleError(err, msg, logger, w)
	}
}
