package auth

import (
	"buysell_server/api/middleware"
	"buysell_server/handling"
	"buysell_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		handling.RespondError(lib.ErrUnauthorized, "", arm.logger, w)
		return
	}

	user, err := arm.userService.GetUserByPrincipal(r.Context(), claims.Email)
	if err != nil {
		handling.RespondError(err, "Failed to load user", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(user),
		gecho.Send(),
	)
}
