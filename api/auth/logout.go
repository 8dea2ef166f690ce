package auth

import (
	"buysell_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// HandleLogout revokes the current access token and clears its cookie. A
// missing or unreadable token still ends in a cleared cookie.
func (arm *AuthRoutesManager) HandleLogout(w http.ResponseWriter, r *http.Request) {
	claims, err := lib.ExtractClaims(r, arm.tokens.GetAccessTokenSecret())
	if err != nil {
		arm.logger.Debug("No valid access token on logout", gecho.Field("error", err))
		lib.ClearCookie(lib.AccessCookieName, w)
		gecho.Success(w, gecho.WithMessage("Logged out"), gecho.Send())
		return
	}

	if err := arm.tokens.RevokeToken(r.Context(), claims); err != nil {
		gecho.InternalServerError(w, gecho.WithMessage("Failed to logout"), gecho.Send())
		return
	}

	lib.ClearCookie(lib.AccessCookieName, w)

	gecho.Success(w,
		gecho.WithMessage("Logged out successfully"),
		gecho.Send(),
	)
}
