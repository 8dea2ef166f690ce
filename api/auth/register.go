package auth

import (
	"buysell_server/handling"
	"buysell_server/lib"
	"buysell_server/structs"
	"buysell_server/structs/tables"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleRegister(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.RegisterRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract and validate request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check your registration information"), gecho.WithData(err), gecho.Send())
		return
	}

	user := &tables.User{
		Email:       body.Email,
		Name:        body.Name,
		PhoneNumber: body.PhoneNumber,
	}

	created, err := arm.userService.CreateUser(r.Context(), user, body.Password)
	if err != nil {
		handling.HandleError(err, "Failed to register user", arm.logger, w)
		return
	}
	if !created {
		gecho.Conflict(w, gecho.WithMessage("This email is already registered"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("User registered"),
		gecho.WithData(user),
		gecho.Send(),
	)
}
