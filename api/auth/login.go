package auth

import (
	"net/http"
	"velvetbite_server/lib"
	"velvetbite_server/structs"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleLogin(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.AuthRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract login body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check your login information and try again"), gecho.Send())
		return
	}

	token, claims, err := arm.authService.Login(body)
	if err != nil {
		// Every failure mode looks the same from the outside.
		arm.logger.Warn("Login failed", gecho.Field("email", body.Email))
		gecho.Unauthorized(w, gecho.WithMessage("Invalid credentials"), gecho.Send())
		return
	}

	arm.logger.Info("Admin logged in", gecho.Field("email", claims.Email))
	gecho.Success(w,
		gecho.WithMessage("Login successful"),
		gecho.WithData(map[string]interface{}{
			"token":      token,
			"email":      claims.Email,
			"role":       claims.Role,
			"expires_at": claims.Exp,
		}),
		gecho.Send(),
	)
}
