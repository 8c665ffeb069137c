package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dsrcomercial/backoffice-api/internal/application/auth"
	"github.com/dsrcomercial/backoffice-api/internal/application/dto"
)

// AuthHandler maneja el login y el cambio de contraseña.
type AuthHandler struct {
	authUC *auth.Usecase
}

func NewAuthHandler(authUC *auth.Usecase) *AuthHandler {
	return &AuthHandler{authUC: authUC}
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Devuelve un token JWT para el resto de los endpoints.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "credenciales"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if !parseBody(c, &in) {
		return nil
	}
	token, usuario, err := h.authUC.Login(c.Context(), in.Username, in.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.LoginResponse{Token: token, Username: usuario.Username})
}

// CambiarPassword godoc
// @Summary      Cambiar la contraseña del usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CambiarPasswordRequest  true  "contraseñas"
// @Success      204
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/password [post]
func (h *AuthHandler) CambiarPassword(c *fiber.Ctx) error {
	var in dto.CambiarPasswordRequest
	if !parseBody(c, &in) {
		return nil
	}
	username := GetUsername(c)
	if err := h.authUC.CambiarPassword(c.Context(), username, in.PasswordActual, in.PasswordNuevo); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
