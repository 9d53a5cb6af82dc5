package handler

import (
	"net/http"

	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/dto"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/middleware"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login godoc
// @Summary Login por email o nombre
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciales"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, setup, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	if setup != nil {
		c.JSON(http.StatusOK, setup)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SetPassword godoc
// @Summary Completa el alta estableciendo la contraseña
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.SetPasswordRequest true "Nueva contraseña"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /api/auth/set-password [post]
func (h *AuthHandler) SetPassword(c *gin.Context) {
	var req dto.SetPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}

	claims := middleware.GetClaims(c)
	resp, err := h.svc.SetPassword(c.Request.Context(), claims.UID, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
