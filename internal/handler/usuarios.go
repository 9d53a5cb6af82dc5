package handler

import (
	"net/http"

	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/dto"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/service"

	"github.com/gin-gonic/gin"
)

type UsuariosHandler struct{ svc service.UsuarioService }

func NewUsuariosHandler(svc service.UsuarioService) *UsuariosHandler {
	return &UsuariosHandler{svc: svc}
}

func (h *UsuariosHandler) Crear(c *gin.Context) {
	var req dto.CrearUsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearUsuario(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *UsuariosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.ListarUsuarios(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CrearTrabajador da de alta a un usuario como trabajador de una tienda.
func (h *UsuariosHandler) CrearTrabajador(c *gin.Context) {
	var req dto.CrearTrabajadorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.CrearTrabajador(c.Request.Context(), req); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"mensaje": "Trabajador creado correctamente"})
}

// ListarEmpleados devuelve la plantilla de una tienda.
func (h *UsuariosHandler) ListarEmpleados(c *gin.Context) {
	idTienda, ok := intParam(c, "id_tienda")
	if !ok {
		return
	}
	resp, err := h.svc.ListarEmpleados(c.Request.Context(), idTienda)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
