package handler

import (
	"net/http"

	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/dto"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/service"

	"github.com/gin-gonic/gin"
)

type TiendasHandler struct{ svc service.TiendaService }

func NewTiendasHandler(svc service.TiendaService) *TiendasHandler {
	return &TiendasHandler{svc: svc}
}

func (h *TiendasHandler) Crear(c *gin.Context) {
	var req dto.CrearTiendaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearTienda(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *TiendasHandler) Listar(c *gin.Context) {
	resp, err := h.svc.ListarTiendas(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
