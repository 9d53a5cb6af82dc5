package handler

import (
	"net/http"

	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/dto"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/middleware"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/service"

	"github.com/gin-gonic/gin"
)

type FichajesHandler struct{ svc service.FichajeService }

func NewFichajesHandler(svc service.FichajeService) *FichajesHandler {
	return &FichajesHandler{svc: svc}
}

func (h *FichajesHandler) Fichar(c *gin.Context) {
	var req dto.FicharRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Fichar(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FichajesHandler) FicharManual(c *gin.Context) {
	var req dto.FichajeManualRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.FicharManual(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FichajesHandler) Hoy(c *gin.Context) {
	idTrabajador, ok := intParam(c, "id_trabajador")
	if !ok {
		return
	}
	resp, err := h.svc.FichajeHoy(c.Request.Context(), middleware.GetPrincipal(c), idTrabajador)
	if err != nil {
		respondErr(c, err)
		return
	}
	if resp == nil {
		c.JSON(http.StatusOK, gin.H{"fichaje": nil})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FichajesHandler) Listar(c *gin.Context) {
	idTrabajador, ok := intParam(c, "id_trabajador")
	if !ok {
		return
	}
	resp, err := h.svc.ListarFichajes(
		c.Request.Context(),
		middleware.GetPrincipal(c),
		idTrabajador,
		c.Query("desde"),
		c.Query("hasta"),
	)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
