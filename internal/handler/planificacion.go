package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/dto"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/middleware"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/service"

	"github.com/gin-gonic/gin"
)

type PlanificacionHandler struct{ svc service.PlanificacionService }

func NewPlanificacionHandler(svc service.PlanificacionService) *PlanificacionHandler {
	return &PlanificacionHandler{svc: svc}
}

// ── Catálogo de códigos ──────────────────────────────────────────────────────

func (h *PlanificacionHandler) ListarCodigos(c *gin.Context) {
	resp, err := h.svc.ListarCodigos(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PlanificacionHandler) GuardarCodigo(c *gin.Context) {
	var req dto.CodigoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.GuardarCodigo(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PlanificacionHandler) EliminarCodigo(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.EliminarCodigo(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Código desactivado"})
}

// ── Celdas ───────────────────────────────────────────────────────────────────

func (h *PlanificacionHandler) SetCelda(c *gin.Context) {
	var req dto.CeldaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.SetCelda(c.Request.Context(), middleware.GetPrincipal(c), req); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Celda guardada"})
}

func (h *PlanificacionHandler) BulkCeldas(c *gin.Context) {
	var req dto.BulkCeldasRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.BulkSetCeldas(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PlanificacionHandler) PatronSemanal(c *gin.Context) {
	var req dto.PatronSemanalRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AplicarPatronSemanal(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Consultas ────────────────────────────────────────────────────────────────

// anioQuery reads the optional anio parameter, defaulting to the current
// year.
func anioQuery(c *gin.Context) int {
	if v, err := strconv.Atoi(c.Query("anio")); err == nil && v > 0 {
		return v
	}
	return time.Now().Year()
}

func (h *PlanificacionHandler) Asignaciones(c *gin.Context) {
	idTienda, ok := intQuery(c, "tienda")
	if !ok {
		return
	}
	resp, err := h.svc.AsignacionesAnio(c.Request.Context(), idTienda, anioQuery(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PlanificacionHandler) Empleados(c *gin.Context) {
	idTienda, ok := intQuery(c, "tienda")
	if !ok {
		return
	}
	resp, err := h.svc.AsignacionesAnio(c.Request.Context(), idTienda, anioQuery(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp.Empleados)
}

func (h *PlanificacionHandler) PlanUsuario(c *gin.Context) {
	idTrabajador, ok := intParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.PlanUsuario(c.Request.Context(), middleware.GetPrincipal(c), idTrabajador, anioQuery(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PlanificacionHandler) Horas(c *gin.Context) {
	idTienda, ok := intQuery(c, "tienda")
	if !ok {
		return
	}
	resp, err := h.svc.HorasTienda(c.Request.Context(), middleware.GetPrincipal(c), idTienda, anioQuery(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PlanificacionHandler) Anios(c *gin.Context) {
	resp, err := h.svc.Anios(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
