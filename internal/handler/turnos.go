package handler

import (
	"net/http"

	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/dto"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/middleware"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/service"

	"github.com/gin-gonic/gin"
)

type TurnosHandler struct {
	turnos       service.TurnoService
	asignaciones service.AsignacionService
}

func NewTurnosHandler(turnos service.TurnoService, asignaciones service.AsignacionService) *TurnosHandler {
	return &TurnosHandler{turnos: turnos, asignaciones: asignaciones}
}

// Crear godoc
// @Summary Crea una plantilla de turno con sus tramos
// @Tags turnos
// @Accept json
// @Produce json
// @Param body body dto.CrearTurnoRequest true "Turno"
// @Success 201 {object} dto.CrearTurnoResponse
// @Failure 409 {object} apierror.APIError
// @Router /api/turnos [post]
func (h *TurnosHandler) Crear(c *gin.Context) {
	var req dto.CrearTurnoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.turnos.CrearTurno(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *TurnosHandler) ListarPorTienda(c *gin.Context) {
	idTienda, ok := intParam(c, "id_tienda")
	if !ok {
		return
	}
	resp, err := h.turnos.ListarPorTienda(c.Request.Context(), idTienda)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TurnosHandler) ListarTipos(c *gin.Context) {
	resp, err := h.turnos.ListarTipos(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Requerimientos ───────────────────────────────────────────────────────────

func (h *TurnosHandler) GuardarRequerimiento(c *gin.Context) {
	var req dto.RequerimientoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.turnos.GuardarRequerimiento(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TurnosHandler) RequerimientosSemana(c *gin.Context) {
	idTienda, ok := intQuery(c, "tienda")
	if !ok {
		return
	}
	semana := c.Query("semana")
	resp, err := h.turnos.RequerimientosSemana(c.Request.Context(), idTienda, semana)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Asignaciones directas ────────────────────────────────────────────────────

func (h *TurnosHandler) Asignar(c *gin.Context) {
	var req dto.CrearAsignacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.asignaciones.CrearAsignacion(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *TurnosHandler) Desasignar(c *gin.Context) {
	var req dto.EliminarAsignacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.asignaciones.EliminarAsignacion(c.Request.Context(), middleware.GetPrincipal(c), req); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Asignación eliminada"})
}

func (h *TurnosHandler) AsignacionesSemana(c *gin.Context) {
	idTienda, ok := intQuery(c, "tienda")
	if !ok {
		return
	}
	semana := c.Query("semana")
	resp, err := h.asignaciones.AsignacionesSemana(c.Request.Context(), idTienda, semana)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
