package handler

import (
	"net/http"

	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/service"

	"github.com/gin-gonic/gin"
)

type HorariosHandler struct{ svc service.HorarioService }

func NewHorariosHandler(svc service.HorarioService) *HorariosHandler {
	return &HorariosHandler{svc: svc}
}

// Semana godoc
// @Summary Horario semanal compuesto de una tienda
// @Tags horarios
// @Produce json
// @Param tienda query int true "Id de tienda"
// @Param semana query string true "Cualquier fecha de la semana (YYYY-MM-DD)"
// @Success 200 {object} dto.HorarioSemanaResponse
// @Router /api/horarios/semana [get]
func (h *HorariosHandler) Semana(c *gin.Context) {
	idTienda, ok := intQuery(c, "tienda")
	if !ok {
		return
	}
	semana := c.Query("semana")
	resp, err := h.svc.HorarioSemana(c.Request.Context(), idTienda, semana)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
