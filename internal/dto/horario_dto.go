package dto

// HorarioEntrada is one row of the composed weekly schedule. Origen is
// "turno" for direct assignments and "plan" for entries derived from the
// annual planning grid; plan entries without a matching template carry a
// synthesized slot and a nil IDTurno.
type HorarioEntrada struct {
	IDTrabajador     int     `json:"id_trabajador"`
	NombreTrabajador string  `json:"nombre_trabajador"`
	IDTurno          *int    `json:"id_turno"`
	Fecha            string  `json:"fecha"`
	HoraInicio       string  `json:"hora_inicio"`
	HoraFin          string  `json:"hora_fin"`
	IDTurnoCodigo    *int    `json:"id_turno_codigo,omitempty"`
	Codigo           *string `json:"codigo,omitempty"`
	Origen           string  `json:"origen"`
}

type HorarioSemanaResponse struct {
	Tienda       int                `json:"tienda"`
	SemanaInicio string             `json:"semana_inicio"`
	SemanaFin    string             `json:"semana_fin"`
	Empleados    []EmpleadoResponse `json:"empleados"`
	Asignaciones []HorarioEntrada   `json:"asignaciones"`
}
