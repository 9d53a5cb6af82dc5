package dto

import "time"

// ─── Shift templates ─────────────────────────────────────────────────────────

type TramoRequest struct {
	HoraInicio string `json:"hora_inicio" validate:"required"`
	HoraFin    string `json:"hora_fin"    validate:"required"`
}

// CrearTurnoRequest creates a shift template. When Tramos is empty the
// legacy HoraInicio/HoraFin pair is treated as a single segment.
type CrearTurnoRequest struct {
	IDTienda    int            `json:"id_tienda"    validate:"required,gt=0"`
	IDTipoTurno *int           `json:"id_tipo_turno"`
	Codigo      string         `json:"codigo"       validate:"required,max=8"`
	Descripcion string         `json:"descripcion"  validate:"max=255"`
	Tramos      []TramoRequest `json:"tramos"       validate:"omitempty,dive"`
	HoraInicio  string         `json:"hora_inicio"`
	HoraFin     string         `json:"hora_fin"`
}

type CrearTurnoResponse struct {
	Mensaje string `json:"mensaje"`
	IDTurno int    `json:"id_turno"`
}

type TramoResponse struct {
	Orden      int    `json:"orden"`
	HoraInicio string `json:"hora_inicio"`
	HoraFin    string `json:"hora_fin"`
}

type TurnoResponse struct {
	IDTurno         int             `json:"id_turno"`
	IDTienda        int             `json:"id_tienda"`
	IDTipoTurno     *int            `json:"id_tipo_turno"`
	Codigo          string          `json:"codigo"`
	Descripcion     string          `json:"descripcion"`
	HoraInicio      string          `json:"hora_inicio"`
	HoraFin         string          `json:"hora_fin"`
	DuracionMinutos int             `json:"duracion_minutos"`
	EsPartido       bool            `json:"es_partido"`
	Tramos          []TramoResponse `json:"tramos"`
}

type TipoTurnoResponse struct {
	IDTipoTurno int    `json:"id_tipo_turno"`
	Nombre      string `json:"nombre"`
}

// ─── Staffing requirements ───────────────────────────────────────────────────

type RequerimientoRequest struct {
	IDTurno  int    `json:"id_turno" validate:"required,gt=0"`
	Fecha    string `json:"fecha"    validate:"required,datetime=2006-01-02"`
	Cantidad int    `json:"cantidad" validate:"required,gte=1"`
}

type RequerimientoResponse struct {
	IDRequerimiento int    `json:"id_requerimiento"`
	IDTurno         int    `json:"id_turno"`
	Fecha           string `json:"fecha"`
	Cantidad        int    `json:"cantidad"`
}

type RequerimientosSemanaResponse struct {
	Requerimientos []RequerimientoResponse `json:"requerimientos"`
	Fechas         []string                `json:"fechas"`
	Turnos         []TurnoResponse         `json:"turnos"`
}

// ─── Direct assignments ──────────────────────────────────────────────────────

type CrearAsignacionRequest struct {
	IDTrabajador int    `json:"id_trabajador" validate:"required,gt=0"`
	IDTurno      int    `json:"id_turno"      validate:"required,gt=0"`
	Fecha        string `json:"fecha"         validate:"required,datetime=2006-01-02"`
}

type EliminarAsignacionRequest struct {
	IDAsignacion int `json:"id_asignacion" validate:"required,gt=0"`
}

type AsignacionResponse struct {
	IDAsignacion     int    `json:"id_asignacion"`
	IDTrabajador     int    `json:"id_trabajador"`
	NombreTrabajador string `json:"nombre_trabajador"`
	IDTurno          int    `json:"id_turno"`
	Fecha            string `json:"fecha"`
}

type AsignacionesSemanaResponse struct {
	Turnos       []TurnoResponse      `json:"turnos"`
	Asignaciones []AsignacionResponse `json:"asignaciones"`
	Fechas       []string             `json:"fechas"`
}

// AsignacionSemanaRow is the repository read model joining an assignment
// with the worker's name and the shift's aggregate time bounds.
type AsignacionSemanaRow struct {
	IDAsignacion     int       `json:"id_asignacion"`
	IDTrabajador     int       `json:"id_trabajador"`
	NombreTrabajador string    `json:"nombre_trabajador"`
	IDTurno          int       `json:"id_turno"`
	Fecha            time.Time `json:"fecha"`
	HoraInicio       string    `json:"hora_inicio"`
	HoraFin          string    `json:"hora_fin"`
}
