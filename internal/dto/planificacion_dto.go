package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Plan code catalog ───────────────────────────────────────────────────────

type CodigoRequest struct {
	IDTurnoCodigo *int            `json:"id_turno_codigo"`
	Codigo        string          `json:"codigo"      validate:"required,max=16"`
	Descripcion   string          `json:"descripcion" validate:"max=255"`
	Horas         decimal.Decimal `json:"horas"`
	Activo        *bool           `json:"activo"`
}

type CodigoResponse struct {
	IDTurnoCodigo int             `json:"id_turno_codigo"`
	Codigo        string          `json:"codigo"`
	Descripcion   string          `json:"descripcion"`
	Horas         decimal.Decimal `json:"horas"`
	Activo        bool            `json:"activo"`
}

type GuardarCodigoResponse struct {
	Mensaje       string `json:"mensaje"`
	IDTurnoCodigo int    `json:"id_turno_codigo,omitempty"`
}

// ─── Annual grid cells ───────────────────────────────────────────────────────

// CeldaRequest sets one grid cell. A nil IDTurnoCodigo clears the cell
// (the row is deleted, not emptied).
type CeldaRequest struct {
	IDTrabajador  int    `json:"id_trabajador" validate:"required,gt=0"`
	Fecha         string `json:"fecha"         validate:"required,datetime=2006-01-02"`
	IDTurnoCodigo *int   `json:"id_turno_codigo"`
}

type BulkCeldasRequest struct {
	Items []CeldaRequest `json:"items" validate:"required,min=1,dive"`
}

// PatronSemanalRequest applies a repeating Monday-first weekly pattern.
// Each pattern slot may be a code id (number), a code string (matched
// case-insensitively against active codes) or null.
type PatronSemanalRequest struct {
	Tienda       int           `json:"tienda"  validate:"required,gt=0"`
	Desde        string        `json:"desde"   validate:"required,datetime=2006-01-02"`
	Hasta        *string       `json:"hasta"   validate:"omitempty,datetime=2006-01-02"`
	Pattern      []interface{} `json:"pattern" validate:"required,len=7"`
	Trabajadores []int         `json:"trabajadores"`
}

type BulkCeldasResponse struct {
	Mensaje   string `json:"mensaje"`
	Guardadas int    `json:"guardadas"`
	Omitidas  int    `json:"omitidas"`
}

type PatronSemanalResponse struct {
	Mensaje      string `json:"mensaje"`
	Aplicadas    int    `json:"aplicadas"`
	Eliminadas   int    `json:"eliminadas"`
	Desde        string `json:"desde"`
	Hasta        string `json:"hasta"`
	Trabajadores int    `json:"trabajadores"`
}

type CeldaRow struct {
	IDAsignacion  int    `json:"id_asignacion"`
	IDTrabajador  int    `json:"id_trabajador"`
	Fecha         string `json:"fecha"`
	IDTurnoCodigo int    `json:"id_turno_codigo"`
}

type AsignacionesAnioResponse struct {
	Empleados    []EmpleadoResponse `json:"empleados"`
	Asignaciones []CeldaRow         `json:"asignaciones"`
	Codigos      []CodigoResponse   `json:"codigos"`
}

// ─── Per-user plan with aggregates ───────────────────────────────────────────

type PlanPerfil struct {
	IDTrabajador int     `json:"id_trabajador"`
	Nombre       string  `json:"nombre"`
	Email        *string `json:"email"`
	Rol          string  `json:"rol"`
	IDTienda     int     `json:"id_tienda"`
	FechaAlta    string  `json:"fecha_alta"`
}

type PlanCelda struct {
	Fecha         string          `json:"fecha"`
	IDTurnoCodigo int             `json:"id_turno_codigo"`
	Codigo        string          `json:"codigo"`
	Descripcion   string          `json:"descripcion"`
	Horas         decimal.Decimal `json:"horas"`
}

type ResumenMes struct {
	Horas         decimal.Decimal `json:"horas"`
	DiasConCodigo int             `json:"dias_con_codigo"`
}

type ResumenSemana struct {
	SemanaInicio  string          `json:"semana_inicio"`
	SemanaFin     string          `json:"semana_fin"`
	Horas         decimal.Decimal `json:"horas"`
	DiasConCodigo int             `json:"dias_con_codigo"`
}

type PlanUsuarioResponse struct {
	Perfil     PlanPerfil               `json:"perfil"`
	Anio       int                      `json:"anio"`
	Celdas     []PlanCelda              `json:"celdas"`
	TotalHoras decimal.Decimal          `json:"total_horas"`
	Meses      map[string]ResumenMes    `json:"meses"`   // key "01".."12"
	Semanas    map[string]ResumenSemana `json:"semanas"` // keyed by Monday YYYY-MM-DD
}

// ─── Store hours ─────────────────────────────────────────────────────────────

type HorasEmpleado struct {
	IDTrabajador int                        `json:"id_trabajador"`
	Nombre       string                     `json:"nombre"`
	Total        decimal.Decimal            `json:"total"`
	Meses        map[string]decimal.Decimal `json:"meses"`
}

type HorasTiendaResponse struct {
	Tienda    int             `json:"tienda"`
	Anio      int             `json:"anio"`
	Empleados []HorasEmpleado `json:"empleados"`
}

type AnioResponse struct {
	Valor  int `json:"valor"`
	Activo int `json:"activo"`
}

// ─── Repository read models ──────────────────────────────────────────────────

// PlanCeldaJoinRow joins a grid cell with its code for the weekly
// compositor and the per-user plan.
type PlanCeldaJoinRow struct {
	IDAsignacion  int             `json:"id_asignacion"`
	IDTrabajador  int             `json:"id_trabajador"`
	Fecha         time.Time       `json:"fecha"`
	IDTurnoCodigo int             `json:"id_turno_codigo"`
	Codigo        string          `json:"codigo"`
	Descripcion   string          `json:"descripcion"`
	Horas         decimal.Decimal `json:"horas"`
}

// HorasMesRow is one (worker, month) aggregate from the hours query.
type HorasMesRow struct {
	IDTrabajador int             `json:"id_trabajador"`
	Nombre       string          `json:"nombre"`
	Mes          int             `json:"mes"`
	Horas        decimal.Decimal `json:"horas"`
}
