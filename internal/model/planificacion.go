package model

import "time"

// PlanificacionAsignacion is one cell of the annual planning grid: a code
// assigned to a worker on a date. A cell with no code is represented by
// the absence of the row, never by a null reference, so clearing a cell
// deletes it. The (trabajador, fecha) unique index is the correctness
// guarantee for concurrent upserts.
type PlanificacionAsignacion struct {
	ID            int       `gorm:"column:id_asignacion;primaryKey;autoIncrement"`
	IDTrabajador  int       `gorm:"column:id_trabajador;not null;uniqueIndex:uniq_plan_trab_fecha"`
	Fecha         time.Time `gorm:"type:date;not null;uniqueIndex:uniq_plan_trab_fecha;index"`
	IDTurnoCodigo int       `gorm:"column:id_turno_codigo;not null"`

	Codigo *TurnoCodigo `gorm:"foreignKey:IDTurnoCodigo;references:ID"`
}

func (PlanificacionAsignacion) TableName() string { return "planificacion_asignaciones" }
