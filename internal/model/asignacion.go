package model

import "time"

// AsignacionTurno assigns a worker to a shift on a date. The composite
// unique index is the final arbiter against duplicate assignments under
// concurrent writers; the service-level checks run inside the same
// transaction as the insert.
type AsignacionTurno struct {
	ID              int       `gorm:"column:id_asignacion;primaryKey;autoIncrement"`
	IDTrabajador    int       `gorm:"column:id_trabajador;not null;uniqueIndex:uniq_trab_turno_fecha"`
	IDTurno         int       `gorm:"column:id_turno;not null;uniqueIndex:uniq_trab_turno_fecha;index:idx_turno_fecha"`
	Fecha           time.Time `gorm:"type:date;not null;uniqueIndex:uniq_trab_turno_fecha;index:idx_turno_fecha"`
	AsignadoPor     *int      `gorm:"column:asignado_por"`
	FechaAsignacion time.Time `gorm:"not null"`
}

func (AsignacionTurno) TableName() string { return "asignaciones_turno" }
