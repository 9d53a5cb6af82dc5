package model

import "time"

// RequerimientoTurno is the staffing quota for a (shift, date) cell.
// Assignments may never exceed Cantidad.
type RequerimientoTurno struct {
	ID       int       `gorm:"column:id_requerimiento;primaryKey;autoIncrement"`
	IDTurno  int       `gorm:"column:id_turno;not null;uniqueIndex:uniq_turno_fecha"`
	Fecha    time.Time `gorm:"type:date;not null;uniqueIndex:uniq_turno_fecha"`
	Cantidad int       `gorm:"not null;default:0"`
}

func (RequerimientoTurno) TableName() string { return "requerimientos_turno" }
