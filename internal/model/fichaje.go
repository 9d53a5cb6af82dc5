package model

import "time"

// Fichaje is the daily clock record of a worker.
// Fuente: "fichaje" (self clock-in/out) | "manual" (manager-entered).
// Entry time is immutable once recorded except by a manual override.
type Fichaje struct {
	ID           int       `gorm:"column:id_fichaje;primaryKey;autoIncrement"`
	IDTrabajador int       `gorm:"column:id_trabajador;not null;uniqueIndex:uniq_fichaje_trab_fecha"`
	Fecha        time.Time `gorm:"type:date;not null;uniqueIndex:uniq_fichaje_trab_fecha"`
	HoraEntrada  *string   `gorm:"type:time"`
	HoraSalida   *string   `gorm:"type:time"`
	Fuente       string    `gorm:"type:varchar(10);not null;default:'fichaje'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Fichaje) TableName() string { return "fichajes" }
