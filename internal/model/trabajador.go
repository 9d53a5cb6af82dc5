package model

import "time"

// Trabajador specializes a Usuario as store staff. The primary key is the
// usuario id itself: a user is a worker iff this row exists, and belongs to
// exactly one store at a time.
type Trabajador struct {
	ID        int       `gorm:"column:id_trabajador;primaryKey"`
	IDTienda  int       `gorm:"column:id_tienda;not null;index"`
	FechaAlta time.Time `gorm:"type:date;not null"`

	Usuario *Usuario `gorm:"foreignKey:ID;references:ID"`
	Tienda  *Tienda  `gorm:"foreignKey:IDTienda;references:ID"`
}

func (Trabajador) TableName() string { return "trabajadores" }
