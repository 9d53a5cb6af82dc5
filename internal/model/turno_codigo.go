package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TurnoCodigo is a reusable planning code (M, T, C, LIBRE, VAC, ...) used
// by the annual grid. Horas is the declared value of a day carrying the
// code; it is kept in sync with shift-template durations by the sync
// worker, within a 0.01h tolerance.
type TurnoCodigo struct {
	ID          int             `gorm:"column:id_turno_codigo;primaryKey;autoIncrement"`
	Codigo      string          `gorm:"type:varchar(16);not null;uniqueIndex"`
	Descripcion string          `gorm:"type:varchar(255);not null;default:''"`
	Horas       decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Activo      bool            `gorm:"not null;default:true"`
	CreadoEn    time.Time       `gorm:"autoCreateTime"`
	ActualizadoEn time.Time     `gorm:"autoUpdateTime"`
}

func (TurnoCodigo) TableName() string { return "turnos_codigo" }
