package model

import "time"

// Turno is a shift template of a store. HoraInicio/HoraFin are the
// aggregate bounds (first segment start, last segment end); the worked
// duration is always the sum of the tramos, never the aggregate span,
// because split shifts may have unpaid gaps between segments.
type Turno struct {
	ID          int    `gorm:"column:id_turno;primaryKey;autoIncrement"`
	IDTienda    int    `gorm:"column:id_tienda;not null;uniqueIndex:uniq_turnos_tienda_codigo"`
	IDTipoTurno *int   `gorm:"column:id_tipo_turno"`
	Codigo      string `gorm:"type:varchar(8);not null;uniqueIndex:uniq_turnos_tienda_codigo"`
	Descripcion string `gorm:"type:varchar(255);not null;default:''"`
	HoraInicio  string `gorm:"type:time;not null"`
	HoraFin     string `gorm:"type:time;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Tramos []TurnoTramo `gorm:"foreignKey:IDTurno;constraint:OnDelete:CASCADE"`
}

func (Turno) TableName() string { return "turnos" }

// TurnoTramo is one ordered segment of a shift. Segments never cross
// midnight and are replaced atomically whenever the owning shift changes.
type TurnoTramo struct {
	ID         int    `gorm:"column:id_tramo;primaryKey;autoIncrement"`
	IDTurno    int    `gorm:"column:id_turno;not null;uniqueIndex:uniq_tramo_orden"`
	Orden      int    `gorm:"not null;uniqueIndex:uniq_tramo_orden"`
	HoraInicio string `gorm:"type:time;not null"`
	HoraFin    string `gorm:"type:time;not null"`
}

func (TurnoTramo) TableName() string { return "turnos_tramos" }

// TipoTurno is a small fixed catalog (morning, evening, ...) that shift
// templates may optionally reference.
type TipoTurno struct {
	ID     int    `gorm:"column:id_tipo_turno;primaryKey;autoIncrement"`
	Nombre string `gorm:"type:varchar(50);not null"`
}

func (TipoTurno) TableName() string { return "tipos_turno" }
