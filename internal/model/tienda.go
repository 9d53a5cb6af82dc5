package model

import "time"

// Tienda is a store of the chain. IDJefe points to the usuario managing it;
// assigning a jefe promotes that user's role to "encargado".
type Tienda struct {
	ID        int    `gorm:"column:id_tienda;primaryKey;autoIncrement"`
	Nombre    string `gorm:"type:varchar(100);not null"`
	Direccion string `gorm:"type:varchar(255)"`
	IDJefe    *int   `gorm:"column:id_jefe;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Tienda) TableName() string { return "tiendas" }
