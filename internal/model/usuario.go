package model

import "time"

// Usuario stores system users with role-based access.
// Rol: "trabajador" | "encargado" | "administrador"
//
// PasswordHash is the single fixed credential column. An empty hash means
// the user has never logged in (first-login flow issues a set_password
// token instead of a session).
type Usuario struct {
	ID           int     `gorm:"column:id_usuario;primaryKey;autoIncrement"`
	Nombre       string  `gorm:"type:varchar(100);not null"`
	Email        *string `gorm:"type:varchar(150);uniqueIndex"`
	PasswordHash string  `gorm:"type:varchar(100);not null;default:''"`
	Rol          string  `gorm:"type:varchar(20);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Usuario) TableName() string { return "usuarios" }
