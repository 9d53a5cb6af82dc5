package repository

import (
	"context"

	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/dto"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/model"

	"gorm.io/gorm"
)

type TrabajadorRepository interface {
	Create(ctx context.Context, t *model.Trabajador) error
	FindByID(ctx context.Context, id int) (*model.Trabajador, error)
	// ListByTienda returns the store's staff joined with user names,
	// ordered by name.
	ListByTienda(ctx context.Context, idTienda int) ([]dto.EmpleadoResponse, error)
	IDsDeTienda(ctx context.Context, idTienda int) ([]int, error)
}

type trabajadorRepo struct{ db *gorm.DB }

func NewTrabajadorRepository(db *gorm.DB) TrabajadorRepository { return &trabajadorRepo{db: db} }

func (r *trabajadorRepo) Create(ctx context.Context, t *model.Trabajador) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *trabajadorRepo) FindByID(ctx context.Context, id int) (*model.Trabajador, error) {
	var t model.Trabajador
	err := r.db.WithContext(ctx).Preload("Usuario").First(&t, "id_trabajador = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *trabajadorRepo) ListByTienda(ctx context.Context, idTienda int) ([]dto.EmpleadoResponse, error) {
	var rows []dto.EmpleadoResponse
	err := r.db.WithContext(ctx).
		Table("trabajadores AS t").
		Joins("JOIN usuarios u ON u.id_usuario = t.id_trabajador").
		Where("t.id_tienda = ?", idTienda).
		Select("t.id_trabajador, u.nombre, u.email, u.rol").
		Order("u.nombre").
		Scan(&rows).Error
	return rows, err
}

func (r *trabajadorRepo) IDsDeTienda(ctx context.Context, idTienda int) ([]int, error) {
	var ids []int
	err := r.db.WithContext(ctx).
		Model(&model.Trabajador{}).
		Where("id_tienda = ?", idTienda).
		Pluck("id_trabajador", &ids).Error
	return ids, err
}
