package repository

import (
	"context"

	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/model"

	"gorm.io/gorm"
)

type TiendaRepository interface {
	Create(ctx context.Context, t *model.Tienda) error
	FindByID(ctx context.Context, id int) (*model.Tienda, error)
	List(ctx context.Context) ([]model.Tienda, error)
}

type tiendaRepo struct{ db *gorm.DB }

func NewTiendaRepository(db *gorm.DB) TiendaRepository { return &tiendaRepo{db: db} }

func (r *tiendaRepo) Create(ctx context.Context, t *model.Tienda) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *tiendaRepo) FindByID(ctx context.Context, id int) (*model.Tienda, error) {
	var t model.Tienda
	err := r.db.WithContext(ctx).First(&t, "id_tienda = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tiendaRepo) List(ctx context.Context) ([]model.Tienda, error) {
	var tiendas []model.Tienda
	err := r.db.WithContext(ctx).Order("id_tienda").Find(&tiendas).Error
	return tiendas, err
}
