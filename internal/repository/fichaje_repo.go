package repository

import (
	"context"
	"errors"
	"time"

	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/model"

	"gorm.io/gorm"
)

type FichajeRepository interface {
	Create(ctx context.Context, f *model.Fichaje) error
	// FindByFecha returns nil when the worker has no clock record for
	// that date.
	FindByFecha(ctx context.Context, idTrabajador int, fecha time.Time) (*model.Fichaje, error)
	Update(ctx context.Context, f *model.Fichaje) error
	ListEntre(ctx context.Context, idTrabajador int, desde, hasta time.Time) ([]model.Fichaje, error)
}

type fichajeRepo struct{ db *gorm.DB }

func NewFichajeRepository(db *gorm.DB) FichajeRepository { return &fichajeRepo{db: db} }

func (r *fichajeRepo) Create(ctx context.Context, f *model.Fichaje) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *fichajeRepo) FindByFecha(ctx context.Context, idTrabajador int, fecha time.Time) (*model.Fichaje, error) {
	var f model.Fichaje
	err := r.db.WithContext(ctx).
		First(&f, "id_trabajador = ? AND fecha = ?", idTrabajador, fecha).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fichajeRepo) Update(ctx context.Context, f *model.Fichaje) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *fichajeRepo) ListEntre(ctx context.Context, idTrabajador int, desde, hasta time.Time) ([]model.Fichaje, error) {
	var fichajes []model.Fichaje
	err := r.db.WithContext(ctx).
		Where("id_trabajador = ?", idTrabajador).
		Where("fecha BETWEEN ? AND ?", desde, hasta).
		Order("fecha").
		Find(&fichajes).Error
	return fichajes, err
}
