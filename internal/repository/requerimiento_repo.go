package repository

import (
	"context"
	"errors"
	"time"

	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RequerimientoRepository interface {
	Upsert(ctx context.Context, idTurno int, fecha time.Time, cantidad int) error
	// FindTx reads the quota row inside the assignment transaction so the
	// capacity check and the insert see the same state. Returns nil when
	// no row exists.
	FindTx(ctx context.Context, tx *gorm.DB, idTurno int, fecha time.Time) (*model.RequerimientoTurno, error)
	ListSemana(ctx context.Context, turnoIDs []int, fechas []time.Time) ([]model.RequerimientoTurno, error)
}

type requerimientoRepo struct{ db *gorm.DB }

func NewRequerimientoRepository(db *gorm.DB) RequerimientoRepository {
	return &requerimientoRepo{db: db}
}

func (r *requerimientoRepo) Upsert(ctx context.Context, idTurno int, fecha time.Time, cantidad int) error {
	row := model.RequerimientoTurno{IDTurno: idTurno, Fecha: fecha, Cantidad: cantidad}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id_turno"}, {Name: "fecha"}},
			DoUpdates: clause.AssignmentColumns([]string{"cantidad"}),
		}).
		Create(&row).Error
}

func (r *requerimientoRepo) FindTx(ctx context.Context, tx *gorm.DB, idTurno int, fecha time.Time) (*model.RequerimientoTurno, error) {
	var req model.RequerimientoTurno
	err := tx.WithContext(ctx).
		First(&req, "id_turno = ? AND fecha = ?", idTurno, fecha).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requerimientoRepo) ListSemana(ctx context.Context, turnoIDs []int, fechas []time.Time) ([]model.RequerimientoTurno, error) {
	if len(turnoIDs) == 0 {
		return nil, nil
	}
	var rows []model.RequerimientoTurno
	err := r.db.WithContext(ctx).
		Where("id_turno IN ?", turnoIDs).
		Where("fecha IN ?", fechas).
		Find(&rows).Error
	return rows, err
}
