package repository

import (
	"context"
	"time"

	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/dto"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/model"

	"gorm.io/gorm"
)

type AsignacionRepository interface {
	ExistsTx(ctx context.Context, tx *gorm.DB, idTrabajador, idTurno int, fecha time.Time) (bool, error)
	CountTx(ctx context.Context, tx *gorm.DB, idTurno int, fecha time.Time) (int64, error)
	CreateTx(ctx context.Context, tx *gorm.DB, a *model.AsignacionTurno) error
	FindByID(ctx context.Context, id int) (*model.AsignacionTurno, error)
	Delete(ctx context.Context, id int) error
	// ListSemana joins assignments with worker names and shift bounds for
	// the given shifts and dates.
	ListSemana(ctx context.Context, turnoIDs []int, fechas []time.Time) ([]dto.AsignacionSemanaRow, error)
	DB() *gorm.DB
}

type asignacionRepo struct{ db *gorm.DB }

func NewAsignacionRepository(db *gorm.DB) AsignacionRepository { return &asignacionRepo{db: db} }

func (r *asignacionRepo) DB() *gorm.DB { return r.db }

func (r *asignacionRepo) ExistsTx(ctx context.Context, tx *gorm.DB, idTrabajador, idTurno int, fecha time.Time) (bool, error) {
	var n int64
	err := tx.WithContext(ctx).Model(&model.AsignacionTurno{}).
		Where("id_trabajador = ? AND id_turno = ? AND fecha = ?", idTrabajador, idTurno, fecha).
		Count(&n).Error
	return n > 0, err
}

func (r *asignacionRepo) CountTx(ctx context.Context, tx *gorm.DB, idTurno int, fecha time.Time) (int64, error) {
	var n int64
	err := tx.WithContext(ctx).Model(&model.AsignacionTurno{}).
		Where("id_turno = ? AND fecha = ?", idTurno, fecha).
		Count(&n).Error
	return n, err
}

func (r *asignacionRepo) CreateTx(ctx context.Context, tx *gorm.DB, a *model.AsignacionTurno) error {
	return tx.WithContext(ctx).Create(a).Error
}

func (r *asignacionRepo) FindByID(ctx context.Context, id int) (*model.AsignacionTurno, error) {
	var a model.AsignacionTurno
	err := r.db.WithContext(ctx).First(&a, "id_asignacion = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *asignacionRepo) Delete(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).
		Delete(&model.AsignacionTurno{}, "id_asignacion = ?", id).Error
}

func (r *asignacionRepo) ListSemana(ctx context.Context, turnoIDs []int, fechas []time.Time) ([]dto.AsignacionSemanaRow, error) {
	if len(turnoIDs) == 0 {
		return nil, nil
	}
	var rows []dto.AsignacionSemanaRow
	err := r.db.WithContext(ctx).
		Table("asignaciones_turno AS a").
		Joins("JOIN usuarios u ON u.id_usuario = a.id_trabajador").
		Joins("JOIN turnos t ON t.id_turno = a.id_turno").
		Where("a.id_turno IN ?", turnoIDs).
		Where("a.fecha IN ?", fechas).
		Select(`a.id_asignacion, a.id_trabajador, u.nombre AS nombre_trabajador,
			a.id_turno, a.fecha, t.hora_inicio, t.hora_fin`).
		Scan(&rows).Error
	return rows, err
}
