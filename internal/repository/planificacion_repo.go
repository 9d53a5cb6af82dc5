package repository

import (
	"context"
	"time"

	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/dto"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlanificacionRepository interface {
	// UpsertCelda writes one grid cell. The (trabajador, fecha) unique
	// key makes repeated writes converge on the last value.
	UpsertCelda(ctx context.Context, tx *gorm.DB, idTrabajador int, fecha time.Time, idCodigo int) error
	// DeleteCelda clears a cell. Returns rows affected.
	DeleteCelda(ctx context.Context, tx *gorm.DB, idTrabajador int, fecha time.Time) (int64, error)
	// ListEntre returns cells for the given workers joined with their
	// catalog code, within [desde, hasta].
	ListEntre(ctx context.Context, trabajadorIDs []int, desde, hasta time.Time) ([]dto.PlanCeldaJoinRow, error)
	ListAnioUsuario(ctx context.Context, idTrabajador, anio int) ([]dto.PlanCeldaJoinRow, error)
	// Anios lists the distinct years that have any planned cell.
	Anios(ctx context.Context) ([]int, error)
	HorasPorMes(ctx context.Context, idTienda, anio int) ([]dto.HorasMesRow, error)
	DB() *gorm.DB
}

type planificacionRepo struct{ db *gorm.DB }

func NewPlanificacionRepository(db *gorm.DB) PlanificacionRepository {
	return &planificacionRepo{db: db}
}

func (r *planificacionRepo) DB() *gorm.DB { return r.db }

func (r *planificacionRepo) UpsertCelda(ctx context.Context, tx *gorm.DB, idTrabajador int, fecha time.Time, idCodigo int) error {
	row := model.PlanificacionAsignacion{
		IDTrabajador:  idTrabajador,
		Fecha:         fecha,
		IDTurnoCodigo: idCodigo,
	}
	return tx.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id_trabajador"}, {Name: "fecha"}},
			DoUpdates: clause.AssignmentColumns([]string{"id_turno_codigo"}),
		}).
		Create(&row).Error
}

func (r *planificacionRepo) DeleteCelda(ctx context.Context, tx *gorm.DB, idTrabajador int, fecha time.Time) (int64, error) {
	res := tx.WithContext(ctx).
		Where("id_trabajador = ? AND fecha = ?", idTrabajador, fecha).
		Delete(&model.PlanificacionAsignacion{})
	return res.RowsAffected, res.Error
}

func (r *planificacionRepo) ListEntre(ctx context.Context, trabajadorIDs []int, desde, hasta time.Time) ([]dto.PlanCeldaJoinRow, error) {
	if len(trabajadorIDs) == 0 {
		return nil, nil
	}
	var rows []dto.PlanCeldaJoinRow
	err := r.db.WithContext(ctx).
		Table("planificacion_asignaciones AS p").
		Joins("JOIN turnos_codigo c ON c.id_turno_codigo = p.id_turno_codigo").
		Where("p.id_trabajador IN ?", trabajadorIDs).
		Where("p.fecha BETWEEN ? AND ?", desde, hasta).
		Select(`p.id_asignacion, p.id_trabajador, p.fecha, p.id_turno_codigo,
			c.codigo, c.descripcion, c.horas`).
		Order("p.fecha").
		Scan(&rows).Error
	return rows, err
}

func (r *planificacionRepo) ListAnioUsuario(ctx context.Context, idTrabajador, anio int) ([]dto.PlanCeldaJoinRow, error) {
	desde := time.Date(anio, time.January, 1, 0, 0, 0, 0, time.UTC)
	hasta := time.Date(anio, time.December, 31, 0, 0, 0, 0, time.UTC)
	return r.ListEntre(ctx, []int{idTrabajador}, desde, hasta)
}

func (r *planificacionRepo) Anios(ctx context.Context) ([]int, error) {
	var anios []int
	err := r.db.WithContext(ctx).
		Model(&model.PlanificacionAsignacion{}).
		Distinct().
		Pluck("EXTRACT(YEAR FROM fecha)::int AS anio", &anios).Error
	return anios, err
}

func (r *planificacionRepo) HorasPorMes(ctx context.Context, idTienda, anio int) ([]dto.HorasMesRow, error) {
	var rows []dto.HorasMesRow
	err := r.db.WithContext(ctx).
		Table("planificacion_asignaciones AS p").
		Joins("JOIN trabajadores t ON t.id_trabajador = p.id_trabajador").
		Joins("JOIN usuarios u ON u.id_usuario = p.id_trabajador").
		Joins("JOIN turnos_codigo c ON c.id_turno_codigo = p.id_turno_codigo").
		Where("t.id_tienda = ?", idTienda).
		Where("EXTRACT(YEAR FROM p.fecha) = ?", anio).
		Select(`p.id_trabajador, u.nombre,
			EXTRACT(MONTH FROM p.fecha)::int AS mes,
			COALESCE(SUM(c.horas), 0) AS horas`).
		Group("p.id_trabajador, u.nombre, mes").
		Order("u.nombre, mes").
		Scan(&rows).Error
	return rows, err
}
