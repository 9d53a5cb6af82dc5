package repository

import (
	"context"
	"errors"

	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/model"

	"gorm.io/gorm"
)

type TurnoRepository interface {
	// CreateTx inserts the shift and its segments inside the caller's
	// transaction.
	CreateTx(ctx context.Context, tx *gorm.DB, t *model.Turno) error
	FindByID(ctx context.Context, id int) (*model.Turno, error)
	FindPorTiendaYCodigo(ctx context.Context, idTienda int, codigo string) (*model.Turno, error)
	ListPorTienda(ctx context.Context, idTienda int) ([]model.Turno, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type turnoRepo struct{ db *gorm.DB }

func NewTurnoRepository(db *gorm.DB) TurnoRepository { return &turnoRepo{db: db} }

func (r *turnoRepo) DB() *gorm.DB { return r.db }

func (r *turnoRepo) CreateTx(ctx context.Context, tx *gorm.DB, t *model.Turno) error {
	return tx.WithContext(ctx).Create(t).Error
}

func (r *turnoRepo) FindByID(ctx context.Context, id int) (*model.Turno, error) {
	var t model.Turno
	err := r.db.WithContext(ctx).
		Preload("Tramos", func(db *gorm.DB) *gorm.DB { return db.Order("orden") }).
		First(&t, "id_turno = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *turnoRepo) FindPorTiendaYCodigo(ctx context.Context, idTienda int, codigo string) (*model.Turno, error) {
	var t model.Turno
	err := r.db.WithContext(ctx).
		First(&t, "id_tienda = ? AND codigo = ?", idTienda, codigo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *turnoRepo) ListPorTienda(ctx context.Context, idTienda int) ([]model.Turno, error) {
	var turnos []model.Turno
	err := r.db.WithContext(ctx).
		Preload("Tramos", func(db *gorm.DB) *gorm.DB { return db.Order("orden") }).
		Where("id_tienda = ?", idTienda).
		Order("id_turno").
		Find(&turnos).Error
	return turnos, err
}

type TipoTurnoRepository interface {
	List(ctx context.Context) ([]model.TipoTurno, error)
}

type tipoTurnoRepo struct{ db *gorm.DB }

func NewTipoTurnoRepository(db *gorm.DB) TipoTurnoRepository { return &tipoTurnoRepo{db: db} }

func (r *tipoTurnoRepo) List(ctx context.Context) ([]model.TipoTurno, error) {
	var tipos []model.TipoTurno
	err := r.db.WithContext(ctx).Order("id_tipo_turno").Find(&tipos).Error
	return tipos, err
}
