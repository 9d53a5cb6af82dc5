package repository

import (
	"context"
	"errors"

	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/model"

	"gorm.io/gorm"
)

type CodigoRepository interface {
	Create(ctx context.Context, c *model.TurnoCodigo) error
	Update(ctx context.Context, id int, campos map[string]interface{}) error
	FindByID(ctx context.Context, id int) (*model.TurnoCodigo, error)
	// FindByCodigo returns nil when the code does not exist.
	FindByCodigo(ctx context.Context, codigo string) (*model.TurnoCodigo, error)
	ListActivos(ctx context.Context) ([]model.TurnoCodigo, error)
	// Desactivar soft-deletes the code. Returns rows affected so callers
	// can distinguish a missing id.
	Desactivar(ctx context.Context, id int) (int64, error)
}

type codigoRepo struct{ db *gorm.DB }

func NewCodigoRepository(db *gorm.DB) CodigoRepository { return &codigoRepo{db: db} }

func (r *codigoRepo) Create(ctx context.Context, c *model.TurnoCodigo) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *codigoRepo) Update(ctx context.Context, id int, campos map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.TurnoCodigo{}).
		Where("id_turno_codigo = ?", id).
		Updates(campos).Error
}

func (r *codigoRepo) FindByID(ctx context.Context, id int) (*model.TurnoCodigo, error) {
	var c model.TurnoCodigo
	err := r.db.WithContext(ctx).First(&c, "id_turno_codigo = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *codigoRepo) FindByCodigo(ctx context.Context, codigo string) (*model.TurnoCodigo, error) {
	var c model.TurnoCodigo
	err := r.db.WithContext(ctx).First(&c, "codigo = ?", codigo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *codigoRepo) ListActivos(ctx context.Context) ([]model.TurnoCodigo, error) {
	var codigos []model.TurnoCodigo
	err := r.db.WithContext(ctx).
		Where("activo = ?", true).
		Order("codigo").
		Find(&codigos).Error
	return codigos, err
}

func (r *codigoRepo) Desactivar(ctx context.Context, id int) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.TurnoCodigo{}).
		Where("id_turno_codigo = ?", id).
		Update("activo", false)
	return res.RowsAffected, res.Error
}
