package repository

import (
	"context"
	"errors"

	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/model"

	"gorm.io/gorm"
)

type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario) error
	FindByID(ctx context.Context, id int) (*model.Usuario, error)
	// FindByIdentificador looks up by email first, then by nombre.
	FindByIdentificador(ctx context.Context, identificador string) (*model.Usuario, error)
	List(ctx context.Context) ([]model.Usuario, error)
	UpdatePasswordHash(ctx context.Context, id int, hash string) (int64, error)
	UpdateRol(ctx context.Context, id int, rol string) error
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *usuarioRepo) FindByID(ctx context.Context, id int) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).First(&u, "id_usuario = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) FindByIdentificador(ctx context.Context, identificador string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).First(&u, "email = ?", identificador).Error
	if err == nil {
		return &u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	err = r.db.WithContext(ctx).First(&u, "nombre = ?", identificador).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) List(ctx context.Context) ([]model.Usuario, error) {
	var usuarios []model.Usuario
	err := r.db.WithContext(ctx).Order("id_usuario").Find(&usuarios).Error
	return usuarios, err
}

func (r *usuarioRepo) UpdatePasswordHash(ctx context.Context, id int, hash string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Usuario{}).
		Where("id_usuario = ?", id).
		Update("password_hash", hash)
	return res.RowsAffected, res.Error
}

func (r *usuarioRepo) UpdateRol(ctx context.Context, id int, rol string) error {
	return r.db.WithContext(ctx).Model(&model.Usuario{}).
		Where("id_usuario = ?", id).
		Update("rol", rol).Error
}
