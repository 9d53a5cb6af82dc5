package service

import (
	"context"
	"strings"
	"time"

	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/apierror"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/dto"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/model"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/repository"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/timeutil"

	"golang.org/x/crypto/bcrypt"
)

type UsuarioService interface {
	CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
	ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error)
	// CrearTrabajador attaches an existing user to a store. The worker id
	// is the user id.
	CrearTrabajador(ctx context.Context, req dto.CrearTrabajadorRequest) error
	ListarEmpleados(ctx context.Context, idTienda int) ([]dto.EmpleadoResponse, error)
}

type usuarioService struct {
	usuarios     repository.UsuarioRepository
	trabajadores repository.TrabajadorRepository
	tiendas      repository.TiendaRepository
}

func NewUsuarioService(
	usuarios repository.UsuarioRepository,
	trabajadores repository.TrabajadorRepository,
	tiendas repository.TiendaRepository,
) UsuarioService {
	return &usuarioService{usuarios: usuarios, trabajadores: trabajadores, tiendas: tiendas}
}

func (s *usuarioService) CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	user := &model.Usuario{
		Nombre: strings.TrimSpace(req.Nombre),
		Rol:    req.Rol,
	}
	if user.Nombre == "" {
		return nil, apierror.Invalid("nombre es obligatorio")
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email != "" {
			user.Email = &email
		}
	}
	// Password is optional: an empty hash sends the account through the
	// first-login setup flow.
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), 12)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if err := s.usuarios.Create(ctx, user); err != nil {
		return nil, apierror.Conflict("no se pudo crear el usuario, email duplicado?")
	}
	return &dto.UsuarioResponse{ID: user.ID, Nombre: user.Nombre, Email: user.Email, Rol: user.Rol}, nil
}

func (s *usuarioService) ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error) {
	users, err := s.usuarios.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsuarioResponse, len(users))
	for i, u := range users {
		resp[i] = dto.UsuarioResponse{ID: u.ID, Nombre: u.Nombre, Email: u.Email, Rol: u.Rol}
	}
	return resp, nil
}

func (s *usuarioService) CrearTrabajador(ctx context.Context, req dto.CrearTrabajadorRequest) error {
	if _, err := s.usuarios.FindByID(ctx, req.IDUsuario); err != nil {
		return apierror.NotFound("usuario no encontrado")
	}
	if _, err := s.tiendas.FindByID(ctx, req.IDTienda); err != nil {
		return apierror.NotFound("tienda no encontrada")
	}

	fechaAlta := time.Now().UTC().Truncate(24 * time.Hour)
	if req.FechaAlta != nil && *req.FechaAlta != "" {
		parsed, err := timeutil.ParseDate(*req.FechaAlta)
		if err != nil {
			return apierror.Invalid("fecha_alta inválida, se espera YYYY-MM-DD")
		}
		fechaAlta = parsed
	}

	trabajador := &model.Trabajador{
		ID:        req.IDUsuario,
		IDTienda:  req.IDTienda,
		FechaAlta: fechaAlta,
	}
	if err := s.trabajadores.Create(ctx, trabajador); err != nil {
		return apierror.Conflict("el usuario ya está dado de alta como trabajador")
	}
	return nil
}

func (s *usuarioService) ListarEmpleados(ctx context.Context, idTienda int) ([]dto.EmpleadoResponse, error) {
	if idTienda <= 0 {
		return nil, apierror.Invalid("id_tienda inválido")
	}
	return s.trabajadores.ListByTienda(ctx, idTienda)
}
