package service

import (
	"context"
	"strings"

	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/apierror"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/authz"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/dto"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/model"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/repository"
)

type TiendaService interface {
	CrearTienda(ctx context.Context, req dto.CrearTiendaRequest) (*dto.TiendaResponse, error)
	ListarTiendas(ctx context.Context) ([]dto.TiendaResponse, error)
}

type tiendaService struct {
	tiendas  repository.TiendaRepository
	usuarios repository.UsuarioRepository
}

func NewTiendaService(tiendas repository.TiendaRepository, usuarios repository.UsuarioRepository) TiendaService {
	return &tiendaService{tiendas: tiendas, usuarios: usuarios}
}

func (s *tiendaService) CrearTienda(ctx context.Context, req dto.CrearTiendaRequest) (*dto.TiendaResponse, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return nil, apierror.Invalid("nombre es obligatorio")
	}

	tienda := &model.Tienda{Nombre: nombre, Direccion: req.Direccion, IDJefe: req.IDJefe}

	if req.IDJefe != nil {
		jefe, err := s.usuarios.FindByID(ctx, *req.IDJefe)
		if err != nil {
			return nil, apierror.NotFound("el jefe indicado no existe")
		}
		// A plain worker promoted to store lead becomes encargado.
		if !authz.IsAdmin(jefe.Rol) && !authz.IsEncargado(jefe.Rol) {
			if err := s.usuarios.UpdateRol(ctx, jefe.ID, "encargado"); err != nil {
				return nil, err
			}
		}
	}

	if err := s.tiendas.Create(ctx, tienda); err != nil {
		return nil, err
	}
	return tiendaToResponse(tienda), nil
}

func (s *tiendaService) ListarTiendas(ctx context.Context) ([]dto.TiendaResponse, error) {
	tiendas, err := s.tiendas.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TiendaResponse, len(tiendas))
	for i := range tiendas {
		resp[i] = *tiendaToResponse(&tiendas[i])
	}
	return resp, nil
}

func tiendaToResponse(t *model.Tienda) *dto.TiendaResponse {
	return &dto.TiendaResponse{ID: t.ID, Nombre: t.Nombre, Direccion: t.Direccion, IDJefe: t.IDJefe}
}
