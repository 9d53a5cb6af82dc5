// Package authz centralizes role and store-ownership checks so handlers
// and services share a single policy surface.
package authz

import (
	"context"

	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/repository"
)

// Principal is the authenticated caller as decoded from the JWT.
type Principal struct {
	UID    int
	Rol    string
	Nombre string
}

// IsAdmin accepts both role spellings found in legacy user rows.
func IsAdmin(rol string) bool {
	return rol == "admin" || rol == "administrador"
}

// IsEncargado accepts the manager role and its legacy alias.
func IsEncargado(rol string) bool {
	return rol == "encargado" || rol == "jefe"
}

// Authorizer answers store-scoped questions that need repository lookups.
type Authorizer struct {
	tiendas      repository.TiendaRepository
	trabajadores repository.TrabajadorRepository
}

func NewAuthorizer(tiendas repository.TiendaRepository, trabajadores repository.TrabajadorRepository) *Authorizer {
	return &Authorizer{tiendas: tiendas, trabajadores: trabajadores}
}

// CanManageStore reports whether p may manage idTienda: admins always,
// managers only for the store they lead.
func (a *Authorizer) CanManageStore(ctx context.Context, p Principal, idTienda int) (bool, error) {
	if IsAdmin(p.Rol) {
		return true, nil
	}
	if !IsEncargado(p.Rol) {
		return false, nil
	}
	tienda, err := a.tiendas.FindByID(ctx, idTienda)
	if err != nil {
		return false, err
	}
	return tienda.IDJefe != nil && *tienda.IDJefe == p.UID, nil
}

// CanManageWorker resolves the worker's store and delegates to
// CanManageStore.
func (a *Authorizer) CanManageWorker(ctx context.Context, p Principal, idTrabajador int) (bool, error) {
	if IsAdmin(p.Rol) {
		return true, nil
	}
	trabajador, err := a.trabajadores.FindByID(ctx, idTrabajador)
	if err != nil {
		return false, err
	}
	return a.CanManageStore(ctx, p, trabajador.IDTienda)
}
