package service

import (
	"context"
	"strings"

	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/model"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/repository"

	"github.com/shopspring/decimal"
)

// horasTolerancia is the minimum difference, in hours, before a catalog
// row's hours are rewritten from a template change.
var horasTolerancia = decimal.NewFromFloat(0.01)

// SyncResult reports what the catalog sync did with one payload.
type SyncResult struct {
	Created bool `json:"created"`
	Updated bool `json:"updated"`
	Skipped bool `json:"skipped"`
}

// SyncService mirrors shift template codes into the planning catalog.
// It is best-effort by contract: a disabled catalog or an empty code is
// a skip, never an error, and callers never fail on its account.
type SyncService interface {
	SyncCodigoTurno(ctx context.Context, payload SyncCodigoPayload) (*SyncResult, error)
}

type syncService struct {
	codigos repository.CodigoRepository
	// catalogDisponible is resolved once at startup from the schema.
	catalogDisponible bool
}

func NewSyncService(codigos repository.CodigoRepository, catalogDisponible bool) SyncService {
	return &syncService{codigos: codigos, catalogDisponible: catalogDisponible}
}

func (s *syncService) SyncCodigoTurno(ctx context.Context, payload SyncCodigoPayload) (*SyncResult, error) {
	if !s.catalogDisponible {
		return &SyncResult{Skipped: true}, nil
	}
	codigo := strings.ToUpper(strings.TrimSpace(payload.Codigo))
	if codigo == "" {
		return &SyncResult{Skipped: true}, nil
	}

	horas := decimal.NewFromInt(int64(payload.DuracionMinutos)).
		Div(decimal.NewFromInt(60)).
		Round(2)
	if horas.IsNegative() {
		horas = decimal.Zero
	}

	existente, err := s.codigos.FindByCodigo(ctx, codigo)
	if err != nil {
		return nil, err
	}

	if existente == nil {
		nuevo := &model.TurnoCodigo{
			Codigo:      codigo,
			Descripcion: payload.Descripcion,
			Horas:       horas,
			Activo:      true,
		}
		if err := s.codigos.Create(ctx, nuevo); err != nil {
			return nil, err
		}
		return &SyncResult{Created: true}, nil
	}

	campos := map[string]interface{}{}
	if horas.IsPositive() && existente.Horas.Sub(horas).Abs().GreaterThanOrEqual(horasTolerancia) {
		campos["horas"] = horas
	}
	if existente.Descripcion == "" && payload.Descripcion != "" {
		campos["descripcion"] = payload.Descripcion
	}
	if !existente.Activo {
		campos["activo"] = true
	}
	if len(campos) == 0 {
		return &SyncResult{Skipped: true}, nil
	}
	if err := s.codigos.Update(ctx, existente.ID, campos); err != nil {
		return nil, err
	}
	return &SyncResult{Updated: true}, nil
}
