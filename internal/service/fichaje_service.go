package service

import (
	"context"
	"fmt"
	"time"

	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/apierror"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/authz"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/dto"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/model"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/repository"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/timeutil"
)

type FichajeService interface {
	// Fichar records a clock-in or clock-out for today. Workers clock
	// themselves; managers may clock their staff.
	Fichar(ctx context.Context, p authz.Principal, req dto.FicharRequest) (*dto.FichajeResponse, error)
	// FicharManual creates or corrects a record on any date. Manager only.
	FicharManual(ctx context.Context, p authz.Principal, req dto.FichajeManualRequest) (*dto.FichajeResponse, error)
	FichajeHoy(ctx context.Context, p authz.Principal, idTrabajador int) (*dto.FichajeResponse, error)
	ListarFichajes(ctx context.Context, p authz.Principal, idTrabajador int, desde, hasta string) ([]dto.FichajeResponse, error)
}

type fichajeService struct {
	fichajes repository.FichajeRepository
	auth     *authz.Authorizer
	now      func() time.Time
}

func NewFichajeService(fichajes repository.FichajeRepository, auth *authz.Authorizer) FichajeService {
	return &fichajeService{fichajes: fichajes, auth: auth, now: time.Now}
}

func (s *fichajeService) puedeVer(ctx context.Context, p authz.Principal, idTrabajador int) error {
	if p.UID == idTrabajador {
		return nil
	}
	if s.auth == nil {
		return apierror.Forbidden("no puedes acceder a los fichajes de otro trabajador")
	}
	ok, err := s.auth.CanManageWorker(ctx, p, idTrabajador)
	if err != nil {
		return apierror.NotFound("trabajador no encontrado")
	}
	if !ok {
		return apierror.Forbidden("no puedes acceder a los fichajes de otro trabajador")
	}
	return nil
}

func (s *fichajeService) Fichar(ctx context.Context, p authz.Principal, req dto.FicharRequest) (*dto.FichajeResponse, error) {
	if err := s.puedeVer(ctx, p, req.IDTrabajador); err != nil {
		return nil, err
	}

	ahora := s.now()
	hoy := time.Date(ahora.Year(), ahora.Month(), ahora.Day(), 0, 0, 0, 0, time.UTC)
	hora := fmt.Sprintf("%02d:%02d", ahora.Hour(), ahora.Minute())

	registro, err := s.fichajes.FindByFecha(ctx, req.IDTrabajador, hoy)
	if err != nil {
		return nil, err
	}

	switch req.Tipo {
	case "entrada":
		if registro != nil && registro.HoraEntrada != nil {
			return nil, apierror.Conflict("ya has fichado la entrada hoy")
		}
		if registro == nil {
			registro = &model.Fichaje{IDTrabajador: req.IDTrabajador, Fecha: hoy, Fuente: "fichaje"}
			registro.HoraEntrada = &hora
			if err := s.fichajes.Create(ctx, registro); err != nil {
				return nil, err
			}
			return fichajeToResponse(registro), nil
		}
		registro.HoraEntrada = &hora
	case "salida":
		if registro == nil || registro.HoraEntrada == nil {
			return nil, apierror.Invalid("no puedes fichar la salida sin haber fichado la entrada")
		}
		if registro.HoraSalida != nil {
			return nil, apierror.Conflict("ya has fichado la salida hoy")
		}
		registro.HoraSalida = &hora
	default:
		return nil, apierror.Invalid("tipo debe ser entrada o salida")
	}

	if err := s.fichajes.Update(ctx, registro); err != nil {
		return nil, err
	}
	return fichajeToResponse(registro), nil
}

func (s *fichajeService) FicharManual(ctx context.Context, p authz.Principal, req dto.FichajeManualRequest) (*dto.FichajeResponse, error) {
	if s.auth == nil {
		return nil, apierror.Forbidden("solo un encargado puede registrar fichajes manuales")
	}
	ok, err := s.auth.CanManageWorker(ctx, p, req.IDTrabajador)
	if err != nil {
		return nil, apierror.NotFound("trabajador no encontrado")
	}
	if !ok {
		return nil, apierror.Forbidden("solo un encargado puede registrar fichajes manuales")
	}

	fecha, err := timeutil.ParseDate(req.Fecha)
	if err != nil {
		return nil, apierror.Invalid("fecha inválida, se espera YYYY-MM-DD")
	}

	entrada, salida, err := normalizarHoras(req.HoraEntrada, req.HoraSalida)
	if err != nil {
		return nil, err
	}

	registro, err := s.fichajes.FindByFecha(ctx, req.IDTrabajador, fecha)
	if err != nil {
		return nil, err
	}
	if registro == nil {
		registro = &model.Fichaje{IDTrabajador: req.IDTrabajador, Fecha: fecha}
	}
	if entrada != nil {
		registro.HoraEntrada = entrada
	}
	if salida != nil {
		registro.HoraSalida = salida
	}
	registro.Fuente = "manual"

	if registro.ID == 0 {
		err = s.fichajes.Create(ctx, registro)
	} else {
		err = s.fichajes.Update(ctx, registro)
	}
	if err != nil {
		return nil, err
	}
	return fichajeToResponse(registro), nil
}

func normalizarHoras(entrada, salida *string) (*string, *string, error) {
	var e, sal *string
	if entrada != nil && *entrada != "" {
		norm, ok := timeutil.NormalizeTime(*entrada)
		if !ok {
			return nil, nil, apierror.Invalid("hora_entrada inválida, se espera HH:MM")
		}
		e = &norm
	}
	if salida != nil && *salida != "" {
		norm, ok := timeutil.NormalizeTime(*salida)
		if !ok {
			return nil, nil, apierror.Invalid("hora_salida inválida, se espera HH:MM")
		}
		sal = &norm
	}
	if e == nil && sal == nil {
		return nil, nil, apierror.Invalid("se requiere hora_entrada o hora_salida")
	}
	return e, sal, nil
}

func (s *fichajeService) FichajeHoy(ctx context.Context, p authz.Principal, idTrabajador int) (*dto.FichajeResponse, error) {
	if err := s.puedeVer(ctx, p, idTrabajador); err != nil {
		return nil, err
	}
	ahora := s.now()
	hoy := time.Date(ahora.Year(), ahora.Month(), ahora.Day(), 0, 0, 0, 0, time.UTC)
	registro, err := s.fichajes.FindByFecha(ctx, idTrabajador, hoy)
	if err != nil {
		return nil, err
	}
	if registro == nil {
		return nil, nil
	}
	return fichajeToResponse(registro), nil
}

func (s *fichajeService) ListarFichajes(ctx context.Context, p authz.Principal, idTrabajador int, desde, hasta string) ([]dto.FichajeResponse, error) {
	if err := s.puedeVer(ctx, p, idTrabajador); err != nil {
		return nil, err
	}

	ahora := s.now()
	// Default range: the current month so far.
	d := time.Date(ahora.Year(), ahora.Month(), 1, 0, 0, 0, 0, time.UTC)
	h := time.Date(ahora.Year(), ahora.Month(), ahora.Day(), 0, 0, 0, 0, time.UTC)
	var err error
	if desde != "" {
		if d, err = timeutil.ParseDate(desde); err != nil {
			return nil, apierror.Invalid("desde inválido, se espera YYYY-MM-DD")
		}
	}
	if hasta != "" {
		if h, err = timeutil.ParseDate(hasta); err != nil {
			return nil, apierror.Invalid("hasta inválido, se espera YYYY-MM-DD")
		}
	}

	registros, err := s.fichajes.ListEntre(ctx, idTrabajador, d, h)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.FichajeResponse, len(registros))
	for i := range registros {
		resp[i] = *fichajeToResponse(&registros[i])
	}
	return resp, nil
}

func fichajeToResponse(f *model.Fichaje) *dto.FichajeResponse {
	return &dto.FichajeResponse{
		IDFichaje:    f.ID,
		IDTrabajador: f.IDTrabajador,
		Fecha:        timeutil.FormatDate(f.Fecha),
		HoraEntrada:  f.HoraEntrada,
		HoraSalida:   f.HoraSalida,
		Fuente:       f.Fuente,
	}
}
