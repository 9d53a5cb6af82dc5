package service

import (
	"context"

	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/apierror"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/authz"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/dto"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/model"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/repository"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/timeutil"

	"gorm.io/gorm"
)

type AsignacionService interface {
	// CrearAsignacion assigns a worker to a shift on a date. The quota
	// check and the insert run in one transaction so concurrent requests
	// cannot overbook the shift.
	CrearAsignacion(ctx context.Context, p authz.Principal, req dto.CrearAsignacionRequest) (*dto.AsignacionResponse, error)
	EliminarAsignacion(ctx context.Context, p authz.Principal, req dto.EliminarAsignacionRequest) error
	AsignacionesSemana(ctx context.Context, idTienda int, semana string) (*dto.AsignacionesSemanaResponse, error)
}

type asignacionService struct {
	asignaciones   repository.AsignacionRepository
	turnos         repository.TurnoRepository
	trabajadores   repository.TrabajadorRepository
	requerimientos repository.RequerimientoRepository
	auth           *authz.Authorizer
}

func NewAsignacionService(
	asignaciones repository.AsignacionRepository,
	turnos repository.TurnoRepository,
	trabajadores repository.TrabajadorRepository,
	requerimientos repository.RequerimientoRepository,
	auth *authz.Authorizer,
) AsignacionService {
	return &asignacionService{
		asignaciones:   asignaciones,
		turnos:         turnos,
		trabajadores:   trabajadores,
		requerimientos: requerimientos,
		auth:           auth,
	}
}

func (s *asignacionService) CrearAsignacion(ctx context.Context, p authz.Principal, req dto.CrearAsignacionRequest) (*dto.AsignacionResponse, error) {
	fecha, err := timeutil.ParseDate(req.Fecha)
	if err != nil {
		return nil, apierror.Invalid("fecha inválida, se espera YYYY-MM-DD")
	}

	turno, err := s.turnos.FindByID(ctx, req.IDTurno)
	if err != nil {
		return nil, apierror.NotFound("turno no encontrado")
	}
	trabajador, err := s.trabajadores.FindByID(ctx, req.IDTrabajador)
	if err != nil {
		return nil, apierror.NotFound("trabajador no encontrado")
	}
	if trabajador.IDTienda != turno.IDTienda {
		return nil, apierror.Invalid("el trabajador no pertenece a la tienda del turno")
	}

	if s.auth != nil {
		ok, err := s.auth.CanManageStore(ctx, p, turno.IDTienda)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apierror.Forbidden("no puedes gestionar esta tienda")
		}
	}

	asignadoPor := p.UID
	asignacion := &model.AsignacionTurno{
		IDTrabajador: req.IDTrabajador,
		IDTurno:      req.IDTurno,
		Fecha:        fecha,
		AsignadoPor:  &asignadoPor,
	}

	txErr := runTx(ctx, s.asignaciones.DB(), func(tx *gorm.DB) error {
		existe, err := s.asignaciones.ExistsTx(ctx, tx, req.IDTrabajador, req.IDTurno, fecha)
		if err != nil {
			return err
		}
		if existe {
			return apierror.Conflict("el trabajador ya tiene asignado este turno en esa fecha")
		}

		requerimiento, err := s.requerimientos.FindTx(ctx, tx, req.IDTurno, fecha)
		if err != nil {
			return err
		}
		if requerimiento == nil || requerimiento.Cantidad <= 0 {
			return apierror.Invalid("debes definir primero la cantidad requerida de trabajadores para ese turno y fecha")
		}

		ocupadas, err := s.asignaciones.CountTx(ctx, tx, req.IDTurno, fecha)
		if err != nil {
			return err
		}
		if ocupadas >= int64(requerimiento.Cantidad) {
			return apierror.CapacityExceeded("ya se alcanzó la cantidad requerida de trabajadores para este turno")
		}

		return s.asignaciones.CreateTx(ctx, tx, asignacion)
	})
	if txErr != nil {
		return nil, txErr
	}

	nombre := ""
	if trabajador.Usuario != nil {
		nombre = trabajador.Usuario.Nombre
	}
	return &dto.AsignacionResponse{
		IDAsignacion:     asignacion.ID,
		IDTrabajador:     asignacion.IDTrabajador,
		NombreTrabajador: nombre,
		IDTurno:          asignacion.IDTurno,
		Fecha:            timeutil.FormatDate(fecha),
	}, nil
}

func (s *asignacionService) EliminarAsignacion(ctx context.Context, p authz.Principal, req dto.EliminarAsignacionRequest) error {
	asignacion, err := s.asignaciones.FindByID(ctx, req.IDAsignacion)
	if err != nil {
		return apierror.NotFound("asignación no encontrada")
	}
	turno, err := s.turnos.FindByID(ctx, asignacion.IDTurno)
	if err != nil {
		return apierror.NotFound("turno no encontrado")
	}

	if s.auth != nil {
		ok, err := s.auth.CanManageStore(ctx, p, turno.IDTienda)
		if err != nil {
			return err
		}
		if !ok {
			return apierror.Forbidden("no puedes gestionar esta tienda")
		}
	}

	return s.asignaciones.Delete(ctx, req.IDAsignacion)
}

func (s *asignacionService) AsignacionesSemana(ctx context.Context, idTienda int, semana string) (*dto.AsignacionesSemanaResponse, error) {
	ref, err := timeutil.ParseDate(semana)
	if err != nil {
		return nil, apierror.Invalid("semana inválida, se espera YYYY-MM-DD")
	}
	dias := timeutil.WeekDates(timeutil.MondayOf(ref))

	turnos, err := s.turnos.ListPorTienda(ctx, idTienda)
	if err != nil {
		return nil, err
	}
	turnoIDs := make([]int, len(turnos))
	turnosResp := make([]dto.TurnoResponse, len(turnos))
	for i := range turnos {
		turnoIDs[i] = turnos[i].ID
		turnosResp[i] = turnoToResponse(&turnos[i])
	}

	rows, err := s.asignaciones.ListSemana(ctx, turnoIDs, dias)
	if err != nil {
		return nil, err
	}
	asignaciones := make([]dto.AsignacionResponse, len(rows))
	for i, r := range rows {
		asignaciones[i] = dto.AsignacionResponse{
			IDAsignacion:     r.IDAsignacion,
			IDTrabajador:     r.IDTrabajador,
			NombreTrabajador: r.NombreTrabajador,
			IDTurno:          r.IDTurno,
			Fecha:            timeutil.FormatDate(r.Fecha),
		}
	}

	fechas := make([]string, len(dias))
	for i, d := range dias {
		fechas[i] = timeutil.FormatDate(d)
	}

	return &dto.AsignacionesSemanaResponse{
		Turnos:       turnosResp,
		Asignaciones: asignaciones,
		Fechas:       fechas,
	}, nil
}
