package service

import (
	"context"
	"sort"
	"time"

	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/apierror"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/dto"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/model"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/repository"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/timeutil"

	"github.com/shopspring/decimal"
)

// defaultPlanStartMinutes anchors synthesized plan slots at 09:00 when no
// template matches the code's duration.
const defaultPlanStartMinutes = 9 * 60

type HorarioService interface {
	// HorarioSemana composes the store's weekly schedule from direct
	// shift assignments and annual plan cells. Direct assignments win:
	// a (worker, date) pair covered by one never takes a plan entry.
	HorarioSemana(ctx context.Context, idTienda int, semana string) (*dto.HorarioSemanaResponse, error)
}

type horarioService struct {
	turnos       repository.TurnoRepository
	asignaciones repository.AsignacionRepository
	trabajadores repository.TrabajadorRepository
	plan         repository.PlanificacionRepository
}

func NewHorarioService(
	turnos repository.TurnoRepository,
	asignaciones repository.AsignacionRepository,
	trabajadores repository.TrabajadorRepository,
	plan repository.PlanificacionRepository,
) HorarioService {
	return &horarioService{turnos: turnos, asignaciones: asignaciones, trabajadores: trabajadores, plan: plan}
}

func (s *horarioService) HorarioSemana(ctx context.Context, idTienda int, semana string) (*dto.HorarioSemanaResponse, error) {
	if idTienda <= 0 {
		return nil, apierror.Invalid("id_tienda inválido")
	}
	ref, err := timeutil.ParseDate(semana)
	if err != nil {
		return nil, apierror.Invalid("semana inválida, se espera YYYY-MM-DD")
	}
	lunes := timeutil.MondayOf(ref)
	dias := timeutil.WeekDates(lunes)

	empleados, err := s.trabajadores.ListByTienda(ctx, idTienda)
	if err != nil {
		return nil, err
	}
	nombrePor := make(map[int]string, len(empleados))
	empleadoIDs := make([]int, len(empleados))
	for i, e := range empleados {
		nombrePor[e.IDTrabajador] = e.Nombre
		empleadoIDs[i] = e.IDTrabajador
	}

	turnos, err := s.turnos.ListPorTienda(ctx, idTienda)
	if err != nil {
		return nil, err
	}
	turnoIDs := make([]int, len(turnos))
	for i := range turnos {
		turnoIDs[i] = turnos[i].ID
	}

	entradas := make([]dto.HorarioEntrada, 0)
	// cubierto marks (trabajador, fecha) pairs taken by a direct
	// assignment so plan cells never duplicate them.
	cubierto := make(map[[2]int]bool)

	directas, err := s.asignaciones.ListSemana(ctx, turnoIDs, dias)
	if err != nil {
		return nil, err
	}
	for _, d := range directas {
		idTurno := d.IDTurno
		entradas = append(entradas, dto.HorarioEntrada{
			IDTrabajador:     d.IDTrabajador,
			NombreTrabajador: d.NombreTrabajador,
			IDTurno:          &idTurno,
			Fecha:            timeutil.FormatDate(d.Fecha),
			HoraInicio:       timeutil.NormalizeOrKeep(d.HoraInicio),
			HoraFin:          timeutil.NormalizeOrKeep(d.HoraFin),
			Origen:           "turno",
		})
		cubierto[[2]int{d.IDTrabajador, diaOrdinal(d.Fecha)}] = true
	}

	celdas, err := s.plan.ListEntre(ctx, empleadoIDs, dias[0], dias[6])
	if err != nil {
		return nil, err
	}
	for _, c := range celdas {
		if cubierto[[2]int{c.IDTrabajador, diaOrdinal(c.Fecha)}] {
			continue
		}
		// Zero-hour codes (days off, absences) carry no working slot.
		if !c.Horas.IsPositive() {
			continue
		}
		inicio, fin := s.resolverFranja(turnos, c.Horas)
		codigo := c.Codigo
		idCodigo := c.IDTurnoCodigo
		entradas = append(entradas, dto.HorarioEntrada{
			IDTrabajador:     c.IDTrabajador,
			NombreTrabajador: nombrePor[c.IDTrabajador],
			Fecha:            timeutil.FormatDate(c.Fecha),
			HoraInicio:       inicio,
			HoraFin:          fin,
			IDTurnoCodigo:    &idCodigo,
			Codigo:           &codigo,
			Origen:           "plan",
		})
	}

	sort.SliceStable(entradas, func(i, j int) bool {
		if entradas[i].Fecha != entradas[j].Fecha {
			return entradas[i].Fecha < entradas[j].Fecha
		}
		if entradas[i].HoraInicio != entradas[j].HoraInicio {
			return entradas[i].HoraInicio < entradas[j].HoraInicio
		}
		return entradas[i].NombreTrabajador < entradas[j].NombreTrabajador
	})

	return &dto.HorarioSemanaResponse{
		Tienda:       idTienda,
		SemanaInicio: timeutil.FormatDate(dias[0]),
		SemanaFin:    timeutil.FormatDate(dias[6]),
		Empleados:    empleados,
		Asignaciones: entradas,
	}, nil
}

// resolverFranja picks the time window for a plan cell: a store template
// whose duration matches the code's hours, preferring day shifts from
// 09:00 on, then the earliest start. Without a match it synthesizes a
// 09:00 slot, clamped to 23:59.
func (s *horarioService) resolverFranja(turnos []model.Turno, horas decimal.Decimal) (string, string) {
	objetivo := int(horas.Mul(decimal.NewFromInt(60)).Round(0).IntPart())

	mejorDia := -1     // earliest start at or after 09:00
	mejorCualquier := -1 // earliest start overall
	var diaT, cualquierT *model.Turno

	for i := range turnos {
		t := &turnos[i]
		if duracionTotal(t.Tramos) != objetivo {
			continue
		}
		inicio := timeutil.ToMinutes(t.HoraInicio)
		if inicio < 0 {
			continue
		}
		if inicio >= defaultPlanStartMinutes && (mejorDia < 0 || inicio < mejorDia) {
			mejorDia = inicio
			diaT = t
		}
		if mejorCualquier < 0 || inicio < mejorCualquier {
			mejorCualquier = inicio
			cualquierT = t
		}
	}

	elegido := diaT
	if elegido == nil {
		elegido = cualquierT
	}
	if elegido != nil {
		return timeutil.NormalizeOrKeep(elegido.HoraInicio), timeutil.NormalizeOrKeep(elegido.HoraFin)
	}

	if objetivo <= 0 {
		objetivo = 0
	}
	inicio := defaultPlanStartMinutes
	fin := inicio + objetivo
	return timeutil.MinutesToClock(inicio), timeutil.MinutesToClock(fin)
}

// diaOrdinal keys a date for the coverage map without allocating strings.
func diaOrdinal(t time.Time) int {
	return t.Year()*1000 + t.YearDay()
}
