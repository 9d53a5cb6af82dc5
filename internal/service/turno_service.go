package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/apierror"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/authz"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/dto"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/model"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/repository"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/timeutil"

	"gorm.io/gorm"
)

const (
	// Segment boundaries snap to the half hour.
	tramoAlignMinutes = 30
	// A template never exceeds a working day of 8 hours.
	maxDuracionMinutos = 480
)

// Codes are stored uppercased; only letters and digits, 8 chars max.
var codigoTurnoRe = regexp.MustCompile(`^[A-Z0-9]{1,8}$`)

// SyncNotifier queues a catalog sync after a shift template changes.
// Delivery is best-effort: enqueue failures never fail the caller.
type SyncNotifier interface {
	EnqueueSyncCodigo(ctx context.Context, payload SyncCodigoPayload) error
}

// SyncCodigoPayload is the job body for the catalog sync queue.
type SyncCodigoPayload struct {
	Codigo          string `json:"codigo"`
	Descripcion     string `json:"descripcion"`
	DuracionMinutos int    `json:"duracion_minutos"`
}

type TurnoService interface {
	CrearTurno(ctx context.Context, p authz.Principal, req dto.CrearTurnoRequest) (*dto.CrearTurnoResponse, error)
	ListarPorTienda(ctx context.Context, idTienda int) ([]dto.TurnoResponse, error)
	ListarTipos(ctx context.Context) ([]dto.TipoTurnoResponse, error)
	GuardarRequerimiento(ctx context.Context, p authz.Principal, req dto.RequerimientoRequest) (*dto.RequerimientoResponse, error)
	// RequerimientosSemana returns the staffing grid for the week that
	// contains the given date: the store's templates, the seven dates and
	// every quota row.
	RequerimientosSemana(ctx context.Context, idTienda int, semana string) (*dto.RequerimientosSemanaResponse, error)
}

type turnoService struct {
	turnos         repository.TurnoRepository
	tipos          repository.TipoTurnoRepository
	requerimientos repository.RequerimientoRepository
	auth           *authz.Authorizer
	sync           SyncNotifier
}

func NewTurnoService(
	turnos repository.TurnoRepository,
	tipos repository.TipoTurnoRepository,
	requerimientos repository.RequerimientoRepository,
	auth *authz.Authorizer,
	sync SyncNotifier,
) TurnoService {
	return &turnoService{turnos: turnos, tipos: tipos, requerimientos: requerimientos, auth: auth, sync: sync}
}

func (s *turnoService) puedeGestionarTienda(ctx context.Context, p authz.Principal, idTienda int) error {
	if s.auth == nil {
		return nil
	}
	ok, err := s.auth.CanManageStore(ctx, p, idTienda)
	if err != nil {
		return apierror.NotFound("tienda no encontrada")
	}
	if !ok {
		return apierror.Forbidden("no puedes gestionar esta tienda")
	}
	return nil
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── CrearTurno ───────────────────────────────────────────────────────────────

func (s *turnoService) CrearTurno(ctx context.Context, p authz.Principal, req dto.CrearTurnoRequest) (*dto.CrearTurnoResponse, error) {
	if err := s.puedeGestionarTienda(ctx, p, req.IDTienda); err != nil {
		return nil, err
	}

	codigo := strings.ToUpper(strings.TrimSpace(req.Codigo))
	if codigo == "" {
		return nil, apierror.Invalid("codigo es obligatorio")
	}
	if !codigoTurnoRe.MatchString(codigo) {
		return nil, apierror.Invalid("codigo debe ser alfanumérico (A-Z, 0-9) de hasta 8 caracteres")
	}

	// Legacy clients send a flat hora_inicio/hora_fin pair.
	tramosReq := req.Tramos
	if len(tramosReq) == 0 {
		if req.HoraInicio == "" || req.HoraFin == "" {
			return nil, apierror.Invalid("se requiere al menos un tramo")
		}
		tramosReq = []dto.TramoRequest{{HoraInicio: req.HoraInicio, HoraFin: req.HoraFin}}
	}

	tramos, err := validarTramos(tramosReq)
	if err != nil {
		return nil, err
	}

	existente, err := s.turnos.FindPorTiendaYCodigo(ctx, req.IDTienda, codigo)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, apierror.Conflict(fmt.Sprintf("ya existe un turno con código %s en la tienda", codigo))
	}

	turno := &model.Turno{
		IDTienda:    req.IDTienda,
		IDTipoTurno: req.IDTipoTurno,
		Codigo:      codigo,
		Descripcion: req.Descripcion,
		HoraInicio:  tramos[0].HoraInicio,
		HoraFin:     tramos[len(tramos)-1].HoraFin,
		Tramos:      tramos,
	}

	txErr := runTx(ctx, s.turnos.DB(), func(tx *gorm.DB) error {
		return s.turnos.CreateTx(ctx, tx, turno)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Best effort: the weekly planner keeps working even when the catalog
	// sync queue is down.
	if s.sync != nil {
		_ = s.sync.EnqueueSyncCodigo(ctx, SyncCodigoPayload{
			Codigo:          codigo,
			Descripcion:     req.Descripcion,
			DuracionMinutos: duracionTotal(tramos),
		})
	}

	return &dto.CrearTurnoResponse{Mensaje: "Turno creado correctamente", IDTurno: turno.ID}, nil
}

// validarTramos normalizes and orders the segments. Boundaries must snap
// to the half hour, segments must not overlap and never cross midnight.
func validarTramos(reqs []dto.TramoRequest) ([]model.TurnoTramo, error) {
	tramos := make([]model.TurnoTramo, 0, len(reqs))
	cursor := 0
	for i, r := range reqs {
		inicio, ok := timeutil.NormalizeTime(r.HoraInicio)
		if !ok {
			return nil, apierror.Invalid(fmt.Sprintf("hora_inicio inválida en el tramo %d", i+1))
		}
		fin, ok := timeutil.NormalizeTime(r.HoraFin)
		if !ok {
			return nil, apierror.Invalid(fmt.Sprintf("hora_fin inválida en el tramo %d", i+1))
		}

		inicioM := timeutil.ToMinutes(inicio)
		finM := timeutil.ToMinutes(fin)
		if !timeutil.IsAlignedTo(inicioM, tramoAlignMinutes) || !timeutil.IsAlignedTo(finM, tramoAlignMinutes) {
			return nil, apierror.Invalid("las horas deben alinearse a intervalos de 30 minutos")
		}

		if finM <= inicioM {
			return nil, apierror.Invalid(fmt.Sprintf("el tramo %d debe terminar después de empezar", i+1))
		}
		if inicioM < cursor {
			return nil, apierror.Invalid("los tramos deben ir ordenados y no solaparse")
		}
		cursor = finM

		tramos = append(tramos, model.TurnoTramo{Orden: i + 1, HoraInicio: inicio, HoraFin: fin})
	}

	if total := duracionTotal(tramos); total > maxDuracionMinutos {
		return nil, apierror.Invalid("la duración total del turno supera las 8 horas")
	}
	return tramos, nil
}

func duracionTotal(tramos []model.TurnoTramo) int {
	total := 0
	for _, t := range tramos {
		total += timeutil.DurationMinutes(t.HoraInicio, t.HoraFin)
	}
	return total
}

func (s *turnoService) ListarPorTienda(ctx context.Context, idTienda int) ([]dto.TurnoResponse, error) {
	if idTienda <= 0 {
		return nil, apierror.Invalid("id_tienda inválido")
	}
	turnos, err := s.turnos.ListPorTienda(ctx, idTienda)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TurnoResponse, len(turnos))
	for i := range turnos {
		resp[i] = turnoToResponse(&turnos[i])
	}
	return resp, nil
}

func turnoToResponse(t *model.Turno) dto.TurnoResponse {
	tramos := make([]dto.TramoResponse, len(t.Tramos))
	for i, tr := range t.Tramos {
		tramos[i] = dto.TramoResponse{Orden: tr.Orden, HoraInicio: tr.HoraInicio, HoraFin: tr.HoraFin}
	}
	return dto.TurnoResponse{
		IDTurno:         t.ID,
		IDTienda:        t.IDTienda,
		IDTipoTurno:     t.IDTipoTurno,
		Codigo:          t.Codigo,
		Descripcion:     t.Descripcion,
		HoraInicio:      timeutil.NormalizeOrKeep(t.HoraInicio),
		HoraFin:         timeutil.NormalizeOrKeep(t.HoraFin),
		DuracionMinutos: duracionTotal(t.Tramos),
		EsPartido:       len(t.Tramos) > 1,
		Tramos:          tramos,
	}
}

func (s *turnoService) ListarTipos(ctx context.Context) ([]dto.TipoTurnoResponse, error) {
	tipos, err := s.tipos.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TipoTurnoResponse, len(tipos))
	for i, t := range tipos {
		resp[i] = dto.TipoTurnoResponse{IDTipoTurno: t.ID, Nombre: t.Nombre}
	}
	return resp, nil
}

// ── Requerimientos ───────────────────────────────────────────────────────────

func (s *turnoService) GuardarRequerimiento(ctx context.Context, p authz.Principal, req dto.RequerimientoRequest) (*dto.RequerimientoResponse, error) {
	fecha, err := timeutil.ParseDate(req.Fecha)
	if err != nil {
		return nil, apierror.Invalid("fecha inválida, se espera YYYY-MM-DD")
	}
	turno, err := s.turnos.FindByID(ctx, req.IDTurno)
	if err != nil {
		return nil, apierror.NotFound("turno no encontrado")
	}
	if err := s.puedeGestionarTienda(ctx, p, turno.IDTienda); err != nil {
		return nil, err
	}
	if err := s.requerimientos.Upsert(ctx, turno.ID, fecha, req.Cantidad); err != nil {
		return nil, err
	}
	return &dto.RequerimientoResponse{
		IDTurno:  turno.ID,
		Fecha:    timeutil.FormatDate(fecha),
		Cantidad: req.Cantidad,
	}, nil
}

func (s *turnoService) RequerimientosSemana(ctx context.Context, idTienda int, semana string) (*dto.RequerimientosSemanaResponse, error) {
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

	rows, err := s.requerimientos.ListSemana(ctx, turnoIDs, dias)
	if err != nil {
		return nil, err
	}

	reqs := make([]dto.RequerimientoResponse, len(rows))
	for i, r := range rows {
		reqs[i] = dto.RequerimientoResponse{
			IDRequerimiento: r.ID,
			IDTurno:         r.IDTurno,
			Fecha:           timeutil.FormatDate(r.Fecha),
			Cantidad:        r.Cantidad,
		}
	}

	fechas := make([]string, len(dias))
	for i, d := range dias {
		fechas[i] = timeutil.FormatDate(d)
	}

	return &dto.RequerimientosSemanaResponse{
		Requerimientos: reqs,
		Fechas:         fechas,
		Turnos:         turnosResp,
	}, nil
}
