package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/apierror"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/authz"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/dto"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/model"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/repository"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/timeutil"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PlanificacionService interface {
	ListarCodigos(ctx context.Context) ([]dto.CodigoResponse, error)
	GuardarCodigo(ctx context.Context, req dto.CodigoRequest) (*dto.GuardarCodigoResponse, error)
	EliminarCodigo(ctx context.Context, id int) error

	// SetCelda writes or clears one cell of the annual grid. A nil code
	// id deletes the row.
	SetCelda(ctx context.Context, p authz.Principal, req dto.CeldaRequest) error
	// BulkSetCeldas applies cells independently: invalid items are
	// skipped and counted, never aborting the batch.
	BulkSetCeldas(ctx context.Context, p authz.Principal, req dto.BulkCeldasRequest) (*dto.BulkCeldasResponse, error)
	AplicarPatronSemanal(ctx context.Context, p authz.Principal, req dto.PatronSemanalRequest) (*dto.PatronSemanalResponse, error)

	AsignacionesAnio(ctx context.Context, idTienda, anio int) (*dto.AsignacionesAnioResponse, error)
	PlanUsuario(ctx context.Context, p authz.Principal, idTrabajador, anio int) (*dto.PlanUsuarioResponse, error)
	HorasTienda(ctx context.Context, p authz.Principal, idTienda, anio int) (*dto.HorasTiendaResponse, error)
	Anios(ctx context.Context) ([]dto.AnioResponse, error)
}

type planificacionService struct {
	plan         repository.PlanificacionRepository
	codigos      repository.CodigoRepository
	trabajadores repository.TrabajadorRepository
	auth         *authz.Authorizer
}

func NewPlanificacionService(
	plan repository.PlanificacionRepository,
	codigos repository.CodigoRepository,
	trabajadores repository.TrabajadorRepository,
	auth *authz.Authorizer,
) PlanificacionService {
	return &planificacionService{plan: plan, codigos: codigos, trabajadores: trabajadores, auth: auth}
}

// ── Catálogo de códigos ──────────────────────────────────────────────────────

func (s *planificacionService) ListarCodigos(ctx context.Context) ([]dto.CodigoResponse, error) {
	codigos, err := s.codigos.ListActivos(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CodigoResponse, len(codigos))
	for i, c := range codigos {
		resp[i] = codigoToResponse(&c)
	}
	return resp, nil
}

func (s *planificacionService) GuardarCodigo(ctx context.Context, req dto.CodigoRequest) (*dto.GuardarCodigoResponse, error) {
	codigo := strings.ToUpper(strings.TrimSpace(req.Codigo))
	if codigo == "" {
		return nil, apierror.Invalid("codigo es obligatorio")
	}
	if req.Horas.IsNegative() || req.Horas.GreaterThan(decimal.NewFromInt(24)) {
		return nil, apierror.Invalid("horas debe estar entre 0 y 24")
	}

	if req.IDTurnoCodigo != nil {
		if _, err := s.codigos.FindByID(ctx, *req.IDTurnoCodigo); err != nil {
			return nil, apierror.NotFound("código no encontrado")
		}
		campos := map[string]interface{}{
			"codigo":      codigo,
			"descripcion": req.Descripcion,
			"horas":       req.Horas,
		}
		if req.Activo != nil {
			campos["activo"] = *req.Activo
		}
		if err := s.codigos.Update(ctx, *req.IDTurnoCodigo, campos); err != nil {
			return nil, apierror.Conflict("no se pudo actualizar el código, nombre duplicado?")
		}
		return &dto.GuardarCodigoResponse{Mensaje: "Código actualizado", IDTurnoCodigo: *req.IDTurnoCodigo}, nil
	}

	existente, err := s.codigos.FindByCodigo(ctx, codigo)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, apierror.Conflict(fmt.Sprintf("ya existe el código %s", codigo))
	}

	nuevo := &model.TurnoCodigo{
		Codigo:      codigo,
		Descripcion: req.Descripcion,
		Horas:       req.Horas,
		Activo:      true,
	}
	if req.Activo != nil {
		nuevo.Activo = *req.Activo
	}
	if err := s.codigos.Create(ctx, nuevo); err != nil {
		return nil, err
	}
	return &dto.GuardarCodigoResponse{Mensaje: "Código creado", IDTurnoCodigo: nuevo.ID}, nil
}

func (s *planificacionService) EliminarCodigo(ctx context.Context, id int) error {
	rows, err := s.codigos.Desactivar(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apierror.NotFound("código no encontrado")
	}
	return nil
}

func codigoToResponse(c *model.TurnoCodigo) dto.CodigoResponse {
	return dto.CodigoResponse{
		IDTurnoCodigo: c.ID,
		Codigo:        c.Codigo,
		Descripcion:   c.Descripcion,
		Horas:         c.Horas,
		Activo:        c.Activo,
	}
}

// ── Celdas del plan anual ────────────────────────────────────────────────────

func (s *planificacionService) SetCelda(ctx context.Context, p authz.Principal, req dto.CeldaRequest) error {
	return runTx(ctx, s.plan.DB(), func(tx *gorm.DB) error {
		return s.aplicarCelda(ctx, tx, p, req)
	})
}

// aplicarCelda authorizes and writes one cell inside the caller's
// transaction. A nil code id deletes the row; writes require an active
// code.
func (s *planificacionService) aplicarCelda(ctx context.Context, tx *gorm.DB, p authz.Principal, req dto.CeldaRequest) error {
	if s.auth != nil {
		ok, err := s.auth.CanManageWorker(ctx, p, req.IDTrabajador)
		if err != nil {
			return apierror.NotFound("trabajador no encontrado")
		}
		if !ok {
			return apierror.Forbidden("no puedes gestionar este trabajador")
		}
	}
	fecha, err := timeutil.ParseDate(req.Fecha)
	if err != nil {
		return apierror.Invalid("fecha inválida, se espera YYYY-MM-DD")
	}
	if req.IDTurnoCodigo == nil {
		_, err := s.plan.DeleteCelda(ctx, tx, req.IDTrabajador, fecha)
		return err
	}
	codigo, err := s.codigos.FindByID(ctx, *req.IDTurnoCodigo)
	if err != nil {
		return apierror.NotFound("código no encontrado")
	}
	if !codigo.Activo {
		return apierror.Invalid("el código está inactivo")
	}
	return s.plan.UpsertCelda(ctx, tx, req.IDTrabajador, fecha, *req.IDTurnoCodigo)
}

func (s *planificacionService) BulkSetCeldas(ctx context.Context, p authz.Principal, req dto.BulkCeldasRequest) (*dto.BulkCeldasResponse, error) {
	guardadas, omitidas := 0, 0
	// One transaction for the whole batch; rejected items are skipped,
	// never aborting the rest.
	txErr := runTx(ctx, s.plan.DB(), func(tx *gorm.DB) error {
		for _, item := range req.Items {
			if err := s.aplicarCelda(ctx, tx, p, item); err != nil {
				omitidas++
				continue
			}
			guardadas++
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &dto.BulkCeldasResponse{
		Mensaje:   "Celdas procesadas",
		Guardadas: guardadas,
		Omitidas:  omitidas,
	}, nil
}

// ── Patrón semanal ───────────────────────────────────────────────────────────

func (s *planificacionService) AplicarPatronSemanal(ctx context.Context, p authz.Principal, req dto.PatronSemanalRequest) (*dto.PatronSemanalResponse, error) {
	if s.auth != nil {
		ok, err := s.auth.CanManageStore(ctx, p, req.Tienda)
		if err != nil {
			return nil, apierror.NotFound("tienda no encontrada")
		}
		if !ok {
			return nil, apierror.Forbidden("no puedes gestionar esta tienda")
		}
	}

	desde, err := timeutil.ParseDate(req.Desde)
	if err != nil {
		return nil, apierror.Invalid("desde inválido, se espera YYYY-MM-DD")
	}
	hasta := time.Date(desde.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
	if req.Hasta != nil && *req.Hasta != "" {
		hasta, err = timeutil.ParseDate(*req.Hasta)
		if err != nil {
			return nil, apierror.Invalid("hasta inválido, se espera YYYY-MM-DD")
		}
	}
	if hasta.Before(desde) {
		return nil, apierror.Invalid("hasta no puede ser anterior a desde")
	}

	slots, err := s.resolverPatron(ctx, req.Pattern)
	if err != nil {
		return nil, err
	}

	propios, err := s.trabajadores.IDsDeTienda(ctx, req.Tienda)
	if err != nil {
		return nil, err
	}
	trabajadores := propios
	if len(req.Trabajadores) > 0 {
		// Listed workers outside the target store are dropped, the same
		// way the bulk path skips them.
		enTienda := make(map[int]bool, len(propios))
		for _, id := range propios {
			enTienda[id] = true
		}
		trabajadores = make([]int, 0, len(req.Trabajadores))
		for _, id := range req.Trabajadores {
			if enTienda[id] {
				trabajadores = append(trabajadores, id)
			}
		}
	}
	if len(trabajadores) == 0 {
		return nil, apierror.Invalid("la tienda no tiene trabajadores que planificar")
	}

	aplicadas, eliminadas := 0, 0
	txErr := runTx(ctx, s.plan.DB(), func(tx *gorm.DB) error {
		for fecha := desde; !fecha.After(hasta); fecha = fecha.AddDate(0, 0, 1) {
			slot := slots[timeutil.WeekdayIndex(fecha)]
			for _, idTrabajador := range trabajadores {
				if slot == nil {
					n, err := s.plan.DeleteCelda(ctx, tx, idTrabajador, fecha)
					if err != nil {
						return err
					}
					eliminadas += int(n)
					continue
				}
				if err := s.plan.UpsertCelda(ctx, tx, idTrabajador, fecha, *slot); err != nil {
					return err
				}
				aplicadas++
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.PatronSemanalResponse{
		Mensaje:      "Patrón aplicado",
		Aplicadas:    aplicadas,
		Eliminadas:   eliminadas,
		Desde:        timeutil.FormatDate(desde),
		Hasta:        timeutil.FormatDate(hasta),
		Trabajadores: len(trabajadores),
	}, nil
}

// resolverPatron maps the 7 Monday-first slots to code ids. Numbers are
// ids, strings match active codes case-insensitively, null clears the day.
func (s *planificacionService) resolverPatron(ctx context.Context, pattern []interface{}) ([7]*int, error) {
	var slots [7]*int
	if len(pattern) != 7 {
		return slots, apierror.Invalid("pattern debe tener 7 posiciones (lunes a domingo)")
	}

	activos, err := s.codigos.ListActivos(ctx)
	if err != nil {
		return slots, err
	}
	porID := make(map[int]bool, len(activos))
	porCodigo := make(map[string]int, len(activos))
	for _, c := range activos {
		porID[c.ID] = true
		porCodigo[strings.ToUpper(c.Codigo)] = c.ID
	}

	for i, raw := range pattern {
		switch v := raw.(type) {
		case nil:
			slots[i] = nil
		case float64:
			id := int(v)
			if !porID[id] {
				return slots, apierror.Invalid(fmt.Sprintf("el código %d del día %d no existe o está inactivo", id, i+1))
			}
			slots[i] = &id
		case string:
			if strings.TrimSpace(v) == "" {
				slots[i] = nil
				continue
			}
			id, ok := porCodigo[strings.ToUpper(strings.TrimSpace(v))]
			if !ok {
				return slots, apierror.Invalid(fmt.Sprintf("el código %q del día %d no existe o está inactivo", v, i+1))
			}
			slots[i] = &id
		default:
			return slots, apierror.Invalid(fmt.Sprintf("valor no válido en la posición %d del patrón", i+1))
		}
	}
	return slots, nil
}

// ── Consultas ────────────────────────────────────────────────────────────────

func (s *planificacionService) AsignacionesAnio(ctx context.Context, idTienda, anio int) (*dto.AsignacionesAnioResponse, error) {
	if anio < 2000 || anio > 2100 {
		return nil, apierror.Invalid("anio fuera de rango")
	}
	empleados, err := s.trabajadores.ListByTienda(ctx, idTienda)
	if err != nil {
		return nil, err
	}
	ids := make([]int, len(empleados))
	for i, e := range empleados {
		ids[i] = e.IDTrabajador
	}

	desde := time.Date(anio, time.January, 1, 0, 0, 0, 0, time.UTC)
	hasta := time.Date(anio, time.December, 31, 0, 0, 0, 0, time.UTC)
	rows, err := s.plan.ListEntre(ctx, ids, desde, hasta)
	if err != nil {
		return nil, err
	}
	celdas := make([]dto.CeldaRow, len(rows))
	for i, r := range rows {
		celdas[i] = dto.CeldaRow{
			IDAsignacion:  r.IDAsignacion,
			IDTrabajador:  r.IDTrabajador,
			Fecha:         timeutil.FormatDate(r.Fecha),
			IDTurnoCodigo: r.IDTurnoCodigo,
		}
	}

	codigos, err := s.ListarCodigos(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.AsignacionesAnioResponse{
		Empleados:    empleados,
		Asignaciones: celdas,
		Codigos:      codigos,
	}, nil
}

func (s *planificacionService) PlanUsuario(ctx context.Context, p authz.Principal, idTrabajador, anio int) (*dto.PlanUsuarioResponse, error) {
	// Workers see their own plan; anything else needs management rights.
	if p.UID != idTrabajador && s.auth != nil {
		ok, err := s.auth.CanManageWorker(ctx, p, idTrabajador)
		if err != nil {
			return nil, apierror.NotFound("trabajador no encontrado")
		}
		if !ok {
			return nil, apierror.Forbidden("no puedes consultar este trabajador")
		}
	}

	trabajador, err := s.trabajadores.FindByID(ctx, idTrabajador)
	if err != nil {
		return nil, apierror.NotFound("trabajador no encontrado")
	}
	perfil := dto.PlanPerfil{
		IDTrabajador: trabajador.ID,
		IDTienda:     trabajador.IDTienda,
		FechaAlta:    timeutil.FormatDate(trabajador.FechaAlta),
	}
	if trabajador.Usuario != nil {
		perfil.Nombre = trabajador.Usuario.Nombre
		perfil.Email = trabajador.Usuario.Email
		perfil.Rol = trabajador.Usuario.Rol
	}

	rows, err := s.plan.ListAnioUsuario(ctx, idTrabajador, anio)
	if err != nil {
		return nil, err
	}

	celdas := make([]dto.PlanCelda, len(rows))
	total := decimal.Zero
	meses := make(map[string]dto.ResumenMes, 12)
	for m := 1; m <= 12; m++ {
		meses[fmt.Sprintf("%02d", m)] = dto.ResumenMes{Horas: decimal.Zero}
	}
	semanas := make(map[string]dto.ResumenSemana)

	for i, r := range rows {
		celdas[i] = dto.PlanCelda{
			Fecha:         timeutil.FormatDate(r.Fecha),
			IDTurnoCodigo: r.IDTurnoCodigo,
			Codigo:        r.Codigo,
			Descripcion:   r.Descripcion,
			Horas:         r.Horas,
		}
		total = total.Add(r.Horas)

		mes := fmt.Sprintf("%02d", int(r.Fecha.Month()))
		resumen := meses[mes]
		resumen.Horas = resumen.Horas.Add(r.Horas)
		resumen.DiasConCodigo++
		meses[mes] = resumen

		lunes := timeutil.MondayOf(r.Fecha)
		clave := timeutil.FormatDate(lunes)
		semana, ok := semanas[clave]
		if !ok {
			semana = dto.ResumenSemana{
				SemanaInicio: clave,
				SemanaFin:    timeutil.FormatDate(lunes.AddDate(0, 0, 6)),
				Horas:        decimal.Zero,
			}
		}
		semana.Horas = semana.Horas.Add(r.Horas)
		semana.DiasConCodigo++
		semanas[clave] = semana
	}

	return &dto.PlanUsuarioResponse{
		Perfil:     perfil,
		Anio:       anio,
		Celdas:     celdas,
		TotalHoras: total,
		Meses:      meses,
		Semanas:    semanas,
	}, nil
}

func (s *planificacionService) HorasTienda(ctx context.Context, p authz.Principal, idTienda, anio int) (*dto.HorasTiendaResponse, error) {
	if s.auth != nil {
		ok, err := s.auth.CanManageStore(ctx, p, idTienda)
		if err != nil {
			return nil, apierror.NotFound("tienda no encontrada")
		}
		if !ok {
			return nil, apierror.Forbidden("no puedes consultar esta tienda")
		}
	}

	rows, err := s.plan.HorasPorMes(ctx, idTienda, anio)
	if err != nil {
		return nil, err
	}

	porTrabajador := make(map[int]*dto.HorasEmpleado)
	orden := make([]int, 0)
	for _, r := range rows {
		emp, ok := porTrabajador[r.IDTrabajador]
		if !ok {
			emp = &dto.HorasEmpleado{
				IDTrabajador: r.IDTrabajador,
				Nombre:       r.Nombre,
				Total:        decimal.Zero,
				Meses:        make(map[string]decimal.Decimal),
			}
			porTrabajador[r.IDTrabajador] = emp
			orden = append(orden, r.IDTrabajador)
		}
		mes := fmt.Sprintf("%02d", r.Mes)
		emp.Meses[mes] = emp.Meses[mes].Add(r.Horas)
		emp.Total = emp.Total.Add(r.Horas)
	}

	empleados := make([]dto.HorasEmpleado, 0, len(orden))
	for _, id := range orden {
		empleados = append(empleados, *porTrabajador[id])
	}

	return &dto.HorasTiendaResponse{Tienda: idTienda, Anio: anio, Empleados: empleados}, nil
}

func (s *planificacionService) Anios(ctx context.Context) ([]dto.AnioResponse, error) {
	anios, err := s.plan.Anios(ctx)
	if err != nil {
		return nil, err
	}
	actual := time.Now().Year()
	visto := false
	resp := make([]dto.AnioResponse, 0, len(anios)+1)
	for _, a := range anios {
		activo := 0
		if a == actual {
			activo = 1
			visto = true
		}
		resp = append(resp, dto.AnioResponse{Valor: a, Activo: activo})
	}
	if !visto {
		resp = append(resp, dto.AnioResponse{Valor: actual, Activo: 1})
	}
	return resp, nil
}
