package service

import (
	"context"
	"testing"

	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type horarioFixture struct {
	svc          HorarioService
	usuarios     *fakeUsuarioRepo
	trabajadores *fakeTrabajadorRepo
	turnos       *fakeTurnoRepo
	asignaciones *fakeAsignacionRepo
	codigos      *fakeCodigoRepo
	plan         *fakePlanRepo

	idTienda int
	ana      int
	luis     int
}

func newHorarioFixture(t *testing.T) *horarioFixture {
	t.Helper()
	ctx := context.Background()

	usuarios := newFakeUsuarioRepo()
	tiendas := newFakeTiendaRepo()
	trabajadores := newFakeTrabajadorRepo(usuarios)
	turnos := newFakeTurnoRepo()
	asignaciones := newFakeAsignacionRepo(turnos, usuarios)
	codigos := newFakeCodigoRepo()
	plan := newFakePlanRepo(codigos)

	tienda := &model.Tienda{Nombre: "Centro"}
	require.NoError(t, tiendas.Create(ctx, tienda))
	ana := seedUsuario(t, usuarios, "Ana", "ana@tienda.es", "contraseña123", "trabajador")
	luis := seedUsuario(t, usuarios, "Luis", "luis@tienda.es", "contraseña123", "trabajador")
	require.NoError(t, trabajadores.Create(ctx, &model.Trabajador{ID: ana.ID, IDTienda: tienda.ID, FechaAlta: fecha("2025-01-01")}))
	require.NoError(t, trabajadores.Create(ctx, &model.Trabajador{ID: luis.ID, IDTienda: tienda.ID, FechaAlta: fecha("2025-01-01")}))

	return &horarioFixture{
		svc:          NewHorarioService(turnos, asignaciones, trabajadores, plan),
		usuarios:     usuarios,
		trabajadores: trabajadores,
		turnos:       turnos,
		asignaciones: asignaciones,
		codigos:      codigos,
		plan:         plan,
		idTienda:     tienda.ID,
		ana:          ana.ID,
		luis:         luis.ID,
	}
}

func (f *horarioFixture) conTurno(t *testing.T, codigo, inicio, fin string) int {
	t.Helper()
	turno := &model.Turno{
		IDTienda:   f.idTienda,
		Codigo:     codigo,
		HoraInicio: inicio,
		HoraFin:    fin,
		Tramos:     []model.TurnoTramo{{Orden: 1, HoraInicio: inicio, HoraFin: fin}},
	}
	require.NoError(t, f.turnos.CreateTx(context.Background(), nil, turno))
	return turno.ID
}

func (f *horarioFixture) conAsignacion(t *testing.T, idTrab, idTurno int, dia string) {
	t.Helper()
	require.NoError(t, f.asignaciones.CreateTx(context.Background(), nil, &model.AsignacionTurno{
		IDTrabajador: idTrab, IDTurno: idTurno, Fecha: fecha(dia),
	}))
}

func (f *horarioFixture) conCelda(t *testing.T, idTrab int, dia, codigo string, horas float64) {
	t.Helper()
	ctx := context.Background()
	existente, err := f.codigos.FindByCodigo(ctx, codigo)
	require.NoError(t, err)
	if existente == nil {
		existente = &model.TurnoCodigo{Codigo: codigo, Horas: decimal.NewFromFloat(horas), Activo: true}
		require.NoError(t, f.codigos.Create(ctx, existente))
	}
	require.NoError(t, f.plan.UpsertCelda(ctx, nil, idTrab, fecha(dia), existente.ID))
}

func TestHorarioSemana(t *testing.T) {
	ctx := context.Background()

	t.Run("una asignación directa gana a la celda del plan", func(t *testing.T) {
		f := newHorarioFixture(t)
		m := f.conTurno(t, "M", "09:00", "14:00")
		f.conAsignacion(t, f.ana, m, "2026-09-07")
		f.conCelda(t, f.ana, "2026-09-07", "T", 5)

		resp, err := f.svc.HorarioSemana(ctx, f.idTienda, "2026-09-07")
		require.NoError(t, err)
		require.Len(t, resp.Asignaciones, 1)
		entrada := resp.Asignaciones[0]
		assert.Equal(t, "turno", entrada.Origen)
		assert.Equal(t, "Ana", entrada.NombreTrabajador)
		require.NotNil(t, entrada.IDTurno)
		assert.Equal(t, m, *entrada.IDTurno)
	})

	t.Run("la celda del plan usa el turno diurno que casa en duración", func(t *testing.T) {
		f := newHorarioFixture(t)
		f.conTurno(t, "A", "07:00", "12:00")  // 300 min, antes de las 09:00
		f.conTurno(t, "B", "09:30", "14:30")  // 300 min, preferido
		f.conTurno(t, "C", "10:00", "16:00")  // 360 min, no casa
		f.conCelda(t, f.ana, "2026-09-08", "M5", 5)

		resp, err := f.svc.HorarioSemana(ctx, f.idTienda, "2026-09-07")
		require.NoError(t, err)
		require.Len(t, resp.Asignaciones, 1)
		entrada := resp.Asignaciones[0]
		assert.Equal(t, "plan", entrada.Origen)
		assert.Equal(t, "09:30", entrada.HoraInicio)
		assert.Equal(t, "14:30", entrada.HoraFin)
		require.NotNil(t, entrada.Codigo)
		assert.Equal(t, "M5", *entrada.Codigo)
	})

	t.Run("sin turno diurno cae al de inicio más temprano", func(t *testing.T) {
		f := newHorarioFixture(t)
		f.conTurno(t, "A", "06:00", "11:00")
		f.conTurno(t, "B", "07:00", "12:00")
		f.conCelda(t, f.ana, "2026-09-08", "M5", 5)

		resp, err := f.svc.HorarioSemana(ctx, f.idTienda, "2026-09-07")
		require.NoError(t, err)
		require.Len(t, resp.Asignaciones, 1)
		assert.Equal(t, "06:00", resp.Asignaciones[0].HoraInicio)
	})

	t.Run("sin plantilla que case sintetiza un tramo desde las 09:00", func(t *testing.T) {
		f := newHorarioFixture(t)
		f.conCelda(t, f.ana, "2026-09-08", "M75", 7.5)

		resp, err := f.svc.HorarioSemana(ctx, f.idTienda, "2026-09-07")
		require.NoError(t, err)
		require.Len(t, resp.Asignaciones, 1)
		assert.Equal(t, "09:00", resp.Asignaciones[0].HoraInicio)
		assert.Equal(t, "16:30", resp.Asignaciones[0].HoraFin)
	})

	t.Run("el tramo sintetizado nunca cruza medianoche", func(t *testing.T) {
		f := newHorarioFixture(t)
		f.conCelda(t, f.ana, "2026-09-08", "X16", 16)

		resp, err := f.svc.HorarioSemana(ctx, f.idTienda, "2026-09-07")
		require.NoError(t, err)
		require.Len(t, resp.Asignaciones, 1)
		assert.Equal(t, "23:59", resp.Asignaciones[0].HoraFin)
	})

	t.Run("las celdas de cero horas no generan franja", func(t *testing.T) {
		f := newHorarioFixture(t)
		f.conCelda(t, f.ana, "2026-09-08", "LIBRE", 0)
		f.conCelda(t, f.luis, "2026-09-08", "M5", 5)

		resp, err := f.svc.HorarioSemana(ctx, f.idTienda, "2026-09-07")
		require.NoError(t, err)
		require.Len(t, resp.Asignaciones, 1)
		assert.Equal(t, "Luis", resp.Asignaciones[0].NombreTrabajador)
	})

	t.Run("ordena por fecha, hora de inicio y nombre", func(t *testing.T) {
		f := newHorarioFixture(t)
		m := f.conTurno(t, "M", "09:00", "14:00")
		tarde := f.conTurno(t, "T", "15:00", "20:00")
		f.conAsignacion(t, f.luis, tarde, "2026-09-07")
		f.conAsignacion(t, f.luis, m, "2026-09-08")
		f.conAsignacion(t, f.ana, m, "2026-09-08")

		resp, err := f.svc.HorarioSemana(ctx, f.idTienda, "2026-09-07")
		require.NoError(t, err)
		require.Len(t, resp.Asignaciones, 3)
		assert.Equal(t, "Luis", resp.Asignaciones[0].NombreTrabajador)
		assert.Equal(t, "2026-09-07", resp.Asignaciones[0].Fecha)
		assert.Equal(t, "Ana", resp.Asignaciones[1].NombreTrabajador)
		assert.Equal(t, "Luis", resp.Asignaciones[2].NombreTrabajador)
	})

	t.Run("solo entran celdas dentro de la semana pedida", func(t *testing.T) {
		f := newHorarioFixture(t)
		f.conCelda(t, f.ana, "2026-09-06", "M5", 5) // domingo anterior
		f.conCelda(t, f.ana, "2026-09-14", "M5", 5) // lunes siguiente

		resp, err := f.svc.HorarioSemana(ctx, f.idTienda, "2026-09-07")
		require.NoError(t, err)
		assert.Empty(t, resp.Asignaciones)
		assert.Equal(t, "2026-09-07", resp.SemanaInicio)
		assert.Equal(t, "2026-09-13", resp.SemanaFin)
	})
}
