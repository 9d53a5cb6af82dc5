package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/apierror"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/authz"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/dto"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type planFixture struct {
	svc          PlanificacionService
	codigos      *fakeCodigoRepo
	plan         *fakePlanRepo
	usuarios     *fakeUsuarioRepo
	tiendas      *fakeTiendaRepo
	trabajadores *fakeTrabajadorRepo

	admin    authz.Principal
	jefe     authz.Principal
	otroJefe authz.Principal
	idTienda int
	idTrab   int
}

func newPlanFixture(t *testing.T) *planFixture {
	t.Helper()
	ctx := context.Background()

	usuarios := newFakeUsuarioRepo()
	tiendas := newFakeTiendaRepo()
	trabajadores := newFakeTrabajadorRepo(usuarios)
	codigos := newFakeCodigoRepo()
	plan := newFakePlanRepo(codigos)

	jefe := seedUsuario(t, usuarios, "Jefa", "jefa@tienda.es", "contraseña123", "encargado")
	otro := seedUsuario(t, usuarios, "Otro", "otro@tienda.es", "contraseña123", "encargado")
	trab := seedUsuario(t, usuarios, "Ana", "ana@tienda.es", "contraseña123", "trabajador")

	tienda := &model.Tienda{Nombre: "Centro", IDJefe: &jefe.ID}
	require.NoError(t, tiendas.Create(ctx, tienda))
	require.NoError(t, trabajadores.Create(ctx, &model.Trabajador{ID: trab.ID, IDTienda: tienda.ID, FechaAlta: fecha("2025-03-15")}))

	auth := authz.NewAuthorizer(tiendas, trabajadores)
	svc := NewPlanificacionService(plan, codigos, trabajadores, auth)

	return &planFixture{
		svc:          svc,
		codigos:      codigos,
		plan:         plan,
		usuarios:     usuarios,
		tiendas:      tiendas,
		trabajadores: trabajadores,

		admin:    authz.Principal{UID: 900, Rol: "administrador"},
		jefe:     authz.Principal{UID: jefe.ID, Rol: "encargado"},
		otroJefe: authz.Principal{UID: otro.ID, Rol: "encargado"},
		idTienda: tienda.ID,
		idTrab:   trab.ID,
	}
}

func (f *planFixture) conCodigo(t *testing.T, codigo string, horas float64) int {
	t.Helper()
	c := &model.TurnoCodigo{Codigo: codigo, Horas: decimal.NewFromFloat(horas), Activo: true}
	require.NoError(t, f.codigos.Create(context.Background(), c))
	return c.ID
}

func TestGuardarCodigo(t *testing.T) {
	ctx := context.Background()

	t.Run("crea un código nuevo en mayúsculas", func(t *testing.T) {
		f := newPlanFixture(t)
		resp, err := f.svc.GuardarCodigo(ctx, dto.CodigoRequest{
			Codigo: " vac ", Descripcion: "Vacaciones", Horas: decimal.Zero,
		})
		require.NoError(t, err)
		assert.Equal(t, "Código creado", resp.Mensaje)

		guardado, _ := f.codigos.FindByCodigo(ctx, "VAC")
		require.NotNil(t, guardado)
		assert.True(t, guardado.Activo)
	})

	t.Run("código duplicado devuelve 409", func(t *testing.T) {
		f := newPlanFixture(t)
		f.conCodigo(t, "M", 5)

		_, err := f.svc.GuardarCodigo(ctx, dto.CodigoRequest{Codigo: "m", Horas: decimal.NewFromInt(5)})
		status, _ := apierror.Status(err)
		assert.Equal(t, http.StatusConflict, status)
	})

	t.Run("actualiza un código existente por id", func(t *testing.T) {
		f := newPlanFixture(t)
		id := f.conCodigo(t, "M", 5)

		resp, err := f.svc.GuardarCodigo(ctx, dto.CodigoRequest{
			IDTurnoCodigo: &id, Codigo: "M", Descripcion: "Mañana", Horas: decimal.NewFromFloat(5.5),
		})
		require.NoError(t, err)
		assert.Equal(t, "Código actualizado", resp.Mensaje)

		guardado, _ := f.codigos.FindByID(ctx, id)
		assert.Equal(t, "Mañana", guardado.Descripcion)
		assert.True(t, guardado.Horas.Equal(decimal.NewFromFloat(5.5)))
	})

	t.Run("actualizar un id inexistente devuelve 404", func(t *testing.T) {
		f := newPlanFixture(t)
		_, err := f.svc.GuardarCodigo(ctx, dto.CodigoRequest{
			IDTurnoCodigo: intPtr(42), Codigo: "M", Horas: decimal.NewFromInt(5),
		})
		status, _ := apierror.Status(err)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("horas negativas devuelve 400", func(t *testing.T) {
		f := newPlanFixture(t)
		_, err := f.svc.GuardarCodigo(ctx, dto.CodigoRequest{
			Codigo: "M", Horas: decimal.NewFromInt(-1),
		})
		status, _ := apierror.Status(err)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("más de 24 horas devuelve 400", func(t *testing.T) {
		f := newPlanFixture(t)
		_, err := f.svc.GuardarCodigo(ctx, dto.CodigoRequest{
			Codigo: "M", Horas: decimal.NewFromInt(25),
		})
		status, _ := apierror.Status(err)
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestEliminarCodigo(t *testing.T) {
	ctx := context.Background()
	f := newPlanFixture(t)
	id := f.conCodigo(t, "M", 5)

	require.NoError(t, f.svc.EliminarCodigo(ctx, id))
	activos, _ := f.codigos.ListActivos(ctx)
	assert.Empty(t, activos)

	err := f.svc.EliminarCodigo(ctx, 42)
	status, _ := apierror.Status(err)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSetCelda(t *testing.T) {
	ctx := context.Background()

	t.Run("escribe y sobrescribe una celda", func(t *testing.T) {
		f := newPlanFixture(t)
		m := f.conCodigo(t, "M", 5)
		tarde := f.conCodigo(t, "T", 5)

		err := f.svc.SetCelda(ctx, f.jefe, dto.CeldaRequest{
			IDTrabajador: f.idTrab, Fecha: "2026-02-10", IDTurnoCodigo: &m,
		})
		require.NoError(t, err)
		err = f.svc.SetCelda(ctx, f.jefe, dto.CeldaRequest{
			IDTrabajador: f.idTrab, Fecha: "2026-02-10", IDTurnoCodigo: &tarde,
		})
		require.NoError(t, err)

		require.Len(t, f.plan.celdas, 1)
		celda := f.plan.celdas[celdaKey{f.idTrab, "2026-02-10"}]
		assert.Equal(t, tarde, celda.IDTurnoCodigo)
	})

	t.Run("un código nulo borra la celda", func(t *testing.T) {
		f := newPlanFixture(t)
		m := f.conCodigo(t, "M", 5)
		require.NoError(t, f.svc.SetCelda(ctx, f.admin, dto.CeldaRequest{
			IDTrabajador: f.idTrab, Fecha: "2026-02-10", IDTurnoCodigo: &m,
		}))

		require.NoError(t, f.svc.SetCelda(ctx, f.admin, dto.CeldaRequest{
			IDTrabajador: f.idTrab, Fecha: "2026-02-10",
		}))
		assert.Empty(t, f.plan.celdas)
	})

	t.Run("código inexistente devuelve 404", func(t *testing.T) {
		f := newPlanFixture(t)
		err := f.svc.SetCelda(ctx, f.admin, dto.CeldaRequest{
			IDTrabajador: f.idTrab, Fecha: "2026-02-10", IDTurnoCodigo: intPtr(42),
		})
		status, _ := apierror.Status(err)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("un encargado ajeno devuelve 403", func(t *testing.T) {
		f := newPlanFixture(t)
		m := f.conCodigo(t, "M", 5)
		err := f.svc.SetCelda(ctx, f.otroJefe, dto.CeldaRequest{
			IDTrabajador: f.idTrab, Fecha: "2026-02-10", IDTurnoCodigo: &m,
		})
		status, _ := apierror.Status(err)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("un código desactivado devuelve 400 y no escribe", func(t *testing.T) {
		f := newPlanFixture(t)
		m := f.conCodigo(t, "M", 5)
		_, err := f.codigos.Desactivar(ctx, m)
		require.NoError(t, err)

		err = f.svc.SetCelda(ctx, f.admin, dto.CeldaRequest{
			IDTrabajador: f.idTrab, Fecha: "2026-02-10", IDTurnoCodigo: &m,
		})
		status, _ := apierror.Status(err)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Empty(t, f.plan.celdas)
	})
}

func TestBulkSetCeldas(t *testing.T) {
	ctx := context.Background()
	f := newPlanFixture(t)
	m := f.conCodigo(t, "M", 5)
	inactivo := f.conCodigo(t, "X", 5)
	_, err := f.codigos.Desactivar(ctx, inactivo)
	require.NoError(t, err)

	resp, err := f.svc.BulkSetCeldas(ctx, f.admin, dto.BulkCeldasRequest{Items: []dto.CeldaRequest{
		{IDTrabajador: f.idTrab, Fecha: "2026-02-10", IDTurnoCodigo: &m},
		{IDTrabajador: f.idTrab, Fecha: "fecha-rota", IDTurnoCodigo: &m},
		{IDTrabajador: f.idTrab, Fecha: "2026-02-12", IDTurnoCodigo: intPtr(42)},
		{IDTrabajador: f.idTrab, Fecha: "2026-02-11", IDTurnoCodigo: &inactivo},
		{IDTrabajador: f.idTrab, Fecha: "2026-02-13", IDTurnoCodigo: &m},
	}})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Guardadas)
	assert.Equal(t, 3, resp.Omitidas)
	assert.Len(t, f.plan.celdas, 2)
}

func TestAplicarPatronSemanal(t *testing.T) {
	ctx := context.Background()

	t.Run("expande el patrón de lunes a domingo por rango", func(t *testing.T) {
		f := newPlanFixture(t)
		m := f.conCodigo(t, "M", 5)
		f.conCodigo(t, "T", 5)

		// Lunes a viernes por id o por nombre, fin de semana libre.
		resp, err := f.svc.AplicarPatronSemanal(ctx, f.jefe, dto.PatronSemanalRequest{
			Tienda:  f.idTienda,
			Desde:   "2026-02-09", // lunes
			Hasta:   strPtr("2026-02-22"),
			Pattern: []interface{}{float64(m), float64(m), "t", "T", float64(m), nil, nil},
		})
		require.NoError(t, err)
		assert.Equal(t, 10, resp.Aplicadas)
		assert.Equal(t, 0, resp.Eliminadas)
		assert.Equal(t, 1, resp.Trabajadores)
		assert.Len(t, f.plan.celdas, 10)

		lunes := f.plan.celdas[celdaKey{f.idTrab, "2026-02-09"}]
		require.NotNil(t, lunes)
		assert.Equal(t, m, lunes.IDTurnoCodigo)
		assert.Nil(t, f.plan.celdas[celdaKey{f.idTrab, "2026-02-14"}])
	})

	t.Run("los huecos del patrón limpian celdas existentes", func(t *testing.T) {
		f := newPlanFixture(t)
		m := f.conCodigo(t, "M", 5)
		require.NoError(t, f.plan.UpsertCelda(ctx, nil, f.idTrab, fecha("2026-02-14"), m))

		resp, err := f.svc.AplicarPatronSemanal(ctx, f.admin, dto.PatronSemanalRequest{
			Tienda:  f.idTienda,
			Desde:   "2026-02-09",
			Hasta:   strPtr("2026-02-15"),
			Pattern: []interface{}{nil, nil, nil, nil, nil, nil, nil},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Eliminadas)
		assert.Empty(t, f.plan.celdas)
	})

	t.Run("sin hasta aplica hasta fin de año", func(t *testing.T) {
		f := newPlanFixture(t)
		m := f.conCodigo(t, "M", 5)

		resp, err := f.svc.AplicarPatronSemanal(ctx, f.admin, dto.PatronSemanalRequest{
			Tienda:  f.idTienda,
			Desde:   "2026-12-28", // lunes de la última semana
			Pattern: []interface{}{float64(m), float64(m), float64(m), float64(m), nil, nil, nil},
		})
		require.NoError(t, err)
		assert.Equal(t, "2026-12-31", resp.Hasta)
		assert.Equal(t, 4, resp.Aplicadas)
	})

	t.Run("patrón con un código inactivo devuelve 400", func(t *testing.T) {
		f := newPlanFixture(t)
		id := f.conCodigo(t, "M", 5)
		_, err := f.codigos.Desactivar(ctx, id)
		require.NoError(t, err)

		_, err = f.svc.AplicarPatronSemanal(ctx, f.admin, dto.PatronSemanalRequest{
			Tienda:  f.idTienda,
			Desde:   "2026-02-09",
			Hasta:   strPtr("2026-02-15"),
			Pattern: []interface{}{float64(id), nil, nil, nil, nil, nil, nil},
		})
		status, _ := apierror.Status(err)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("patrón con menos de 7 posiciones devuelve 400", func(t *testing.T) {
		f := newPlanFixture(t)
		_, err := f.svc.AplicarPatronSemanal(ctx, f.admin, dto.PatronSemanalRequest{
			Tienda:  f.idTienda,
			Desde:   "2026-02-09",
			Pattern: []interface{}{nil, nil, nil},
		})
		status, _ := apierror.Status(err)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("ignora trabajadores de otra tienda en la lista explícita", func(t *testing.T) {
		f := newPlanFixture(t)
		m := f.conCodigo(t, "M", 5)

		bea := seedUsuario(t, f.usuarios, "Bea", "bea@tienda.es", "contraseña123", "trabajador")
		norte := &model.Tienda{Nombre: "Norte", IDJefe: intPtr(f.otroJefe.UID)}
		require.NoError(t, f.tiendas.Create(ctx, norte))
		require.NoError(t, f.trabajadores.Create(ctx, &model.Trabajador{ID: bea.ID, IDTienda: norte.ID, FechaAlta: fecha("2025-03-15")}))

		resp, err := f.svc.AplicarPatronSemanal(ctx, f.jefe, dto.PatronSemanalRequest{
			Tienda:       f.idTienda,
			Desde:        "2026-02-09",
			Hasta:        strPtr("2026-02-09"),
			Pattern:      []interface{}{float64(m), nil, nil, nil, nil, nil, nil},
			Trabajadores: []int{f.idTrab, bea.ID},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Trabajadores)
		assert.Equal(t, 1, resp.Aplicadas)
		assert.NotNil(t, f.plan.celdas[celdaKey{f.idTrab, "2026-02-09"}])
		assert.Nil(t, f.plan.celdas[celdaKey{bea.ID, "2026-02-09"}])
	})

	t.Run("encargado ajeno devuelve 403", func(t *testing.T) {
		f := newPlanFixture(t)
		_, err := f.svc.AplicarPatronSemanal(ctx, f.otroJefe, dto.PatronSemanalRequest{
			Tienda:  f.idTienda,
			Desde:   "2026-02-09",
			Pattern: []interface{}{nil, nil, nil, nil, nil, nil, nil},
		})
		status, _ := apierror.Status(err)
		assert.Equal(t, http.StatusForbidden, status)
	})
}

func TestPlanUsuario(t *testing.T) {
	ctx := context.Background()

	t.Run("agrega horas por mes y por semana", func(t *testing.T) {
		f := newPlanFixture(t)
		m := f.conCodigo(t, "M", 5)

		// Tres días de la misma semana, dos en enero y uno en febrero.
		require.NoError(t, f.plan.UpsertCelda(ctx, nil, f.idTrab, fecha("2026-01-29"), m))
		require.NoError(t, f.plan.UpsertCelda(ctx, nil, f.idTrab, fecha("2026-01-30"), m))
		require.NoError(t, f.plan.UpsertCelda(ctx, nil, f.idTrab, fecha("2026-02-02"), m))

		propio := authz.Principal{UID: f.idTrab, Rol: "trabajador"}
		resp, err := f.svc.PlanUsuario(ctx, propio, f.idTrab, 2026)
		require.NoError(t, err)

		assert.Equal(t, "Ana", resp.Perfil.Nombre)
		assert.Equal(t, f.idTienda, resp.Perfil.IDTienda)
		assert.Len(t, resp.Celdas, 3)
		assert.True(t, resp.TotalHoras.Equal(decimal.NewFromInt(15)))

		require.Len(t, resp.Meses, 12)
		assert.True(t, resp.Meses["01"].Horas.Equal(decimal.NewFromInt(10)))
		assert.Equal(t, 2, resp.Meses["01"].DiasConCodigo)
		assert.True(t, resp.Meses["03"].Horas.IsZero())

		// 29 y 30 de enero caen en la semana del lunes 26; el 2 de
		// febrero abre la semana siguiente.
		semana := resp.Semanas["2026-01-26"]
		assert.Equal(t, 2, semana.DiasConCodigo)
		assert.Equal(t, "2026-02-01", semana.SemanaFin)
		assert.Equal(t, 1, resp.Semanas["2026-02-02"].DiasConCodigo)
	})

	t.Run("un trabajador no puede ver el plan de otro", func(t *testing.T) {
		f := newPlanFixture(t)
		ajeno := authz.Principal{UID: f.idTrab + 100, Rol: "trabajador"}
		_, err := f.svc.PlanUsuario(ctx, ajeno, f.idTrab, 2026)
		status, _ := apierror.Status(err)
		assert.Equal(t, http.StatusForbidden, status)
	})
}

func TestHorasTienda(t *testing.T) {
	ctx := context.Background()
	f := newPlanFixture(t)
	f.plan.horasRows = []dto.HorasMesRow{
		{IDTrabajador: 1, Nombre: "Ana", Mes: 1, Horas: decimal.NewFromInt(80)},
		{IDTrabajador: 1, Nombre: "Ana", Mes: 2, Horas: decimal.NewFromInt(75)},
		{IDTrabajador: 2, Nombre: "Luis", Mes: 1, Horas: decimal.NewFromInt(40)},
	}

	resp, err := f.svc.HorasTienda(ctx, f.jefe, f.idTienda, 2026)
	require.NoError(t, err)
	require.Len(t, resp.Empleados, 2)

	ana := resp.Empleados[0]
	assert.Equal(t, "Ana", ana.Nombre)
	assert.True(t, ana.Total.Equal(decimal.NewFromInt(155)))
	assert.True(t, ana.Meses["02"].Equal(decimal.NewFromInt(75)))
	assert.True(t, resp.Empleados[1].Total.Equal(decimal.NewFromInt(40)))

	_, err = f.svc.HorasTienda(ctx, f.otroJefe, f.idTienda, 2026)
	status, _ := apierror.Status(err)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestAnios(t *testing.T) {
	ctx := context.Background()
	f := newPlanFixture(t)
	m := f.conCodigo(t, "M", 5)
	require.NoError(t, f.plan.UpsertCelda(ctx, nil, f.idTrab, fecha("2023-06-01"), m))

	resp, err := f.svc.Anios(ctx)
	require.NoError(t, err)

	actual := time.Now().Year()
	valores := make(map[int]int, len(resp))
	for _, a := range resp {
		valores[a.Valor] = a.Activo
	}
	assert.Equal(t, 0, valores[2023])
	activo, ok := valores[actual]
	assert.True(t, ok, "el año en curso siempre aparece")
	assert.Equal(t, 1, activo)
}

func TestAsignacionesAnio(t *testing.T) {
	ctx := context.Background()
	f := newPlanFixture(t)
	m := f.conCodigo(t, "M", 5)
	require.NoError(t, f.plan.UpsertCelda(ctx, nil, f.idTrab, fecha("2026-04-01"), m))
	require.NoError(t, f.plan.UpsertCelda(ctx, nil, f.idTrab, fecha("2025-04-01"), m))

	resp, err := f.svc.AsignacionesAnio(ctx, f.idTienda, 2026)
	require.NoError(t, err)
	require.Len(t, resp.Empleados, 1)
	require.Len(t, resp.Asignaciones, 1)
	assert.Equal(t, "2026-04-01", resp.Asignaciones[0].Fecha)
	require.Len(t, resp.Codigos, 1)

	_, err = f.svc.AsignacionesAnio(ctx, f.idTienda, 1990)
	status, _ := apierror.Status(err)
	assert.Equal(t, http.StatusBadRequest, status)
}
