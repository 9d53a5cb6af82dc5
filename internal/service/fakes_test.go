package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/dto"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── In-memory repository stubs ───────────────────────────────────────────────
// All stubs return a nil *gorm.DB so runTx executes callbacks directly.

type fakeUsuarioRepo struct {
	seq   int
	users map[int]*model.Usuario
}

func newFakeUsuarioRepo() *fakeUsuarioRepo {
	return &fakeUsuarioRepo{users: make(map[int]*model.Usuario)}
}

func (r *fakeUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.Email != nil {
		for _, ex := range r.users {
			if ex.Email != nil && *ex.Email == *u.Email {
				return errors.New("duplicate email")
			}
		}
	}
	r.seq++
	u.ID = r.seq
	r.users[u.ID] = u
	return nil
}

func (r *fakeUsuarioRepo) FindByID(_ context.Context, id int) (*model.Usuario, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUsuarioRepo) FindByIdentificador(_ context.Context, identificador string) (*model.Usuario, error) {
	for _, u := range r.users {
		if u.Email != nil && *u.Email == identificador {
			return u, nil
		}
	}
	for _, u := range r.users {
		if u.Nombre == identificador {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	out := make([]model.Usuario, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUsuarioRepo) UpdatePasswordHash(_ context.Context, id int, hash string) (int64, error) {
	u, ok := r.users[id]
	if !ok {
		return 0, nil
	}
	u.PasswordHash = hash
	return 1, nil
}

func (r *fakeUsuarioRepo) UpdateRol(_ context.Context, id int, rol string) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Rol = rol
	return nil
}

type fakeTiendaRepo struct {
	seq     int
	tiendas map[int]*model.Tienda
}

func newFakeTiendaRepo() *fakeTiendaRepo {
	return &fakeTiendaRepo{tiendas: make(map[int]*model.Tienda)}
}

func (r *fakeTiendaRepo) Create(_ context.Context, t *model.Tienda) error {
	r.seq++
	t.ID = r.seq
	r.tiendas[t.ID] = t
	return nil
}

func (r *fakeTiendaRepo) FindByID(_ context.Context, id int) (*model.Tienda, error) {
	t, ok := r.tiendas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *fakeTiendaRepo) List(_ context.Context) ([]model.Tienda, error) {
	out := make([]model.Tienda, 0, len(r.tiendas))
	for _, t := range r.tiendas {
		out = append(out, *t)
	}
	return out, nil
}

type fakeTrabajadorRepo struct {
	trabajadores map[int]*model.Trabajador
	usuarios     *fakeUsuarioRepo
}

func newFakeTrabajadorRepo(usuarios *fakeUsuarioRepo) *fakeTrabajadorRepo {
	return &fakeTrabajadorRepo{trabajadores: make(map[int]*model.Trabajador), usuarios: usuarios}
}

func (r *fakeTrabajadorRepo) Create(_ context.Context, t *model.Trabajador) error {
	if _, ok := r.trabajadores[t.ID]; ok {
		return errors.New("duplicate trabajador")
	}
	r.trabajadores[t.ID] = t
	return nil
}

func (r *fakeTrabajadorRepo) FindByID(_ context.Context, id int) (*model.Trabajador, error) {
	t, ok := r.trabajadores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if t.Usuario == nil && r.usuarios != nil {
		if u, ok := r.usuarios.users[id]; ok {
			t.Usuario = u
		}
	}
	return t, nil
}

func (r *fakeTrabajadorRepo) ListByTienda(_ context.Context, idTienda int) ([]dto.EmpleadoResponse, error) {
	out := make([]dto.EmpleadoResponse, 0)
	for _, t := range r.trabajadores {
		if t.IDTienda != idTienda {
			continue
		}
		emp := dto.EmpleadoResponse{IDTrabajador: t.ID}
		if u, ok := r.usuarios.users[t.ID]; ok {
			emp.Nombre = u.Nombre
			emp.Email = u.Email
			emp.Rol = u.Rol
		}
		out = append(out, emp)
	}
	return out, nil
}

func (r *fakeTrabajadorRepo) IDsDeTienda(_ context.Context, idTienda int) ([]int, error) {
	var ids []int
	for _, t := range r.trabajadores {
		if t.IDTienda == idTienda {
			ids = append(ids, t.ID)
		}
	}
	return ids, nil
}

type fakeTurnoRepo struct {
	seq    int
	turnos map[int]*model.Turno
}

func newFakeTurnoRepo() *fakeTurnoRepo {
	return &fakeTurnoRepo{turnos: make(map[int]*model.Turno)}
}

func (r *fakeTurnoRepo) DB() *gorm.DB { return nil }

func (r *fakeTurnoRepo) CreateTx(_ context.Context, _ *gorm.DB, t *model.Turno) error {
	r.seq++
	t.ID = r.seq
	for i := range t.Tramos {
		t.Tramos[i].IDTurno = t.ID
	}
	r.turnos[t.ID] = t
	return nil
}

func (r *fakeTurnoRepo) FindByID(_ context.Context, id int) (*model.Turno, error) {
	t, ok := r.turnos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *fakeTurnoRepo) FindPorTiendaYCodigo(_ context.Context, idTienda int, codigo string) (*model.Turno, error) {
	for _, t := range r.turnos {
		if t.IDTienda == idTienda && strings.EqualFold(t.Codigo, codigo) {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeTurnoRepo) ListPorTienda(_ context.Context, idTienda int) ([]model.Turno, error) {
	out := make([]model.Turno, 0)
	for id := 1; id <= r.seq; id++ {
		if t, ok := r.turnos[id]; ok && t.IDTienda == idTienda {
			out = append(out, *t)
		}
	}
	return out, nil
}

type fakeTipoTurnoRepo struct{ tipos []model.TipoTurno }

func (r *fakeTipoTurnoRepo) List(_ context.Context) ([]model.TipoTurno, error) {
	return r.tipos, nil
}

type reqKey struct {
	idTurno int
	fecha   string
}

type fakeRequerimientoRepo struct {
	seq  int
	rows map[reqKey]*model.RequerimientoTurno
}

func newFakeRequerimientoRepo() *fakeRequerimientoRepo {
	return &fakeRequerimientoRepo{rows: make(map[reqKey]*model.RequerimientoTurno)}
}

func (r *fakeRequerimientoRepo) Upsert(_ context.Context, idTurno int, fecha time.Time, cantidad int) error {
	k := reqKey{idTurno, fecha.Format("2006-01-02")}
	if row, ok := r.rows[k]; ok {
		row.Cantidad = cantidad
		return nil
	}
	r.seq++
	r.rows[k] = &model.RequerimientoTurno{ID: r.seq, IDTurno: idTurno, Fecha: fecha, Cantidad: cantidad}
	return nil
}

func (r *fakeRequerimientoRepo) FindTx(_ context.Context, _ *gorm.DB, idTurno int, fecha time.Time) (*model.RequerimientoTurno, error) {
	row, ok := r.rows[reqKey{idTurno, fecha.Format("2006-01-02")}]
	if !ok {
		return nil, nil
	}
	return row, nil
}

func (r *fakeRequerimientoRepo) ListSemana(_ context.Context, turnoIDs []int, fechas []time.Time) ([]model.RequerimientoTurno, error) {
	ids := make(map[int]bool, len(turnoIDs))
	for _, id := range turnoIDs {
		ids[id] = true
	}
	dias := make(map[string]bool, len(fechas))
	for _, f := range fechas {
		dias[f.Format("2006-01-02")] = true
	}
	out := make([]model.RequerimientoTurno, 0)
	for k, row := range r.rows {
		if ids[k.idTurno] && dias[k.fecha] {
			out = append(out, *row)
		}
	}
	return out, nil
}

type fakeAsignacionRepo struct {
	seq      int
	rows     map[int]*model.AsignacionTurno
	turnos   *fakeTurnoRepo
	usuarios *fakeUsuarioRepo
}

func newFakeAsignacionRepo(turnos *fakeTurnoRepo, usuarios *fakeUsuarioRepo) *fakeAsignacionRepo {
	return &fakeAsignacionRepo{rows: make(map[int]*model.AsignacionTurno), turnos: turnos, usuarios: usuarios}
}

func (r *fakeAsignacionRepo) DB() *gorm.DB { return nil }

func (r *fakeAsignacionRepo) ExistsTx(_ context.Context, _ *gorm.DB, idTrabajador, idTurno int, fecha time.Time) (bool, error) {
	for _, a := range r.rows {
		if a.IDTrabajador == idTrabajador && a.IDTurno == idTurno && sameDay(a.Fecha, fecha) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAsignacionRepo) CountTx(_ context.Context, _ *gorm.DB, idTurno int, fecha time.Time) (int64, error) {
	var n int64
	for _, a := range r.rows {
		if a.IDTurno == idTurno && sameDay(a.Fecha, fecha) {
			n++
		}
	}
	return n, nil
}

func (r *fakeAsignacionRepo) CreateTx(_ context.Context, _ *gorm.DB, a *model.AsignacionTurno) error {
	r.seq++
	a.ID = r.seq
	r.rows[a.ID] = a
	return nil
}

func (r *fakeAsignacionRepo) FindByID(_ context.Context, id int) (*model.AsignacionTurno, error) {
	a, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *fakeAsignacionRepo) Delete(_ context.Context, id int) error {
	delete(r.rows, id)
	return nil
}

func (r *fakeAsignacionRepo) ListSemana(_ context.Context, turnoIDs []int, fechas []time.Time) ([]dto.AsignacionSemanaRow, error) {
	ids := make(map[int]bool, len(turnoIDs))
	for _, id := range turnoIDs {
		ids[id] = true
	}
	dias := make(map[string]bool, len(fechas))
	for _, f := range fechas {
		dias[f.Format("2006-01-02")] = true
	}
	out := make([]dto.AsignacionSemanaRow, 0)
	for _, a := range r.rows {
		if !ids[a.IDTurno] || !dias[a.Fecha.Format("2006-01-02")] {
			continue
		}
		row := dto.AsignacionSemanaRow{
			IDAsignacion: a.ID,
			IDTrabajador: a.IDTrabajador,
			IDTurno:      a.IDTurno,
			Fecha:        a.Fecha,
		}
		if u, ok := r.usuarios.users[a.IDTrabajador]; ok {
			row.NombreTrabajador = u.Nombre
		}
		if t, ok := r.turnos.turnos[a.IDTurno]; ok {
			row.HoraInicio = t.HoraInicio
			row.HoraFin = t.HoraFin
		}
		out = append(out, row)
	}
	return out, nil
}

type fakeCodigoRepo struct {
	seq     int
	codigos map[int]*model.TurnoCodigo
}

func newFakeCodigoRepo() *fakeCodigoRepo {
	return &fakeCodigoRepo{codigos: make(map[int]*model.TurnoCodigo)}
}

func (r *fakeCodigoRepo) Create(_ context.Context, c *model.TurnoCodigo) error {
	for _, ex := range r.codigos {
		if strings.EqualFold(ex.Codigo, c.Codigo) {
			return errors.New("duplicate codigo")
		}
	}
	r.seq++
	c.ID = r.seq
	r.codigos[c.ID] = c
	return nil
}

func (r *fakeCodigoRepo) Update(_ context.Context, id int, campos map[string]interface{}) error {
	c, ok := r.codigos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range campos {
		switch k {
		case "codigo":
			c.Codigo = v.(string)
		case "descripcion":
			c.Descripcion = v.(string)
		case "horas":
			c.Horas = v.(decimal.Decimal)
		case "activo":
			c.Activo = v.(bool)
		}
	}
	return nil
}

func (r *fakeCodigoRepo) FindByID(_ context.Context, id int) (*model.TurnoCodigo, error) {
	c, ok := r.codigos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeCodigoRepo) FindByCodigo(_ context.Context, codigo string) (*model.TurnoCodigo, error) {
	for _, c := range r.codigos {
		if strings.EqualFold(c.Codigo, codigo) {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCodigoRepo) ListActivos(_ context.Context) ([]model.TurnoCodigo, error) {
	out := make([]model.TurnoCodigo, 0)
	for id := 1; id <= r.seq; id++ {
		if c, ok := r.codigos[id]; ok && c.Activo {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCodigoRepo) Desactivar(_ context.Context, id int) (int64, error) {
	c, ok := r.codigos[id]
	if !ok {
		return 0, nil
	}
	c.Activo = false
	return 1, nil
}

type celdaKey struct {
	idTrabajador int
	fecha        string
}

type fakePlanRepo struct {
	seq       int
	celdas    map[celdaKey]*model.PlanificacionAsignacion
	codigos   *fakeCodigoRepo
	horasRows []dto.HorasMesRow
}

func newFakePlanRepo(codigos *fakeCodigoRepo) *fakePlanRepo {
	return &fakePlanRepo{celdas: make(map[celdaKey]*model.PlanificacionAsignacion), codigos: codigos}
}

func (r *fakePlanRepo) DB() *gorm.DB { return nil }

func (r *fakePlanRepo) UpsertCelda(_ context.Context, _ *gorm.DB, idTrabajador int, fecha time.Time, idCodigo int) error {
	k := celdaKey{idTrabajador, fecha.Format("2006-01-02")}
	if row, ok := r.celdas[k]; ok {
		row.IDTurnoCodigo = idCodigo
		return nil
	}
	r.seq++
	r.celdas[k] = &model.PlanificacionAsignacion{
		ID:            r.seq,
		IDTrabajador:  idTrabajador,
		Fecha:         fecha,
		IDTurnoCodigo: idCodigo,
	}
	return nil
}

func (r *fakePlanRepo) DeleteCelda(_ context.Context, _ *gorm.DB, idTrabajador int, fecha time.Time) (int64, error) {
	k := celdaKey{idTrabajador, fecha.Format("2006-01-02")}
	if _, ok := r.celdas[k]; !ok {
		return 0, nil
	}
	delete(r.celdas, k)
	return 1, nil
}

func (r *fakePlanRepo) ListEntre(_ context.Context, trabajadorIDs []int, desde, hasta time.Time) ([]dto.PlanCeldaJoinRow, error) {
	ids := make(map[int]bool, len(trabajadorIDs))
	for _, id := range trabajadorIDs {
		ids[id] = true
	}
	out := make([]dto.PlanCeldaJoinRow, 0)
	for _, c := range r.celdas {
		if !ids[c.IDTrabajador] || c.Fecha.Before(desde) || c.Fecha.After(hasta) {
			continue
		}
		row := dto.PlanCeldaJoinRow{
			IDAsignacion:  c.ID,
			IDTrabajador:  c.IDTrabajador,
			Fecha:         c.Fecha,
			IDTurnoCodigo: c.IDTurnoCodigo,
		}
		if cod, ok := r.codigos.codigos[c.IDTurnoCodigo]; ok {
			row.Codigo = cod.Codigo
			row.Descripcion = cod.Descripcion
			row.Horas = cod.Horas
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *fakePlanRepo) ListAnioUsuario(ctx context.Context, idTrabajador, anio int) ([]dto.PlanCeldaJoinRow, error) {
	desde := time.Date(anio, time.January, 1, 0, 0, 0, 0, time.UTC)
	hasta := time.Date(anio, time.December, 31, 0, 0, 0, 0, time.UTC)
	return r.ListEntre(ctx, []int{idTrabajador}, desde, hasta)
}

func (r *fakePlanRepo) Anios(_ context.Context) ([]int, error) {
	vistos := make(map[int]bool)
	var out []int
	for _, c := range r.celdas {
		if !vistos[c.Fecha.Year()] {
			vistos[c.Fecha.Year()] = true
			out = append(out, c.Fecha.Year())
		}
	}
	return out, nil
}

func (r *fakePlanRepo) HorasPorMes(_ context.Context, _, _ int) ([]dto.HorasMesRow, error) {
	// Tests inject rows directly instead of resolving store membership.
	return r.horasRows, nil
}

type fichajeKey struct {
	idTrabajador int
	fecha        string
}

type fakeFichajeRepo struct {
	seq  int
	rows map[fichajeKey]*model.Fichaje
}

func newFakeFichajeRepo() *fakeFichajeRepo {
	return &fakeFichajeRepo{rows: make(map[fichajeKey]*model.Fichaje)}
}

func (r *fakeFichajeRepo) Create(_ context.Context, f *model.Fichaje) error {
	r.seq++
	f.ID = r.seq
	r.rows[fichajeKey{f.IDTrabajador, f.Fecha.Format("2006-01-02")}] = f
	return nil
}

func (r *fakeFichajeRepo) FindByFecha(_ context.Context, idTrabajador int, fecha time.Time) (*model.Fichaje, error) {
	f, ok := r.rows[fichajeKey{idTrabajador, fecha.Format("2006-01-02")}]
	if !ok {
		return nil, nil
	}
	return f, nil
}

func (r *fakeFichajeRepo) Update(_ context.Context, f *model.Fichaje) error {
	r.rows[fichajeKey{f.IDTrabajador, f.Fecha.Format("2006-01-02")}] = f
	return nil
}

func (r *fakeFichajeRepo) ListEntre(_ context.Context, idTrabajador int, desde, hasta time.Time) ([]model.Fichaje, error) {
	out := make([]model.Fichaje, 0)
	for _, f := range r.rows {
		if f.IDTrabajador == idTrabajador && !f.Fecha.Before(desde) && !f.Fecha.After(hasta) {
			out = append(out, *f)
		}
	}
	return out, nil
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func fecha(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
