package router

import (
	"time"

	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/authz"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/config"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/handler"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/middleware"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/repository"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/service"
	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	tiendaRepo := repository.NewTiendaRepository(db)
	trabajadorRepo := repository.NewTrabajadorRepository(db)
	turnoRepo := repository.NewTurnoRepository(db)
	tipoTurnoRepo := repository.NewTipoTurnoRepository(db)
	requerimientoRepo := repository.NewRequerimientoRepository(db)
	asignacionRepo := repository.NewAsignacionRepository(db)
	codigoRepo := repository.NewCodigoRepository(db)
	planRepo := repository.NewPlanificacionRepository(db)
	fichajeRepo := repository.NewFichajeRepository(db)

	auth := authz.NewAuthorizer(tiendaRepo, trabajadorRepo)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	usuarioSvc := service.NewUsuarioService(usuarioRepo, trabajadorRepo, tiendaRepo)
	tiendaSvc := service.NewTiendaService(tiendaRepo, usuarioRepo)
	turnoSvc := service.NewTurnoService(turnoRepo, tipoTurnoRepo, requerimientoRepo, auth, dispatcher)
	asignacionSvc := service.NewAsignacionService(asignacionRepo, turnoRepo, trabajadorRepo, requerimientoRepo, auth)
	planSvc := service.NewPlanificacionService(planRepo, codigoRepo, trabajadorRepo, auth)
	horarioSvc := service.NewHorarioService(turnoRepo, asignacionRepo, trabajadorRepo, planRepo)
	fichajeSvc := service.NewFichajeService(fichajeRepo, auth)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(usuarioSvc)
	tiendasH := handler.NewTiendasHandler(tiendaSvc)
	turnosH := handler.NewTurnosHandler(turnoSvc, asignacionSvc)
	planH := handler.NewPlanificacionHandler(planSvc)
	horariosH := handler.NewHorariosHandler(horarioSvc)
	fichajesH := handler.NewFichajesHandler(fichajeSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public login, setup-token protected set-password)
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		authGroup.POST("/set-password", middleware.SetupTokenAuth(cfg.JWTSecret), authH.SetPassword)
	}

	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	gestionMW := middleware.RequireGestion()
	adminMW := middleware.RequireRole("admin", "administrador")

	api := r.Group("/api", jwtMW)
	{
		// Usuarios y tiendas — administrador
		usuarios := api.Group("/usuarios", adminMW)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
		}
		tiendas := api.Group("/tiendas")
		{
			tiendas.GET("", tiendasH.Listar)
			tiendas.POST("", adminMW, tiendasH.Crear)
		}

		// Turnos, requerimientos y asignaciones directas
		turnos := api.Group("/turnos")
		{
			turnos.POST("", gestionMW, turnosH.Crear)
			turnos.GET("/tienda/:id_tienda", turnosH.ListarPorTienda)
			turnos.GET("/trabajadores/:id_tienda", usuariosH.ListarEmpleados)
			turnos.POST("/trabajadores", gestionMW, usuariosH.CrearTrabajador)
			turnos.GET("/requerimientos", turnosH.RequerimientosSemana)
			turnos.POST("/requerimientos", gestionMW, turnosH.GuardarRequerimiento)
			turnos.POST("/asignar", gestionMW, turnosH.Asignar)
			turnos.POST("/desasignar", gestionMW, turnosH.Desasignar)
			turnos.GET("/asignaciones", turnosH.AsignacionesSemana)
		}
		api.GET("/tipos-turno", turnosH.ListarTipos)

		// Planificación anual
		plan := api.Group("/planificacion")
		{
			plan.GET("/codigos", planH.ListarCodigos)
			plan.POST("/codigos", gestionMW, planH.GuardarCodigo)
			plan.DELETE("/codigos/:id", gestionMW, planH.EliminarCodigo)
			plan.GET("/anios", planH.Anios)
			plan.GET("/empleados", planH.Empleados)
			plan.GET("/asignaciones", planH.Asignaciones)
			plan.PUT("/asignacion", gestionMW, planH.SetCelda)
			plan.POST("/asignaciones/bulk", gestionMW, planH.BulkCeldas)
			plan.POST("/auto/patron-semanal", gestionMW, planH.PatronSemanal)
			plan.GET("/horas", gestionMW, planH.Horas)
			plan.GET("/usuario/:id", planH.PlanUsuario)
		}

		// Horario semanal compuesto
		api.GET("/horarios/semana", horariosH.Semana)

		// Fichajes
		fichajes := api.Group("/fichajes")
		{
			fichajes.POST("", fichajesH.Fichar)
			fichajes.POST("/manual", gestionMW, fichajesH.FicharManual)
			fichajes.GET("/hoy/:id_trabajador", fichajesH.Hoy)
			fichajes.GET("/:id_trabajador", fichajesH.Listar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
