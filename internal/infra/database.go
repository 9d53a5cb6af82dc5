package infra

import (
	"fmt"

	"github.com/AlexR8a/rrhh-CalendarioFichajes/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate to create or update all tables.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}
	return db, nil
}

// RunMigrations applies the schema. Shared with integration tests.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Usuario{},
		&model.Tienda{},
		&model.Trabajador{},
		&model.TipoTurno{},
		&model.Turno{},
		&model.TurnoTramo{},
		&model.RequerimientoTurno{},
		&model.AsignacionTurno{},
		&model.TurnoCodigo{},
		&model.PlanificacionAsignacion{},
		&model.Fichaje{},
	)
}

// HasCatalogoCodigos probes whether the plan code catalog exists in the
// schema. Resolved once at startup and injected into the sync service.
func HasCatalogoCodigos(db *gorm.DB) bool {
	return db.Migrator().HasTable(&model.TurnoCodigo{})
}
