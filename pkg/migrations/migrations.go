package migrations

import (
	"fmt"
	"os"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/recruithub/hiring-pipeline/internal/config"
)

// MigrateStore runs the goose SQL migrations found in the configured folder
// against the store database.
func MigrateStore(db *gorm.DB, cfg *config.Config) error {
	goose.SetLogger(&logger{})

	folder := cfg.Service.MigrationFolder
	fi, err := os.Stat(folder)
	if err != nil {
		return err
	}

	if !fi.Mode().IsDir() {
		return fmt.Errorf("failed to open migration folder: %s is not a folder", folder)
	}

	goose.SetBaseFS(os.DirFS(folder))

	if err := goose.SetDialect(dialect(cfg)); err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return goose.Up(sqlDB, ".")
}

func dialect(cfg *config.Config) string {
	if cfg.Database != nil && cfg.Database.Type == "sqlite" {
		return "sqlite3"
	}
	return "postgres"
}

/*
logger implements goose.Logger interface

	type Logger interface {
		Fatalf(format string, v ...interface{})
		Printf(format string, v ...interface{})
	}
*/
type logger struct{}

func (m *logger) Printf(format string, v ...interface{}) { zap.S().Infof(format, v...) }
func (m *logger) Fatalf(format string, v ...interface{}) { zap.S().Fatalf(format, v...) }
