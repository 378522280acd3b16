package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/recruithub/hiring-pipeline/internal/config"
	"github.com/recruithub/hiring-pipeline/internal/store"
	"github.com/recruithub/hiring-pipeline/pkg/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the db",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}

		sync, undo := initLogger(cfg)
		defer sync()
		defer undo()

		defer zap.S().Info("db migrated")

		zap.S().Info("initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Fatalw("initializing data store", "error", err)
		}

		s := store.NewStore(db)
		defer s.Close()

		if cfg.Service.MigrationFolder != "" {
			return migrations.MigrateStore(db, cfg)
		}
		return s.InitialMigration()
	},
}
