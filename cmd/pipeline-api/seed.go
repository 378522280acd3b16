package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/recruithub/hiring-pipeline/internal/config"
	"github.com/recruithub/hiring-pipeline/internal/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the db with the default job posting",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}

		sync, undo := initLogger(cfg)
		defer sync()
		defer undo()

		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Fatalw("initializing data store", "error", err)
		}

		s := store.NewStore(db)
		defer s.Close()

		if err := s.Seed(); err != nil {
			return err
		}

		zap.S().Info("default posting seeded")
		return nil
	},
}
