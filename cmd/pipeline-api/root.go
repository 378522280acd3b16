package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/recruithub/hiring-pipeline/internal/config"
	"github.com/recruithub/hiring-pipeline/pkg/log"
)

var rootCmd = &cobra.Command{
	Use: "pipeline-api",
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

// initLogger installs the global zap logger at the configured level and
// returns the undo functions to defer.
func initLogger(cfg *config.Config) (func(), func()) {
	logLvl, err := zap.ParseAtomicLevel(cfg.Service.LogLevel)
	if err != nil {
		logLvl = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	logger := log.InitLog(logLvl)
	undo := zap.ReplaceGlobals(logger)

	return func() { _ = logger.Sync() }, undo
}
