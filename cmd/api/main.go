package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dataroom/internal/config"
	"dataroom/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:           "dataroom",
	Short:         "Due-diligence data room API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// @title Data Room API
// @version 1.0
// @description Due-diligence data room: documents, buyer questions and answer matching.
// @BasePath /
func main() {
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("error:", err)
		os.Exit(1)
	}
}

// bootstrap loads configuration from the environment (.env auto-loaded if present)
// and builds the process logger.
func bootstrap() (*config.AppConfig, *zap.Logger) {
	cfg := config.Load()
	log := logger.New(cfg.Log, cfg.Location())
	return cfg, log
}
