// Package main is the entry point for geoviewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/geoviewer/internal/config"
	"github.com/Faultbox/geoviewer/internal/logger"
	"github.com/Faultbox/geoviewer/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := initLogger(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== geoviewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	app, err := viewer.NewApp(cfg)
	if err != nil {
		logger.Error("failed to start viewer", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()

	if err := app.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

func initLogger(l config.LoggingConfig) error {
	if l.LogFile == "" {
		return logger.Init(l.Level, "")
	}
	fc := logger.DefaultFileConfig(l.LogFile)
	fc.MaxSizeMB = l.MaxSizeMB
	fc.MaxBackups = l.MaxBackups
	fc.MaxAgeDays = l.MaxAgeDays
	fc.JSON = l.JSON
	return logger.InitWithFileConfig(l.Level, fc, true)
}
