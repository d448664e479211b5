// Package logx wires the global zap logger.
package logx

import (
	"go.uber.org/zap"
)

// Init builds the process logger and installs it as the zap global.
// mode is "production" or anything else for development output.
func Init(mode string) *zap.Logger {
	var cfg zap.Config
	if mode == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.OutputPaths = []string{"stdout"}

	logger, err := cfg.Build(zap.AddCaller())
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
	return logger
}
