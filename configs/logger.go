package configs

import (
	"go.uber.org/zap"
)

var logger *zap.Logger

// InitLogger sets up the process-wide zap logger. Production gets JSON
// output, everything else the development console encoder.
func InitLogger(cfg *Config) {
	var err error
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
}

func Log() *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger
}
