package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Conf selects the encoder and the minimum level of the process logger.
type Conf struct {
	Level string `json:"level"` // debug, info, warn, error. empty = info
	Dev   bool   `json:"dev"`   // console encoder, caller + stacktraces on warn
}

// New builds the process logger
func New(conf Conf) (*zap.Logger, error) {
	var cfg zap.Config
	if conf.Dev {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	if conf.Level != "" {
		lvl, err := zapcore.ParseLevel(conf.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", conf.Level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	return cfg.Build()
}

// Install builds a logger from conf and replaces the zap globals with it.
// The returned func restores the previous globals.
func Install(conf Conf) (*zap.Logger, func(), error) {
	logger, err := New(conf)
	if err != nil {
		return nil, nil, err
	}
	restore := zap.ReplaceGlobals(logger)
	return logger, restore, nil
}
