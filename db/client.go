package db

import (
	"go.uber.org/zap"
)

// Closer is satisfied by sqldb.Client and kvdb.Client
type Closer interface {
	Close() error
}

// CloseClient closes c and logs the outcome under name
func CloseClient(name string, c Closer) {
	if c == nil {
		zap.L().Info("nothing to close", zap.String("client", name))
		return
	}
	if err := c.Close(); err != nil {
		zap.L().Warn("failed to close", zap.String("client", name), zap.Error(err))
	} else {
		zap.L().Info("closed", zap.String("client", name))
	}
}
