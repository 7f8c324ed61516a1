package middleware

import (
	"go.uber.org/zap"

	"OnShift/pkg/logger"
)

// Init initializes all middlewares.
func Init() error {
	if err := initAuthMiddleware(); err != nil {
		logger.Logger.Error("Failed to initialize auth middleware", zap.Error(err))
		return err
	}

	logger.Logger.Info("All middlewares initialized successfully")
	return nil
}
