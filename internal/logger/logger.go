package logger

import "go.uber.org/zap"

// New builds the production logger used across the service.
func New() *zap.Logger {
	l, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	return l
}
