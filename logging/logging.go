package logging

import "go.uber.org/zap"

// New builds a zap logger for the given environment. Production gets the json
// encoder at info level, development gets the console encoder at debug level
// and anything else falls back to the example logger used in tests.
func New(environment string) (*zap.Logger, error) {
	switch environment {
	case "production":
		return zap.NewProduction()
	case "development":
		return zap.NewDevelopment()
	default:
		return zap.NewExample(), nil
	}
}

// Named returns a sugared child of the global logger, used by background jobs
// so their lines can be told apart from request logs
func Named(name string) *zap.SugaredLogger {
	return zap.L().Named(name).Sugar()
}
