package config

import (
	"github.com/MonkyMars/gecho"
)

var logger *gecho.Logger

// InitializeLogger builds the process logger at the level derived from the environment.
func InitializeLogger() *gecho.Logger {
	logger = NewLogger(true)
	return logger
}

// NewLogger returns a logger at the configured level. Caller info is noisy in
// request logs, so the middleware logger is built with showCaller=false.
func NewLogger(showCaller bool) *gecho.Logger {
	logLevel := gecho.ParseLogLevel(GetLogLevel())
	return gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(showCaller), gecho.WithLogLevel(logLevel)))
}

func GetLogger() *gecho.Logger {
	if logger == nil {
		return gecho.NewDefaultLogger()
	}
	return logger
}
