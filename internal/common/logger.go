/*
author: akashmaji
email: akashmaji@iisc.ac.in
file: go-shardis/internal/common/logger.go
*/
package common

// logger.go contains logging utilities for the go-shardis server.
// It wraps a zap sugared logger so the rest of the codebase logs through
// one place and the level is configured once at startup.

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = mustDefaultLogger()

// mustDefaultLogger builds the logger used before InitLogger runs
// (init-time code, tests). Console encoder at info level.
func mustDefaultLogger() *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	l, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return l.Sugar()
}

// InitLogger replaces the package logger with one built at the given
// level ("debug", "info", "warn", "error"). Called once from main after
// the configuration has been read.
func InitLogger(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	l, err := cfg.Build()
	if err != nil {
		return err
	}
	logger = l.Sugar()
	return nil
}

// Log returns the shared sugared logger.
func Log() *zap.SugaredLogger {
	return logger
}
