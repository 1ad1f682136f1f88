// Package logger builds the zap logger shared by client components.
package logger

import (
	"go.uber.org/zap"
)

const (
	// ModeRelease logs info and above as JSON
	ModeRelease = "release"
	// ModeDebug logs debug and above in console format
	ModeDebug = "debug"
	// ModeSilent discards all logs
	ModeSilent = "silent"
)

// New creates logger for mode
func New(mode string) (*zap.Logger, error) {
	switch mode {
	case ModeSilent, "":
		return zap.NewNop(), nil
	case ModeDebug:
		return zap.NewDevelopment()
	}
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stderr"}
	return config.Build()
}
