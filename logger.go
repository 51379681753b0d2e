package lookupdest

import (
	"os"

	"github.com/go-i2p/logger"
)

// log is the package default logger. Request handling code logs through
// RouterContext.Log so callers can supply their own.
var log = logger.GetGoI2PLogger()

// LogInit initializes the go-i2p logger with the specified level.
// The level is read from the environment, so it is set first.
func LogInit(level int) {
	switch level {
	case DEBUG, INFO:
		os.Setenv("DEBUG_I2P", "debug")
	case WARNING:
		os.Setenv("DEBUG_I2P", "warn")
	case ERROR:
		os.Setenv("DEBUG_I2P", "error")
	case FATAL:
		os.Setenv("DEBUG_I2P", "fatal")
		os.Setenv("WARNFAIL_I2P", "true")
	default:
		os.Setenv("DEBUG_I2P", "debug")
	}
	logger.InitializeGoI2PLogger()
}
