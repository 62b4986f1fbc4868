package logging

import (
	"os"

	"go.uber.org/zap/zapcore"
)

const (
	BaseDataDir   = "data"
	LogsDir       = "logs"
	LogFileFormat = "2006-01-02.log"
	TimeFormat    = "2006-01-02 15:04:05"

	// Rotation limits for the daily log file.
	defaultMaxSizeMB  = 50
	defaultMaxAgeDays = 14
	defaultMaxBackups = 10
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
)

type ProcessName string

const (
	VerifierProcess ProcessName = "verifier"
	TestProcess     ProcessName = "test"
)

type LoggerConfig struct {
	// LogDir overrides the base data directory. Empty means GetBaseDataDir().
	LogDir        string
	ProcessName   ProcessName
	IsDevelopment bool
}

func NewDefaultConfig(processName ProcessName) LoggerConfig {
	return LoggerConfig{
		ProcessName:   processName,
		IsDevelopment: true,
	}
}

// GetBaseDataDir returns LOG_DATA_DIR when set, else the relative data directory.
func GetBaseDataDir() string {
	if dir, ok := os.LookupEnv("LOG_DATA_DIR"); ok && dir != "" {
		return dir
	}
	return BaseDataDir
}

func getLogLevel(isDevelopment bool) zapcore.Level {
	if isDevelopment {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

func customColorLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var color string
	switch level {
	case zapcore.DebugLevel:
		color = colorBlue
	case zapcore.InfoLevel:
		color = colorGreen
	case zapcore.WarnLevel:
		color = colorYellow
	case zapcore.ErrorLevel:
		color = colorRed
	default:
		color = colorPurple
	}
	enc.AppendString(color + level.CapitalString() + colorReset)
}
