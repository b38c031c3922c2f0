package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/auraflux/auraflux/internal/config"
)

// Config holds logger configuration
type Config struct {
	Level         string // debug, info, warn, error
	FileName      string // Log file path, empty disables file output
	MaxSize       int    // Max size in MB before rotation
	MaxBackups    int    // Max number of old log files to retain
	MaxAge        int    // Max days to retain files
	Compress      bool   // Whether to compress old files
	Format        string // json or text
	ConsoleOutput bool   // Also output to console
}

// New creates a configured logger with file rotation support
func New(cfg Config) (*zap.Logger, error) {
	if cfg.FileName != "" {
		logDir := filepath.Dir(cfg.FileName)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, err
		}
	}

	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	if cfg.Format == "text" {
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	var cores []zapcore.Core

	if cfg.FileName != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.FileName,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(fileWriter), level))
	}

	if cfg.ConsoleOutput || cfg.FileName == "" {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level))
	}

	return zap.New(
		zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	), nil
}

// FromConfig builds a logger from the application's logging config.
func FromConfig(cfg config.LoggerConfig) (*zap.Logger, error) {
	lc := Config{
		Level:  cfg.Level,
		Format: cfg.Format,
	}

	if cfg.OutputPath != "" && cfg.OutputPath != "stdout" {
		lc.FileName = cfg.OutputPath
		lc.MaxSize = 100
		lc.MaxBackups = 5
		lc.MaxAge = 30
		lc.Compress = true
	} else {
		lc.ConsoleOutput = true
	}

	return New(lc)
}
