// Package logger wraps zap with the simulator's logging conventions.
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap logger configured from Config.
type Logger struct {
	*zap.Logger
	config Config
}

// Config controls level, encoding and output destinations.
type Config struct {
	Level      string   `yaml:"level"`       // debug, info, warn, error
	Outputs    []string `yaml:"outputs"`     // stdout, file
	OutputFile string   `yaml:"output_file"` // log file path when "file" is enabled
	Format     string   `yaml:"format"`      // json or console
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:   "info",
		Outputs: []string{"stdout"},
		Format:  "json",
	}
}

// New builds a Logger from the config.
func New(cfg Config) (*Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %s: %w", cfg.Level, err)
	}

	var encoderConfig zapcore.EncoderConfig
	if cfg.Format == "console" {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	cores := []zapcore.Core{}

	if contains(cfg.Outputs, "stdout") {
		var encoder zapcore.Encoder
		if cfg.Format == "console" {
			encoder = zapcore.NewConsoleEncoder(encoderConfig)
		} else {
			encoder = zapcore.NewJSONEncoder(encoderConfig)
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level))
	}

	if contains(cfg.Outputs, "file") && cfg.OutputFile != "" {
		fileWriter, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file failed: %w", err)
		}
		encoder := zapcore.NewJSONEncoder(encoderConfig)
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(fileWriter), level))
	}

	core := zapcore.NewTee(cores...)
	zapLogger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	return &Logger{Logger: zapLogger, config: cfg}, nil
}

// Nop returns a logger that discards everything, for tests and library
// callers that pass no logger.
func Nop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// LogRun records the outcome of a single simulation run.
func (l *Logger) LogRun(run int, steps int, terminalPnL, terminalInventory float64) {
	l.Info("run_completed",
		zap.Int("run", run),
		zap.Int("steps", steps),
		zap.Float64("terminal_pnl", terminalPnL),
		zap.Float64("terminal_inventory", terminalInventory),
	)
}

// LogBatch records the aggregate outcome of a Monte Carlo batch.
func (l *Logger) LogBatch(runs int, meanPnL, stdPnL float64) {
	l.Info("batch_completed",
		zap.Int("runs", runs),
		zap.Float64("mean_pnl", meanPnL),
		zap.Float64("std_pnl", stdPnL),
	)
}

// LogError records an error with context fields.
func (l *Logger) LogError(err error, fields ...zap.Field) {
	l.Error("error_event", append(fields, zap.Error(err))...)
}

// Close flushes buffered entries.
func (l *Logger) Close() error {
	return l.Sync()
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
