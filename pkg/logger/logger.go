package logger

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogConfig log configuration, filled by pkg/config from environment variables
type LogConfig struct {
	Level      string `env:"LOG_LEVEL"`
	Filename   string `env:"LOG_FILENAME"`
	MaxSize    int    `env:"LOG_MAX_SIZE"` // MB
	MaxAge     int    `env:"LOG_MAX_AGE"`  // days
	MaxBackups int    `env:"LOG_MAX_BACKUPS"`
	Daily      bool   `env:"LOG_DAILY"`
}

// Lg global logger instance
var Lg *zap.Logger

// Init builds the global logger. In development mode logs go to stdout with a
// console encoder; otherwise they are written as JSON to a rotating file.
func Init(cfg *LogConfig, mode string) error {
	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
		level = zapcore.InfoLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var cores []zapcore.Core
	if mode == "development" || mode == "test" || cfg.Filename == "" {
		consoleEnc := zap.NewDevelopmentEncoderConfig()
		consoleEnc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleEnc),
			zapcore.AddSync(os.Stdout),
			level,
		))
	}
	if cfg.Filename != "" {
		if dir := filepath.Dir(cfg.Filename); dir != "." {
			_ = os.MkdirAll(dir, 0o755)
		}
		writer := &lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSize,
			MaxAge:     cfg.MaxAge,
			MaxBackups: cfg.MaxBackups,
			LocalTime:  true,
			Compress:   false,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encCfg),
			zapcore.AddSync(writer),
			level,
		))
	}

	Lg = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
	zap.ReplaceGlobals(Lg)
	return nil
}

func Debug(msg string, fields ...zap.Field) { l().Debug(msg, fields...) }

func Info(msg string, fields ...zap.Field) { l().Info(msg, fields...) }

func Warn(msg string, fields ...zap.Field) { l().Warn(msg, fields...) }

func Error(msg string, fields ...zap.Field) { l().Error(msg, fields...) }

func l() *zap.Logger {
	if Lg == nil {
		Lg = zap.NewNop()
	}
	return Lg
}

// Sync flushes buffered log entries, call before exit
func Sync() {
	if Lg != nil {
		_ = Lg.Sync()
	}
}
