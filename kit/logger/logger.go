package logger

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Level = zapcore.Level

const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
)

type Logger struct {
	*zap.Logger
}

type loggerConfig struct {
	noStdout   bool
	maxSize    int
	maxBackups int
	maxAge     int
	compress   bool
}

type Option func(*loggerConfig)

func NoStdout(l *loggerConfig) {
	l.noStdout = true
}

func WithRotate(maxSizeMB, maxBackups, maxAgeDays int, compress bool) Option {
	return func(l *loggerConfig) {
		l.maxSize = maxSizeMB
		l.maxBackups = maxBackups
		l.maxAge = maxAgeDays
		l.compress = compress
	}
}

func NewLogger(path string, level Level, options ...Option) (*Logger, error) {
	config := &loggerConfig{
		maxSize:    100,
		maxBackups: 3,
		maxAge:     28,
	}
	for _, option := range options {
		option(config)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var writeSyncers []zapcore.WriteSyncer
	if path != "" {
		writeSyncers = append(writeSyncers, zapcore.AddSync(&lumberjack.Logger{
			Filename:   path,
			MaxSize:    config.maxSize,
			MaxBackups: config.maxBackups,
			MaxAge:     config.maxAge,
			Compress:   config.compress,
		}))
	}
	if !config.noStdout {
		writeSyncers = append(writeSyncers, zapcore.AddSync(os.Stdout))
	}
	if len(writeSyncers) == 0 {
		return nil, errors.New("logger has no output")
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.NewMultiWriteSyncer(writeSyncers...),
		level,
	)

	return &Logger{Logger: zap.New(core, zap.AddCaller())}, nil
}

func CreateNoOpLogger() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

func (l *Logger) With(fields ...Field) *Logger {
	return &Logger{Logger: l.Logger.With(fields...)}
}
