package logger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Ошибки пакета.
var (
	ErrLoggerNotFound   = errors.New("logger not found in context")
	ErrInitGlobalLogger = errors.New("failed to initialize global logger")
)

type loggerKey struct{}

// global - логгер процесса. fallback пишет только предупреждения и выше,
// пока main не установил настоящий логгер.
var global = struct {
	sync.RWMutex
	logger   *Logger
	fallback *Logger
}{fallback: newFallbackLogger()}

func newFallbackLogger() *Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	zapLogger, err := cfg.Build()
	if err != nil {
		zapLogger = zap.NewNop()
	}
	return NewFromZap(zapLogger.With(zap.String("logger", "fallback")))
}

// NewContext возвращает копию ctx с логгером l.
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// FromContext извлекает логгер, сохраненный NewContext.
func FromContext(ctx context.Context) (*Logger, error) {
	if ctx == nil {
		return nil, fmt.Errorf("nil context: %w", ErrLoggerNotFound)
	}
	l, ok := ctx.Value(loggerKey{}).(*Logger)
	if !ok || l == nil {
		return nil, fmt.Errorf("logger lookup: %w", ErrLoggerNotFound)
	}
	return l, nil
}

// InitGlobalLogger создает глобальный логгер, если он еще не установлен.
// Повторный вызов ничего не меняет.
func InitGlobalLogger(env Environment, level string) error {
	global.Lock()
	defer global.Unlock()

	if global.logger != nil {
		return nil
	}

	l, err := NewLogger(env, level)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInitGlobalLogger, err)
	}
	global.logger = l
	return nil
}

// SetGlobalLogger заменяет глобальный логгер. nil возвращает к резервному.
func SetGlobalLogger(l *Logger) {
	global.Lock()
	defer global.Unlock()
	global.logger = l
}

// Log возвращает логгер из ctx, иначе глобальный, иначе резервный.
func Log(ctx context.Context) *Logger {
	if l, err := FromContext(ctx); err == nil {
		return l
	}

	global.RLock()
	defer global.RUnlock()
	if global.logger != nil {
		return global.logger
	}
	return global.fallback
}
