// обертка над zap: глобальный логер сервиса, обогащаемый полями из контекста

package logger

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	defaultLogger = &Engine{Logger: zap.NewNop()}
	level         = zap.NewAtomicLevelAt(zap.InfoLevel)
	mtx           sync.RWMutex
)

type Engine struct {
	*zap.Logger
}

// ConfigOption модификатор конфигурации zap перед сборкой логера
type ConfigOption func(zap.Config) zap.Config

// Logger возвращает логер с полями из контекста.
// До вызова SetupDefaultLogger пишет в никуда (удобно для тестов и библиотечного режима).
func Logger(ctx context.Context) *Engine {
	mtx.RLock()
	l := defaultLogger
	mtx.RUnlock()

	return l.WithContext(ctx)
}

func New(logger *zap.Logger) *Engine {
	return &Engine{
		Logger: logger,
	}
}

func (l *Engine) SetLevel(lvl zapcore.Level) {
	level.SetLevel(lvl)
}

func (l *Engine) WithContext(ctx context.Context) *Engine {
	if ctx == nil {
		return l
	}

	logger := l.Logger
	for _, field := range logKeys {
		value, ok := ctx.Value(field).(string)
		if !ok || value == "" {
			continue
		}
		logger = logger.With(zap.String(string(field), value))
	}

	// оборачиваем полями из fieldStorage
	logger = withStorageFields(ctx, logger)

	return &Engine{Logger: logger}
}

// SetupDefaultLogger инициализирует глобальный логер
func SetupDefaultLogger(namespace string, options ...ConfigOption) *Engine {
	options = append([]ConfigOption{withNamespace(namespace)}, options...)

	mtx.Lock()
	defaultLogger = New(initLogger(options...))
	mtx.Unlock()

	return defaultLogger
}

// SetDefault подменяет глобальный логер (в тестах - zaptest/observer)
func SetDefault(l *Engine) {
	if l == nil {
		return
	}
	mtx.Lock()
	defaultLogger = l
	mtx.Unlock()
}

func initLogger(options ...ConfigOption) *zap.Logger {
	config := zap.NewProductionConfig()
	config.Level = level
	config.Sampling = &zap.SamplingConfig{
		Initial:    1000,
		Thereafter: 10,
	}

	for _, opt := range options {
		config = opt(config)
	}

	logger, err := config.Build()
	if err != nil {
		return zap.NewNop()
	}

	return logger
}

func withNamespace(namespace string) ConfigOption {
	return func(c zap.Config) zap.Config {
		if namespace == "" {
			return c
		}
		if c.InitialFields == nil {
			c.InitialFields = map[string]interface{}{}
		}
		c.InitialFields["logger"] = namespace
		return c
	}
}

// WithCustomField добавляет постоянное поле во все записи
func WithCustomField(key, value string) ConfigOption {
	return func(c zap.Config) zap.Config {
		if c.InitialFields == nil {
			c.InitialFields = map[string]interface{}{}
		}
		c.InitialFields[key] = value
		return c
	}
}

// WithOutputPaths куда пишем (stdout, stderr, путь к файлу)
func WithOutputPaths(paths ...string) ConfigOption {
	return func(c zap.Config) zap.Config {
		if len(paths) > 0 {
			c.OutputPaths = paths
		}
		return c
	}
}

// WithLevel уровень логирования строкой (debug/info/warn/error). Пустое значение - info.
func WithLevel(lvl string) ConfigOption {
	return func(c zap.Config) zap.Config {
		if lvl == "" {
			return c
		}
		var zl zapcore.Level
		if err := zl.UnmarshalText([]byte(lvl)); err == nil {
			level.SetLevel(zl)
		}
		return c
	}
}

// WithDevelopment консольный формат вывода для CLI
func WithDevelopment() ConfigOption {
	return func(c zap.Config) zap.Config {
		c.Encoding = "console"
		c.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		c.Sampling = nil
		return c
	}
}

func Debug(ctx context.Context, msg string, fields ...zap.Field) {
	Logger(ctx).Debug(msg, fields...)
}

func Info(ctx context.Context, msg string, fields ...zap.Field) {
	Logger(ctx).Info(msg, fields...)
}

func Warn(ctx context.Context, msg string, fields ...zap.Field) {
	Logger(ctx).Warn(msg, fields...)
}

func Error(ctx context.Context, msg string, fields ...zap.Field) {
	Logger(ctx).Error(msg, fields...)
}

func Panic(ctx context.Context, msg string, fields ...zap.Field) {
	Logger(ctx).Panic(msg, fields...)
}
