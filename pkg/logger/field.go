package logger

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type ctxKey string

const (
	RequestIDKey   ctxKey = "request-id"
	ServiceIDKey   ctxKey = "service-id"
	ServiceTypeKey ctxKey = "service-type"
	CourseKey      ctxKey = "course"
	RunKey         ctxKey = "run-id"

	storageKey ctxKey = "logger.field_storage"
)

var logKeys = []ctxKey{RequestIDKey, ServiceIDKey, ServiceTypeKey, CourseKey, RunKey}

// SetFieldCtx кладет строковое поле в контекст, логер подхватит его автоматически
func SetFieldCtx(ctx context.Context, key ctxKey, value string) context.Context {
	return context.WithValue(ctx, key, value)
}

func GetFieldCtx(ctx context.Context, key ctxKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}

func SetRequestIDCtx(ctx context.Context, requestID string) context.Context {
	return SetFieldCtx(ctx, RequestIDKey, requestID)
}

// Field - поле для fieldStorage, живущее на протяжении всего запроса
type Field struct {
	key   string
	field zap.Field
}

func FieldString(key string, val string) Field {
	return Field{key: key, field: zap.String(key, val)}
}

func FieldInt(key string, val int) Field {
	return Field{key: key, field: zap.Int(key, val)}
}

func FieldFloat64(key string, val float64) Field {
	return Field{key: key, field: zap.Float64(key, val)}
}

// fieldStorage изменяемый набор полей, разделяемый всеми логерами запроса
type fieldStorage struct {
	fields map[string]zap.Field
	sync.RWMutex
}

func (s *fieldStorage) set(f Field) {
	s.Lock()
	s.fields[f.key] = f.field
	s.Unlock()
}

func (s *fieldStorage) external() []zap.Field {
	s.RLock()
	res := make([]zap.Field, 0, len(s.fields))
	for _, v := range s.fields {
		res = append(res, v)
	}
	s.RUnlock()

	return res
}

// WithFieldStorage создает хранилище полей в контексте (если его еще нет)
func WithFieldStorage(ctx context.Context) context.Context {
	if _, ok := ctx.Value(storageKey).(*fieldStorage); ok {
		return ctx
	}
	return context.WithValue(ctx, storageKey, &fieldStorage{fields: map[string]zap.Field{}})
}

// AddFields добавляет поля в хранилище контекста. Без WithFieldStorage вызов ничего не делает.
func AddFields(ctx context.Context, fields ...Field) {
	storage, ok := ctx.Value(storageKey).(*fieldStorage)
	if !ok {
		return
	}
	for _, f := range fields {
		storage.set(f)
	}
}

func withStorageFields(ctx context.Context, logger *zap.Logger) *zap.Logger {
	storage, ok := ctx.Value(storageKey).(*fieldStorage)
	if !ok {
		return logger
	}
	return logger.With(storage.external()...)
}
