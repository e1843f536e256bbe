package cartridge

import (
	"strings"

	"github.com/segmentio/ksuid"
)

// UUID идентификатор запуска/сборки
func UUID() (result string) {
	return ksuid.New().String()
}

// MaskSecret скрывает середину строки, оставляя first первых и last последних символов.
// Короткие значения скрываются целиком.
func MaskSecret(str string, first, last int) string {
	if str == "" {
		return ""
	}
	if len(str) <= first+last {
		return strings.Repeat("*", len(str))
	}

	return str[:first] + strings.Repeat("*", len(str)-first-last) + str[len(str)-last:]
}

// FirstVal первое непустое значение
func FirstVal(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
