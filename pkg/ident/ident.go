// Package ident выдает идентификаторы элементов манифеста в рамках одной генерации.
package ident

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/segmentio/ksuid"
)

const (
	ItemPrefix         = "I_"
	ManifestPrefix     = "M_"
	OrganizationPrefix = "O_"
	ResourceSuffix     = "_R"

	// MonotonicBase первое значение счетчика в каждой генерации
	MonotonicBase = 100
	// TokenLength длина случайного токена
	TokenLength = 20
)

type Strategy string

var ErrUnknownStrategy = errors.New("unknown identifier strategy")

const (
	StrategyCounter Strategy = "counter"
	StrategyRandom  Strategy = "random"
)

// Allocator источник идентификаторов. Не потокобезопасен: одна генерация - один экземпляр.
type Allocator interface {
	Next(prefix, suffix string) string
	Reset()
}

// New аллокатор по стратегии
func New(strategy Strategy) (Allocator, error) {
	switch strategy {
	case StrategyCounter, "":
		return NewMonotonic(), nil
	case StrategyRandom:
		return NewRandom(), nil
	}

	return nil, fmt.Errorf("%w %q", ErrUnknownStrategy, strategy)
}

func ParseStrategy(s string) (Strategy, error) {
	st := Strategy(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case "", StrategyCounter:
		return StrategyCounter, nil
	case StrategyRandom:
		return StrategyRandom, nil
	}

	return "", fmt.Errorf("%w %q", ErrUnknownStrategy, s)
}

// Monotonic счетчик от MonotonicBase, результат воспроизводим
type Monotonic struct {
	n int
}

func NewMonotonic() *Monotonic {
	return &Monotonic{n: MonotonicBase}
}

func (m *Monotonic) Next(prefix, suffix string) string {
	id := prefix + strconv.Itoa(m.n) + suffix
	m.n++

	return id
}

func (m *Monotonic) Reset() {
	m.n = MonotonicBase
}

// Random токен из случайной части ksuid: hex в верхнем регистре, обрезанный до TokenLength
type Random struct{}

func NewRandom() *Random {
	return &Random{}
}

func (r *Random) Next(prefix, suffix string) string {
	return prefix + token() + suffix
}

func (r *Random) Reset() {}

func token() string {
	payload := ksuid.New().Payload()
	t := strings.ToUpper(hex.EncodeToString(payload))

	return t[:TokenLength]
}

// Resource идентификатор ресурса, производный от идентификатора элемента
func Resource(itemID string) string {
	return itemID + ResourceSuffix
}

// Token значащая часть идентификатора: без префикса и суффикса
func Token(id, prefix, suffix string) string {
	return strings.TrimSuffix(strings.TrimPrefix(id, prefix), suffix)
}

// Folder имя папки ресурса: идентификатор без префикса в нижнем регистре
func Folder(id, prefix string) string {
	return strings.ToLower(Token(id, prefix, ""))
}
