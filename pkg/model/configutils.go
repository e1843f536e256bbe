package model

import (
	"strconv"
	"strings"
	"time"

	str2duration "github.com/xhit/go-str2duration"
)

// Bool custom bool for toml configs
type Bool struct {
	Value bool
}

// UnmarshalText method satisfying toml unmarshal interface
func (d *Bool) UnmarshalText(text []byte) error {
	d.Value = false
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "true", "1", "yes", "on", "checked":
		d.Value = true
	}
	return nil
}

// Duration custom duration for toml configs
type Duration struct {
	Value time.Duration
}

// UnmarshalText method satisfying toml unmarshal interface.
// Число без единицы измерения считается минутами, поддерживаются дни/недели (1d12h).
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	t := strings.TrimSpace(string(text))
	if t == "" {
		d.Value = 0
		return nil
	}
	if _, errNum := strconv.Atoi(t); errNum == nil {
		t = t + "m"
	}
	d.Value, err = str2duration.Str2Duration(t)
	return err
}

// Int custom int for toml configs
type Int struct {
	Value int
}

// UnmarshalText method satisfying toml unmarshal interface
func (d *Int) UnmarshalText(text []byte) error {
	tt := strings.TrimSpace(string(text))
	if tt == "" {
		d.Value = 0
		return nil
	}
	i, err := strconv.Atoi(tt)
	d.Value = i
	return err
}
