package cartridge

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/gommon/color"
)

var (
	ErrConfig = errors.New("config file is empty")
	warning   = color.Red("[Fail]")
)

// ConfigLoad читаем конфигурацию
// 1. значения по-умолчанию и переменные окружения (envconfig)
// 2. поверх - toml-файл или toml, переданный в base64
// Пустое имя конфигурации допустимо: остаются значения окружения.
func ConfigLoad(config string, cfgPointer interface{}) (payload string, err error) {
	if err := envconfig.Process("", cfgPointer); err != nil {
		fmt.Println(warning, "Unable load default environment:", err)
		return "", fmt.Errorf("unable load default environment: %w", err)
	}

	if config == "" {
		return "", nil
	}

	// проверка на длину конфигурационного файла
	// если он больше 200, то скорее всего передали конфигурацию в base64
	if len(config) < 200 {
		if !strings.Contains(config, ".") {
			config = config + ".cfg"
		}

		payload, err = ReadFile(config)
		if err != nil {
			return "", fmt.Errorf("unable read configfile (%s): %w", config, err)
		}
	} else {
		debase, err := base64.StdEncoding.DecodeString(config)
		if err != nil {
			return "", fmt.Errorf("unable decode to string from base64 configfile: %w", err)
		}
		payload = string(debase)
	}

	if strings.TrimSpace(payload) == "" {
		return "", ErrConfig
	}

	return payload, DecodeConfig(payload, cfgPointer)
}

// DecodeConfig Читаем конфигурация из строки
func DecodeConfig(configfile string, cfg interface{}) (err error) {
	if _, err = toml.Decode(configfile, cfg); err != nil {
		fmt.Println(warning, "Error:", err)
	}

	return err
}
