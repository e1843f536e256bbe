package model

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/htmlindex"
	"gopkg.in/yaml.v3"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

var (
	ErrUnknownFormat = errors.New("unknown course format")
	utf8BOM          = []byte{0xEF, 0xBB, 0xBF}
)

// FormatByPath формат файла курса по расширению (по-умолчанию json)
func FormatByPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml", ".cfg":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// LoadCourse читаем описание курса из файла
func LoadCourse(path string) (course Course, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return course, errors.Wrapf(err, "unable read course file (%s)", path)
	}

	return DecodeCourse(data, FormatByPath(path))
}

// DecodeCourse разбираем описание курса. Не-UTF8 данные перекодируются в UTF-8.
func DecodeCourse(data []byte, format string) (course Course, err error) {
	data, err = NormalizeCharset(data)
	if err != nil {
		return course, err
	}

	switch format {
	case FormatJSON, "":
		err = json.Unmarshal(data, &course)
	case FormatYAML:
		err = yaml.Unmarshal(data, &course)
	case FormatTOML:
		_, err = toml.Decode(string(data), &course)
	default:
		return course, errors.Wrap(ErrUnknownFormat, format)
	}
	if err != nil {
		return course, errors.Wrapf(err, "unable decode course (%s)", format)
	}

	return course, nil
}

// NormalizeCharset определяем кодировку и переводим в UTF-8.
// Выгрузки старых LMS часто приходят в windows-1251/koi8-r.
func NormalizeCharset(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data, nil
	}

	res, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil {
		return nil, errors.Wrap(err, "unable detect charset")
	}

	enc, err := htmlindex.Get(res.Charset)
	if err != nil {
		return nil, errors.Wrapf(err, "unsupported charset %s", res.Charset)
	}

	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, errors.Wrapf(err, "unable decode from %s", res.Charset)
	}

	return out, nil
}
