package utils

import (
	"net/url"
	"strings"
)

// EscapePathPreservingSlashes экранирует сегменты пути, разделители "/" остаются как есть
func EscapePathPreservingSlashes(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}

// JoinURLPath склеивает адрес и путь ровно через один "/"
func JoinURLPath(prefix string, segments ...string) string {
	res := strings.TrimRight(prefix, "/")
	for _, s := range segments {
		s = strings.Trim(s, "/")
		if s == "" {
			continue
		}
		res += "/" + s
	}
	return res
}
