// Package xmlutil общие функции для xml-документов пакета: экранирование и набор функций шаблонов.
package xmlutil

import (
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"
)

var replacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Escape экранирует текст для содержимого элемента и значения атрибута
func Escape(s string) string {
	return replacer.Replace(s)
}

// FuncMap функции sprig и "xml" для экранирования
func FuncMap() template.FuncMap {
	funcMap := sprig.TxtFuncMap()
	funcMap["xml"] = Escape

	return funcMap
}
