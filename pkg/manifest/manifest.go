// Package manifest собирает imsmanifest.xml пакета Common Cartridge 1.1 и читает его обратно.
package manifest

import (
	"bytes"
	"text/template"

	"github.com/pkg/errors"

	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/internal/xmlutil"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/model"
)

const (
	FileName = "imsmanifest.xml"

	DefaultCategory = "General"
	DefaultLanguage = "en-US"

	ResourceType = "imsbasiclti_xmlv1p0"
	RootItemID   = "root"
)

var tpl = template.Must(template.New("manifest").Funcs(xmlutil.FuncMap()).Parse(tplManifest))

// Meta метаданные курса для блока <metadata>
type Meta struct {
	Title       string
	Description string
	Category    string
	Language    string
}

// MetaFromCourse пустая категория заменяется на defaultCategory (или DefaultCategory)
func MetaFromCourse(course model.Course, defaultCategory string) Meta {
	if defaultCategory == "" {
		defaultCategory = DefaultCategory
	}
	m := Meta{
		Title:       course.Title,
		Description: course.Description,
		Category:    course.Category,
		Language:    DefaultLanguage,
	}
	if m.Category == "" {
		m.Category = defaultCategory
	}

	return m
}

type document struct {
	Meta           Meta
	ManifestID     string
	OrganizationID string
	ItemsXML       string
	Resources      []model.ResourceRecord

	RootItemID      string
	ResourceType    string
	DefaultCategory string
	DefaultLanguage string
}

// Assemble итоговый манифест. itemsXML вставляется в корневой <item identifier="root"> без изменений,
// ресурсы выводятся в порядке обхода дерева.
func Assemble(meta Meta, organizationID, manifestID, itemsXML string, resources []model.ResourceRecord) ([]byte, error) {
	var buf bytes.Buffer
	err := tpl.Execute(&buf, document{
		Meta:            meta,
		ManifestID:      manifestID,
		OrganizationID:  organizationID,
		ItemsXML:        itemsXML,
		Resources:       resources,
		RootItemID:      RootItemID,
		ResourceType:    ResourceType,
		DefaultCategory: DefaultCategory,
		DefaultLanguage: DefaultLanguage,
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable render manifest")
	}

	return buf.Bytes(), nil
}
