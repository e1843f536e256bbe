package manifest

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

type Item struct {
	Identifier    string `xml:"identifier,attr"`
	Identifierref string `xml:"identifierref,attr"`
	Title         string `xml:"title"`
	Items         []Item `xml:"item"`
}

type Organization struct {
	Identifier string `xml:"identifier,attr"`
	Structure  string `xml:"structure,attr"`
	Item       Item   `xml:"item"`
}

type File struct {
	Href string `xml:"href,attr"`
}

type Resource struct {
	Identifier string `xml:"identifier,attr"`
	Type       string `xml:"type,attr"`
	Href       string `xml:"href,attr"`
	Files      []File `xml:"file"`
}

type Metadata struct {
	Schema        string `xml:"schema"`
	Schemaversion string `xml:"schemaversion"`
	Title         string `xml:"lom>general>title>string"`
	Description   string `xml:"lom>general>description>string"`
	Category      string `xml:"lom>general>keyword>string"`
}

// Document разобранный imsmanifest.xml
type Document struct {
	Identifier    string         `xml:"identifier,attr"`
	Metadata      Metadata       `xml:"metadata"`
	Organizations []Organization `xml:"organizations>organization"`
	Resources     []Resource     `xml:"resources>resource"`
}

func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "unable parse manifest")
	}

	return &doc, nil
}

// ReadArchive читает манифест из корня .imscc (zip) архива
func ReadArchive(archivePath string) (doc *Document, files []string, err error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "unable open archive %s", archivePath)
	}
	defer func() {
		err = multierr.Append(err, zr.Close())
	}()

	for _, f := range zr.File {
		// служебные файлы macOS пропускаем
		if strings.HasPrefix(f.Name, "__MACOSX/") {
			continue
		}
		files = append(files, f.Name)
		if f.Name != FileName {
			continue
		}

		rc, errOpen := f.Open()
		if errOpen != nil {
			return nil, files, errors.Wrap(errOpen, "unable open manifest in archive")
		}
		data, errRead := io.ReadAll(rc)
		rc.Close()
		if errRead != nil {
			return nil, files, errors.Wrap(errRead, "unable read manifest in archive")
		}
		if doc, err = Parse(data); err != nil {
			return nil, files, err
		}
	}

	if doc == nil {
		return nil, files, fmt.Errorf("%s not found in %s", FileName, archivePath)
	}

	return doc, files, nil
}

// Walk обход элементов организации в порядке документа
func (d *Document) Walk(fn func(it Item, depth int)) {
	var walk func(items []Item, depth int)
	walk = func(items []Item, depth int) {
		for _, it := range items {
			fn(it, depth)
			walk(it.Items, depth+1)
		}
	}
	for _, org := range d.Organizations {
		walk(org.Item.Items, 0)
	}
}

// Hrefs пути файлов ресурсов (из <file href> или атрибута href)
func (r Resource) Hrefs() []string {
	var res []string
	if r.Href != "" {
		res = append(res, r.Href)
	}
	for _, f := range r.Files {
		res = append(res, f.Href)
	}

	return res
}

// Validate проверяет замкнутость ссылок: идентификаторы уникальны,
// каждый identifierref указывает на ресурс, каждый ресурс упомянут ровно один раз.
// Возвращает все найденные нарушения.
func (d *Document) Validate() (err error) {
	seen := map[string]bool{}
	dup := func(id string) {
		if id == "" {
			return
		}
		if seen[id] {
			err = multierr.Append(err, fmt.Errorf("duplicate identifier %s", id))
		}
		seen[id] = true
	}

	resources := map[string]bool{}
	for _, r := range d.Resources {
		dup(r.Identifier)
		resources[r.Identifier] = true
		if len(r.Hrefs()) == 0 {
			err = multierr.Append(err, fmt.Errorf("resource %s has no file", r.Identifier))
		}
	}

	refs := map[string]int{}
	for _, org := range d.Organizations {
		dup(org.Identifier)
		dup(org.Item.Identifier)
	}
	d.Walk(func(it Item, _ int) {
		dup(it.Identifier)
		if it.Identifierref == "" {
			return
		}
		refs[it.Identifierref]++
		if !resources[it.Identifierref] {
			err = multierr.Append(err, fmt.Errorf("item %s refers to unknown resource %s", it.Identifier, it.Identifierref))
		}
	})

	for _, r := range d.Resources {
		if n := refs[r.Identifier]; n != 1 {
			err = multierr.Append(err, fmt.Errorf("resource %s referenced %d times", r.Identifier, n))
		}
	}

	return err
}

// ValidateFiles проверяет, что все файлы ресурсов присутствуют в списке файлов архива
func (d *Document) ValidateFiles(files []string) (err error) {
	present := make(map[string]bool, len(files))
	for _, f := range files {
		present[path.Clean(f)] = true
	}
	for _, r := range d.Resources {
		for _, href := range r.Hrefs() {
			if !present[path.Clean(href)] {
				err = multierr.Append(err, fmt.Errorf("resource %s: file %s is missing", r.Identifier, href))
			}
		}
	}

	return err
}
