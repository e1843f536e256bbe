// Package compiler обходит дерево курса, раздает идентификаторы и собирает
// фрагмент <item> организации вместе с плоским списком ресурсов.
package compiler

import (
	"fmt"
	"strings"

	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/internal/xmlutil"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/ident"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/model"
)

// MaxDepth предельная вложенность дерева
const MaxDepth = 64

const indentUnit = "  "

// baseIndent отступ элементов первого уровня внутри <item identifier="root">
const baseIndent = 4

// StructuralError узел не является ни контейнером (children), ни листом (launchUrl)
type StructuralError struct {
	Path   string
	Title  string
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("structural error at %s (%q): %s", e.Path, e.Title, e.Reason)
}

type Result struct {
	ItemsXML  string
	Resources []model.ResourceRecord
}

type config struct {
	assessments bool
	itemPrefix  string
}

type Option func(c *config)

// WithAssessments false - проверочные ресурсы листьев не выделяются
func WithAssessments(enabled bool) Option {
	return func(c *config) {
		c.assessments = enabled
	}
}

func WithItemPrefix(prefix string) Option {
	return func(c *config) {
		c.itemPrefix = prefix
	}
}

// collector аккумулятор обхода, передается явно через рекурсию
type collector struct {
	cfg       config
	alloc     ident.Allocator
	items     strings.Builder
	resources []model.ResourceRecord
}

// Compile обход в глубину (pre-order) с сохранением порядка детей.
// При StructuralError частичный результат не возвращается.
func Compile(modules []model.Node, alloc ident.Allocator, opts ...Option) (Result, error) {
	c := &collector{
		cfg:   config{assessments: true, itemPrefix: ident.ItemPrefix},
		alloc: alloc,
	}
	for _, opt := range opts {
		opt(&c.cfg)
	}

	if err := compileNodes(c, modules, "modules", 0); err != nil {
		return Result{}, err
	}

	return Result{
		ItemsXML:  c.items.String(),
		Resources: c.resources,
	}, nil
}

func compileNodes(c *collector, nodes []model.Node, path string, depth int) error {
	if depth >= MaxDepth {
		return &StructuralError{Path: path, Reason: fmt.Sprintf("nesting deeper than %d", MaxDepth)}
	}

	for i, node := range nodes {
		nodePath := fmt.Sprintf("%s[%d]", path, i)
		if err := compileNode(c, node, nodePath, depth); err != nil {
			return err
		}
	}

	return nil
}

func compileNode(c *collector, node model.Node, path string, depth int) error {
	indent := strings.Repeat(indentUnit, baseIndent+depth)

	switch {
	case node.IsContainer() && node.HasChildren():
		id := c.alloc.Next(c.cfg.itemPrefix, "")
		c.items.WriteString(indent + `<item identifier="` + xmlutil.Escape(id) + `">` + "\n")
		c.items.WriteString(indent + indentUnit + "<title>" + xmlutil.Escape(node.Title) + "</title>\n")
		if err := compileNodes(c, node.Children, path+".children", depth+1); err != nil {
			return err
		}
		c.items.WriteString(indent + "</item>\n")

	case !node.IsContainer():
		c.leaf(indent, node.Title, node.LaunchURL, false, nil)
		if node.HasAssessment() && c.cfg.assessments {
			c.leaf(indent, AssessmentTitle(node), node.AssessmentURL, true, node.AssessmentMetadata)
		}

	default:
		return &StructuralError{Path: path, Title: node.Title, Reason: "node has neither children nor launchUrl"}
	}

	return nil
}

// leaf выделяет пару идентификаторов (элемент + ресурс) и добавляет запись ресурса
func (c *collector) leaf(indent, title, launchURL string, assessment bool, meta *model.AssessmentMetadata) {
	id := c.alloc.Next(c.cfg.itemPrefix, "")
	rec := model.ResourceRecord{
		ID:           ident.Resource(id),
		FolderName:   ident.Folder(id, c.cfg.itemPrefix),
		LaunchURL:    launchURL,
		Title:        title,
		IsAssessment: assessment,
		Metadata:     meta,
	}
	c.resources = append(c.resources, rec)

	c.items.WriteString(indent + `<item identifier="` + xmlutil.Escape(id) + `" identifierref="` + xmlutil.Escape(rec.ID) + `">` + "\n")
	c.items.WriteString(indent + indentUnit + "<title>" + xmlutil.Escape(title) + "</title>\n")
	c.items.WriteString(indent + "</item>\n")
}

// AssessmentTitle явный assessmentTitle, иначе "{title} Exam" для type=exam, иначе "{title} Quiz"
func AssessmentTitle(node model.Node) string {
	if node.AssessmentTitle != "" {
		return node.AssessmentTitle
	}
	if node.AssessmentMetadata.IsExam() {
		return node.Title + " Exam"
	}

	return node.Title + " Quiz"
}
