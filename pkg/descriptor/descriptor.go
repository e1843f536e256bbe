// Package descriptor формирует xml-дескрипторы LTI-ресурсов пакета:
// basiclti.xml для контента и lti_advantage.xml для проверочных ресурсов.
package descriptor

import (
	"bytes"
	"strconv"
	"strings"
	"text/template"

	"github.com/pkg/errors"

	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/internal/xmlutil"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/model"
)

const (
	DefaultBasicTitle     = "External Tool"
	DefaultAdvantageTitle = "Assessment"

	DefaultToolID       = "fabric_lti"
	DefaultPrivacyLevel = "public"
	DefaultPlatform     = "canvas.instructure.com"

	jwksSegment = "jwks"
	initSegment = "init"
)

type Vendor struct {
	Code        string
	Name        string
	Description string
	URL         string
	Contact     string
}

var DefaultVendor = Vendor{
	Code:        "fabric",
	Name:        "Fabric",
	Description: "Fabric learning tools",
	URL:         "https://fabric.example",
	Contact:     "support@fabric.example",
}

type Property struct {
	Name  string
	Value string
}

type link struct {
	Title           string
	DefaultTitle    string
	Icon            string
	LaunchURL       string
	SecureLaunchURL string
	Vendor          Vendor
	Platform        string
	Properties      []Property
}

// Renderer рендер дескрипторов. Не хранит изменяемого состояния, безопасен для конкурентного использования.
type Renderer struct {
	vendor       Vendor
	toolID       string
	privacyLevel string
	platform     string
	icon         string
	tpl          *template.Template
}

type Option func(r *Renderer)

func WithVendor(v Vendor) Option {
	return func(r *Renderer) {
		r.vendor = v
	}
}

func WithToolID(toolID string) Option {
	return func(r *Renderer) {
		if toolID != "" {
			r.toolID = toolID
		}
	}
}

func WithPrivacyLevel(level string) Option {
	return func(r *Renderer) {
		if level != "" {
			r.privacyLevel = level
		}
	}
}

func WithPlatform(platform string) Option {
	return func(r *Renderer) {
		if platform != "" {
			r.platform = platform
		}
	}
}

func WithIconURL(icon string) Option {
	return func(r *Renderer) {
		r.icon = icon
	}
}

func New(opts ...Option) *Renderer {
	r := &Renderer{
		vendor:       DefaultVendor,
		toolID:       DefaultToolID,
		privacyLevel: DefaultPrivacyLevel,
		platform:     DefaultPlatform,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.tpl = template.Must(template.New("link").Funcs(xmlutil.FuncMap()).Parse(tplLink))

	return r
}

// RenderBasic дескриптор обычного запуска
func (r *Renderer) RenderBasic(launchURL, title string) ([]byte, error) {
	return r.execute(link{
		Title:           title,
		DefaultTitle:    DefaultBasicTitle,
		Icon:            r.icon,
		LaunchURL:       launchURL,
		SecureLaunchURL: SecureURL(launchURL),
		Vendor:          r.vendor,
	})
}

// RenderAdvantage дескриптор LTI 1.3 с параметрами оценивания
func (r *Renderer) RenderAdvantage(launchURL, title string, meta *model.AssessmentMetadata) ([]byte, error) {
	return r.execute(link{
		Title:           title,
		DefaultTitle:    DefaultAdvantageTitle,
		Icon:            r.icon,
		LaunchURL:       launchURL,
		SecureLaunchURL: SecureURL(launchURL),
		Vendor:          r.vendor,
		Platform:        r.platform,
		Properties:      r.AdvantageProperties(launchURL, meta),
	})
}

// Render дескриптор по типу ресурса
func (r *Renderer) Render(rec model.ResourceRecord) ([]byte, error) {
	if rec.IsAssessment {
		return r.RenderAdvantage(rec.LaunchURL, rec.Title, rec.Metadata)
	}

	return r.RenderBasic(rec.LaunchURL, rec.Title)
}

// AdvantageProperties свойства расширения в фиксированном порядке.
// Необязательные добавляются только при наличии в метаданных, oidc_initiation_url всегда последний.
func (r *Renderer) AdvantageProperties(launchURL string, meta *model.AssessmentMetadata) []Property {
	props := []Property{
		{"tool_id", r.toolID},
		{"privacy_level", r.privacyLevel},
		{"lti13_enabled", "true"},
		{"jwks_url", ReplaceLastSegment(launchURL, jwksSegment)},
		{"assignment_enabled", "true"},
		{"assignment_points_possible", formatFloat(meta.PointsOrDefault())},
	}

	if meta != nil {
		if meta.TimeLimit != nil {
			props = append(props, Property{"time_limit", strconv.Itoa(*meta.TimeLimit)})
		}
		if meta.Attempts != nil {
			props = append(props, Property{"allowed_attempts", strconv.Itoa(*meta.Attempts)})
		}
		if meta.Proctored {
			props = append(props, Property{"proctoring_enabled", "true"})
		}
		if meta.PassingScore != nil {
			props = append(props, Property{"passing_score", formatFloat(*meta.PassingScore)})
		}
	}

	return append(props, Property{"oidc_initiation_url", ReplaceLastSegment(launchURL, initSegment)})
}

func (r *Renderer) execute(data link) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	if err := r.tpl.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, "unable render descriptor")
	}

	return buf.Bytes(), nil
}

// SecureURL текстовая замена префикса http:// на https://, остальные адреса не меняются
func SecureURL(u string) string {
	if strings.HasPrefix(u, "http://") {
		return "https://" + strings.TrimPrefix(u, "http://")
	}
	return u
}

// ReplaceLastSegment заменяет последний сегмент пути.
// Если последний "/" относится к "://" (пути нет) или его нет вовсе - сегмент дописывается.
func ReplaceLastSegment(u, segment string) string {
	idx := strings.LastIndex(u, "/")
	if idx < 0 || strings.HasSuffix(u[:idx+1], "://") {
		return strings.TrimSuffix(u, "/") + "/" + segment
	}

	return u[:idx+1] + segment
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
