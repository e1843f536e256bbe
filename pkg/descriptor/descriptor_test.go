package descriptor

import (
	"encoding/xml"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/model"
)

func TestSecureURL(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"http://x/a":       "https://x/a",
		"https://x/a":      "https://x/a",
		"x/a":              "x/a",
		"ftp://x/a":        "ftp://x/a",
		"HTTP://x/a":       "HTTP://x/a",
		"http://x/http://": "https://x/http://",
	}
	for in, want := range cases {
		assert.Equal(t, want, SecureURL(in), in)
	}
}

func TestReplaceLastSegment(t *testing.T) {
	t.Parallel()
	cases := []struct{ in, want string }{
		{"https://x/a/launch", "https://x/a/jwks"},
		{"https://x/a", "https://x/jwks"},
		{"https://x/a/", "https://x/a/jwks"},
		{"https://x", "https://x/jwks"},
		{"x", "x/jwks"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ReplaceLastSegment(tc.in, "jwks"), tc.in)
	}
}

// Сценарий A/B: secure_launch_url
func TestRenderBasic(t *testing.T) {
	t.Parallel()
	r := New()

	out, err := r.RenderBasic("https://x/a", "L")
	require.NoError(t, err)
	s := string(out)
	assert.True(t, strings.HasPrefix(s, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, s, "<blti:launch_url>https://x/a</blti:launch_url>")
	assert.Contains(t, s, "<blti:secure_launch_url>https://x/a</blti:secure_launch_url>")
	assert.Contains(t, s, "<blti:title>L</blti:title>")
	assert.Contains(t, s, `<cartridge_bundle identifierref="BLTI001_Bundle"/>`)
	assert.NotContains(t, s, "blti:extensions")

	out, err = r.RenderBasic("http://x/a", "")
	require.NoError(t, err)
	s = string(out)
	assert.Contains(t, s, "<blti:launch_url>http://x/a</blti:launch_url>")
	assert.Contains(t, s, "<blti:secure_launch_url>https://x/a</blti:secure_launch_url>")
	assert.Contains(t, s, "<blti:title>External Tool</blti:title>")

	var root struct{ XMLName xml.Name }
	require.NoError(t, xml.Unmarshal(out, &root))
	assert.Equal(t, "cartridge_basiclti_link", root.XMLName.Local)
}

func TestRenderBasic_Escapes(t *testing.T) {
	t.Parallel()
	out, err := New().RenderBasic("https://x/a?b=1&c=2", "Q&A <intro>")
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, "<blti:title>Q&amp;A &lt;intro&gt;</blti:title>")
	assert.Contains(t, s, "https://x/a?b=1&amp;c=2")

	var doc struct {
		Title  string `xml:"title"`
		Launch string `xml:"launch_url"`
	}
	require.NoError(t, xml.Unmarshal(out, &doc))
	assert.Equal(t, "Q&A <intro>", doc.Title)
	assert.Equal(t, "https://x/a?b=1&c=2", doc.Launch)
}

func propertyNames(t *testing.T, out []byte) (names []string, values map[string]string) {
	t.Helper()
	var doc struct {
		Extensions struct {
			Platform   string `xml:"platform,attr"`
			Properties []struct {
				Name  string `xml:"name,attr"`
				Value string `xml:",chardata"`
			} `xml:"property"`
		} `xml:"extensions"`
	}
	require.NoError(t, xml.Unmarshal(out, &doc))
	values = map[string]string{}
	for _, p := range doc.Extensions.Properties {
		names = append(names, p.Name)
		values[p.Name] = p.Value
	}
	return names, values
}

// Сценарий C: баллы 15, попытки не заданы
func TestRenderAdvantage_Points(t *testing.T) {
	t.Parallel()
	out, err := New().RenderAdvantage("https://x/a/launch", "", &model.AssessmentMetadata{Points: model.FloatPtr(15)})
	require.NoError(t, err)

	names, values := propertyNames(t, out)
	assert.Equal(t, []string{
		"tool_id", "privacy_level", "lti13_enabled", "jwks_url",
		"assignment_enabled", "assignment_points_possible", "oidc_initiation_url",
	}, names)
	assert.Equal(t, "15", values["assignment_points_possible"])
	assert.Equal(t, "https://x/a/jwks", values["jwks_url"])
	assert.Equal(t, "https://x/a/init", values["oidc_initiation_url"])
	assert.NotContains(t, string(out), "allowed_attempts")
	assert.Contains(t, string(out), "<blti:title>Assessment</blti:title>")
}

func TestRenderAdvantage_AllOptional(t *testing.T) {
	t.Parallel()
	meta := &model.AssessmentMetadata{
		Type:         model.AssessmentTypeExam,
		TimeLimit:    model.IntPtr(60),
		Attempts:     model.IntPtr(0),
		Proctored:    true,
		PassingScore: model.FloatPtr(7.5),
	}
	out, err := New(WithToolID("tool-x"), WithPrivacyLevel("anonymous")).RenderAdvantage("http://x/exam", "Final", meta)
	require.NoError(t, err)

	names, values := propertyNames(t, out)
	assert.Equal(t, []string{
		"tool_id", "privacy_level", "lti13_enabled", "jwks_url",
		"assignment_enabled", "assignment_points_possible",
		"time_limit", "allowed_attempts", "proctoring_enabled", "passing_score",
		"oidc_initiation_url",
	}, names)
	assert.Equal(t, "tool-x", values["tool_id"])
	assert.Equal(t, "anonymous", values["privacy_level"])
	assert.Equal(t, "10", values["assignment_points_possible"])
	assert.Equal(t, "0", values["allowed_attempts"])
	assert.Equal(t, "7.5", values["passing_score"])
	assert.Contains(t, string(out), "<blti:secure_launch_url>https://x/exam</blti:secure_launch_url>")
}

func TestRenderAdvantage_NilMetadata(t *testing.T) {
	t.Parallel()
	_, values := propertyNames(t, mustRender(t, New(), model.ResourceRecord{LaunchURL: "https://x", IsAssessment: true}))
	assert.Equal(t, "10", values["assignment_points_possible"])
	assert.Equal(t, "https://x/jwks", values["jwks_url"])
}

func mustRender(t *testing.T, r *Renderer, rec model.ResourceRecord) []byte {
	t.Helper()
	out, err := r.Render(rec)
	require.NoError(t, err)
	return out
}

// Повторный рендер дает побайтно одинаковый результат, в том числе конкурентно
func TestRender_Idempotent(t *testing.T) {
	t.Parallel()
	r := New(WithIconURL("https://x/icon.png"), WithVendor(Vendor{Code: "acme", Name: "Acme"}))
	rec := model.ResourceRecord{LaunchURL: "http://x/a", Title: "Quiz", IsAssessment: true,
		Metadata: &model.AssessmentMetadata{Attempts: model.IntPtr(3)}}
	want := mustRender(t, r, rec)
	assert.Contains(t, string(want), "<blti:icon>https://x/icon.png</blti:icon>")
	assert.Contains(t, string(want), "<lticp:code>acme</lticp:code>")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := r.Render(rec)
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}
