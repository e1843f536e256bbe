package compiler

import (
	"encoding/xml"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/ident"
	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/model"
)

type item struct {
	Identifier    string `xml:"identifier,attr"`
	IdentifierRef string `xml:"identifierref,attr"`
	Title         string `xml:"title"`
	Items         []item `xml:"item"`
}

// parseItems разбирает фрагмент, обернув его в корневой элемент
func parseItems(t *testing.T, fragment string) []item {
	t.Helper()
	var root item
	require.NoError(t, xml.Unmarshal([]byte("<item>"+fragment+"</item>"), &root))
	return root.Items
}

func sample() []model.Node {
	return []model.Node{
		{Title: "M1", Children: []model.Node{
			{Title: "L1", LaunchURL: "https://x/1"},
			{Title: "L2", LaunchURL: "https://x/2", AssessmentURL: "https://x/2/quiz"},
			{Title: "Sub", Children: []model.Node{
				{Title: "L3", LaunchURL: "https://x/3", AssessmentURL: "https://x/3/exam",
					AssessmentMetadata: &model.AssessmentMetadata{Type: "exam", Points: model.FloatPtr(15)}},
			}},
		}},
		{Title: "M2", Children: []model.Node{}},
	}
}

func TestCompile_OrderAndIdentifiers(t *testing.T) {
	t.Parallel()
	res, err := Compile(sample(), ident.NewMonotonic())
	require.NoError(t, err)

	items := parseItems(t, res.ItemsXML)
	require.Len(t, items, 2)
	assert.Equal(t, "I_100", items[0].Identifier)
	assert.Equal(t, "M1", items[0].Title)

	m1 := items[0].Items
	require.Len(t, m1, 4)
	assert.Equal(t, []string{"L1", "L2", "L2 Quiz", "Sub"}, []string{m1[0].Title, m1[1].Title, m1[2].Title, m1[3].Title})
	assert.Equal(t, "I_101_R", m1[0].IdentifierRef)
	assert.Equal(t, "I_102_R", m1[1].IdentifierRef)
	assert.Equal(t, "I_103_R", m1[2].IdentifierRef)
	assert.Equal(t, "I_104", m1[3].Identifier)
	assert.Equal(t, "L3 Exam", m1[3].Items[1].Title)

	// Сценарий D: пустой контейнер без ресурсов
	assert.Equal(t, "M2", items[1].Title)
	assert.Empty(t, items[1].Items)

	require.Len(t, res.Resources, 5)
	var folders []string
	for _, r := range res.Resources {
		folders = append(folders, r.FolderName)
	}
	assert.Equal(t, []string{"101", "102", "103", "105", "106"}, folders)
	assert.False(t, res.Resources[1].IsAssessment)
	assert.True(t, res.Resources[2].IsAssessment)
	assert.Equal(t, "https://x/2/quiz", res.Resources[2].LaunchURL)
	assert.Equal(t, 15.0, res.Resources[4].Metadata.PointsOrDefault())
}

// Каждый identifierref встречается ровно один раз и имеет ресурс, идентификаторы уникальны
func TestCompile_ReferenceClosure(t *testing.T) {
	t.Parallel()
	for _, alloc := range []ident.Allocator{ident.NewMonotonic(), ident.NewRandom()} {
		res, err := Compile(sample(), alloc)
		require.NoError(t, err)

		ids := map[string]bool{}
		refs := map[string]int{}
		var walk func(items []item)
		walk = func(items []item) {
			for _, it := range items {
				assert.False(t, ids[it.Identifier], "duplicate %s", it.Identifier)
				ids[it.Identifier] = true
				if it.IdentifierRef != "" {
					refs[it.IdentifierRef]++
				}
				walk(it.Items)
			}
		}
		walk(parseItems(t, res.ItemsXML))

		assert.Len(t, refs, len(res.Resources))
		for _, r := range res.Resources {
			assert.Equal(t, 1, refs[r.ID], r.ID)
			assert.False(t, ids[r.ID])
		}
	}
}

func TestCompile_WithoutAssessments(t *testing.T) {
	t.Parallel()
	res, err := Compile(sample(), ident.NewMonotonic(), WithAssessments(false))
	require.NoError(t, err)

	assert.Len(t, res.Resources, 3)
	for _, r := range res.Resources {
		assert.False(t, r.IsAssessment)
	}
	assert.NotContains(t, res.ItemsXML, "Quiz")
}

func TestCompile_StructuralError(t *testing.T) {
	t.Parallel()
	nodes := []model.Node{
		{Title: "M", Children: []model.Node{
			{Title: "ok", LaunchURL: "https://x"},
			{Title: "broken"},
		}},
	}
	res, err := Compile(nodes, ident.NewMonotonic())
	require.Error(t, err)
	assert.Empty(t, res.ItemsXML)
	assert.Nil(t, res.Resources)

	var se *StructuralError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "modules[0].children[1]", se.Path)
	assert.Equal(t, "broken", se.Title)
}

func TestCompile_MaxDepth(t *testing.T) {
	t.Parallel()
	node := model.Node{Title: "leaf", LaunchURL: "https://x"}
	for i := 0; i < MaxDepth+1; i++ {
		node = model.Node{Title: "c", Children: []model.Node{node}}
	}
	_, err := Compile([]model.Node{node}, ident.NewMonotonic())
	var se *StructuralError
	assert.True(t, errors.As(err, &se))
}

func TestCompile_Deterministic(t *testing.T) {
	t.Parallel()
	a, err := Compile(sample(), ident.NewMonotonic())
	require.NoError(t, err)
	b, err := Compile(sample(), ident.NewMonotonic())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCompile_EscapesTitles(t *testing.T) {
	t.Parallel()
	res, err := Compile([]model.Node{{Title: `Q&A "<1>"`, LaunchURL: "https://x"}}, ident.NewMonotonic())
	require.NoError(t, err)
	assert.True(t, strings.Contains(res.ItemsXML, "<title>Q&amp;A &quot;&lt;1&gt;&quot;</title>"))
	assert.Equal(t, `Q&A "<1>"`, parseItems(t, res.ItemsXML)[0].Title)
}

func TestAssessmentTitle(t *testing.T) {
	t.Parallel()
	cases := []struct {
		node model.Node
		want string
	}{
		{model.Node{Title: "T", AssessmentTitle: "Custom"}, "Custom"},
		{model.Node{Title: "T", AssessmentMetadata: &model.AssessmentMetadata{Type: "exam"}}, "T Exam"},
		{model.Node{Title: "T", AssessmentMetadata: &model.AssessmentMetadata{Type: "quiz"}}, "T Quiz"},
		{model.Node{Title: "T"}, "T Quiz"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, AssessmentTitle(tc.node))
	}
}
