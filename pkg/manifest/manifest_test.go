package manifest

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"git.edtech.vm.prod-6.cloud.el/fabric/cartridge/pkg/model"
)

const items = `        <item identifier="I_102">
          <title>M</title>
          <item identifier="I_103" identifierref="I_103_R">
            <title>L</title>
          </item>
          <item identifier="I_104" identifierref="I_104_R">
            <title>L Quiz</title>
          </item>
        </item>
`

var resources = []model.ResourceRecord{
	{ID: "I_103_R", FolderName: "103"},
	{ID: "I_104_R", FolderName: "104", IsAssessment: true},
}

func TestAssemble(t *testing.T) {
	t.Parallel()
	meta := Meta{Title: "C & D", Description: "About", Category: "Go"}
	raw, err := Assemble(meta, "O_101", "M_100", items, resources)
	require.NoError(t, err)
	out := string(raw)

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`+"\n<manifest identifier=\"M_100\""))
	assert.Contains(t, out, `<organization identifier="O_101" structure="rooted-hierarchy">`)
	assert.Contains(t, out, `<item identifier="root">`+"\n"+items+"      </item>")
	assert.Contains(t, out, `<resource identifier="I_103_R" type="imsbasiclti_xmlv1p0">`+"\n"+`      <file href="103/basiclti.xml"/>`)
	assert.Contains(t, out, `<file href="104/lti_advantage.xml"/>`)
	assert.Less(t, strings.Index(out, "I_103_R\" type"), strings.Index(out, "I_104_R\" type"))
	assert.Contains(t, out, ">C &amp; D</lomimscc:string>")
	assert.Equal(t, 2, strings.Count(out, `type="imsbasiclti_xmlv1p0"`))

	doc, err := Parse([]byte(out))
	require.NoError(t, err)
	assert.NoError(t, doc.Validate())
	assert.Equal(t, "M_100", doc.Identifier)
	assert.Equal(t, "1.1.0", doc.Metadata.Schemaversion)
	assert.Equal(t, "C & D", doc.Metadata.Title)
	assert.Equal(t, "Go", doc.Metadata.Category)
	assert.Equal(t, RootItemID, doc.Organizations[0].Item.Identifier)
	assert.Equal(t, []string{"103/basiclti.xml"}, doc.Resources[0].Hrefs())
}

func TestAssemble_Layout(t *testing.T) {
	t.Parallel()
	raw, err := Assemble(Meta{Title: "T", Description: "D", Category: "K"}, "O_101", "M_100", items, resources[:1])
	require.NoError(t, err)

	want := `<?xml version="1.0" encoding="UTF-8"?>
<manifest identifier="M_100"`
	assert.True(t, strings.HasPrefix(string(raw), want))

	tail := `ccv1p1_lommanifest_v1p0.xsd">
  <metadata>
    <schema>IMS Common Cartridge</schema>
    <schemaversion>1.1.0</schemaversion>
    <lomimscc:lom>
      <lomimscc:general>
        <lomimscc:title>
          <lomimscc:string language="en-US">T</lomimscc:string>
        </lomimscc:title>
        <lomimscc:description>
          <lomimscc:string language="en-US">D</lomimscc:string>
        </lomimscc:description>
        <lomimscc:keyword>
          <lomimscc:string language="en-US">K</lomimscc:string>
        </lomimscc:keyword>
      </lomimscc:general>
    </lomimscc:lom>
  </metadata>
  <organizations>
    <organization identifier="O_101" structure="rooted-hierarchy">
      <item identifier="root">
` + items + `      </item>
    </organization>
  </organizations>
  <resources>
    <resource identifier="I_103_R" type="imsbasiclti_xmlv1p0">
      <file href="103/basiclti.xml"/>
    </resource>
  </resources>
</manifest>
`
	assert.True(t, strings.HasSuffix(string(raw), tail), string(raw))

	empty, err := Assemble(Meta{Title: "T"}, "O_1", "M_0", "", nil)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(empty), "  <resources>\n  </resources>\n</manifest>\n"))

	quoted, err := Assemble(Meta{Title: `"a" <b> 'c'`, Language: "ru-RU"}, "O_1", "M_0", "", nil)
	require.NoError(t, err)
	assert.Contains(t, string(quoted), `<lomimscc:string language="ru-RU">&quot;a&quot; &lt;b&gt; &apos;c&apos;</lomimscc:string>`)
}

// Сценарий E: пустые description/category
func TestAssemble_Defaults(t *testing.T) {
	t.Parallel()
	meta := MetaFromCourse(model.Course{Title: "C"}, "")
	assert.Equal(t, DefaultCategory, meta.Category)

	raw, err := Assemble(meta, "O_1", "M_0", "", nil)
	require.NoError(t, err)
	doc, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "", doc.Metadata.Description)
	assert.Equal(t, DefaultCategory, doc.Metadata.Category)
	assert.Empty(t, doc.Resources)
	assert.NoError(t, doc.Validate())

	meta = MetaFromCourse(model.Course{Title: "C"}, "Science")
	assert.Equal(t, "Science", meta.Category)

	raw, err = Assemble(Meta{Title: "C"}, "O_1", "M_0", "", nil)
	require.NoError(t, err)
	out := string(raw)
	assert.Contains(t, out, `<lomimscc:string language="en-US">General</lomimscc:string>`)
	assert.Contains(t, out, `<lomimscc:string language="en-US"></lomimscc:string>`)
}

func TestValidate_Violations(t *testing.T) {
	t.Parallel()
	broken := `<manifest identifier="M_1">
  <organizations><organization identifier="O_2"><item identifier="root">
    <item identifier="I_3" identifierref="I_3_R"><title>a</title></item>
    <item identifier="I_3" identifierref="I_9_R"><title>b</title></item>
  </item></organization></organizations>
  <resources>
    <resource identifier="I_3_R" type="imsbasiclti_xmlv1p0"><file href="3/basiclti.xml"/></resource>
    <resource identifier="I_4_R" type="imsbasiclti_xmlv1p0"></resource>
  </resources>
</manifest>`
	doc, err := Parse([]byte(broken))
	require.NoError(t, err)

	err = doc.Validate()
	require.Error(t, err)
	errs := multierr.Errors(err)
	assert.Len(t, errs, 4)
	msg := err.Error()
	assert.Contains(t, msg, "duplicate identifier I_3")
	assert.Contains(t, msg, "unknown resource I_9_R")
	assert.Contains(t, msg, "resource I_4_R has no file")
	assert.Contains(t, msg, "resource I_4_R referenced 0 times")
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()
	_, err := Parse([]byte("<manifest"))
	assert.Error(t, err)
}

func TestReadArchive(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	archive := filepath.Join(dir, "c.imscc")

	f, err := os.Create(archive)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create(FileName)
	require.NoError(t, err)
	raw, err := Assemble(Meta{Title: "C"}, "O_101", "M_100", items, resources)
	require.NoError(t, err)
	_, err = w.Write(raw)
	require.NoError(t, err)
	w, err = zw.Create("103/basiclti.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<x/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	doc, files, err := ReadArchive(archive)
	require.NoError(t, err)
	assert.Equal(t, []string{FileName, "103/basiclti.xml"}, files)
	assert.NoError(t, doc.Validate())

	err = doc.ValidateFiles(files)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "104/lti_advantage.xml is missing")

	var titles []string
	doc.Walk(func(it Item, depth int) {
		titles = append(titles, strings.Repeat("-", depth)+it.Title)
	})
	assert.Equal(t, []string{"M", "-L", "-L Quiz"}, titles)

	_, _, err = ReadArchive(filepath.Join(dir, "missing.imscc"))
	assert.Error(t, err)
}
