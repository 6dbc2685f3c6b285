package render_test

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoiceworks/backend/internal/infrastructure/render"
)

func buildTemplate(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	ct, err := w.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = ct.Write([]byte(`<?xml version="1.0"?><Types/>`))
	require.NoError(t, err)

	doc, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = doc.Write([]byte(documentXML))
	require.NoError(t, err)

	bin, err := w.Create("word/media/image1.png")
	require.NoError(t, err)
	_, err = bin.Write([]byte{0x89, 'P', 'N', 'G'})
	require.NoError(t, err)

	require.NoError(t, w.Close())
	return buf.Bytes()
}

func extractPart(t *testing.T, archive []byte, name string) string {
	t.Helper()
	r, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)
	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(data)
	}
	t.Fatalf("part %s not found in archive", name)
	return ""
}

func TestRender_SubstitutesDottedPaths(t *testing.T) {
	template := buildTemplate(t, `<w:t>{{cl.name}} / {{cl.a.city}} / Nr. {{cnt.invoice_number}}</w:t>`)
	tags := map[string]any{
		"cl": map[string]any{
			"name": "Acme GmbH",
			"a":    map[string]any{"city": "Berlin"},
		},
		"cnt": map[string]any{"invoice_number": 101},
	}

	out, err := render.NewDocxRenderer().Render(template, tags)
	require.NoError(t, err)

	doc := extractPart(t, out, "word/document.xml")
	assert.Equal(t, `<w:t>Acme GmbH / Berlin / Nr. 101</w:t>`, doc)
}

func TestRender_ExpandsItemsBlockPerLine(t *testing.T) {
	template := buildTemplate(t,
		`<w:tbl>{{#items_}}<w:tr><w:t>{{date}}</w:t><w:t>{{hours}}</w:t><w:t>{{total}}</w:t></w:tr>{{/items_}}</w:tbl>`)
	tags := map[string]any{
		"cnt": map[string]any{
			"items_": []map[string]any{
				{"date": "01.07.2024", "hours": "5 Std", "total": "250.00 €"},
				{"date": "15.07.2024", "hours": "7.5 Std", "total": "375.00 €"},
			},
		},
	}

	out, err := render.NewDocxRenderer().Render(template, tags)
	require.NoError(t, err)

	doc := extractPart(t, out, "word/document.xml")
	assert.Equal(t,
		`<w:tbl>`+
			`<w:tr><w:t>01.07.2024</w:t><w:t>5 Std</w:t><w:t>250.00 €</w:t></w:tr>`+
			`<w:tr><w:t>15.07.2024</w:t><w:t>7.5 Std</w:t><w:t>375.00 €</w:t></w:tr>`+
			`</w:tbl>`,
		doc)
}

func TestRender_ItemsBlockRemovedWhenNoLines(t *testing.T) {
	template := buildTemplate(t, `<w:tbl>{{#items_}}<w:tr/>{{/items_}}</w:tbl>`)
	tags := map[string]any{"cnt": map[string]any{"items_": []map[string]any{}}}

	out, err := render.NewDocxRenderer().Render(template, tags)
	require.NoError(t, err)

	assert.Equal(t, `<w:tbl></w:tbl>`, extractPart(t, out, "word/document.xml"))
}

func TestRender_EscapesXMLInValues(t *testing.T) {
	template := buildTemplate(t, `<w:t>{{cl.name}}</w:t>`)
	tags := map[string]any{"cl": map[string]any{"name": "Müller & Söhne <GmbH>"}}

	out, err := render.NewDocxRenderer().Render(template, tags)
	require.NoError(t, err)

	assert.Equal(t, `<w:t>Müller &amp; Söhne &lt;GmbH&gt;</w:t>`,
		extractPart(t, out, "word/document.xml"))
}

func TestRender_LeavesBinaryPartsUntouched(t *testing.T) {
	template := buildTemplate(t, `<w:t>{{cl.name}}</w:t>`)
	tags := map[string]any{"cl": map[string]any{"name": "Acme"}}

	out, err := render.NewDocxRenderer().Render(template, tags)
	require.NoError(t, err)

	assert.Equal(t, string([]byte{0x89, 'P', 'N', 'G'}),
		extractPart(t, out, "word/media/image1.png"))
}

func TestRender_UnbalancedItemsBlock(t *testing.T) {
	template := buildTemplate(t, `<w:t>{{#items_}}never closed</w:t>`)

	_, err := render.NewDocxRenderer().Render(template, map[string]any{})
	assert.Error(t, err)
}

func TestRender_RejectsNonArchiveTemplate(t *testing.T) {
	_, err := render.NewDocxRenderer().Render([]byte("plain text"), map[string]any{})
	assert.Error(t, err)
}

func TestRender_ItemsDecodedFromJSONRoundTrip(t *testing.T) {
	// documents reloaded from the draft store arrive as []any after JSON
	// decoding rather than []map[string]any
	template := buildTemplate(t, `{{#items_}}[{{date}}]{{/items_}}`)
	tags := map[string]any{
		"cnt": map[string]any{
			"items_": []any{
				map[string]any{"date": "01.07.2024"},
				map[string]any{"date": "02.07.2024"},
			},
		},
	}

	out, err := render.NewDocxRenderer().Render(template, tags)
	require.NoError(t, err)

	assert.Equal(t, `[01.07.2024][02.07.2024]`, extractPart(t, out, "word/document.xml"))
}
