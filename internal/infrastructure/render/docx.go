// Package render implements the usecase.Renderer port with a minimal
// docx token renderer. A .docx file is a zip archive of XML parts; the
// renderer rewrites every XML part, substituting {{tag}} placeholders from
// the flattened tag mapping and expanding one {{#items_}}...{{/items_}}
// block per invoice line. The tag mapping is the wire contract; the
// renderer behind it is replaceable.
package render

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
)

const (
	itemsOpenTag  = "{{#items_}}"
	itemsCloseTag = "{{/items_}}"
)

// DocxRenderer renders docx templates by placeholder substitution.
type DocxRenderer struct{}

// NewDocxRenderer builds the renderer.
func NewDocxRenderer() *DocxRenderer {
	return &DocxRenderer{}
}

// Render produces document bytes from template bytes and a tag mapping.
func (r *DocxRenderer) Render(template []byte, tags map[string]any) ([]byte, error) {
	reader, err := zip.NewReader(bytes.NewReader(template), int64(len(template)))
	if err != nil {
		return nil, fmt.Errorf("template is not a docx archive: %w", err)
	}

	flat := make(map[string]string)
	var items []map[string]string
	flatten("", tags, flat, &items)

	var out bytes.Buffer
	writer := zip.NewWriter(&out)

	for _, entry := range reader.File {
		rc, err := entry.Open()
		if err != nil {
			return nil, err
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}

		if strings.HasSuffix(entry.Name, ".xml") {
			rendered, err := renderPart(string(content), flat, items)
			if err != nil {
				return nil, fmt.Errorf("render %s: %w", entry.Name, err)
			}
			content = []byte(rendered)
		}

		w, err := writer.CreateHeader(&zip.FileHeader{
			Name:   entry.Name,
			Method: zip.Deflate,
		})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(content); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func renderPart(content string, flat map[string]string, items []map[string]string) (string, error) {
	content, err := expandItems(content, items)
	if err != nil {
		return "", err
	}
	for key, value := range flat {
		content = strings.ReplaceAll(content, "{{"+key+"}}", xmlEscape(value))
	}
	return content, nil
}

// expandItems repeats the region between the items open and close tags
// once per invoice line, substituting the line-local tags.
func expandItems(content string, items []map[string]string) (string, error) {
	start := strings.Index(content, itemsOpenTag)
	if start < 0 {
		return content, nil
	}
	end := strings.Index(content, itemsCloseTag)
	if end < start {
		return "", fmt.Errorf("unbalanced %s block", itemsOpenTag)
	}

	body := content[start+len(itemsOpenTag) : end]
	var expanded strings.Builder
	for _, item := range items {
		row := body
		for key, value := range item {
			row = strings.ReplaceAll(row, "{{"+key+"}}", xmlEscape(value))
		}
		expanded.WriteString(row)
	}

	return content[:start] + expanded.String() + content[end+len(itemsCloseTag):], nil
}

// flatten walks the nested tag mapping into dotted placeholder paths. The
// items_ list is pulled out separately for block expansion.
func flatten(prefix string, value any, flat map[string]string, items *[]map[string]string) {
	switch v := value.(type) {
	case map[string]any:
		for key, child := range v {
			path := key
			if prefix != "" {
				path = prefix + "." + key
			}
			if key == "items_" {
				*items = collectItems(child)
				continue
			}
			flatten(path, child, flat, items)
		}
	default:
		flat[prefix] = fmt.Sprint(v)
	}
}

func collectItems(value any) []map[string]string {
	var items []map[string]string
	appendItem := func(m map[string]any) {
		item := make(map[string]string, len(m))
		for k, v := range m {
			item[k] = fmt.Sprint(v)
		}
		items = append(items, item)
	}

	switch list := value.(type) {
	case []map[string]any:
		for _, m := range list {
			appendItem(m)
		}
	case []any:
		for _, e := range list {
			if m, ok := e.(map[string]any); ok {
				appendItem(m)
			}
		}
	}
	return items
}

func xmlEscape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	return replacer.Replace(s)
}
