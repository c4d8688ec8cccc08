package document

import (
	"bytes"
	"html/template"
)

// IRenderer is the display transform applied to rendered reads
type IRenderer interface {
	// Render returns the display form of a document.
	// lang is an optional syntax hint taken from the key's extension (may be empty).
	Render(key, lang string, content []byte) ([]byte, error)
	// ContentType is the media type of the rendered output
	ContentType() string
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Key}}</title>
<style>body{margin:0;background:#1d1f21;color:#c5c8c6}pre{margin:0;padding:1em;white-space:pre-wrap;word-wrap:break-word}</style>
</head>
<body>
<pre><code{{if .Lang}} class="language-{{.Lang}}"{{end}}>{{.Content}}</code></pre>
</body>
</html>
`))

type htmlRenderer struct{}

// NewHTMLRenderer returns a renderer embedding the document in an HTML page.
// The content is escaped, a stored document can never inject markup.
func NewHTMLRenderer() IRenderer {
	return htmlRenderer{}
}

func (htmlRenderer) Render(key, lang string, content []byte) ([]byte, error) {
	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, struct {
		Key     string
		Lang    string
		Content string
	}{key, lang, string(content)})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (htmlRenderer) ContentType() string {
	return "text/html; charset=utf-8"
}
