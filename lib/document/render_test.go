package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLRenderer(t *testing.T) {
	r := NewHTMLRenderer()
	assert.Equal(t, "text/html; charset=utf-8", r.ContentType())

	out, err := r.Render("abc", "js", []byte(`<script>alert("x")</script>`))
	require.NoError(t, err)
	page := string(out)

	assert.Contains(t, page, "<title>abc</title>")
	assert.Contains(t, page, `class="language-js"`)
	assert.NotContains(t, page, "<script>")
	assert.Contains(t, page, "&lt;script&gt;")
}

func TestHTMLRenderer_NoLanguage(t *testing.T) {
	out, err := NewHTMLRenderer().Render("abc", "", []byte("plain"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "<code>plain</code>")
}

func TestHTMLRenderer_EscapesLanguage(t *testing.T) {
	out, err := NewHTMLRenderer().Render("abc", `x" onclick="evil`, []byte("plain"))
	require.NoError(t, err)
	assert.NotContains(t, string(out), `onclick="evil"`)
}
