package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown(t *testing.T) {
	assert.Equal(t, "", RenderMarkdown(""))

	out := RenderMarkdown("**hola** mundo")
	assert.Contains(t, out, "<strong>hola</strong>")

	out = RenderMarkdown("<script>alert(1)</script>texto")
	assert.NotContains(t, out, "<script>")

	out = RenderMarkdown("![playa](https://example.com/playa.png)")
	assert.Contains(t, out, `loading="lazy"`)
	assert.Contains(t, out, `referrerpolicy="no-referrer"`)
}
