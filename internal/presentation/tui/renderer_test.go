package tui

import (
	"bytes"
	"testing"

	"github.com/aretw0/commandbar/pkg/intent"
	"github.com/aretw0/commandbar/pkg/toolbar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleToolbar() toolbar.Toolbar {
	return toolbar.Toolbar{
		Items: []toolbar.Item{
			{Key: "title", Text: "Demo"},
			{Key: "run", Text: "Run", Icon: toolbar.IconPlay, Action: intent.Static(intent.NavigateToRun{})},
			{Key: "share", Text: "Share", SubMenu: []toolbar.Item{
				{Key: "new-public-gist", Text: "New public gist", Action: intent.Static(intent.RequestLogin{})},
			}},
		},
		FarItems: []toolbar.Item{
			{Key: "account", IconOnly: true, Action: intent.Static(intent.RequestLogin{})},
		},
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Run", Label(toolbar.Item{Key: "run", Text: "Run"}))
	assert.Equal(t, "[Play]", Label(toolbar.Item{Key: "run", Text: "Run", Icon: "Play", IconOnly: true}))
	assert.Equal(t, "account", Label(toolbar.Item{Key: "account", IconOnly: true}))
	assert.Equal(t, "…", Label(toolbar.Item{Key: "title", Loading: true}))
	assert.Equal(t, "Share ▾", Label(toolbar.Item{Key: "share", Text: "Share", SubMenu: []toolbar.Item{{Key: "x"}}}))
}

func TestRenderToolbar(t *testing.T) {
	out, err := RenderToolbar(sampleToolbar())
	require.NoError(t, err)
	assert.Contains(t, out, "Demo")
	assert.Contains(t, out, "Run")
	assert.Contains(t, out, "Share ▾")
	assert.Contains(t, out, "account")
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sampleToolbar())
	assert.Contains(t, md, "| `run` | Run | Play | yes |")
	assert.Contains(t, md, "| `title` | Demo |  | no |")
	assert.Contains(t, md, "| `share/new-public-gist` | New public gist |  | yes |")
	assert.Contains(t, md, "## Far items")

	empty := Markdown(toolbar.Toolbar{})
	assert.Contains(t, empty, "_none_")
}

func TestNewMarkdownRenderer(t *testing.T) {
	render, err := NewMarkdownRenderer(80)
	require.NoError(t, err)

	out, err := render(sampleToolbar())
	require.NoError(t, err)
	assert.Contains(t, out, "Toolbar")
	assert.Contains(t, out, "Far items")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3\n")
	assert.Contains(t, buf.String(), "v1.2.3")
	assert.NotContains(t, buf.String(), "\x1b[", "no colors when not writing to a terminal")
}
