package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/commandbar/pkg/toolbar"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	itemStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8"))

	inertStyle = itemStyle.
			Foreground(lipgloss.Color("12")).
			Bold(true)

	loadingStyle = itemStyle.
			Foreground(lipgloss.Color("8")).
			Italic(true)

	selectedStyle = itemStyle.
			BorderForeground(lipgloss.Color("13")).
			Foreground(lipgloss.Color("15"))

	spacerStyle = lipgloss.NewStyle().Width(2)
)

// Label is the text shown for an item: its text, or its icon name for icon-only items.
func Label(item toolbar.Item) string {
	label := item.Text
	if item.IconOnly || label == "" {
		label = "[" + item.Icon + "]"
		if item.Icon == "" {
			label = item.Key
		}
	}
	if item.Loading {
		label = "…"
	}
	if len(item.SubMenu) > 0 {
		label += " ▾"
	}
	return label
}

func renderItem(item toolbar.Item, selected bool) string {
	style := itemStyle
	switch {
	case selected:
		style = selectedStyle
	case item.Loading:
		style = loadingStyle
	case !item.Actionable() && len(item.SubMenu) == 0:
		style = inertStyle
	}
	return style.Render(Label(item))
}

func renderGroup(items []toolbar.Item, selectedKey string) string {
	parts := make([]string, 0, len(items)*2)
	for i, item := range items {
		if i > 0 {
			parts = append(parts, spacerStyle.Render(""))
		}
		parts = append(parts, renderItem(item, item.Key == selectedKey))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// RenderToolbar draws both item groups as one row of bordered chips, far items on the right.
// It satisfies commandbar.ToolbarRenderer.
func RenderToolbar(tb toolbar.Toolbar) (string, error) {
	return renderBar(tb, "", 0), nil
}

func renderBar(tb toolbar.Toolbar, selectedKey string, width int) string {
	left := renderGroup(tb.Items, selectedKey)
	right := renderGroup(tb.FarItems, selectedKey)

	gap := 4
	if width > 0 {
		if free := width - lipgloss.Width(left) - lipgloss.Width(right); free > gap {
			gap = free
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", gap), right)
}

// Markdown describes the toolbar as a markdown table, submenu entries indented under their parent.
func Markdown(tb toolbar.Toolbar) string {
	var sb strings.Builder
	sb.WriteString("# Toolbar\n\n")
	writeTable(&sb, "Items", tb.Items)
	writeTable(&sb, "Far items", tb.FarItems)
	return sb.String()
}

func writeTable(sb *strings.Builder, title string, items []toolbar.Item) {
	fmt.Fprintf(sb, "## %s\n\n", title)
	if len(items) == 0 {
		sb.WriteString("_none_\n\n")
		return
	}
	sb.WriteString("| Key | Label | Icon | Actionable |\n")
	sb.WriteString("|-----|-------|------|------------|\n")
	var walk func(items []toolbar.Item, prefix string)
	walk = func(items []toolbar.Item, prefix string) {
		for _, item := range items {
			actionable := "no"
			if item.Actionable() {
				actionable = "yes"
			}
			fmt.Fprintf(sb, "| `%s%s` | %s | %s | %s |\n", prefix, item.Key, escapeCell(Label(item)), item.Icon, actionable)
			walk(item.SubMenu, prefix+item.Key+"/")
		}
	}
	walk(items, "")
	sb.WriteString("\n")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// NewMarkdownRenderer returns a renderer printing Markdown(tb) through glamour.
// A width of 0 keeps glamour's default word wrap.
func NewMarkdownRenderer(width int) (func(toolbar.Toolbar) (string, error), error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return func(tb toolbar.Toolbar) (string, error) {
		return r.Render(Markdown(tb))
	}, nil
}
