package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/commandbar/pkg/domain"
	"github.com/aretw0/commandbar/pkg/intent"
	"github.com/aretw0/commandbar/pkg/ports"
	"github.com/aretw0/commandbar/pkg/toolbar"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CellWidth converts terminal columns into the pixel widths the toolbar reasons about.
const CellWidth = 8

// Transition applies an intent and returns the next tree.
type Transition func(ctx context.Context, tree *domain.Tree, in intent.Intent) (*domain.Tree, error)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	menuStyle   = lipgloss.NewStyle().PaddingLeft(2)
)

// Model is the bubbletea model of the interactive toolbar preview.
type Model struct {
	ctx        context.Context
	engine     ports.ToolbarEngine
	transition Transition

	tree *domain.Tree
	tb   toolbar.Toolbar

	// menu is the key path of the open submenu; empty at the top level.
	menu   []string
	cursor int
	status string
	err    error

	keys     KeyMap
	help     help.Model
	showHelp bool
	width    int
}

// NewModel creates the preview for tree. transition may be nil, in which case activations are
// only reported.
func NewModel(ctx context.Context, engine ports.ToolbarEngine, tree *domain.Tree, transition Transition) Model {
	m := Model{
		ctx:        ctx,
		engine:     engine,
		transition: transition,
		tree:       tree,
		keys:       DefaultKeyMap(),
		help:       help.New(),
	}
	m.refresh()
	return m
}

// Tree returns the current state tree.
func (m Model) Tree() *domain.Tree { return m.tree }

// Toolbar returns the toolbar currently displayed.
func (m Model) Toolbar() toolbar.Toolbar { return m.tb }

// Status returns the last activation report.
func (m Model) Status() string { return m.status }

// Err returns the last error, if any.
func (m Model) Err() error { return m.err }

// Selected returns the key path of the item under the cursor.
func (m Model) Selected() []string {
	row := m.row()
	if m.cursor >= len(row) {
		return nil
	}
	return append(append([]string{}, m.menu...), row[m.cursor].Key)
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.apply(intent.Resize{Width: msg.Width * CellWidth})
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp

		case key.Matches(msg, m.keys.Left):
			if n := len(m.row()); n > 0 {
				m.cursor = (m.cursor - 1 + n) % n
			}

		case key.Matches(msg, m.keys.Right):
			if n := len(m.row()); n > 0 {
				m.cursor = (m.cursor + 1) % n
			}

		case key.Matches(msg, m.keys.Collapse):
			if len(m.menu) > 0 {
				m.menu = m.menu[:len(m.menu)-1]
				m.cursor = 0
			}

		case key.Matches(msg, m.keys.Activate):
			m.activate()
		}
	}
	return m, nil
}

// row returns the items of the current level: both groups at the top, or the open submenu.
func (m Model) row() []toolbar.Item {
	if len(m.menu) == 0 {
		row := make([]toolbar.Item, 0, len(m.tb.Items)+len(m.tb.FarItems))
		row = append(row, m.tb.Items...)
		return append(row, m.tb.FarItems...)
	}
	parent, err := m.tb.Find(m.menu...)
	if err != nil {
		return nil
	}
	return parent.SubMenu
}

func (m *Model) activate() {
	path := m.Selected()
	if path == nil {
		return
	}
	item, err := m.tb.Find(path...)
	if err != nil {
		m.err = err
		return
	}
	if len(item.SubMenu) > 0 {
		m.menu = path
		m.cursor = 0
		return
	}

	in, err := m.engine.Resolve(m.tree, path...)
	switch {
	case errors.Is(err, domain.ErrNoAction):
		m.status = fmt.Sprintf("%s has no action", item.Key)
		m.err = nil
		return
	case err != nil:
		m.err = err
		return
	case in == nil:
		m.status = "(no-op)"
		m.err = nil
		return
	}

	m.status = "-> " + in.Type()
	m.err = nil
	m.menu = nil
	m.cursor = 0
	m.apply(in)
}

func (m *Model) apply(in intent.Intent) {
	if m.transition == nil {
		return
	}
	next, err := m.transition(m.ctx, m.tree, in)
	if err != nil {
		m.err = err
		return
	}
	if next != nil {
		m.tree = next
	}
	m.refresh()
}

func (m *Model) refresh() {
	tb, err := m.engine.Toolbar(m.tree)
	if err != nil {
		m.err = err
		return
	}
	m.tb = tb
	if len(m.menu) > 0 {
		if _, err := tb.Find(m.menu...); err != nil {
			m.menu = nil
		}
	}
	if n := len(m.row()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

// View renders the model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("commandbar · %s", m.modeName())))
	b.WriteString("\n\n")

	top := ""
	if len(m.menu) == 0 {
		if path := m.Selected(); path != nil {
			top = path[0]
		}
	} else {
		top = m.menu[0]
	}
	if m.tb.Empty() {
		b.WriteString("(empty toolbar)\n")
	} else {
		b.WriteString(renderBar(m.tb, top, m.width))
		b.WriteString("\n")
	}

	if len(m.menu) > 0 {
		selected := ""
		if path := m.Selected(); path != nil {
			selected = path[len(path)-1]
		}
		b.WriteString(menuStyle.Render(renderGroup(m.row(), selected)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return b.String()
}

func (m Model) modeName() string {
	mode, err := m.engine.Mode(m.tree)
	if err != nil {
		return "invalid"
	}
	return mode.String()
}
