package commandbar

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/commandbar/pkg/domain"
	"github.com/aretw0/commandbar/pkg/intent"
	"github.com/aretw0/commandbar/pkg/toolbar"
)

// Runner drives an Engine from a line-oriented reader: it renders the toolbar, reads a key
// path ("share/new-public-gist") and activates the item. This allows for easy testing and
// integration with plain terminals and pipes.
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool

	// Renderer turns a toolbar into text. Defaults to a plain key listing.
	Renderer ToolbarRenderer

	// Transition produces the next tree after an intent was resolved. When nil the intent is
	// sent to the engine's sink and the tree stays as it is.
	Transition func(ctx context.Context, tree *domain.Tree, in intent.Intent) (*domain.Tree, error)
}

// ToolbarRenderer transforms a toolbar into printable text.
// This allows for TUI rendering (lipgloss) without coupling the core package.
type ToolbarRenderer func(toolbar.Toolbar) (string, error)

// NewRunner creates a Runner. Input and Output must be set before Run.
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes the read-activate loop until EOF, "exit" or "quit". It returns the last tree.
func (r *Runner) Run(ctx context.Context, engine *Engine, tree *domain.Tree) (*domain.Tree, error) {
	if r.Input == nil {
		return tree, fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return tree, fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	lineReader := bufio.NewReader(r.Input)
	render := r.Renderer
	if render == nil {
		render = PlainRenderer
	}

	if !r.Headless {
		fmt.Fprintln(r.Output, "--- commandbar (runner) ---")
	}

	var last *toolbar.Toolbar
	for {
		tb, err := engine.Toolbar(tree)
		if err != nil {
			return tree, fmt.Errorf("render error: %w", err)
		}

		// Only print when the derived lists changed identity.
		if last == nil || !sameToolbar(*last, tb) {
			out, err := render(tb)
			if err != nil {
				return tree, fmt.Errorf("render error: %w", err)
			}
			fmt.Fprintln(r.Output, strings.TrimRight(out, "\n"))
			last = &tb
		}

		if !r.Headless {
			fmt.Fprint(r.Output, "> ")
		}
		text, err := lineReader.ReadString('\n')
		line := strings.TrimSpace(text)
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			if errors.Is(err, io.EOF) {
				return tree, nil
			}
			return tree, fmt.Errorf("input error: %w", err)
		}
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			if !r.Headless {
				fmt.Fprintln(r.Output, "Bye!")
			}
			return tree, nil
		}

		tree, err = r.activate(ctx, engine, tree, toolbar.ParsePath(line))
		if err != nil {
			return tree, err
		}
	}
}

func (r *Runner) activate(ctx context.Context, engine *Engine, tree *domain.Tree, path []string) (*domain.Tree, error) {
	in, err := engine.Resolve(tree, path...)
	switch {
	case errors.Is(err, domain.ErrItemNotFound), errors.Is(err, domain.ErrNoAction):
		fmt.Fprintf(r.Output, "! %v\n", err)
		return tree, nil
	case err != nil:
		return tree, err
	case in == nil:
		fmt.Fprintln(r.Output, "(no-op)")
		return tree, nil
	}

	fmt.Fprintf(r.Output, "-> %s\n", in.Type())
	if r.Transition == nil {
		if err := engine.sink.Dispatch(ctx, in); err != nil {
			return tree, fmt.Errorf("dispatch error: %w", err)
		}
		return tree, nil
	}
	next, err := r.Transition(ctx, tree, in)
	if err != nil {
		return tree, fmt.Errorf("transition error: %w", err)
	}
	return next, nil
}

// PlainRenderer lists the item keys of both groups, one line per group, submenus in brackets.
func PlainRenderer(tb toolbar.Toolbar) (string, error) {
	var sb strings.Builder
	sb.WriteString("items: ")
	writeKeys(&sb, tb.Items)
	sb.WriteString("\nfar:   ")
	writeKeys(&sb, tb.FarItems)
	sb.WriteString("\n")
	return sb.String(), nil
}

func writeKeys(sb *strings.Builder, items []toolbar.Item) {
	for i, item := range items {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(item.Key)
		if len(item.SubMenu) > 0 {
			sb.WriteString("[")
			writeKeys(sb, item.SubMenu)
			sb.WriteString("]")
		}
	}
}

func sameToolbar(a, b toolbar.Toolbar) bool {
	return sameSlice(a.Items, b.Items) && sameSlice(a.FarItems, b.FarItems)
}

func sameSlice(a, b []toolbar.Item) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}
