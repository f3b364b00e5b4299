package toolbar

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/commandbar/pkg/domain"
	"github.com/aretw0/commandbar/pkg/intent"
)

// Item is one renderable, activatable toolbar entry.
//
// Items are computed, never persisted. An item references the document name and trust flag
// that were current when it was built; it does not own the document.
type Item struct {
	Key          string `json:"key"`
	Text         string `json:"text,omitempty"`
	AriaLabel    string `json:"ariaLabel,omitempty"`
	Icon         string `json:"icon,omitempty"`
	IconOnly     bool   `json:"iconOnly,omitempty"`
	PaddingRight string `json:"paddingRight,omitempty"`
	ClassName    string `json:"className,omitempty"`
	// Loading asks the renderer to draw a progress indicator in place of the icon.
	Loading bool `json:"loading,omitempty"`

	// Action yields the intent sent to the sink on activation. Nil means the item is inert.
	Action intent.Producer `json:"-"`

	SubMenu []Item `json:"subMenu,omitempty"`
}

// Actionable reports whether activating the item produces anything.
func (i Item) Actionable() bool {
	return i.Action != nil
}

// MarshalJSON adds an "actionable" flag, since producers themselves are not serializable.
func (i Item) MarshalJSON() ([]byte, error) {
	type plain Item
	return json.Marshal(struct {
		plain
		Actionable bool `json:"actionable"`
	}{plain(i), i.Actionable()})
}

// Toolbar is the pair of item lists consumed by a renderer.
type Toolbar struct {
	Items    []Item `json:"items"`
	FarItems []Item `json:"farItems"`
}

// Empty reports whether both lists are empty.
func (t Toolbar) Empty() bool {
	return len(t.Items) == 0 && len(t.FarItems) == 0
}

// Find resolves an item by key path, descending into submenus. The first key is looked up in
// Items, then in FarItems.
func (t Toolbar) Find(path ...string) (Item, error) {
	if len(path) == 0 {
		return Item{}, fmt.Errorf("%w: empty key path", domain.ErrItemNotFound)
	}
	if item, ok := find(t.Items, path); ok {
		return item, nil
	}
	if item, ok := find(t.FarItems, path); ok {
		return item, nil
	}
	return Item{}, fmt.Errorf("%w: %s", domain.ErrItemNotFound, strings.Join(path, "/"))
}

// ParsePath splits "share/update-gist" into a key path.
func ParsePath(s string) []string {
	var path []string
	for _, key := range strings.Split(s, "/") {
		if key = strings.TrimSpace(key); key != "" {
			path = append(path, key)
		}
	}
	return path
}

func find(items []Item, path []string) (Item, bool) {
	for _, item := range items {
		if item.Key != path[0] {
			continue
		}
		if len(path) == 1 {
			return item, true
		}
		return find(item.SubMenu, path[1:])
	}
	return Item{}, false
}
