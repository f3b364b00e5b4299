package toolbar

import (
	"github.com/aretw0/commandbar/pkg/intent"
)

// RunnerProps describes the header of the runner view, which shows a running snippet instead
// of editing it.
type RunnerProps struct {
	// DocumentName is empty while the snippet is still loading.
	DocumentName string

	GoBack      intent.Producer
	Refresh     intent.Producer
	HardRefresh intent.Producer
}

// RunnerHeader builds the runner toolbar. The go-back item only appears when GoBack is set.
func RunnerHeader(p RunnerProps) Toolbar {
	items := visible([]candidate{
		{
			hidden: p.GoBack == nil,
			item:   Item{Key: "go-back", Icon: IconBack, AriaLabel: "Back", Action: p.GoBack},
		},
		{
			item: Item{
				Key:     "title",
				Text:    p.DocumentName,
				Loading: p.DocumentName == "",
				Action:  p.Refresh,
			},
		},
	})

	farItems := []Item{{
		Key:  "overflow",
		Icon: IconRefresh,
		SubMenu: []Item{
			{Key: "refresh-snippet", Icon: IconRefresh, Text: "Refresh", Action: p.Refresh},
			{Key: "hard-refresh", Icon: IconRefresh, Text: "Hard Refresh", Action: p.HardRefresh},
		},
	}}

	return Toolbar{Items: items, FarItems: farItems}
}
