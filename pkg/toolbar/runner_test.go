package toolbar

import (
	"testing"

	"github.com/aretw0/commandbar/pkg/intent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunnerHeader(t *testing.T) {
	refresh := intent.Static(intent.Navigate{Route: "./#/refresh"})
	hard := intent.Static(intent.Navigate{Route: "./#/refresh?hard=true"})

	t.Run("without go back", func(t *testing.T) {
		tb := RunnerHeader(RunnerProps{DocumentName: "Demo", Refresh: refresh, HardRefresh: hard})
		assert.Equal(t, []string{"title"}, keys(tb.Items))
		assert.Equal(t, "Demo", tb.Items[0].Text)
		assert.False(t, tb.Items[0].Loading)
	})

	t.Run("with go back", func(t *testing.T) {
		back := intent.Static(intent.Navigate{Route: "./#/"})
		tb := RunnerHeader(RunnerProps{DocumentName: "Demo", GoBack: back, Refresh: refresh, HardRefresh: hard})
		require.Equal(t, []string{"go-back", "title"}, keys(tb.Items))
		assert.Equal(t, intent.Navigate{Route: "./#/"}, tb.Items[0].Action())
	})

	t.Run("loading", func(t *testing.T) {
		tb := RunnerHeader(RunnerProps{HardRefresh: hard})
		assert.True(t, tb.Items[0].Loading)
		assert.Empty(t, tb.Items[0].Text)
	})

	t.Run("overflow", func(t *testing.T) {
		tb := RunnerHeader(RunnerProps{DocumentName: "Demo", Refresh: refresh, HardRefresh: hard})
		item, err := tb.Find("overflow", "hard-refresh")
		require.NoError(t, err)
		assert.Equal(t, "Hard Refresh", item.Text)
		assert.Equal(t, intent.Navigate{Route: "./#/refresh?hard=true"}, item.Action())

		item, err = tb.Find("overflow", "refresh-snippet")
		require.NoError(t, err)
		assert.Equal(t, "Refresh", item.Text)
	})
}
