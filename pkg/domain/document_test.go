package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument_Equal(t *testing.T) {
	base := func() *Document {
		return &Document{
			ID:     "abc",
			Name:   "Demo",
			Host:   "EXCEL",
			Source: &Source{Origin: OriginGist, ID: "d1f"},
		}
	}

	assert.True(t, base().Equal(base()))
	assert.True(t, (*Document)(nil).Equal(nil))
	assert.False(t, base().Equal(nil))
	assert.False(t, (*Document)(nil).Equal(base()))

	tests := []struct {
		name   string
		change func(d *Document)
	}{
		{"name", func(d *Document) { d.Name = "Other" }},
		{"host", func(d *Document) { d.Host = "WORD" }},
		{"trust", func(d *Document) { d.Options.IsUntrusted = true }},
		{"custom functions", func(d *Document) { d.IsCustomFunctions = true }},
		{"source id", func(d *Document) { d.Source.ID = "zzz" }},
		{"no source", func(d *Document) { d.Source = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed := base()
			tt.change(changed)
			assert.False(t, base().Equal(changed))
			assert.False(t, changed.Equal(base()))
		})
	}
}
