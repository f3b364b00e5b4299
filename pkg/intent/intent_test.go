package intent

import (
	"testing"

	"github.com/aretw0/commandbar/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestProducers(t *testing.T) {
	assert.Equal(t, NavigateToRun{}, Static(NavigateToRun{})())
	assert.Nil(t, Noop()())
}

func TestDefaultCreators(t *testing.T) {
	c := DefaultCreators()
	doc := &domain.Document{ID: "abc"}

	assert.Equal(t, Navigate{Route: "/x"}, c.Navigate("/x"))
	assert.Equal(t, RequestGistCreate{DocumentID: "abc", IsPublic: true}, c.RequestGistCreate("abc", true))
	assert.Equal(t, UpdateDocumentOptions{Document: doc, Options: domain.DocumentOptions{IsUntrusted: true}},
		c.UpdateDocumentOptions(doc, domain.DocumentOptions{IsUntrusted: true}))
	assert.Equal(t, ShowDialog{Title: "t", SubText: "s", Buttons: []DialogButton{{Text: "Ok"}}},
		c.ShowDialog("t", "s", DialogButton{Text: "Ok"}))
}

func TestCreators_Complete(t *testing.T) {
	custom := Creators{
		RequestLogout: func() Intent { return Navigate{Route: "/bye"} },
	}.Complete()

	assert.Equal(t, Navigate{Route: "/bye"}, custom.RequestLogout())
	assert.Equal(t, RequestLogin{}, custom.RequestLogin())
	assert.Equal(t, CopyToClipboard{DocumentID: "x"}, custom.CopyToClipboard("x"))
	assert.NotNil(t, custom.OpenBackstage)
	assert.NotNil(t, custom.ShowMessage)
}
