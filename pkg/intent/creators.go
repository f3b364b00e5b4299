package intent

import (
	"github.com/aretw0/commandbar/pkg/domain"
)

// Creators is the bundle of intent constructors handed to the toolbar derivations.
// Hosts that wrap intents (tracing, namespacing, alternative message types) supply their own
// functions; nil fields fall back to the defaults when passed through Complete.
type Creators struct {
	OpenBackstage         func() Intent
	NavigateToRun         func() Intent
	Navigate              func(route string) Intent
	ShowMessage           func(style MessageStyle, text string, button *MessageButton) Intent
	RemoveDocument        func(doc *domain.Document) Intent
	UpdateDocumentOptions func(doc *domain.Document, opts domain.DocumentOptions) Intent
	RequestGistUpdate     func(documentID string) Intent
	RequestGistCreate     func(documentID string, isPublic bool) Intent
	RequestLogin          func() Intent
	RequestLogout         func() Intent
	CloseSettings         func() Intent
	ShowDialog            func(title, subText string, buttons ...DialogButton) Intent
	DismissDialog         func() Intent
	CopyToClipboard       func(documentID string) Intent
}

// DefaultCreators returns constructors for the message types of this package.
func DefaultCreators() Creators {
	return Creators{
		OpenBackstage: func() Intent { return OpenBackstage{} },
		NavigateToRun: func() Intent { return NavigateToRun{} },
		Navigate:      func(route string) Intent { return Navigate{Route: route} },
		ShowMessage: func(style MessageStyle, text string, button *MessageButton) Intent {
			return ShowMessage{Style: style, Text: text, Button: button}
		},
		RemoveDocument: func(doc *domain.Document) Intent { return RemoveDocument{Document: doc} },
		UpdateDocumentOptions: func(doc *domain.Document, opts domain.DocumentOptions) Intent {
			return UpdateDocumentOptions{Document: doc, Options: opts}
		},
		RequestGistUpdate: func(documentID string) Intent { return RequestGistUpdate{DocumentID: documentID} },
		RequestGistCreate: func(documentID string, isPublic bool) Intent {
			return RequestGistCreate{DocumentID: documentID, IsPublic: isPublic}
		},
		RequestLogin:  func() Intent { return RequestLogin{} },
		RequestLogout: func() Intent { return RequestLogout{} },
		CloseSettings: func() Intent { return CloseSettings{} },
		ShowDialog: func(title, subText string, buttons ...DialogButton) Intent {
			return ShowDialog{Title: title, SubText: subText, Buttons: buttons}
		},
		DismissDialog:   func() Intent { return DismissDialog{} },
		CopyToClipboard: func(documentID string) Intent { return CopyToClipboard{DocumentID: documentID} },
	}
}

// Complete fills every nil constructor with its default.
func (c Creators) Complete() Creators {
	d := DefaultCreators()
	if c.OpenBackstage == nil {
		c.OpenBackstage = d.OpenBackstage
	}
	if c.NavigateToRun == nil {
		c.NavigateToRun = d.NavigateToRun
	}
	if c.Navigate == nil {
		c.Navigate = d.Navigate
	}
	if c.ShowMessage == nil {
		c.ShowMessage = d.ShowMessage
	}
	if c.RemoveDocument == nil {
		c.RemoveDocument = d.RemoveDocument
	}
	if c.UpdateDocumentOptions == nil {
		c.UpdateDocumentOptions = d.UpdateDocumentOptions
	}
	if c.RequestGistUpdate == nil {
		c.RequestGistUpdate = d.RequestGistUpdate
	}
	if c.RequestGistCreate == nil {
		c.RequestGistCreate = d.RequestGistCreate
	}
	if c.RequestLogin == nil {
		c.RequestLogin = d.RequestLogin
	}
	if c.RequestLogout == nil {
		c.RequestLogout = d.RequestLogout
	}
	if c.CloseSettings == nil {
		c.CloseSettings = d.CloseSettings
	}
	if c.ShowDialog == nil {
		c.ShowDialog = d.ShowDialog
	}
	if c.DismissDialog == nil {
		c.DismissDialog = d.DismissDialog
	}
	if c.CopyToClipboard == nil {
		c.CopyToClipboard = d.CopyToClipboard
	}
	return c
}
