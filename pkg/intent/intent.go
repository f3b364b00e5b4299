package intent

import (
	"github.com/aretw0/commandbar/pkg/domain"
)

// Intent is a typed message describing a requested state mutation. An intent is data: it is
// handed to an IntentSink, which performs the mutation or side effect.
type Intent interface {
	Type() string
}

// Producer yields an intent when a toolbar item is activated. A producer may return nil,
// meaning the activation is intentionally a no-op.
type Producer func() Intent

// Static wraps an intent that does not depend on activation time.
func Static(in Intent) Producer {
	return func() Intent { return in }
}

// Noop is a producer that never yields an intent.
func Noop() Producer {
	return func() Intent { return nil }
}

// Intent types. The values are part of the wire format (see Encode).
const (
	TypeOpenBackstage         = "editor.open_backstage"
	TypeNavigateToRun         = "editor.navigate_to_run"
	TypeNavigate              = "router.navigate"
	TypeShowMessage           = "message_bar.show"
	TypeRemoveDocument        = "solutions.remove"
	TypeUpdateDocumentOptions = "solutions.update_options"
	TypeRequestGistUpdate     = "gists.update.request"
	TypeRequestGistCreate     = "gists.create.request"
	TypeRequestLogin          = "github.login.request"
	TypeRequestLogout         = "github.logout"
	TypeCloseSettings         = "settings.close"
	TypeShowDialog            = "dialog.show"
	TypeDismissDialog         = "dialog.dismiss"
	TypeCopyToClipboard       = "clipboard.copy"
)

// MessageStyle selects the severity of a message bar.
type MessageStyle string

const (
	MessageInfo    MessageStyle = "info"
	MessageError   MessageStyle = "error"
	MessageWarning MessageStyle = "warning"
	MessageSuccess MessageStyle = "success"
)

// OpenBackstage opens the document browser.
type OpenBackstage struct{}

func (OpenBackstage) Type() string { return TypeOpenBackstage }

// NavigateToRun switches to the run view of the active document.
type NavigateToRun struct{}

func (NavigateToRun) Type() string { return TypeNavigateToRun }

// Navigate moves the host to a fixed route.
type Navigate struct {
	Route string `json:"route" mapstructure:"route"`
}

func (Navigate) Type() string { return TypeNavigate }

// MessageButton is the optional action embedded in a message bar.
type MessageButton struct {
	Text   string `json:"text" mapstructure:"text"`
	Action Intent `json:"action" mapstructure:"action"`
}

// ShowMessage displays a message bar.
type ShowMessage struct {
	Style  MessageStyle   `json:"style" mapstructure:"style"`
	Text   string         `json:"text" mapstructure:"text"`
	Button *MessageButton `json:"button,omitempty" mapstructure:"button"`
}

func (ShowMessage) Type() string { return TypeShowMessage }

// RemoveDocument deletes a document.
type RemoveDocument struct {
	Document *domain.Document `json:"document" mapstructure:"document"`
}

func (RemoveDocument) Type() string { return TypeRemoveDocument }

// UpdateDocumentOptions replaces the options of a document.
type UpdateDocumentOptions struct {
	Document *domain.Document      `json:"document" mapstructure:"document"`
	Options  domain.DocumentOptions `json:"options" mapstructure:"options"`
}

func (UpdateDocumentOptions) Type() string { return TypeUpdateDocumentOptions }

// RequestGistUpdate pushes the document to the gist it came from.
type RequestGistUpdate struct {
	DocumentID string `json:"documentId" mapstructure:"documentId"`
}

func (RequestGistUpdate) Type() string { return TypeRequestGistUpdate }

// RequestGistCreate publishes the document as a new gist.
type RequestGistCreate struct {
	DocumentID string `json:"documentId" mapstructure:"documentId"`
	IsPublic   bool   `json:"isPublic" mapstructure:"isPublic"`
}

func (RequestGistCreate) Type() string { return TypeRequestGistCreate }

// RequestLogin starts the GitHub login exchange.
type RequestLogin struct{}

func (RequestLogin) Type() string { return TypeRequestLogin }

// RequestLogout signs the user out.
type RequestLogout struct{}

func (RequestLogout) Type() string { return TypeRequestLogout }

// CloseSettings leaves the settings view.
type CloseSettings struct{}

func (CloseSettings) Type() string { return TypeCloseSettings }

// DialogButton is one choice of a dialog.
type DialogButton struct {
	Text      string `json:"text" mapstructure:"text"`
	Action    Intent `json:"action" mapstructure:"action"`
	IsPrimary bool   `json:"isPrimary" mapstructure:"isPrimary"`
}

// ShowDialog opens a modal dialog.
type ShowDialog struct {
	Title   string         `json:"title" mapstructure:"title"`
	SubText string         `json:"subText" mapstructure:"subText"`
	Buttons []DialogButton `json:"buttons" mapstructure:"buttons"`
}

func (ShowDialog) Type() string { return TypeShowDialog }

// DismissDialog closes the open dialog.
type DismissDialog struct{}

func (DismissDialog) Type() string { return TypeDismissDialog }

// CopyToClipboard exports the document to the clipboard.
type CopyToClipboard struct {
	DocumentID string `json:"documentId" mapstructure:"documentId"`
}

func (CopyToClipboard) Type() string { return TypeCopyToClipboard }
