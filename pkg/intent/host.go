package intent

import (
	"github.com/aretw0/commandbar/pkg/domain"
)

// Intents raised by the host rather than by toolbar items. They complete exchanges started by
// toolbar intents (login) or report environment changes (resize, document switch).
const (
	TypeLoginSucceeded = "github.login.success"
	TypeLoginFailed    = "github.login.failure"
	TypeResize         = "screen.resize"
	TypeOpenDocument   = "editor.open_document"
	TypeOpenSettings   = "settings.open"
)

// LoginSucceeded ends a login exchange.
type LoginSucceeded struct {
	Token    string `json:"token" mapstructure:"token"`
	Username string `json:"username" mapstructure:"username"`
}

func (LoginSucceeded) Type() string { return TypeLoginSucceeded }

// LoginFailed aborts a login exchange.
type LoginFailed struct {
	Reason string `json:"reason,omitempty" mapstructure:"reason"`
}

func (LoginFailed) Type() string { return TypeLoginFailed }

// Resize reports a new viewport width.
type Resize struct {
	Width int `json:"width" mapstructure:"width"`
}

func (Resize) Type() string { return TypeResize }

// OpenDocument makes a document active.
type OpenDocument struct {
	Document *domain.Document `json:"document" mapstructure:"document"`
}

func (OpenDocument) Type() string { return TypeOpenDocument }

// OpenSettings switches the editor to the settings view.
type OpenSettings struct{}

func (OpenSettings) Type() string { return TypeOpenSettings }
