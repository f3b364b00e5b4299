package intent

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sync"

	"github.com/aretw0/commandbar/pkg/domain"
	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
)

// Envelope is the wire form of an intent: a type tag plus a JSON object payload.
// Nested intents (message and dialog button actions) are envelopes without an ID.
type Envelope struct {
	ID      string         `json:"id,omitempty"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

var (
	registryMu sync.RWMutex
	registry   = map[string]func() any{}

	intentType = reflect.TypeOf((*Intent)(nil)).Elem()
)

func init() {
	Register[OpenBackstage]()
	Register[NavigateToRun]()
	Register[Navigate]()
	Register[ShowMessage]()
	Register[RemoveDocument]()
	Register[UpdateDocumentOptions]()
	Register[RequestGistUpdate]()
	Register[RequestGistCreate]()
	Register[RequestLogin]()
	Register[RequestLogout]()
	Register[CloseSettings]()
	Register[ShowDialog]()
	Register[DismissDialog]()
	Register[CopyToClipboard]()

	Register[LoginSucceeded]()
	Register[LoginFailed]()
	Register[Resize]()
	Register[OpenDocument]()
	Register[OpenSettings]()
}

// Register makes an intent type decodable. T must implement Type on its value receiver;
// the zero value's Type() is used as the registry key.
func Register[T Intent]() {
	var zero T
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[zero.Type()] = func() any { return new(T) }
}

// Encode converts an intent into an envelope with a fresh ID.
func Encode(in Intent) (Envelope, error) {
	env, err := encode(in)
	if err != nil {
		return Envelope{}, err
	}
	env.ID = uuid.NewString()
	return env, nil
}

// Marshal encodes an intent straight to JSON.
func Marshal(in Intent) ([]byte, error) {
	env, err := Encode(in)
	if err != nil {
		return nil, err
	}
	return json.Marshal(env)
}

// Unmarshal decodes JSON produced by Marshal.
func Unmarshal(data []byte) (Intent, Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, Envelope{}, fmt.Errorf("failed to unmarshal envelope: %w", err)
	}
	in, err := Decode(env)
	if err != nil {
		return nil, env, err
	}
	return in, env, nil
}

// Decode rebuilds the typed intent held by an envelope.
func Decode(env Envelope) (Intent, error) {
	registryMu.RLock()
	factory, ok := registry[env.Type]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownIntent, env.Type)
	}

	target := factory()
	if len(env.Payload) > 0 {
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           target,
			TagName:          "mapstructure",
			WeaklyTypedInput: true,
			DecodeHook:       nestedIntentHook,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build decoder: %w", err)
		}
		if err := decoder.Decode(env.Payload); err != nil {
			return nil, fmt.Errorf("failed to decode %s payload: %w", env.Type, err)
		}
	}

	return reflect.ValueOf(target).Elem().Interface().(Intent), nil
}

func encode(in Intent) (Envelope, error) {
	if in == nil {
		return Envelope{}, fmt.Errorf("cannot encode nil intent")
	}
	data, err := json.Marshal(in)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to marshal %s: %w", in.Type(), err)
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return Envelope{}, fmt.Errorf("intent %s must encode to a JSON object: %w", in.Type(), err)
	}
	if len(payload) == 0 {
		payload = nil
	}
	return Envelope{Type: in.Type(), Payload: payload}, nil
}

// nestedIntentHook turns nested envelope objects into typed intents while mapstructure fills
// fields declared as Intent.
func nestedIntentHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != intentType {
		return data, nil
	}
	raw, ok := data.(map[string]any)
	if !ok {
		return data, nil
	}

	env := Envelope{}
	env.Type, _ = raw["type"].(string)
	if payload, ok := raw["payload"].(map[string]any); ok {
		env.Payload = payload
	}
	return Decode(env)
}

// MarshalJSON encodes the embedded action as a nested envelope.
func (b MessageButton) MarshalJSON() ([]byte, error) {
	action, err := nested(b.Action)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Text   string    `json:"text"`
		Action *Envelope `json:"action,omitempty"`
	}{b.Text, action})
}

// MarshalJSON encodes the embedded action as a nested envelope.
func (b DialogButton) MarshalJSON() ([]byte, error) {
	action, err := nested(b.Action)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Text      string    `json:"text"`
		Action    *Envelope `json:"action,omitempty"`
		IsPrimary bool      `json:"isPrimary"`
	}{b.Text, action, b.IsPrimary})
}

func nested(in Intent) (*Envelope, error) {
	if in == nil {
		return nil, nil
	}
	env, err := encode(in)
	if err != nil {
		return nil, err
	}
	return &env, nil
}
