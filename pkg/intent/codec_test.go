package intent

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/commandbar/pkg/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_AssignsID(t *testing.T) {
	a, err := Encode(RequestLogin{})
	require.NoError(t, err)
	b, err := Encode(RequestLogin{})
	require.NoError(t, err)

	_, err = uuid.Parse(a.ID)
	assert.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, TypeRequestLogin, a.Type)
	assert.Nil(t, a.Payload)
}

func TestEncode_NestedActionsBecomeEnvelopes(t *testing.T) {
	doc := &domain.Document{ID: "abc", Name: "Demo", Options: domain.DocumentOptions{IsUntrusted: true}}
	msg := ShowMessage{
		Style: MessageError,
		Text:  "You must trust the snippet before you can run it.",
		Button: &MessageButton{
			Text:   "Trust",
			Action: UpdateDocumentOptions{Document: doc},
		},
	}

	env, err := Encode(msg)
	require.NoError(t, err)

	data, err := json.Marshal(env.Payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"style": "error",
		"text": "You must trust the snippet before you can run it.",
		"button": {
			"text": "Trust",
			"action": {
				"type": "solutions.update_options",
				"payload": {
					"document": {"id": "abc", "name": "Demo", "options": {"isUntrusted": true}},
					"options": {"isUntrusted": false}
				}
			}
		}
	}`, string(data))
}

func TestDecode_RestoresTypedIntents(t *testing.T) {
	doc := &domain.Document{ID: "abc", Name: "Demo"}
	tests := []struct {
		name string
		in   Intent
	}{
		{"no payload", OpenBackstage{}},
		{"navigate", Navigate{Route: "./#/custom-functions?backButton=true"}},
		{"gist create", RequestGistCreate{DocumentID: "abc", IsPublic: true}},
		{"remove", RemoveDocument{Document: doc}},
		{"message with button", ShowMessage{
			Style:  MessageError,
			Text:   "trust it",
			Button: &MessageButton{Text: "Trust", Action: UpdateDocumentOptions{Document: doc}},
		}},
		{"dialog", ShowDialog{
			Title:   "Please sign in to GitHub",
			SubText: "sign in",
			Buttons: []DialogButton{
				{Text: "Sign in", Action: RequestLogin{}, IsPrimary: true},
				{Text: "Cancel", Action: DismissDialog{}},
			},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Marshal(tt.in)
			require.NoError(t, err)

			got, env, err := Unmarshal(data)
			require.NoError(t, err)
			assert.Equal(t, tt.in.Type(), env.Type)
			assert.NotEmpty(t, env.ID)
			assert.Equal(t, tt.in, got)
		})
	}
}

func TestDecode_UnknownType(t *testing.T) {
	_, err := Decode(Envelope{Type: "nope"})
	assert.ErrorIs(t, err, domain.ErrUnknownIntent)

	_, _, err = Unmarshal([]byte(`{"type":`))
	assert.Error(t, err)
}

func TestDecode_NestedUnknownType(t *testing.T) {
	_, err := Decode(Envelope{
		Type: TypeShowDialog,
		Payload: map[string]any{
			"title":   "x",
			"buttons": []any{map[string]any{"text": "Go", "action": map[string]any{"type": "nope"}}},
		},
	})
	assert.Error(t, err)
}

type echo struct {
	Value string `json:"value" mapstructure:"value"`
}

func (echo) Type() string { return "test.echo" }

func TestRegister_CustomIntent(t *testing.T) {
	Register[echo]()

	data, err := Marshal(echo{Value: "hi"})
	require.NoError(t, err)
	got, _, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, echo{Value: "hi"}, got)
}

func TestEncode_Nil(t *testing.T) {
	_, err := Encode(nil)
	assert.Error(t, err)
}
