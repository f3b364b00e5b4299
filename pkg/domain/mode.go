package domain

import (
	"fmt"
)

// Mode selects which toolbar variant is shown. It is derived from the active document
// and never stored.
type Mode int

const (
	// modeUnset is the zero value; it is never produced by ModeOf and is rejected by MatchMode.
	modeUnset Mode = iota
	ModeNormal
	ModeSettings
	ModeNullDocument
)

var modeNames = map[Mode]string{
	ModeNormal:       "normal",
	ModeSettings:     "settings",
	ModeNullDocument: "null-document",
}

// ModeOf maps a document identifier to its mode. It is total: every identifier has a mode.
func ModeOf(documentID string) Mode {
	switch documentID {
	case NullDocumentID:
		return ModeNullDocument
	case SettingsDocumentID:
		return ModeSettings
	default:
		return ModeNormal
	}
}

// ParseMode converts the textual form of a mode back into a Mode.
// It is the only place where raw values enter the enumeration.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return modeUnset, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Valid reports whether m is one of the declared modes.
func (m Mode) Valid() bool {
	_, ok := modeNames[m]
	return ok
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, &InvalidModeError{Mode: m}
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MatchMode runs the branch that belongs to m. Every variant needs its own branch, so adding
// a mode breaks every call site at compile time instead of falling through a default.
// A value outside the enumeration is an internal-consistency fault and panics with
// *InvalidModeError.
func MatchMode[T any](m Mode, normal, settings, nullDocument func() T) T {
	switch m {
	case ModeNormal:
		return normal()
	case ModeSettings:
		return settings()
	case ModeNullDocument:
		return nullDocument()
	}
	panic(&InvalidModeError{Mode: m})
}
