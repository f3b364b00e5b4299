package domain

// Reserved document identifiers. They never name a real document; they select a toolbar mode.
const (
	// NullDocumentID is active while no document is loaded.
	NullDocumentID = "NULL_SOLUTION_ID"
	// SettingsDocumentID is active while the settings view is open.
	SettingsDocumentID = "SETTINGS_SOLUTION_ID"
)

// Origin describes where a document was imported from.
type Origin string

const (
	OriginNone  Origin = ""
	OriginGist  Origin = "gist"
	OriginOther Origin = "other"
)

// Source is the origin descriptor of a document.
type Source struct {
	Origin Origin `json:"origin" yaml:"origin" mapstructure:"origin" validate:"omitempty,oneof=gist other"`
	ID     string `json:"id,omitempty" yaml:"id,omitempty" mapstructure:"id"`
}

// DocumentOptions holds the user-controlled flags of a document.
type DocumentOptions struct {
	IsUntrusted bool `json:"isUntrusted" yaml:"isUntrusted" mapstructure:"isUntrusted"`
}

// Document is the active editor document (a snippet).
// Documents are treated as immutable values: reducers replace them, never edit them in place.
type Document struct {
	ID                string          `json:"id" yaml:"id" mapstructure:"id" validate:"required"`
	Name              string          `json:"name" yaml:"name" mapstructure:"name"`
	Host              string          `json:"host,omitempty" yaml:"host,omitempty" mapstructure:"host"`
	Source            *Source         `json:"source,omitempty" yaml:"source,omitempty" mapstructure:"source"`
	Options           DocumentOptions `json:"options" yaml:"options" mapstructure:"options"`
	IsCustomFunctions bool            `json:"isCustomFunctions,omitempty" yaml:"isCustomFunctions,omitempty" mapstructure:"isCustomFunctions"`
}

var (
	nullDocument     = &Document{ID: NullDocumentID}
	settingsDocument = &Document{ID: SettingsDocumentID, Name: "Settings"}
)

// NullDocument returns the shared sentinel document used when nothing is loaded.
// The same pointer is returned on every call so identity comparisons stay stable.
func NullDocument() *Document { return nullDocument }

// SettingsDocument returns the shared sentinel document of the settings view.
func SettingsDocument() *Document { return settingsDocument }

// IsTrusted reports whether the user has marked the document as safe to run.
func (d *Document) IsTrusted() bool {
	return !d.Options.IsUntrusted
}

// IsGist reports whether the document was imported from a gist.
func (d *Document) IsGist() bool {
	return d.Source != nil && d.Source.Origin == OriginGist
}

// Clone returns a copy that shares nothing mutable with d.
func (d *Document) Clone() *Document {
	c := *d
	if d.Source != nil {
		src := *d.Source
		c.Source = &src
	}
	return &c
}

// WithOptions returns a copy of the document carrying the given options.
func (d *Document) WithOptions(opts DocumentOptions) *Document {
	c := d.Clone()
	c.Options = opts
	return c
}

// Equal reports whether d and other describe the same document by value. Stores that decode
// a fresh Document on every load rely on it to keep derivations warm.
func (d *Document) Equal(other *Document) bool {
	if d == other {
		return true
	}
	if d == nil || other == nil {
		return false
	}
	if d.ID != other.ID || d.Name != other.Name || d.Host != other.Host ||
		d.Options != other.Options || d.IsCustomFunctions != other.IsCustomFunctions {
		return false
	}
	if d.Source == nil || other.Source == nil {
		return d.Source == other.Source
	}
	return *d.Source == *other.Source
}
