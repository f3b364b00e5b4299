package domain

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// ApplyPatch returns a new revision of t with the loosely typed patch merged in.
// The patch uses the JSON field names of Tree, e.g.
//
//	{"screen": {"width": 320}, "github": {"token": "abc"}}
//
// Unknown keys are rejected. Documents touched by the patch are cloned first, so the previous
// revision (and every derivation that cached it) is left untouched.
func ApplyPatch(t *Tree, patch map[string]any) (*Tree, error) {
	next := t.next()

	if _, ok := patch["revision"]; ok {
		return nil, fmt.Errorf("%w: revision is managed by the tree", ErrInvalidPatch)
	}
	if _, ok := patch["editor"]; ok {
		if next.Editor.Active != nil {
			next.Editor.Active = next.Editor.Active.Clone()
		}
		if next.Editor.Previous != nil {
			next.Editor.Previous = next.Editor.Previous.Clone()
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           next,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build patch decoder: %w", err)
	}
	if err := decoder.Decode(patch); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPatch, err)
	}

	if err := Validate(next); err != nil {
		return nil, err
	}
	return next, nil
}
