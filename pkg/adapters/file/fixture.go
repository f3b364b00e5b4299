package file

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/commandbar/pkg/domain"
	"gopkg.in/yaml.v3"
)

// LoadTree reads a state fixture from path. YAML and JSON are both accepted.
func LoadTree(path string) (*domain.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	tree, err := DecodeTree(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	return tree, nil
}

// DecodeTree parses a YAML (or JSON) tree and validates it. Unknown fields are rejected so
// typos in fixtures do not silently fall back to zero values.
func DecodeTree(r io.Reader) (*domain.Tree, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var tree domain.Tree
	if err := dec.Decode(&tree); err != nil {
		if err == io.EOF {
			return domain.NewTree(), nil
		}
		return nil, fmt.Errorf("failed to decode tree: %w", err)
	}
	if err := domain.Validate(&tree); err != nil {
		return nil, err
	}
	return &tree, nil
}

// EncodeTree writes tree as YAML.
func EncodeTree(w io.Writer, tree *domain.Tree) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tree); err != nil {
		return fmt.Errorf("failed to encode tree: %w", err)
	}
	return enc.Close()
}
