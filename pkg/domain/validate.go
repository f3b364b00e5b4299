package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the structural constraints of a tree (document IDs present, non-negative
// width, known origins). It is applied where trees enter the system: fixtures, patches and
// stores.
func Validate(t *Tree) error {
	if t == nil {
		return fmt.Errorf("%w: tree is nil", ErrInvalidTree)
	}
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTree, err)
	}
	return nil
}
