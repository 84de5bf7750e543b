package domain

import (
	"fmt"
	"rice-lab/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateParams checks the loose bounds the classifier itself relies on.
func ValidateParams(p TrainingParams) error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidParams, err)
	}
	return nil
}
