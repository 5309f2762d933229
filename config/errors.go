package config

import "github.com/pkg/errors"

// NewValidationError wraps err with the dotted path of the invalid field.
func NewValidationError(path string, err error) error {
	return errors.Wrapf(err, "error validating %q", path)
}

// NewFieldRequiredError is used when a required field is missing.
func NewFieldRequiredError(path, field string) error {
	return NewValidationError(path, errors.Errorf("%q is required", field))
}

func joinPath(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}
