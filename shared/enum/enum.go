// Package enum decodes string-backed enums at the database boundary.
package enum

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

var ErrUnknownValue = errors.New("unknown enum value")

type Enum interface {
	~string
	IsValid() bool
}

// Scan decodes src into dst, rejecting values outside the enum.
func Scan[T Enum](dst *T, src any) error {
	var raw string

	switch value := src.(type) {
	case string:
		raw = value
	case []byte:
		raw = string(value)
	case nil:
		return fmt.Errorf("%w: NULL for %T", ErrUnknownValue, *dst)
	default:
		return fmt.Errorf("%w: unsupported type %T for %T", ErrUnknownValue, src, *dst)
	}

	candidate := T(raw)
	if !candidate.IsValid() {
		return fmt.Errorf("%w: %q for %T", ErrUnknownValue, raw, *dst)
	}

	*dst = candidate

	return nil
}

func Value[T Enum](value T) (driver.Value, error) {
	if !value.IsValid() {
		return nil, fmt.Errorf("%w: %q for %T", ErrUnknownValue, string(value), value)
	}

	return string(value), nil
}
