// Package yamlutil is the single place goccy/go-yaml is imported: strict
// decoding for config files, and ordered emission for frontmatter export
// as YAML or JSON.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize bounds the bytes UnmarshalStrict accepts.
var MaxInputSize = 1 << 20

// Sentinel errors for YAML operations.
var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrKeyValueCount  = errors.New("yamlutil: keys and values differ in length")
)

// UnmarshalStrict decodes data into v and fails on fields v does not
// declare. Fields absent from data keep the values already in v.
func UnmarshalStrict(data []byte, v any) error {
	switch {
	case len(data) == 0:
		return ErrNilData
	case len(data) > MaxInputSize:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	case v == nil:
		return ErrNilDestination
	}
	return wrap(yaml.UnmarshalWithOptions(data, v, yaml.Strict()))
}

// Marshal emits v as block-style YAML.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.Marshal(v)
	return out, wrap(err)
}

// MarshalJSON emits v as JSON through the YAML encoder, so ordered
// mappings keep their key order.
func MarshalJSON(v any) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(v, yaml.JSON())
	return out, wrap(err)
}

// Ordered pairs keys with values into a mapping that marshals in key order.
func Ordered(keys []string, values []any) (yaml.MapSlice, error) {
	if len(keys) != len(values) {
		return nil, fmt.Errorf("%w: %d keys, %d values", ErrKeyValueCount, len(keys), len(values))
	}
	out := make(yaml.MapSlice, 0, len(keys))
	for i, key := range keys {
		out = append(out, yaml.MapItem{Key: key, Value: values[i]})
	}
	return out, nil
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("yamlutil: %w", err)
}
