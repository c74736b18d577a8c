// Package yamlutil decodes and encodes configuration YAML through
// goccy/go-yaml, with an input size limit and optional strict key checks.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// DefaultMaxSize is the input limit of a zero Decoder (1MB).
const DefaultMaxSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// Decoder holds decoding limits. The zero value accepts unknown keys and
// inputs up to DefaultMaxSize.
type Decoder struct {
	// MaxSize limits input length in bytes. Zero means DefaultMaxSize.
	MaxSize int
	// Strict rejects keys with no matching struct field.
	Strict bool
}

// Decode parses data into v.
func (d Decoder) Decode(data []byte, v any) error {
	if err := d.validate(data, v); err != nil {
		return err
	}

	var opts []yaml.DecodeOption
	if d.Strict {
		opts = append(opts, yaml.Strict())
	}
	if err := yaml.UnmarshalWithOptions(data, v, opts...); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

func (d Decoder) validate(data []byte, v any) error {
	maxSize := d.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > maxSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), maxSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// UnmarshalStrict decodes data with a default-limit strict Decoder.
func UnmarshalStrict(data []byte, v any) error {
	return Decoder{Strict: true}.Decode(data, v)
}

// Marshal encodes v as YAML.
func Marshal(v any) ([]byte, error) {
	result, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return result, nil
}
