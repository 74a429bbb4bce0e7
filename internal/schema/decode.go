package schema

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Decode converts a parsed value into T. Struct fields are matched by their
// json tag, so one struct definition serves both the loaders and the
// validator output.
func Decode[T any](value any) (T, error) {
	var out T

	if v, ok := value.(T); ok {
		return v, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           &out,
		WeaklyTypedInput: false,
		Squash:           true,
	})
	if err != nil {
		return out, fmt.Errorf("creating decoder: %w", err)
	}

	if err := decoder.Decode(value); err != nil {
		return out, fmt.Errorf("decoding %T: %w", out, err)
	}

	return out, nil
}

// As validates raw against s and decodes the result into T.
func As[T any](s Schema, raw any) (T, error) {
	parsed, err := Validate(s, raw)
	if err != nil {
		var zero T
		return zero, err
	}
	return Decode[T](parsed)
}
