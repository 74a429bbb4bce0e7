package loader

import (
	"context"
	"encoding/json"

	"github.com/pelletier/go-toml/v2"
	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"

	rerrors "github.com/elmarvr/resume-v2/internal/errors"
)

// JSON decodes the file as a JSON literal.
func JSON(ctx context.Context, f File) (any, error) {
	return decodeFile(ctx, f, func(data []byte, v *any) error {
		return json.Unmarshal(data, v)
	})
}

// JSONC decodes JSON with comments and trailing commas.
func JSONC(ctx context.Context, f File) (any, error) {
	return decodeFile(ctx, f, func(data []byte, v *any) error {
		std, err := hujson.Standardize(data)
		if err != nil {
			return err
		}
		return json.Unmarshal(std, v)
	})
}

// YAML decodes the file as a YAML document.
func YAML(ctx context.Context, f File) (any, error) {
	return decodeFile(ctx, f, func(data []byte, v *any) error {
		return yaml.Unmarshal(data, v)
	})
}

// TOML decodes the file as a TOML document. The result is always a table.
func TOML(ctx context.Context, f File) (any, error) {
	return decodeFile(ctx, f, func(data []byte, v *any) error {
		table := map[string]any{}
		if err := toml.Unmarshal(data, &table); err != nil {
			return err
		}
		*v = table
		return nil
	})
}

func decodeFile(ctx context.Context, f File, decode func([]byte, *any) error) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := f.Read()
	if err != nil {
		return nil, err
	}

	var v any
	if err := decode(data, &v); err != nil {
		return nil, rerrors.Wrap(err, rerrors.ErrCodeDecodeFailed, "cannot decode "+f.Ext()+" file").WithFile(f.Name)
	}

	return v, nil
}
