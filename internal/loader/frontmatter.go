package loader

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	yamlDelimiter = "---"
	tomlDelimiter = "+++"
)

var errMissingClose = errors.New("missing closing delimiter")

// SplitFrontMatter separates a leading metadata block from the body. A block
// fenced by "---" lines is YAML, one fenced by "+++" lines is TOML. Without
// a block the metadata is empty and the whole input is the body. Blank lines
// directly after the closing fence are not part of the body.
func SplitFrontMatter(src []byte) (map[string]any, []byte, error) {
	src = bytes.TrimPrefix(src, []byte("\xef\xbb\xbf"))

	first, rest, _ := cutLine(src)
	delim := string(bytes.TrimRight(first, " \t"))
	if delim != yamlDelimiter && delim != tomlDelimiter {
		return map[string]any{}, src, nil
	}

	block, body, err := cutBlock(rest, delim)
	if err != nil {
		return nil, nil, fmt.Errorf("parse front matter: %w", err)
	}

	meta := map[string]any{}
	if len(bytes.TrimSpace(block)) > 0 {
		switch delim {
		case yamlDelimiter:
			err = yaml.Unmarshal(block, &meta)
		case tomlDelimiter:
			err = toml.Unmarshal(block, &meta)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("parse front matter: %w", err)
		}
		if meta == nil {
			meta = map[string]any{}
		}
	}

	return meta, trimLeadingBlankLines(body), nil
}

// cutBlock returns the lines before the closing delimiter and everything
// after it.
func cutBlock(src []byte, delim string) ([]byte, []byte, error) {
	var block []byte
	rest := src
	for len(rest) > 0 {
		line, next, _ := cutLine(rest)
		if string(bytes.TrimRight(line, " \t")) == delim {
			return block, next, nil
		}
		block = src[:len(src)-len(next)]
		rest = next
	}
	return nil, nil, errMissingClose
}

// cutLine splits off the first line, dropping its terminator.
func cutLine(src []byte) (line, rest []byte, found bool) {
	line, rest, found = bytes.Cut(src, []byte("\n"))
	return bytes.TrimSuffix(line, []byte("\r")), rest, found
}

func trimLeadingBlankLines(src []byte) []byte {
	for len(src) > 0 {
		line, rest, found := cutLine(src)
		if len(bytes.TrimSpace(line)) > 0 || !found {
			return src
		}
		src = rest
	}
	return src
}
