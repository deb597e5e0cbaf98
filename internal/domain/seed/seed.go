// Package seed loads content records from YAML, TOML or JSON files.
//
// A file holds either a bare list of records or a document with a
// "records" list. TOML only supports the document form ([[records]]).
// A source may be a file, a directory, a ** glob or an http(s) URL.
// Directories are walked in lexical order and files with other
// extensions are skipped. Files ending in .gz or .zst are decompressed.
package seed

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/Undanomi/OSINT-GAME-sub000/internal/shared/types"
)

// Format is a seed file encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

var (
	ErrMissingAddress    = errors.New("record has no address")
	ErrUnsupportedFormat = errors.New("unsupported seed format")
	ErrNotUTF8           = errors.New("seed is not UTF-8")
)

type document struct {
	Records []types.ContentRecord `json:"records" yaml:"records" toml:"records"`
}

// FormatFor picks a format from a file extension, ignoring a trailing
// compression extension
func FormatFor(path string) (Format, bool) {
	path, _ = splitCompression(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	case ".json":
		return FormatJSON, true
	}
	return "", false
}

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatYAML, FormatTOML, FormatJSON:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
}

// Decode parses records from data
func Decode(format Format, data []byte) ([]types.ContentRecord, error) {
	var doc document
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err == nil && doc.Records != nil {
			return doc.Records, nil
		}
		var list []types.ContentRecord
		if err := yaml.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("YAML parse error: %w", err)
		}
		return list, nil

	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("TOML parse error: %w", err)
		}
		return doc.Records, nil

	case FormatJSON:
		trimmed := strings.TrimSpace(string(data))
		if strings.HasPrefix(trimmed, "[") {
			var list []types.ContentRecord
			if err := sonic.Unmarshal(data, &list); err != nil {
				return nil, fmt.Errorf("JSON parse error: %w", err)
			}
			return list, nil
		}
		if err := sonic.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("JSON parse error: %w", err)
		}
		return doc.Records, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

// Encode writes records as a "records" document
func Encode(format Format, records []types.ContentRecord) ([]byte, error) {
	doc := document{Records: records}
	switch format {
	case FormatYAML:
		return yaml.Marshal(doc)
	case FormatTOML:
		return toml.Marshal(doc)
	case FormatJSON:
		return sonic.MarshalIndent(doc, "", "  ")
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}
