package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cbodonnell/flipmatch/pkg/game/types"
	"github.com/cbodonnell/flipmatch/pkg/log"
)

// Catalog is the on-disk token catalogue.
type Catalog struct {
	Tokens []types.Token `json:"tokens" yaml:"tokens"`
}

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported catalog extension %q", filepath.Ext(path))
	}
}

// Load reads a JSON or YAML catalogue file.
func Load(path string) ([]types.Token, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %v", err)
	}
	return Parse(b, format)
}

// Parse decodes a catalogue and checks that it can deal a deck.
func Parse(data []byte, format Format) ([]types.Token, error) {
	c := Catalog{}
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &c)
	case FormatYAML:
		err = yaml.Unmarshal(data, &c)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s catalog: %v", format, err)
	}
	if err := Validate(c.Tokens); err != nil {
		return nil, err
	}
	return c.Tokens, nil
}

// Validate rejects an empty pool. Duplicate IDs are allowed but logged,
// since duplicated tokens pair with each other.
func Validate(tokens []types.Token) error {
	if len(tokens) == 0 {
		return fmt.Errorf("%w: catalog has no tokens", types.ErrInvalidConfiguration)
	}
	seen := make(map[int]struct{}, len(tokens))
	for _, token := range tokens {
		if _, ok := seen[token.ID]; ok {
			log.Warn("Catalog token id %d appears more than once", token.ID)
		}
		seen[token.ID] = struct{}{}
	}
	return nil
}

// Default returns n tokens with IDs 1..n and visual keys token-01, token-02...
func Default(n int) []types.Token {
	tokens := make([]types.Token, n)
	for i := range tokens {
		tokens[i] = types.Token{ID: i + 1, VisualKey: fmt.Sprintf("token-%02d", i+1)}
	}
	return tokens
}
