package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// ToTOML serializes the configuration to TOML format.
func (c *Config) ToTOML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	encoder.Indent = ""

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	return buf.Bytes(), nil
}

// ToTOMLWithHeader serializes the configuration with a header comment.
func (c *Config) ToTOMLWithHeader(header string) ([]byte, error) {
	tomlBytes, err := c.ToTOML()
	if err != nil {
		return nil, err
	}

	return withHeader(header, tomlBytes), nil
}

// FromTOML parses a configuration from TOML bytes. Unknown keys are
// rejected, matching FromYAML.
func FromTOML(data []byte) (*Config, error) {
	cfg := &Config{}

	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return nil, fmt.Errorf("parse toml: unknown keys: %s", strings.Join(keys, ", "))
	}

	return cfg, nil
}
