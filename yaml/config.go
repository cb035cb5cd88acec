// Package yaml loads configuration from YAML files.
package yaml

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/fwojciec/autoextract"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML config file and layers it over the defaults.
func Load(path string) (*autoextract.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML config bytes over the defaults. Unknown keys are
// rejected so typos fail loudly instead of silently using a default.
func Parse(data []byte) (*autoextract.Config, error) {
	config := autoextract.DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return nil, autoextract.Errorf(autoextract.EINVALID, "invalid config: %s", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}
