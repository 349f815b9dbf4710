package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the rc file looked up under the home directory.
const DefaultFileName = ".coralrc.yaml"

// schemaJSON is the schema every rc file must satisfy before it is
// applied. Unknown keys are rejected rather than ignored so typos
// surface at startup.
const schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "prompt": {"type": "string"},
    "extra_path": {"type": "array", "items": {"type": "string"}},
    "completion": {"type": "boolean"}
  }
}`

// Config holds the interpreter's startup settings.
type Config struct {
	// Prompt is printed before each read. Defaults to "$ ".
	Prompt string `yaml:"prompt"`

	// ExtraPath lists directories appended to the search path after
	// the ones from the PATH variable.
	ExtraPath []string `yaml:"extra_path"`

	// Completion enables the executable index behind tab completion.
	Completion bool `yaml:"completion"`
}

// Default returns the configuration used when no rc file exists.
func Default() Config {
	return Config{
		Prompt:     "$ ",
		Completion: true,
	}
}

// DefaultPath returns the rc file location under the home directory, or
// "" when no home directory is known.
func DefaultPath() string {
	for _, name := range []string{"HOME", "USERPROFILE"} {
		if home := os.Getenv(name); home != "" {
			return filepath.Join(home, DefaultFileName)
		}
	}
	return ""
}

// Load reads and validates the rc file at path. A missing file is not
// an error: defaults are returned. An invalid file is an error; the
// caller is expected to warn and fall back to defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := validate(data); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// validate checks the raw document against the embedded schema.
func validate(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc == nil {
		return nil
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("config.schema.json", strings.NewReader(schemaJSON)); err != nil {
		return err
	}
	schema, err := compiler.Compile("config.schema.json")
	if err != nil {
		return err
	}
	return schema.Validate(doc)
}
