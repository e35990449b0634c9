package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultPath is used when no configuration path is given.
	DefaultPath = ".speedup.yaml"

	DefaultMeshLoad = "M420 S1 ; load bed leveling mesh"
)

// Mode controls how a rule reacts to a missing line.
type Mode string

const (
	// ModeRequired fails the whole run when a lookup finds nothing.
	ModeRequired Mode = "required"
	// ModeOptional skips the rule when a lookup finds nothing.
	ModeOptional Mode = "optional"
	ModeOff      Mode = "off"
)

var ErrUnknownMode = errors.New("unknown rule mode")

// Config represents the overall configuration with a name, the replacement
// for the bed probing command and per-rule settings.
type Config struct {
	Name     string                `yaml:"name"`
	MeshLoad string                `yaml:"mesh_load,omitempty"`
	Rules    map[string]RuleConfig `yaml:"rules"`
}

type RuleConfig struct {
	Mode Mode `yaml:"mode"`
}

func Default() Config {
	return Config{
		Name:     "speedup",
		MeshLoad: DefaultMeshLoad,
		Rules:    map[string]RuleConfig{},
	}
}

// Load reads and validates the configuration at path. Unset fields keep
// their default values.
func Load(path string) (Config, error) {
	config := Default()

	f, err := os.Open(path)
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	// an empty file keeps every default
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if config.MeshLoad == "" {
		config.MeshLoad = DefaultMeshLoad
	}
	if config.Rules == nil {
		config.Rules = map[string]RuleConfig{}
	}

	return config, config.Validate()
}

// Resolve loads the configuration at path. An empty path means DefaultPath,
// which may be absent; an explicitly named file must exist.
func Resolve(path string) (Config, error) {
	if path != "" {
		return Load(path)
	}

	config, err := Load(DefaultPath)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return config, err
}

func (c Config) Validate() error {
	for name, rule := range c.Rules {
		switch rule.Mode {
		case "", ModeRequired, ModeOptional, ModeOff:
		default:
			return fmt.Errorf("rule %s: %w %q", name, ErrUnknownMode, rule.Mode)
		}
	}
	return nil
}

// ModeFor returns the configured mode of a rule, ModeRequired if unset.
func (c Config) ModeFor(rule string) Mode {
	if r, ok := c.Rules[rule]; ok && r.Mode != "" {
		return r.Mode
	}
	return ModeRequired
}

// Write stores c as YAML at path, replacing any existing file.
func Write(path string, c Config) error {
	d, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	return err
}
