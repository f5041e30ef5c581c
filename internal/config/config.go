// Package config loads the application configuration: a TOML file under
// etc/, optionally overlaid by a JSON document from the environment.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// EnvConfigJSON is the environment variable holding a JSON config override.
// Fields set there win over the file values.
const EnvConfigJSON = "GIVEHUB_ADMIN_CONFIG_JSON"

// ReadConfig loads main.toml from the given directory (default ./etc/),
// applies the env override and validates the result.
func ReadConfig(path string) (Config, error) {
	var c Config

	if path == "" {
		path = "./etc/"
	}

	if _, err := toml.DecodeFile(filepath.Join(path, "main.toml"), &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	if raw := os.Getenv(EnvConfigJSON); raw != "" {
		if err := applyEnvOverride(&c, raw); err != nil {
			return c, err
		}
	}

	if err := validate(&c); err != nil {
		return c, err
	}

	return c, nil
}

// applyEnvOverride merges a JSON config fragment over the file config.
func applyEnvOverride(c *Config, raw string) error {
	var override Config

	if err := json.Unmarshal([]byte(raw), &override); err != nil {
		return errors.Wrap(err, "failed to decode env config override")
	}

	return errors.Wrap(
		mergo.Merge(c, override, mergo.WithOverride),
		"failed to merge env config override",
	)
}

// DumpConfig renders the effective config as TOML.
func DumpConfig(c Config) (string, error) {
	var buf bytes.Buffer

	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return "", errors.Wrap(err, "failed to encode config as toml")
	}

	return buf.String(), nil
}

// DumpConfigJSON renders the effective config as indented JSON.
func DumpConfigJSON(c Config) (string, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")

	if err := enc.Encode(c); err != nil {
		return "", errors.Wrap(err, "failed to encode config as json")
	}

	return buf.String(), nil
}

// validate checks the settings the daemon can not run without and fills
// defaults for the rest.
func validate(c *Config) error {
	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, "invalid config")
	}

	// share links need a public base URL to compose against
	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, "invalid config")
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = 5
	}

	return nil
}
