package config

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"
)

// DefaultDir returns the default configuration directory, ~/.picobox.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".picobox"), nil
}

// Load loads the configuration from the directory.
func Load(path string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	configContents, err := ioutil.ReadFile(filepath.Join(path, ConfigurationName))
	if err != nil {
		return nil, err
	}
	var out Configuration
	if err := yaml.UnmarshalStrict(configContents, &out); err != nil {
		return nil, err
	}
	out.configurationDir = path

	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoadOrDefault loads the configuration from the default directory, falling
// back to the built-in defaults when no config has been initialized.
func LoadOrDefault(path string) (*Configuration, error) {
	if path == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		path = dir
	}

	cfg, err := Load(path)
	if os.IsNotExist(err) {
		cfg = defaultConfig()
		cfg.configurationDir = path
		return cfg, nil
	}
	return cfg, err
}
