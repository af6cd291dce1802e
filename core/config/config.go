// Package config holds the on-disk configuration of the shell, stored in a
// single directory (~/.picobox by default).
package config

import (
	_ "embed"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"sigs.k8s.io/yaml"
)

//go:embed default/config.yaml
var defaultConfigData []byte

const (
	// ConfigurationName is the file name of the config inside the directory.
	ConfigurationName = "config.yaml"
	// PrivateKeyName is the host key used by serve mode.
	PrivateKeyName = "private_key"
	// HistoryName is the interactive shell history file.
	HistoryName = "history"
	// PackagesDirName holds unpacked packages.
	PackagesDirName = "packages"
	// BinDirName holds links to installed package binaries.
	BinDirName = "bin"
	// PackageDBName records installed packages.
	PackageDBName = "pkgdb.json"
)

type Configuration struct {
	configurationDir string

	Prompt string `json:"prompt"`

	SSH SSH `json:"ssh"`
	Pkg Pkg `json:"pkg"`
	AI  AI  `json:"ai"`
}

type SSH struct {
	Port             int      `json:"port" validate:"gte=0,lte=65535"`
	Motd             string   `json:"motd"`
	Passwords        []string `json:"passwords" validate:"unique"`
	AllowAnyPassword bool     `json:"allow_any_password"`
}

type Pkg struct {
	// Repository is prepended to bare package names given to pkg install.
	Repository string `json:"repository" validate:"omitempty,url"`
	// RateLimitKBps throttles package downloads, 0 means unlimited.
	RateLimitKBps int `json:"rate_limit_kbps" validate:"gte=0"`
}

type AI struct {
	Endpoint string `json:"endpoint" validate:"omitempty,url"`
	Model    string `json:"model"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// Dir returns the directory the configuration was loaded from.
func (c *Configuration) Dir() string {
	return c.configurationDir
}

// HostKeyPath returns the path of the SSH host key.
func (c *Configuration) HostKeyPath() string {
	return filepath.Join(c.configurationDir, PrivateKeyName)
}

// HistoryPath returns the path of the shell history file.
func (c *Configuration) HistoryPath() string {
	return filepath.Join(c.configurationDir, HistoryName)
}

// PackagesDir returns the directory unpacked packages live in.
func (c *Configuration) PackagesDir() string {
	return filepath.Join(c.configurationDir, PackagesDirName)
}

// BinDir returns the directory installed package binaries are linked into.
func (c *Configuration) BinDir() string {
	return filepath.Join(c.configurationDir, BinDirName)
}

// PackageDBPath returns the path of the installed package database.
func (c *Configuration) PackageDBPath() string {
	return filepath.Join(c.configurationDir, PackageDBName)
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
