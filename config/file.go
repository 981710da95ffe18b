// Package config reads .captrans.yaml / .captrans.toml project files.
//
// The project file fixes the language pair, the dictionary location and the
// machine-translation provider for every run started in its directory.
// Command line flags override file values; environment variables (optionally
// from a .env file) override both where noted.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Schema
// ---------------------------------------------------------------------------

// File is the project file structure.
type File struct {
	// BaseLanguage is the source language id or tag ("1033", "en-US").
	BaseLanguage string `yaml:"base_language,omitempty" toml:"base_language,omitempty"`
	// WorkLanguage is the target language id or tag ("1031", "de-DE").
	WorkLanguage string `yaml:"work_language,omitempty" toml:"work_language,omitempty"`
	// Dictionary is the translation memory file or the directory holding it.
	Dictionary string `yaml:"dictionary,omitempty" toml:"dictionary,omitempty"`
	// Provider configures machine translation. An empty ID disables it.
	Provider Provider `yaml:"provider,omitempty" toml:"provider,omitempty"`
	// Encoding is the IANA name of the export file encoding (default "ibm850").
	Encoding string `yaml:"encoding,omitempty" toml:"encoding,omitempty"`
	// Strict rejects patterns that match more than one export line.
	Strict bool `yaml:"strict,omitempty" toml:"strict,omitempty"`
	// Review also offers captions that already carry a work-language value.
	Review bool `yaml:"review,omitempty" toml:"review,omitempty"`
	// LogFile receives the diagnostic log; empty logs warnings to stderr.
	LogFile string `yaml:"log_file,omitempty" toml:"log_file,omitempty"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty" toml:"log_level,omitempty"`

	path string
}

// Provider selects and tunes the machine-translation service.
type Provider struct {
	ID      string `yaml:"id,omitempty" toml:"id,omitempty"`
	Model   string `yaml:"model,omitempty" toml:"model,omitempty"`
	BaseURL string `yaml:"base_url,omitempty" toml:"base_url,omitempty"`
	Proxy   string `yaml:"proxy,omitempty" toml:"proxy,omitempty"`
	// Timeout is a Go duration string ("30s").
	Timeout string `yaml:"timeout,omitempty" toml:"timeout,omitempty"`
}

// TimeoutDuration parses Timeout; zero means the provider default.
func (p Provider) TimeoutDuration() (time.Duration, error) {
	if p.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(p.Timeout)
	if err != nil {
		return 0, fmt.Errorf("provider.timeout: %w", err)
	}
	return d, nil
}

// DefaultEncoding is the code page C/SIDE uses for text exports.
const DefaultEncoding = "ibm850"

// FileNames lists the accepted project file names in lookup order.
var FileNames = []string{".captrans.yaml", ".captrans.yml", ".captrans.toml"}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load reads and validates the project file in dir. Returns nil when no
// project file exists.
func Load(dir string) (*File, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return Parse(path, data)
	}
	return nil, nil
}

// Parse decodes project file content; the format follows the extension of
// path.
func Parse(path string, data []byte) (*File, error) {
	var f File
	var err error
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &f)
	} else {
		err = yaml.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	f.path = path

	if f.Encoding == "" {
		f.Encoding = DefaultEncoding
	}
	if f.LogLevel == "" {
		f.LogLevel = "info"
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &f, nil
}

func (f *File) validate() error {
	var errs []error
	if f.BaseLanguage != "" {
		if _, err := ParseLanguage(f.BaseLanguage); err != nil {
			errs = append(errs, fmt.Errorf("base_language: %w", err))
		}
	}
	if f.WorkLanguage != "" {
		if _, err := ParseLanguage(f.WorkLanguage); err != nil {
			errs = append(errs, fmt.Errorf("work_language: %w", err))
		}
	}
	if _, err := f.Provider.TimeoutDuration(); err != nil {
		errs = append(errs, err)
	}
	if !logLevels[f.LogLevel] {
		errs = append(errs, fmt.Errorf("log_level: unknown level %q (valid: debug, info, warn, error)", f.LogLevel))
	}
	return errors.Join(errs...)
}

// Path returns the file the configuration was read from.
func (f *File) Path() string {
	return f.path
}

// ---------------------------------------------------------------------------
// Environment
// ---------------------------------------------------------------------------

// Environment variables read by ApplyEnv.
const (
	EnvProvider     = "CAPTRANS_PROVIDER"
	EnvDictionary   = "CAPTRANS_DICTIONARY"
	EnvBaseLanguage = "CAPTRANS_BASE_LANGUAGE"
	EnvWorkLanguage = "CAPTRANS_WORK_LANGUAGE"
)

// LoadDotEnv loads dir/.env into the process environment without
// overriding variables that are already set. A missing file is ignored.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides file values with CAPTRANS_* environment variables.
func (f *File) ApplyEnv() {
	if v := os.Getenv(EnvProvider); v != "" {
		f.Provider.ID = v
	}
	if v := os.Getenv(EnvDictionary); v != "" {
		f.Dictionary = v
	}
	if v := os.Getenv(EnvBaseLanguage); v != "" {
		f.BaseLanguage = v
	}
	if v := os.Getenv(EnvWorkLanguage); v != "" {
		f.WorkLanguage = v
	}
}
