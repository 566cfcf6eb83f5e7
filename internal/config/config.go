// Package config loads algc.yml.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the configuration file looked up by Find.
const FileName = "algc.yml"

// Languages lists the accepted values of the language key.
var Languages = []string{"en", "ru"}

// Config is the validated contents of algc.yml.
type Config struct {
	// Path is the absolute path of the file, empty for the defaults.
	Path string

	// StrictVariables rejects variables not bound by the clause pattern.
	StrictVariables bool
	// Language selects the message catalog.
	Language string
	// Color enables colored diagnostics.
	Color bool
	// Snippets prints the offending source line under each diagnostic.
	Snippets bool
	// Files are checked when no files are given on the command line. Relative
	// entries are resolved against the directory of the config file.
	Files []string
}

type configFile struct {
	StrictVariables *bool    `yaml:"strict_variables"`
	Language        *string  `yaml:"language"`
	Color           *bool    `yaml:"color"`
	Snippets        *bool    `yaml:"snippets"`
	Files           []string `yaml:"files"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Language: "en",
		Snippets: true,
	}
}

// ValidationError aggregates configuration validation failures.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed")
	if e.Path != "" {
		b.WriteString(" for ")
		b.WriteString(e.Path)
	}
	b.WriteString(":")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Load parses the configuration file at path. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	return decode(file, absPath)
}

// Parse reads a configuration from src. Relative files are resolved against
// the directory of path.
func Parse(src string, path string) (*Config, error) {
	return decode(strings.NewReader(src), path)
}

func decode(r io.Reader, path string) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg := raw.toConfig(path)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (raw configFile) toConfig(path string) *Config {
	cfg := Default()
	cfg.Path = path
	if raw.StrictVariables != nil {
		cfg.StrictVariables = *raw.StrictVariables
	}
	if raw.Language != nil {
		cfg.Language = strings.TrimSpace(*raw.Language)
	}
	if raw.Color != nil {
		cfg.Color = *raw.Color
	}
	if raw.Snippets != nil {
		cfg.Snippets = *raw.Snippets
	}

	dir := filepath.Dir(path)
	for _, f := range raw.Files {
		f = strings.TrimSpace(f)
		if f != "" && path != "" && !filepath.IsAbs(f) {
			f = filepath.Join(dir, f)
		}
		cfg.Files = append(cfg.Files, f)
	}
	return cfg
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	errs := ValidationError{Path: c.Path}
	if !slices.Contains(Languages, c.Language) {
		errs.Issues = append(errs.Issues, fmt.Sprintf("language %q is not supported (use %s)", c.Language, strings.Join(Languages, " or ")))
	}
	for i, f := range c.Files {
		if f == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("files[%d] must be a non-empty path", i))
			continue
		}
		if first := slices.Index(c.Files, f); first < i {
			errs.Issues = append(errs.Issues, fmt.Sprintf("files[%d] duplicates files[%d] (%s)", i, first, f))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// Find returns the path of algc.yml in dir, if there is one.
func Find(dir string) (string, bool) {
	path := filepath.Join(dir, FileName)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

// LoadDir loads algc.yml from dir, or returns the defaults when dir has none.
func LoadDir(dir string) (*Config, error) {
	path, ok := Find(dir)
	if !ok {
		return Default(), nil
	}
	return Load(path)
}
