// Package config loads the project settings a scan runs with.
//
// Settings are layered: datadag.yaml (found by searching upward from the
// working directory), then a .env file in the project root, then DATADAG_*
// environment variables. Command-line flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/LegacyCodeHQ/datadag/depgraph/dialect"
	"github.com/LegacyCodeHQ/datadag/depgraph/registry"
	"github.com/LegacyCodeHQ/datadag/depgraph/scanner"
)

// FileName is the project configuration file searched for.
const FileName = "datadag.yaml"

// DotEnvFile is read from the project root when present.
const DotEnvFile = ".env"

const envPrefix = "DATADAG_"

var (
	// ErrUnknownDialect is returned when extensions names a dialect that does not exist.
	ErrUnknownDialect = registry.ErrUnknownDialect
	// ErrUnknownKeyword is returned when a manual entry uses an unknown directive kind.
	ErrUnknownKeyword = errors.New("unknown directive keyword")
)

// Config holds the project settings.
type Config struct {
	ProjectRoot    string `yaml:"project_root"`
	CodePathPrefix string `yaml:"code_path_prefix"`
	DataPathPrefix string `yaml:"data_path_prefix"`
	// Extensions maps a file extension to a dialect name. An empty name
	// removes the extension from scanning.
	Extensions map[string]string `yaml:"extensions"`
	// IgnoreFolders are skipped in addition to scanner.DefaultIgnoreFolders.
	IgnoreFolders []string                     `yaml:"ignore_folders"`
	Workers       int                          `yaml:"workers"`
	Manual        map[string][]ManualDirective `yaml:"manual"`

	// Path is the file the settings were read from; empty when none was found.
	Path string `yaml:"-"`
}

// ManualDirective declares a dependency of a step that has no scannable source.
type ManualDirective struct {
	Kind  string `yaml:"kind"`
	Value string `yaml:"value"`
}

// Default returns the settings used when no file is found.
func Default() Config {
	return Config{ProjectRoot: "."}
}

// Find searches startDir and its parents for FileName.
func Find(startDir string) (string, bool) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Load reads the settings file at path. A relative project_root is taken
// relative to the directory holding the file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.Path = path
	if cfg.ProjectRoot == "" {
		cfg.ProjectRoot = "."
	}
	if !filepath.IsAbs(cfg.ProjectRoot) {
		cfg.ProjectRoot = filepath.Join(filepath.Dir(path), cfg.ProjectRoot)
	}
	return cfg, nil
}

const fileHeader = "# datadag settings. A relative project_root is taken from this file's directory.\n"

// Marshal renders c as the contents of a settings file.
func Marshal(c Config) ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}
	return append([]byte(fileHeader), data...), nil
}

// Discover loads the settings that apply to startDir: the nearest settings
// file (or the defaults rooted at startDir), then the project's .env file,
// then the environment seen through lookupEnv.
func Discover(startDir string, lookupEnv func(string) (string, bool)) (Config, error) {
	cfg := Default()
	cfg.ProjectRoot = startDir

	if path, ok := Find(startDir); ok {
		loaded, err := Load(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyDotEnv(); err != nil {
		return Config{}, err
	}
	if lookupEnv != nil {
		if err := cfg.ApplyEnv(lookupEnv); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// ApplyDotEnv applies DATADAG_* values from the .env file in the project
// root, if there is one. The process environment is left untouched.
func (c *Config) ApplyDotEnv() error {
	values, err := godotenv.Read(filepath.Join(c.ProjectRoot, DotEnvFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", DotEnvFile, err)
	}

	return c.ApplyEnv(func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	})
}

// ApplyEnv applies DATADAG_PROJECT_ROOT, DATADAG_CODE_PATH_PREFIX,
// DATADAG_DATA_PATH_PREFIX, DATADAG_IGNORE_FOLDERS (comma-separated) and
// DATADAG_WORKERS from lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(envPrefix + "PROJECT_ROOT"); ok && v != "" {
		c.ProjectRoot = v
	}
	if v, ok := lookup(envPrefix + "CODE_PATH_PREFIX"); ok {
		c.CodePathPrefix = v
	}
	if v, ok := lookup(envPrefix + "DATA_PATH_PREFIX"); ok {
		c.DataPathPrefix = v
	}
	if v, ok := lookup(envPrefix + "IGNORE_FOLDERS"); ok {
		c.IgnoreFolders = splitList(v)
	}
	if v, ok := lookup(envPrefix + "WORKERS"); ok && v != "" {
		workers, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sWORKERS %q: %w", envPrefix, v, err)
		}
		c.Workers = workers
	}
	return nil
}

// ScannerOptions turns the settings into explicit scan options.
func (c Config) ScannerOptions() (scanner.Options, error) {
	table, err := registry.Default().WithOverrides(c.Extensions)
	if err != nil {
		return scanner.Options{}, err
	}

	manual, err := c.manualDirectives()
	if err != nil {
		return scanner.Options{}, err
	}

	var ignore []string
	if len(c.IgnoreFolders) > 0 {
		ignore = append(append([]string(nil), scanner.DefaultIgnoreFolders...), c.IgnoreFolders...)
	}

	return scanner.Options{
		ProjectRoot:   c.ProjectRoot,
		CodePrefix:    c.CodePathPrefix,
		DataPrefix:    c.DataPathPrefix,
		Dialects:      table,
		IgnoreFolders: ignore,
		Manual:        manual,
		Workers:       c.Workers,
	}, nil
}

func (c Config) manualDirectives() (map[string][]dialect.Directive, error) {
	if len(c.Manual) == 0 {
		return nil, nil
	}

	paths := make([]string, 0, len(c.Manual))
	for path := range c.Manual {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	manual := make(map[string][]dialect.Directive, len(c.Manual))
	for _, path := range paths {
		for i, entry := range c.Manual[path] {
			kind, ok := dialect.ParseKeyword(entry.Kind)
			if !ok {
				return nil, fmt.Errorf("manual entry %s: %w: %s", path, ErrUnknownKeyword, entry.Kind)
			}
			value := strings.TrimSpace(entry.Value)
			if value == "" {
				continue
			}
			manual[path] = append(manual[path], dialect.Directive{
				Kind:     kind,
				RawValue: value,
				Line:     i + 1,
			})
		}
	}
	return manual, nil
}

func splitList(v string) []string {
	var items []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
