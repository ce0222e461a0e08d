// Package config loads optional kebabify project files. YAML and TOML are
// supported; the document is validated against the reflected JSON Schema
// before it is decoded.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/grovetools/kebabify/errors"
	"github.com/grovetools/kebabify/ignore"
	"github.com/grovetools/kebabify/schema"
	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// ConfigFileNames are searched in order in each directory.
var ConfigFileNames = []string{
	".kebabify.yml",
	".kebabify.yaml",
	"kebabify.yml",
	"kebabify.yaml",
	"kebabify.toml",
}

// Format is the syntax of a configuration document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor picks the format from a file name.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Load reads and parses a configuration file
func Load(path string) (*Config, error) {
	cfg, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	return cfg, nil
}

// loadFile is Load without defaults, so unset fields do not mask a lower
// layer when merging.
func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	cfg, err := decode(data, FormatFor(path))
	if err != nil {
		if kebabErr, ok := errors.As(err); ok {
			kebabErr.WithDetail("path", path)
		}
		return nil, err
	}
	cfg.Path = path
	return cfg, nil
}

// LoadFromBytes parses, validates and decodes a configuration document.
// ${VAR} and ${VAR:-default} references are expanded first.
func LoadFromBytes(data []byte, format Format) (*Config, error) {
	cfg, err := decode(data, format)
	if err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	return cfg, nil
}

func decode(data []byte, format Format) (*Config, error) {
	expanded := []byte(expandEnvVars(string(data)))

	raw := map[string]interface{}{}
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(expanded, &raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse TOML configuration")
		}
	default:
		if len(bytes.TrimSpace(expanded)) > 0 {
			if err := yaml.Unmarshal(expanded, &raw); err != nil {
				return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse YAML configuration")
			}
		}
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}

	if err := validateDocument(raw); err != nil {
		return nil, err
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{Result: &cfg})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create config decoder")
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to decode configuration")
	}

	if _, err := ignore.NewMatcher(cfg.Ignore); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid ignore pattern")
	}
	return &cfg, nil
}

func validateDocument(raw map[string]interface{}) error {
	schemaData, err := GenerateSchema()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to generate config schema")
	}
	validator, err := schema.NewValidator("kebabify.schema.json", schemaData)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to create validator")
	}
	if err := validator.Validate(raw); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "schema validation failed")
	}
	return nil
}

// LoadDefault loads the configuration for the current directory
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to get current directory")
	}
	return LoadFrom(cwd)
}

// LoadFrom merges the global file (XDG config dir) with the nearest project
// file found upward from startDir. Missing files are not an error; an empty
// configuration with defaults is returned.
func LoadFrom(startDir string) (*Config, error) {
	final := &Config{}

	if globalPath := getXDGConfigPath(); globalPath != "" {
		if _, err := os.Stat(globalPath); err == nil {
			global, err := loadFile(globalPath)
			if err != nil {
				return nil, err
			}
			final = global
		}
	}

	projectPath, err := FindConfigFile(startDir)
	switch {
	case err == nil:
		project, err := loadFile(projectPath)
		if err != nil {
			return nil, err
		}
		final = mergeConfigs(final, project)
	case !errors.Is(err, errors.ErrCodeConfigNotFound):
		return nil, err
	}

	final.SetDefaults()
	return final, nil
}

// FindConfigFile searches startDir and its parents for a project file.
func FindConfigFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to resolve directory")
	}

	for {
		for _, name := range ConfigFileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", errors.ConfigNotFound(startDir).WithDetail("searchPath", startDir)
}

// mergeConfigs layers override on top of base. Lists are concatenated,
// scalars set in override win and extension sections are replaced per key.
func mergeConfigs(base, override *Config) *Config {
	merged := *base
	merged.Ignore = append(append([]string{}, base.Ignore...), override.Ignore...)
	merged.SourceExtensions = append(append([]string{}, base.SourceExtensions...), override.SourceExtensions...)
	if override.GitMove != "" {
		merged.GitMove = override.GitMove
	}
	if override.RewriteImports != nil {
		merged.RewriteImports = override.RewriteImports
	}
	merged.Force = base.Force || override.Force
	if override.Path != "" {
		merged.Path = override.Path
	}

	merged.Extensions = make(map[string]interface{}, len(base.Extensions)+len(override.Extensions))
	for k, v := range base.Extensions {
		merged.Extensions[k] = v
	}
	for k, v := range override.Extensions {
		merged.Extensions[k] = v
	}
	return &merged
}

// expandEnvVars replaces ${VAR} with environment variable values
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		varName := envVarRegex.FindStringSubmatch(match)[1]

		// Handle default values: ${VAR:-default}
		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]
		defaultValue := ""
		if len(parts) > 1 {
			defaultValue = parts[1]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultValue
	})
}

// getXDGConfigPath returns the path of the user-wide configuration file
func getXDGConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "kebabify", "config.yml")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "kebabify", "config.yml")
	}

	return ""
}

// Describe renders cfg for display
func Describe(cfg *Config) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to render configuration: %w", err)
	}
	return string(data), nil
}
