package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Git move modes accepted by the git_move field.
const (
	GitMoveAuto   = "auto"
	GitMoveAlways = "always"
	GitMoveNever  = "never"
)

// Config is the content of a kebabify project file.
type Config struct {
	// Ignore lists extra ignore patterns in .dockerignore syntax, matched
	// against root-relative slash paths.
	Ignore []string `yaml:"ignore,omitempty" mapstructure:"ignore" jsonschema:"description=Extra ignore patterns matched against root-relative paths"`

	// SourceExtensions adds file extensions scanned for import specifiers.
	SourceExtensions []string `yaml:"extensions,omitempty" mapstructure:"extensions" jsonschema:"description=Additional source file extensions for import rewriting"`

	GitMove string `yaml:"git_move,omitempty" mapstructure:"git_move" jsonschema:"enum=auto,enum=always,enum=never,description=When to record renames with git mv"`

	// RewriteImports defaults to true when unset.
	RewriteImports *bool `yaml:"rewrite_imports,omitempty" mapstructure:"rewrite_imports" jsonschema:"description=Rewrite relative import specifiers after renaming"`

	Force bool `yaml:"force,omitempty" mapstructure:"force" jsonschema:"description=Proceed even if tracked files have uncommitted changes"`

	// Extensions captures all other top-level keys, such as "logging".
	Extensions map[string]interface{} `yaml:",inline" mapstructure:",remain" jsonschema:"-"`

	// Path is the file the configuration was loaded from, if any.
	Path string `yaml:"-" mapstructure:"-" jsonschema:"-"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.GitMove == "" {
		c.GitMove = GitMoveAuto
	}
	if c.RewriteImports == nil {
		enabled := true
		c.RewriteImports = &enabled
	}
}

// ShouldRewriteImports reports whether the import rewrite stage runs.
func (c *Config) ShouldRewriteImports() bool {
	return c.RewriteImports == nil || *c.RewriteImports
}

// UnmarshalExtension decodes a specific extension's configuration into the
// provided target struct. The target must be a pointer. A missing key
// leaves target untouched.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}
