package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/grovetools/kebabify/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromBytesYAML(t *testing.T) {
	t.Setenv("KEBABIFY_TEST_PATTERN", "generated")

	cfg, err := LoadFromBytes([]byte(`
ignore:
  - ${KEBABIFY_TEST_PATTERN}
  - "**/*.snap"
extensions: [".astro"]
git_move: never
rewrite_imports: false
logging:
  level: debug
`), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, []string{"generated", "**/*.snap"}, cfg.Ignore)
	assert.Equal(t, []string{".astro"}, cfg.SourceExtensions)
	assert.Equal(t, GitMoveNever, cfg.GitMove)
	assert.False(t, cfg.ShouldRewriteImports())
	assert.False(t, cfg.Force)
	assert.Contains(t, cfg.Extensions, "logging")
}

func TestLoadFromBytesTOML(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`
ignore = ["vendor"]
force = true

[logging]
level = "warn"
report_caller = true
`), FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, []string{"vendor"}, cfg.Ignore)
	assert.True(t, cfg.Force)
	assert.Equal(t, GitMoveAuto, cfg.GitMove)
	assert.True(t, cfg.ShouldRewriteImports())

	var section struct {
		Level        string `yaml:"level"`
		ReportCaller bool   `yaml:"report_caller"`
	}
	require.NoError(t, cfg.UnmarshalExtension("logging", &section))
	assert.Equal(t, "warn", section.Level)
	assert.True(t, section.ReportCaller)
}

func TestLoadFromBytesInvalid(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"bad git move", "git_move: sometimes\n", FormatYAML},
		{"ignore not a list", "ignore: node_modules\n", FormatYAML},
		{"force not a bool", "force = \"yes\"\n", FormatTOML},
		{"malformed yaml", "ignore: [\n", FormatYAML},
		{"malformed toml", "ignore = [\n", FormatTOML},
		{"bad ignore pattern", "ignore: [\"[\"]\n", FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tt.data), tt.format)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeConfigInvalid), err.Error())
		})
	}
}

func TestLoadFromBytesEmpty(t *testing.T) {
	cfg, err := LoadFromBytes(nil, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, GitMoveAuto, cfg.GitMove)
	assert.True(t, cfg.ShouldRewriteImports())
	assert.Empty(t, cfg.Ignore)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), ".kebabify.yml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigNotFound))
}

func TestFindConfigFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "kebabify.toml"), []byte("force = true\n"), 0644))

	path, err := FindConfigFile(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "kebabify.toml"), path)

	// a nearer file wins
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", ".kebabify.yml"), []byte("force: false\n"), 0644))
	path, err = FindConfigFile(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "a", ".kebabify.yml"), path)
}

func TestLoadFromMergesGlobalAndProject(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "kebabify"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(xdg, "kebabify", "config.yml"), []byte(`
ignore: [vendor]
git_move: never
logging:
  level: debug
`), 0644))

	project := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(project, ".kebabify.yml"), []byte(`
ignore: [generated]
git_move: always
`), 0644))

	cfg, err := LoadFrom(project)
	require.NoError(t, err)
	assert.Equal(t, []string{"vendor", "generated"}, cfg.Ignore)
	assert.Equal(t, GitMoveAlways, cfg.GitMove)
	assert.Contains(t, cfg.Extensions, "logging")
	assert.Equal(t, filepath.Join(project, ".kebabify.yml"), cfg.Path)
}

func TestLoadFromKeepsGlobalScalars(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "kebabify"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(xdg, "kebabify", "config.yml"), []byte("git_move: never\nrewrite_imports: false\n"), 0644))

	project := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(project, "kebabify.toml"), []byte("ignore = [\"snapshots\"]\n"), 0644))

	cfg, err := LoadFrom(project)
	require.NoError(t, err)
	assert.Equal(t, GitMoveNever, cfg.GitMove)
	assert.False(t, cfg.ShouldRewriteImports())
	assert.Equal(t, []string{"snapshots"}, cfg.Ignore)
}

func TestLoadFromWithoutFiles(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, cfg.Path)
	assert.Equal(t, GitMoveAuto, cfg.GitMove)
}

func TestUnmarshalExtensionMissingKey(t *testing.T) {
	cfg := &Config{}
	target := struct {
		Level string `yaml:"level"`
	}{Level: "info"}
	require.NoError(t, cfg.UnmarshalExtension("logging", &target))
	assert.Equal(t, "info", target.Level)
}

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "http://json-schema.org/draft-07/schema#", doc["$schema"])
	assert.Equal(t, "object", doc["type"])

	props, ok := doc["properties"].(map[string]interface{})
	require.True(t, ok)
	for _, key := range []string{"ignore", "extensions", "git_move", "rewrite_imports", "force"} {
		assert.Contains(t, props, key)
	}
	assert.NotContains(t, props, "Extensions")
	assert.NotContains(t, props, "Path")

	gitMove := props["git_move"].(map[string]interface{})
	assert.ElementsMatch(t, []interface{}{"auto", "always", "never"}, gitMove["enum"])
}

func TestDescribe(t *testing.T) {
	cfg := &Config{Ignore: []string{"vendor"}}
	cfg.SetDefaults()
	out, err := Describe(cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "git_move: auto")
	assert.Contains(t, out, "- vendor")
}
