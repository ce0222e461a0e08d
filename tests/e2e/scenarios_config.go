package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/grovetools/tend/pkg/assert"
	"github.com/grovetools/tend/pkg/fs"
	"github.com/grovetools/tend/pkg/harness"
)

// ProjectConfigScenario applies ignore patterns and switches from a project file.
func ProjectConfigScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "kebabify-project-config",
		Description: "Ignore patterns and rewrite_imports from .kebabify.yml are honored.",
		Tags:        []string{"config"},
		Steps: []harness.Step{
			harness.NewStep("Run with project config", func(ctx *harness.Context) error {
				projectDir := ctx.NewDir("config-project")
				if err := writeTree(projectDir, map[string]string{
					"src/mainView.ts":         "import './generatedTypes/apiTypes';\n",
					"src/generatedTypes/a.ts": "",
					"src/otherThing.ts":       "",
				}); err != nil {
					return err
				}
				configYAML := `ignore:
  - "**/generatedTypes"
rewrite_imports: false
`
				if err := fs.WriteString(filepath.Join(projectDir, ".kebabify.yml"), configYAML); err != nil {
					return err
				}

				_, _, code, err := runKebabify(ctx, projectDir, "src")
				if err != nil {
					return err
				}
				if err := assert.Equal(0, code, "kebabify should exit successfully"); err != nil {
					return err
				}
				if err := expectPaths(projectDir,
					[]string{"src/main-view.ts", "src/other-thing.ts", "src/generatedTypes/a.ts"},
					[]string{"src/generated-types"},
				); err != nil {
					return err
				}
				content, err := fs.ReadString(filepath.Join(projectDir, "src", "main-view.ts"))
				if err != nil {
					return err
				}
				return assert.Contains(content, "./generatedTypes/apiTypes", "imports should not be rewritten")
			}),
			harness.NewStep("Invalid config is rejected", func(ctx *harness.Context) error {
				projectDir := ctx.NewDir("bad-config-project")
				if err := fs.CreateDir(filepath.Join(projectDir, "src")); err != nil {
					return err
				}
				if err := fs.WriteString(filepath.Join(projectDir, "kebabify.yml"), "git_move: sometimes\n"); err != nil {
					return err
				}
				_, stderr, code, err := runKebabify(ctx, projectDir, "src")
				if err != nil {
					return err
				}
				if err := assert.Equal(1, code, "invalid config should fail"); err != nil {
					return err
				}
				return assert.Contains(stderr, "schema validation failed", "error should mention the configuration")
			}),
		},
	}
}

// GlobalConfigScenario layers the global file under the project file.
func GlobalConfigScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "kebabify-global-config",
		Description: "The global config in ~/.config/kebabify is merged below the project file.",
		Tags:        []string{"config"},
		Steps: []harness.Step{
			harness.NewStep("Show merged config", func(ctx *harness.Context) error {
				projectDir := ctx.NewDir("global-config-project")
				globalConfigDir := filepath.Join(ctx.HomeDir(), ".config", "kebabify")
				if err := fs.CreateDir(globalConfigDir); err != nil {
					return fmt.Errorf("failed to create global config dir: %w", err)
				}
				if err := fs.WriteString(filepath.Join(globalConfigDir, "config.yml"), "git_move: never\nignore:\n  - fixtures\n"); err != nil {
					return err
				}
				if err := fs.WriteString(filepath.Join(projectDir, "kebabify.toml"), "ignore = [\"snapshots\"]\n"); err != nil {
					return err
				}

				stdout, _, code, err := runKebabify(ctx, projectDir, "config", "show")
				if err != nil {
					return err
				}
				if err := assert.Equal(0, code, "config show should exit successfully"); err != nil {
					return err
				}
				if err := assert.Contains(stdout, "kebabify.toml", "project file should be the source"); err != nil {
					return err
				}
				if err := assert.Contains(stdout, "git_move: never", "global scalar should survive"); err != nil {
					return err
				}
				if err := assert.Contains(stdout, "fixtures", "global ignore should be kept"); err != nil {
					return err
				}
				return assert.Contains(stdout, "snapshots", "project ignore should be appended")
			}),
		},
	}
}

// ConfigSchemaScenario prints the configuration schema.
func ConfigSchemaScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "kebabify-config-schema",
		Description: "config schema prints a JSON Schema describing the config file.",
		Tags:        []string{"config"},
		Steps: []harness.Step{
			harness.NewStep("Print schema", func(ctx *harness.Context) error {
				stdout, _, code, err := runKebabify(ctx, ctx.RootDir, "config", "schema")
				if err != nil {
					return err
				}
				if err := assert.Equal(0, code, "config schema should exit successfully"); err != nil {
					return err
				}
				var schema map[string]interface{}
				if err := json.Unmarshal([]byte(stdout), &schema); err != nil {
					return fmt.Errorf("schema is not valid JSON: %w", err)
				}
				return assert.Contains(stdout, `"git_move"`, "schema should describe git_move")
			}),
		},
	}
}
