package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/grovetools/tend/pkg/assert"
	"github.com/grovetools/tend/pkg/fs"
	"github.com/grovetools/tend/pkg/harness"
)

// VersionScenario tests the 'version' command.
func VersionScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "kebabify-version",
		Description: "Prints build information as text and JSON.",
		Tags:        []string{"basic"},
		Steps: []harness.Step{
			harness.NewStep("Run 'kebabify version'", func(ctx *harness.Context) error {
				stdout, _, code, err := runKebabify(ctx, ctx.RootDir, "version")
				if err != nil {
					return err
				}
				if err := assert.Equal(0, code, "kebabify version should exit successfully"); err != nil {
					return err
				}
				if err := assert.Contains(stdout, "kebabify ", "output should name the tool"); err != nil {
					return err
				}
				return assert.Contains(stdout, "Commit:", "output should contain the commit")
			}),
			harness.NewStep("Run 'kebabify version --json'", func(ctx *harness.Context) error {
				stdout, _, code, err := runKebabify(ctx, ctx.RootDir, "version", "--json")
				if err != nil {
					return err
				}
				if err := assert.Equal(0, code, "kebabify version --json should exit successfully"); err != nil {
					return err
				}
				return assert.Contains(stdout, `"goVersion"`, "JSON output should contain goVersion")
			}),
		},
	}
}

// ConvertTreeScenario renames a tree and rewrites its imports.
func ConvertTreeScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "kebabify-convert-tree",
		Description: "Renames camelCase entries outside version control and fixes relative imports.",
		Tags:        []string{"basic", "rename", "imports"},
		Steps: []harness.Step{
			harness.NewStep("Create project", func(ctx *harness.Context) error {
				projectDir := ctx.NewDir("convert-project")
				ctx.Set("project_dir", projectDir)
				return writeTree(projectDir, sampleProject)
			}),
			harness.NewStep("Run kebabify", func(ctx *harness.Context) error {
				projectDir := ctx.GetString("project_dir")
				_, _, code, err := runKebabify(ctx, projectDir, "src")
				if err != nil {
					return err
				}
				return assert.Equal(0, code, "kebabify should exit successfully")
			}),
			harness.NewStep("Verify renames", func(ctx *harness.Context) error {
				projectDir := ctx.GetString("project_dir")
				return expectPaths(projectDir,
					[]string{
						"src/api-client.ts",
						"src/my-components/user-card.tsx",
						"src/my-components/avatar-image.tsx",
						"src/node_modules/someLib/index.js",
					},
					[]string{"src/apiClient.ts", "src/myComponents"},
				)
			}),
			harness.NewStep("Verify imports", func(ctx *harness.Context) error {
				projectDir := ctx.GetString("project_dir")
				index, err := fs.ReadString(filepath.Join(projectDir, "src", "index.ts"))
				if err != nil {
					return err
				}
				if err := assert.Contains(index, "from './my-components/user-card'", "nested import should be rewritten"); err != nil {
					return err
				}
				if err := assert.Contains(index, "from './api-client'", "sibling import should be rewritten"); err != nil {
					return err
				}

				card, err := fs.ReadString(filepath.Join(projectDir, "src", "my-components", "user-card.tsx"))
				if err != nil {
					return err
				}
				if err := assert.Contains(card, "from './avatar-image'", "import in renamed file should be rewritten"); err != nil {
					return err
				}
				if err := assert.Contains(card, "from 'react'", "package imports should be untouched"); err != nil {
					return err
				}

				lib, err := fs.ReadString(filepath.Join(projectDir, "src", "node_modules", "someLib", "index.js"))
				if err != nil {
					return err
				}
				return assert.Contains(lib, "require('./innerFile')", "ignored directories should be untouched")
			}),
		},
	}
}

// DryRunScenario checks that --dry-run reports without touching disk.
func DryRunScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "kebabify-dry-run",
		Description: "Previews renames and import rewrites without changing anything.",
		Tags:        []string{"basic", "dry-run"},
		Steps: []harness.Step{
			harness.NewStep("Preview conversion", func(ctx *harness.Context) error {
				projectDir := ctx.NewDir("dry-run-project")
				if err := writeTree(projectDir, sampleProject); err != nil {
					return err
				}

				stdout, _, code, err := runKebabify(ctx, projectDir, "src", "--dry-run", "--no-color")
				if err != nil {
					return err
				}
				if err := assert.Equal(0, code, "dry run should exit successfully"); err != nil {
					return err
				}
				if err := assert.Contains(stdout, "src/myComponents → src/my-components", "planned rename should be listed"); err != nil {
					return err
				}
				if err := assert.Contains(stdout, "Would rewrite imports in: 2 files", "import preview should be counted"); err != nil {
					return err
				}
				return expectPaths(projectDir, []string{"src/myComponents/userCard.tsx", "src/apiClient.ts"}, []string{"src/my-components"})
			}),
		},
	}
}

// IdempotentRunScenario runs twice and expects the second run to be a no-op.
func IdempotentRunScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "kebabify-idempotent",
		Description: "A second run over a converted tree changes nothing.",
		Tags:        []string{"basic"},
		Steps: []harness.Step{
			harness.NewStep("Run twice", func(ctx *harness.Context) error {
				projectDir := ctx.NewDir("idempotent-project")
				if err := writeTree(projectDir, sampleProject); err != nil {
					return err
				}
				if _, _, code, err := runKebabify(ctx, projectDir, "src"); err != nil || code != 0 {
					return fmt.Errorf("first run failed (exit %d): %v", code, err)
				}

				stdout, _, code, err := runKebabify(ctx, projectDir, "src", "--json")
				if err != nil {
					return err
				}
				if err := assert.Equal(0, code, "second run should exit successfully"); err != nil {
					return err
				}
				var summary struct {
					Commands  []json.RawMessage `json:"commands"`
					Rewritten []string          `json:"rewritten"`
				}
				if err := json.Unmarshal([]byte(stdout), &summary); err != nil {
					return fmt.Errorf("failed to parse JSON summary: %w", err)
				}
				if err := assert.Equal(0, len(summary.Commands), "second run should plan nothing"); err != nil {
					return err
				}
				return assert.Equal(0, len(summary.Rewritten), "second run should rewrite nothing")
			}),
		},
	}
}

// CaseOnlyRenameScenario renames entries whose names differ only in case.
func CaseOnlyRenameScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "kebabify-case-only",
		Description: "Entries like Readme.md become readme.md through a temporary name.",
		Tags:        []string{"rename"},
		Steps: []harness.Step{
			harness.NewStep("Rename case-only entries", func(ctx *harness.Context) error {
				projectDir := ctx.NewDir("case-only-project")
				if err := writeTree(projectDir, map[string]string{
					"docs/Readme.md":     "# docs\n",
					"docs/Guides/old.md": "guide\n",
				}); err != nil {
					return err
				}

				_, _, code, err := runKebabify(ctx, projectDir, "docs")
				if err != nil {
					return err
				}
				if err := assert.Equal(0, code, "kebabify should exit successfully"); err != nil {
					return err
				}
				return expectPaths(projectDir,
					[]string{"docs/readme.md", "docs/guides/old.md"},
					[]string{"docs/readme.md.temp-rename", "docs/guides.temp-rename"},
				)
			}),
		},
	}
}
