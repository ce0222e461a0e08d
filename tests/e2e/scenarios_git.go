package main

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/grovetools/tend/pkg/assert"
	"github.com/grovetools/tend/pkg/fs"
	"github.com/grovetools/tend/pkg/git"
	"github.com/grovetools/tend/pkg/harness"
)

func gitOutput(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, out)
	}
	return string(out), nil
}

// GitDirtyTreeScenario refuses to run over uncommitted changes unless forced.
func GitDirtyTreeScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "kebabify-git-dirty",
		Description: "Uncommitted changes to tracked files stop the run; --force overrides.",
		Tags:        []string{"git"},
		Steps: []harness.Step{
			harness.NewStep("Create repository with a modified file", func(ctx *harness.Context) error {
				projectDir := ctx.NewDir("dirty-project")
				ctx.Set("project_dir", projectDir)
				if err := writeTree(projectDir, sampleProject); err != nil {
					return err
				}
				repo, err := git.SetupTestRepo(projectDir)
				if err != nil {
					return fmt.Errorf("failed to setup git repo: %w", err)
				}
				if err := repo.AddCommit("initial commit"); err != nil {
					return err
				}
				return fs.WriteString(filepath.Join(projectDir, "src", "apiClient.ts"), "export const api = { v: 2 };\n")
			}),
			harness.NewStep("Run without --force", func(ctx *harness.Context) error {
				projectDir := ctx.GetString("project_dir")
				_, stderr, code, err := runKebabify(ctx, projectDir, "src")
				if err != nil {
					return err
				}
				if err := assert.Equal(1, code, "dirty tree should fail"); err != nil {
					return err
				}
				if err := assert.Contains(stderr, "uncommitted changes", "error should mention uncommitted changes"); err != nil {
					return err
				}
				if err := assert.Contains(stderr, "src/apiClient.ts", "dirty file should be listed"); err != nil {
					return err
				}
				return expectPaths(projectDir, []string{"src/myComponents"}, nil)
			}),
			harness.NewStep("Untracked files do not count", func(ctx *harness.Context) error {
				projectDir := ctx.GetString("project_dir")
				if _, err := gitOutput(projectDir, "checkout", "--", "src/apiClient.ts"); err != nil {
					return err
				}
				if err := fs.WriteString(filepath.Join(projectDir, "src", "newHelper.ts"), "export {};\n"); err != nil {
					return err
				}
				_, _, code, err := runKebabify(ctx, projectDir, "src", "--dry-run")
				if err != nil {
					return err
				}
				return assert.Equal(0, code, "untracked files should not block the run")
			}),
			harness.NewStep("Run with --force", func(ctx *harness.Context) error {
				projectDir := ctx.GetString("project_dir")
				if err := fs.WriteString(filepath.Join(projectDir, "src", "apiClient.ts"), "export const api = { v: 3 };\n"); err != nil {
					return err
				}
				_, _, code, err := runKebabify(ctx, projectDir, "src", "--force")
				if err != nil {
					return err
				}
				if err := assert.Equal(0, code, "forced run should succeed"); err != nil {
					return err
				}
				return expectPaths(projectDir, []string{"src/my-components/user-card.tsx", "src/new-helper.ts"}, []string{"src/myComponents"})
			}),
		},
	}
}

// GitHistoryScenario checks renames are recorded with git mv.
func GitHistoryScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "kebabify-git-history",
		Description: "Inside a repository renames show up as renames in the index.",
		Tags:        []string{"git", "rename"},
		Steps: []harness.Step{
			harness.NewStep("Convert a clean repository", func(ctx *harness.Context) error {
				projectDir := ctx.NewDir("history-project")
				if err := writeTree(projectDir, sampleProject); err != nil {
					return err
				}
				repo, err := git.SetupTestRepo(projectDir)
				if err != nil {
					return fmt.Errorf("failed to setup git repo: %w", err)
				}
				if err := repo.AddCommit("initial commit"); err != nil {
					return err
				}

				_, _, code, err := runKebabify(ctx, projectDir, "src")
				if err != nil {
					return err
				}
				if err := assert.Equal(0, code, "kebabify should exit successfully"); err != nil {
					return err
				}

				status, err := gitOutput(projectDir, "status", "--porcelain")
				if err != nil {
					return err
				}
				if err := assert.Contains(status, "R  src/myComponents/avatarImage.tsx -> src/my-components/avatar-image.tsx", "rename should be staged"); err != nil {
					return err
				}
				return assert.Contains(status, "src/apiClient.ts -> src/api-client.ts", "file rename should be staged")
			}),
			harness.NewStep("git-move=always fails outside a repository", func(ctx *harness.Context) error {
				plainDir := ctx.NewDir("plain-project")
				if err := writeTree(plainDir, map[string]string{"lib/someFile.js": ""}); err != nil {
					return err
				}
				_, stderr, code, err := runKebabify(ctx, plainDir, "lib", "--git-move=always")
				if err != nil {
					return err
				}
				if err := assert.Equal(1, code, "git-move=always should fail"); err != nil {
					return err
				}
				if err := assert.Contains(stderr, "not under version control", "error should explain why"); err != nil {
					return err
				}
				return expectPaths(plainDir, []string{"lib/someFile.js"}, nil)
			}),
		},
	}
}
