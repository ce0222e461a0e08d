package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/grovetools/tend/pkg/fs"
	"github.com/grovetools/tend/pkg/harness"
)

// findKebabifyBinary finds the kebabify binary under test. The build puts
// ./bin on PATH before running the scenarios.
func findKebabifyBinary() (string, error) {
	path, err := exec.LookPath("kebabify")
	if err != nil {
		return "", fmt.Errorf("could not find 'kebabify' binary in PATH; build it into ./bin first")
	}
	return path, nil
}

// runKebabify runs the binary in dir and shows its output.
func runKebabify(ctx *harness.Context, dir string, args ...string) (stdout, stderr string, exitCode int, err error) {
	bin, err := findKebabifyBinary()
	if err != nil {
		return "", "", 0, err
	}
	cmd := ctx.Command(bin, args...).Dir(dir)
	result := cmd.Run()
	ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)
	return result.Stdout, result.Stderr, result.ExitCode, nil
}

// writeTree creates files below root from slash separated relative paths.
func writeTree(root string, files map[string]string) error {
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := fs.CreateDir(filepath.Dir(p)); err != nil {
			return err
		}
		if err := fs.WriteString(p, content); err != nil {
			return err
		}
	}
	return nil
}

func exists(root, rel string) bool {
	_, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	return err == nil
}

// expectPaths fails unless every path in present exists below root and no
// path in absent does.
func expectPaths(root string, present, absent []string) error {
	for _, p := range present {
		if !exists(root, p) {
			return fmt.Errorf("expected %s to exist", p)
		}
	}
	for _, p := range absent {
		if exists(root, p) {
			return fmt.Errorf("expected %s to be gone", p)
		}
	}
	return nil
}

// sampleProject is a small TypeScript tree with camelCase names.
var sampleProject = map[string]string{
	"src/index.ts":                      "export * from './myComponents/userCard';\nexport { api } from './apiClient';\n",
	"src/apiClient.ts":                  "export const api = {};\n",
	"src/myComponents/userCard.tsx":     "import { Avatar } from './avatarImage';\nimport React from 'react';\n",
	"src/myComponents/avatarImage.tsx":  "export const Avatar = () => null;\n",
	"src/node_modules/someLib/index.js": "module.exports = require('./innerFile');\n",
}
