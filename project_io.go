// project_io.go - Load and save .intvjam project files.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const PROJECT_EXTENSION = ".intvjam"

// EnsureExtension appends the project extension if the path carries a
// different one.
func EnsureExtension(path string) string {
	if filepath.Ext(path) != PROJECT_EXTENSION {
		ext := filepath.Ext(path)
		return path[:len(path)-len(ext)] + PROJECT_EXTENSION
	}
	return path
}

func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse project %s: %w", path, err)
	}
	p.normalize()
	return &p, nil
}

// SaveProject writes the project as indented JSON, enforcing the extension
// and creating parent directories. Returns the path actually written.
func SaveProject(p *Project, path string) (string, error) {
	path = EnsureExtension(path)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create project dir: %w", err)
		}
	}
	p.Touch()
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode project: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write project: %w", err)
	}
	return path, nil
}
