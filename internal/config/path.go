// Package config loads the drill configuration from file, environment and flags.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath expands a configured file path and anchors it at dir when it
// is relative. A leading ~ is the user's home directory, and $VAR or ${VAR}
// references are read from the environment. dir is expanded the same way.
// Empty paths stay empty.
func ResolvePath(dir, path string) string {
	if path == "" {
		return path
	}

	// Tilde before variables; a variable that expands to ~ stays literal
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home + path[1:]
		}
	}
	path = os.ExpandEnv(path)
	if path == "" {
		return path
	}
	path = filepath.Clean(path)

	if filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(ResolvePath("", dir), path)
}

// ExpandPath expands ~ and environment variables without anchoring.
func ExpandPath(path string) string {
	return ResolvePath("", path)
}
