package util

import (
	"os"
	"path/filepath"
	"strings"
)

// HomeDir returns the user's home directory
func HomeDir() string {
	home, _ := os.UserHomeDir()
	return home
}

// DefaultSkillsPaths returns the default skill search directories,
// project-local first.
func DefaultSkillsPaths() []string {
	return []string{
		filepath.Join(".", ".claude", "skills"),
		filepath.Join(HomeDir(), ".claude", "skills"),
	}
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "~" {
		return HomeDir()
	}
	if strings.HasPrefix(path, "~"+string(os.PathSeparator)) || strings.HasPrefix(path, "~/") {
		return filepath.Join(HomeDir(), path[2:])
	}
	return path
}
