package utils

import "path/filepath"

// ResolvePath joins a relative path onto baseDir. Absolute paths, and any
// path when baseDir is empty, come back unchanged. An empty path resolves to
// baseDir itself.
func ResolvePath(path, baseDir string) string {
	if baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// ResolvePaths applies ResolvePath to every element, keeping order.
func ResolvePaths(paths []string, baseDir string) []string {
	if len(paths) == 0 {
		return nil
	}
	resolved := make([]string, len(paths))
	for i, p := range paths {
		resolved[i] = ResolvePath(p, baseDir)
	}
	return resolved
}
