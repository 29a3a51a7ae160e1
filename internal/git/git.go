// Package git answers history questions about the repository under test.
package git

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrUnknownRef is returned when a commit identifier cannot be resolved.
var ErrUnknownRef = errors.New("unknown git ref")

func command(dir string, args ...string) *exec.Cmd {
	if dir != "" {
		args = append([]string{"-C", dir}, args...)
	}
	return exec.Command("git", args...)
}

// IsInRepo returns true if dir is inside a git repository. An empty dir
// means the current working directory.
func IsInRepo(dir string) bool {
	return command(dir, "rev-parse", "--git-dir").Run() == nil
}

// RefExists returns true if the given git ref can be resolved. Refs that
// git would parse as an option never exist.
func RefExists(dir, ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "-") {
		return false
	}
	return command(dir, "rev-parse", "--verify", "--quiet", ref+"^{commit}").Run() == nil
}

// CommitsBetween returns the commits on the ancestry path from older to
// newer, oldest first. older itself is excluded and newer is included, so
// equal refs yield an empty list.
func CommitsBetween(older, newer, dir string) ([]string, error) {
	for _, ref := range []string{older, newer} {
		if !RefExists(dir, ref) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRef, ref)
		}
	}

	cmd := command(dir, "rev-list", "--reverse", "--ancestry-path", older+".."+newer)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("listing commits %s..%s: %w: %s", older, newer, err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("listing commits %s..%s: %w", older, newer, err)
	}

	commits := []string{}
	for _, l := range strings.Split(string(out), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			commits = append(commits, l)
		}
	}
	return commits, nil
}
