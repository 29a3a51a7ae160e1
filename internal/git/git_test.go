package git

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s failed: %v\n%s", strings.Join(args, " "), err, string(out))
	}
	return strings.TrimSpace(string(out))
}

func initTestRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test User")
	return dir
}

func commitFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %q: %v", name, err)
	}
	runGit(t, dir, "add", "-A")
	runGit(t, dir, "commit", "-m", "update "+name)
	return runGit(t, dir, "rev-parse", "HEAD")
}

func TestIsInRepoAndRefExists(t *testing.T) {
	nonRepoDir := t.TempDir()
	if IsInRepo(nonRepoDir) {
		t.Fatalf("expected %q to not be a git repo", nonRepoDir)
	}

	repo := initTestRepo(t)
	commitFile(t, repo, "README.md", "hello")

	if !IsInRepo(repo) {
		t.Fatalf("expected %q to be a git repo", repo)
	}
	if !RefExists(repo, "HEAD") {
		t.Fatalf("expected HEAD to exist")
	}
	if RefExists(repo, "refs/heads/does-not-exist") {
		t.Fatalf("expected missing ref to not exist")
	}
}

func TestCommitsBetween(t *testing.T) {
	repo := initTestRepo(t)
	first := commitFile(t, repo, "a.txt", "1")
	second := commitFile(t, repo, "a.txt", "2")
	third := commitFile(t, repo, "a.txt", "3")
	fourth := commitFile(t, repo, "a.txt", "4")

	got, err := CommitsBetween(first, fourth, repo)
	if err != nil {
		t.Fatalf("CommitsBetween: %v", err)
	}
	want := []string{second, third, fourth}
	if !slices.Equal(got, want) {
		t.Fatalf("CommitsBetween = %v, want %v", got, want)
	}

	got, err = CommitsBetween(third, fourth, repo)
	if err != nil {
		t.Fatalf("CommitsBetween: %v", err)
	}
	if !slices.Equal(got, []string{fourth}) {
		t.Fatalf("adjacent commits = %v, want [%s]", got, fourth)
	}
}

func TestCommitsBetweenSameRef(t *testing.T) {
	repo := initTestRepo(t)
	head := commitFile(t, repo, "a.txt", "1")

	got, err := CommitsBetween(head, head, repo)
	if err != nil {
		t.Fatalf("CommitsBetween: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", got)
	}
}

func TestCommitsBetweenReversedIsEmpty(t *testing.T) {
	repo := initTestRepo(t)
	first := commitFile(t, repo, "a.txt", "1")
	second := commitFile(t, repo, "a.txt", "2")

	got, err := CommitsBetween(second, first, repo)
	if err != nil {
		t.Fatalf("CommitsBetween: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no commits from newer to older, got %v", got)
	}
}

func TestCommitsBetweenExcludesSideBranches(t *testing.T) {
	repo := initTestRepo(t)
	base := commitFile(t, repo, "a.txt", "1")
	runGit(t, repo, "checkout", "-b", "side")
	side := commitFile(t, repo, "b.txt", "side")
	runGit(t, repo, "checkout", "-")
	mainline := commitFile(t, repo, "a.txt", "2")

	got, err := CommitsBetween(base, mainline, repo)
	if err != nil {
		t.Fatalf("CommitsBetween: %v", err)
	}
	if slices.Contains(got, side) {
		t.Fatalf("side-branch commit %s should not be on the ancestry path: %v", side, got)
	}
	if !slices.Equal(got, []string{mainline}) {
		t.Fatalf("CommitsBetween = %v, want [%s]", got, mainline)
	}
}

func TestCommitsBetweenUnknownRef(t *testing.T) {
	repo := initTestRepo(t)
	head := commitFile(t, repo, "a.txt", "1")

	_, err := CommitsBetween(head, "does-not-exist", repo)
	if !errors.Is(err, ErrUnknownRef) {
		t.Fatalf("expected ErrUnknownRef, got %v", err)
	}
}

func TestCommitsBetweenRejectsOptionLikeRefs(t *testing.T) {
	repo := initTestRepo(t)
	head := commitFile(t, repo, "a.txt", "1")

	for _, ref := range []string{"--all", "-n1", "--output=" + filepath.Join(repo, "x")} {
		if RefExists(repo, ref) {
			t.Errorf("RefExists(%q) = true, want false", ref)
		}
		if _, err := CommitsBetween(ref, head, repo); !errors.Is(err, ErrUnknownRef) {
			t.Errorf("CommitsBetween(%q, HEAD): expected ErrUnknownRef, got %v", ref, err)
		}
		if _, err := CommitsBetween(head, ref, repo); !errors.Is(err, ErrUnknownRef) {
			t.Errorf("CommitsBetween(HEAD, %q): expected ErrUnknownRef, got %v", ref, err)
		}
	}
	if _, err := os.Stat(filepath.Join(repo, "x")); !os.IsNotExist(err) {
		t.Errorf("option-like ref reached git: %v", err)
	}
}
