//go:build integration
// +build integration

package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

var (
	buildOnce sync.Once
	buildErr  error
	binPath   string
)

// buildTool compiles the countess-release binary once for all tests.
func buildTool(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		dir, err := os.MkdirTemp("", "countess-release-bin-*")
		if err != nil {
			buildErr = err
			return
		}
		binPath = filepath.Join(dir, "countess-release")
		cmd := exec.Command("go", "build", "-o", binPath, "../../cmd/countess-release")
		out, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = err
			binPath = string(out)
		}
	})
	if buildErr != nil {
		t.Fatalf("Failed to build countess-release: %v\n%s", buildErr, binPath)
	}
	return binPath
}

// setupReleaseRepo creates a git repository laid out like CountESS,
// with all three default target files committed.
func setupReleaseRepo(t *testing.T) string {
	t.Helper()

	repoPath := t.TempDir()

	git := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", append([]string{"-C", repoPath}, args...)...)
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v failed: %v\n%s", args, err, out)
		}
	}

	if out, err := exec.Command("git", "init", repoPath).CombinedOutput(); err != nil {
		t.Fatalf("git init failed: %v\n%s", err, out)
	}
	git("config", "user.email", "test@example.com")
	git("config", "user.name", "Test User")

	files := map[string]string{
		"README.md":            "# CountESS 0.0.1\n\nCount-based experiment scoring.\n",
		"countess/__init__.py": "VERSION = \"0.0.1\"\n",
		"CITATION.cff":         "cff-version: 1.2.0\ntitle: CountESS\nversion: 0.0.1\n",
	}
	for name, content := range files {
		path := filepath.Join(repoPath, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	git("add", ".")
	git("commit", "-m", "Initial commit")

	return repoPath
}

// runTool executes the binary and returns combined output and exit code.
func runTool(t *testing.T, repoPath string, args ...string) (string, int) {
	t.Helper()

	allArgs := append([]string{"-repo", repoPath}, args...)
	cmd := exec.Command(buildTool(t), allArgs...)
	out, err := cmd.CombinedOutput()
	if err == nil {
		return string(out), 0
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return string(out), exitErr.ExitCode()
	}
	t.Fatalf("Failed to run countess-release: %v\n%s", err, out)
	return "", -1
}

func gitOutput(t *testing.T, repoPath string, args ...string) string {
	t.Helper()
	out, err := exec.Command("git", append([]string{"-C", repoPath}, args...)...).Output()
	if err != nil {
		t.Fatalf("git %v failed: %v", args, err)
	}
	return strings.TrimSpace(string(out))
}

func readFile(t *testing.T, repoPath, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(repoPath, name))
	if err != nil {
		t.Fatalf("Failed to read %s: %v", name, err)
	}
	return string(data)
}

func skipUnlessEnabled(t *testing.T) {
	if os.Getenv("COUNTESS_RELEASE_INTEGRATION_TESTS") != "1" {
		t.Skip("Skipping integration test. Set COUNTESS_RELEASE_INTEGRATION_TESTS=1 to run")
	}
}

func TestSuccessfulRelease(t *testing.T) {
	skipUnlessEnabled(t)

	repoPath := setupReleaseRepo(t)

	out, code := runTool(t, repoPath, "1.2.3")
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d\n%s", code, out)
	}

	if !strings.Contains(readFile(t, repoPath, "README.md"), "# CountESS 1.2.3\n") {
		t.Error("Expected readme heading to carry the new version")
	}
	if !strings.Contains(readFile(t, repoPath, "countess/__init__.py"), "VERSION = \"1.2.3\"\n") {
		t.Error("Expected the version constant to be a quoted string literal")
	}
	if !strings.Contains(readFile(t, repoPath, "CITATION.cff"), "version: 1.2.3\n") {
		t.Error("Expected the citation version to be unquoted")
	}

	if msg := gitOutput(t, repoPath, "log", "-1", "--pretty=format:%s"); msg != "Bump to v1.2.3" {
		t.Errorf("Expected commit message %q, got %q", "Bump to v1.2.3", msg)
	}

	touched := gitOutput(t, repoPath, "show", "--name-only", "--pretty=format:", "HEAD")
	wantFiles := []string{"CITATION.cff", "README.md", "countess/__init__.py"}
	gotFiles := strings.Fields(touched)
	if len(gotFiles) != 3 {
		t.Fatalf("Expected the commit to touch 3 files, got %v", gotFiles)
	}
	for _, want := range wantFiles {
		found := false
		for _, got := range gotFiles {
			if got == want {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected the commit to touch %s, got %v", want, gotFiles)
		}
	}

	tagInfo := gitOutput(t, repoPath, "tag", "-l", "-n1", "v1.2.3")
	if !strings.Contains(tagInfo, "CountESS version 1.2.3") {
		t.Errorf("Expected annotated tag with message, got %q", tagInfo)
	}

	// The working tree ends clean
	if status := gitOutput(t, repoPath, "status", "--porcelain"); status != "" {
		t.Errorf("Expected a clean tree after the release, got %q", status)
	}
}

func TestRerunSameVersionFails(t *testing.T) {
	skipUnlessEnabled(t)

	repoPath := setupReleaseRepo(t)

	if out, code := runTool(t, repoPath, "1.2.3"); code != 0 {
		t.Fatalf("Expected the first run to succeed, got %d\n%s", code, out)
	}
	headBefore := gitOutput(t, repoPath, "rev-parse", "HEAD")

	out, code := runTool(t, repoPath, "1.2.3")
	if code == 0 {
		t.Fatal("Expected the second run with the same version to fail")
	}
	if !strings.Contains(out, "already exists") {
		t.Errorf("Expected a tag-exists diagnostic, got %q", out)
	}

	// The failed re-run must not add a commit
	if headAfter := gitOutput(t, repoPath, "rev-parse", "HEAD"); headAfter != headBefore {
		t.Error("Expected no new commit from the failed re-run")
	}
}

func TestDirtyTreeExitCodes(t *testing.T) {
	skipUnlessEnabled(t)

	repoPath := setupReleaseRepo(t)
	readmePath := filepath.Join(repoPath, "README.md")

	// Unstaged changes abort with exit code 1
	if err := os.WriteFile(readmePath, []byte("# CountESS 0.0.1\n\nEdited.\n"), 0644); err != nil {
		t.Fatalf("Failed to modify readme: %v", err)
	}

	out, code := runTool(t, repoPath, "1.2.3")
	if code != 1 {
		t.Errorf("Expected exit code 1 for unstaged changes, got %d\n%s", code, out)
	}
	if strings.Contains(readFile(t, repoPath, "countess/__init__.py"), "1.2.3") {
		t.Error("Expected no target file modification on a dirty tree")
	}

	// Failure is idempotent: a second attempt fails the same way
	if _, again := runTool(t, repoPath, "1.2.3"); again != 1 {
		t.Errorf("Expected the repeated run to fail with exit code 1, got %d", again)
	}

	// Staged changes abort with exit code 2
	if err := exec.Command("git", "-C", repoPath, "add", "README.md").Run(); err != nil {
		t.Fatalf("Failed to stage readme: %v", err)
	}

	out, code = runTool(t, repoPath, "1.2.3")
	if code != 2 {
		t.Errorf("Expected exit code 2 for staged changes, got %d\n%s", code, out)
	}
	if tags := gitOutput(t, repoPath, "tag", "-l"); tags != "" {
		t.Errorf("Expected no tags after aborted runs, got %q", tags)
	}
}

func TestPatternNotFoundLeavesPartialRewrite(t *testing.T) {
	skipUnlessEnabled(t)

	repoPath := setupReleaseRepo(t)

	// Remove the marker from the citation file, committed so the tree is clean
	cffPath := filepath.Join(repoPath, "CITATION.cff")
	if err := os.WriteFile(cffPath, []byte("cff-version: 1.2.0\ntitle: CountESS\n"), 0644); err != nil {
		t.Fatalf("Failed to rewrite citation file: %v", err)
	}
	for _, args := range [][]string{
		{"-C", repoPath, "add", "CITATION.cff"},
		{"-C", repoPath, "commit", "-m", "Drop version from citation"},
	} {
		if err := exec.Command("git", args...).Run(); err != nil {
			t.Fatalf("git %v failed: %v", args, err)
		}
	}

	out, code := runTool(t, repoPath, "1.2.3")
	if code == 0 {
		t.Fatalf("Expected the run to fail, got success\n%s", out)
	}
	if !strings.Contains(out, "CITATION.cff") {
		t.Errorf("Expected the error to name the offending file, got %q", out)
	}

	// Earlier rewrites stay in place; no rollback
	if !strings.Contains(readFile(t, repoPath, "README.md"), "# CountESS 1.2.3") {
		t.Error("Expected the readme rewrite to remain after the failure")
	}

	// No tag is created
	if tags := gitOutput(t, repoPath, "tag", "-l"); tags != "" {
		t.Errorf("Expected no tags, got %q", tags)
	}
}

func TestValidateFlagRejectsMalformedVersion(t *testing.T) {
	skipUnlessEnabled(t)

	repoPath := setupReleaseRepo(t)

	out, code := runTool(t, repoPath, "-validate", "banana")
	if code == 0 {
		t.Fatalf("Expected validation to fail, got success\n%s", out)
	}
	if strings.Contains(readFile(t, repoPath, "README.md"), "banana") {
		t.Error("Expected no file modification after failed validation")
	}

	// Without -validate the same token is accepted (permissive default)
	out, code = runTool(t, repoPath, "banana")
	if code != 0 {
		t.Fatalf("Expected the permissive default to accept the token, got %d\n%s", code, out)
	}
	if !strings.Contains(readFile(t, repoPath, "README.md"), "# CountESS banana") {
		t.Error("Expected the opaque token to be substituted verbatim")
	}
}

func TestCustomTargetsFile(t *testing.T) {
	skipUnlessEnabled(t)

	repoPath := setupReleaseRepo(t)

	targetsYAML := `targets:
  - name: readme heading
    path: README.md
    pattern: '^# CountESS(\s.*)?$'
    replace: '# CountESS %s'
`
	if err := os.WriteFile(filepath.Join(repoPath, ".countess-release.yml"), []byte(targetsYAML), 0644); err != nil {
		t.Fatalf("Failed to write targets file: %v", err)
	}
	for _, args := range [][]string{
		{"-C", repoPath, "add", ".countess-release.yml"},
		{"-C", repoPath, "commit", "-m", "Add release targets"},
	} {
		if err := exec.Command("git", args...).Run(); err != nil {
			t.Fatalf("git %v failed: %v", args, err)
		}
	}

	out, code := runTool(t, repoPath, "2.0.0")
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d\n%s", code, out)
	}

	// Only the configured target changes
	if !strings.Contains(readFile(t, repoPath, "README.md"), "# CountESS 2.0.0") {
		t.Error("Expected the configured target to be rewritten")
	}
	if strings.Contains(readFile(t, repoPath, "countess/__init__.py"), "2.0.0") {
		t.Error("Expected unconfigured files to stay untouched")
	}

	touched := gitOutput(t, repoPath, "show", "--name-only", "--pretty=format:", "HEAD")
	if strings.TrimSpace(touched) != "README.md" {
		t.Errorf("Expected the commit to touch only README.md, got %q", touched)
	}
}
