package e2e_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build binary before running tests
	dir, err := os.MkdirTemp("", "hackcheck-e2e")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	binaryPath = filepath.Join(dir, "hackcheck")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/hackcheck")
	if out, err := cmd.CombinedOutput(); err != nil {
		panic("build failed: " + string(out))
	}

	os.Exit(m.Run())
}

func run(t *testing.T, home string, args ...string) (string, int) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HACKCHECK_HOME="+home)
	out, err := cmd.CombinedOutput()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
	}
	return string(out), exitCode
}

func TestE2E_Version(t *testing.T) {
	out, code := run(t, t.TempDir(), "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "hackcheck")
}

func TestE2E_Help(t *testing.T) {
	out, code := run(t, t.TempDir(), "--help")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "validate")
	assert.Contains(t, out, "batch")
	assert.Contains(t, out, "config")
}

func TestE2E_ConfigLifecycle(t *testing.T) {
	home := t.TempDir()

	out, code := run(t, home, "config", "create", "winter-hack",
		"--start", "2026-01-10", "--end", "2026-01-12")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "winter-hack")

	out, code = run(t, home, "config", "list")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "winter-hack")

	out, code = run(t, home, "config", "show", "winter-hack")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "name: winter-hack")
}

func TestE2E_RulesLifecycle(t *testing.T) {
	home := t.TempDir()

	out, code := run(t, home, "rules", "list")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "hardcoded_credentials")

	out, code = run(t, home, "rules", "add", "no_exec", `exec\(`, "-s", "high")
	require.Equal(t, 0, code, out)

	out, code = run(t, home, "rules", "list")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "no_exec")

	out, code = run(t, home, "rules", "remove", "no_exec")
	require.Equal(t, 0, code, out)
}

func TestE2E_ValidateWithoutWindowFails(t *testing.T) {
	_, code := run(t, t.TempDir(), "validate", "https://github.com/owner/repo")
	assert.NotEqual(t, 0, code)
}

func TestE2E_UnknownCommand(t *testing.T) {
	_, code := run(t, t.TempDir(), "frobnicate")
	assert.NotEqual(t, 0, code)
}
