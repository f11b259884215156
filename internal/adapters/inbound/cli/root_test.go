package cli_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackcheck/hackcheck/internal/adapters/inbound/cli"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCmd(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "hackcheck dev (none)")
}

func TestConfigLifecycle(t *testing.T) {
	t.Setenv("HACKCHECK_HOME", t.TempDir())

	out, err := runCmd(t, "config", "create", "spring-jam",
		"--start", "2026-03-01", "--end", "2026-03-03",
		"--require", "python", "--max-team-size", "4")
	require.NoError(t, err)
	assert.Contains(t, out, `Saved config "spring-jam"`)
	assert.Contains(t, out, "2026-03-01")

	out, err = runCmd(t, "config", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "spring-jam")

	out, err = runCmd(t, "config", "show", "spring-jam")
	require.NoError(t, err)
	assert.Contains(t, out, "name: spring-jam")
	assert.Contains(t, out, "python")
}

func TestConfigCreate_RejectsBadDate(t *testing.T) {
	t.Setenv("HACKCHECK_HOME", t.TempDir())

	_, err := runCmd(t, "config", "create", "bad", "--start", "tomorrow", "--end", "2026-03-03")
	assert.Error(t, err)
}

func TestConfigList_Empty(t *testing.T) {
	t.Setenv("HACKCHECK_HOME", t.TempDir())

	out, err := runCmd(t, "config", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No stored configs.")
}

func TestRulesLifecycle(t *testing.T) {
	t.Setenv("HACKCHECK_HOME", t.TempDir())

	out, err := runCmd(t, "rules", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "hardcoded_credentials")
	assert.Contains(t, out, "default")
	assert.NotContains(t, out, "no_eval")

	out, err = runCmd(t, "rules", "add", "no_eval", `eval\(`, "-d", "Avoid eval", "-s", "high")
	require.NoError(t, err)
	assert.Contains(t, out, `Added rule "no_eval"`)

	out, err = runCmd(t, "rules", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "no_eval")
	assert.Contains(t, out, "custom")

	out, err = runCmd(t, "rules", "remove", "no_eval")
	require.NoError(t, err)
	assert.Contains(t, out, `Removed rule "no_eval"`)

	out, err = runCmd(t, "rules", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "no_eval")
}

func TestRulesAdd_RejectsInvalidPattern(t *testing.T) {
	t.Setenv("HACKCHECK_HOME", t.TempDir())

	_, err := runCmd(t, "rules", "add", "broken", "[unclosed")
	assert.Error(t, err)
}

func TestRulesRemove_UnknownRule(t *testing.T) {
	t.Setenv("HACKCHECK_HOME", t.TempDir())

	_, err := runCmd(t, "rules", "remove", "hardcoded_credentials")
	assert.Error(t, err, "default rules are not removable")
}

func TestTokenSet(t *testing.T) {
	t.Setenv("HACKCHECK_HOME", t.TempDir())

	out, err := runCmd(t, "token", "set", "ghp_notarealtoken", "-u", "judge")
	require.NoError(t, err)
	assert.Contains(t, out, `Stored token for "judge"`)
}

func TestValidateCommand_RequiresDates(t *testing.T) {
	t.Setenv("HACKCHECK_HOME", t.TempDir())

	_, err := runCmd(t, "validate", "https://github.com/owner/repo")
	assert.Error(t, err, "ad-hoc runs need --start and --end or a stored --config")
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"validate", "batch", "config", "rules", "token", "version", "mcp"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}
