package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Subcommand error handling
// ---------------------------------------------------------------------------

func TestRender_ExtraArgs(t *testing.T) {
	_, _, err := executeCommand("render", "a", "b")
	require.Error(t, err)
}

func TestFormats_ExtraArgs(t *testing.T) {
	_, _, err := executeCommand("formats", "extra")
	require.Error(t, err)
}

func TestWatch_NoArgs(t *testing.T) {
	_, _, err := executeCommand("watch")
	require.Error(t, err)
}

func TestWatch_UnknownFormat(t *testing.T) {
	// The format is resolved before the watcher starts, so the script
	// file does not need to exist.
	_, _, err := executeCommand("watch", "--format", "bogus", "nonexistent.ofs")
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, err.Error(), "unknown output format")
}

// ---------------------------------------------------------------------------
// Help text
// ---------------------------------------------------------------------------

func TestRender_Help(t *testing.T) {
	stdout, _, err := executeCommand("render", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Render reads an event script")
	assert.Contains(t, stdout, "--format")
	assert.Contains(t, stdout, "--check")
}

func TestFormats_Help(t *testing.T) {
	stdout, _, err := executeCommand("formats", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "List every output format")
}

func TestWatch_Help(t *testing.T) {
	stdout, _, err := executeCommand("watch", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "re-renders it whenever")
	assert.Contains(t, stdout, "--debounce")
}

// ---------------------------------------------------------------------------
// Completion command
// ---------------------------------------------------------------------------

func TestCompletion_Bash(t *testing.T) {
	stdout, _, err := executeCommand("completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, stdout, "bash completion")
}

func TestCompletion_Zsh(t *testing.T) {
	stdout, _, err := executeCommand("completion", "zsh")
	require.NoError(t, err)
	assert.NotEmpty(t, stdout)
}

func TestCompletion_Fish(t *testing.T) {
	stdout, _, err := executeCommand("completion", "fish")
	require.NoError(t, err)
	assert.Contains(t, stdout, "fish")
}

func TestCompletion_PowerShell(t *testing.T) {
	stdout, _, err := executeCommand("completion", "powershell")
	require.NoError(t, err)
	assert.NotEmpty(t, stdout)
}

func TestCompletion_InvalidShell(t *testing.T) {
	_, _, err := executeCommand("completion", "invalid")
	require.Error(t, err)
}

func TestCompletion_NoArgs(t *testing.T) {
	_, _, err := executeCommand("completion")
	require.Error(t, err)
}
