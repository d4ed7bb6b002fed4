package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(ctx context.Context, args ...string) (stdout, stderr string, err error) {
	var out, errOut bytes.Buffer
	cmd := newRootCommand("test", "abc123", "today")
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

func TestRoutesCommand(t *testing.T) {
	out, _, err := execute(context.Background(), "routes")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, []string{"METHODS", "PATH", "NAME"}, strings.Fields(lines[0]))
	var rows [][]string
	for _, line := range lines[1:] {
		rows = append(rows, strings.Fields(line))
	}
	assert.Contains(t, rows, []string{"GET", "/mapping/users/{userId}", "users-find"})
	assert.Contains(t, rows, []string{"*", "/headers", "headers"})
	assert.Contains(t, out, "request-param-default")
	assert.Len(t, lines, 21)
}

func TestRoutesCommandVerbose(t *testing.T) {
	out, _, err := execute(context.Background(), "routes", "-v")
	require.NoError(t, err)

	assert.Contains(t, out, `username=form:username(string)[default "guest"]`)
	assert.Contains(t, out, "username=form:username(string)!")
	assert.Contains(t, out, "headerMap=header:headerMap(multimap)")
}

func TestServeCommandInvalidConfig(t *testing.T) {
	t.Run("flags", func(t *testing.T) {
		_, _, err := execute(context.Background(), "serve", "--log-level", "loud", "--log-format", "xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log_level")
		assert.Contains(t, err.Error(), "log_format")
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := execute(context.Background(), "serve", "--config", filepath.Join(t.TempDir(), "nope.toml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config:")
	})

	t.Run("file is overridden by flags", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "reflector.yaml")
		require.NoError(t, os.WriteFile(path, []byte("log_level: loud\n"), 0o644))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := execute(ctx, "serve", "--config", path, "--log-level", "debug", "--addr", "127.0.0.1:0")
		assert.NoError(t, err)
	})
}

func TestServeCommandStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, stderr, err := execute(ctx, "serve", "--addr", "127.0.0.1:0", "--log-format", "json")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"server started"`)
	assert.Contains(t, stderr, `"msg":"server shutting down"`)
}

func TestVersion(t *testing.T) {
	out, _, err := execute(context.Background(), "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "test (commit: abc123, built: today)")
}
