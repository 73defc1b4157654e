package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandCarriesDirAndEnv(t *testing.T) {
	dir := t.TempDir()
	cmd := command(context.Background(), procConfig{
		Name: "build",
		Args: []string{"go", "version"},
		Dir:  dir,
		Env:  []string{"GOOS=js", "GOARCH=wasm"},
	})
	assert.Equal(t, dir, cmd.Dir)
	assert.Equal(t, []string{"go", "version"}, cmd.Args)
	assert.Contains(t, cmd.Env, "GOOS=js")
	assert.Contains(t, cmd.Env, "GOARCH=wasm")
}

func TestCommandInheritsEnvironmentByDefault(t *testing.T) {
	cmd := command(context.Background(), procConfig{Name: "server", Args: []string{"go", "version"}})
	assert.Nil(t, cmd.Env)
}

func TestRunAllNeedsProcesses(t *testing.T) {
	assert.Error(t, runAll(context.Background(), nil))
}

func TestRunAllReportsFailedProcess(t *testing.T) {
	err := runAll(context.Background(), []procConfig{{
		Name: "broken",
		Args: []string{"go", "no-such-subcommand"},
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestRunAllReturnsWhenProcessesFinish(t *testing.T) {
	assert.NoError(t, runAll(context.Background(), []procConfig{{
		Name: "version",
		Args: []string{"go", "version"},
	}}))
}
