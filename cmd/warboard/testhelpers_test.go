// Copyright 2026 The Warboard Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rosterCSV = `Name,Total Kills,T4 Kills,T5 Kills,Total Deads,Requirements
Alice,1000,10,5,20,50%
Bob,2500,20,10,40,0.75
Cara,1500,0,1,5,100
`

// testEnv is an isolated working area: a roster file, an empty config
// directory and a private global config home.
type testEnv struct {
	dir    string
	roster string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	resetAllFlags()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir := t.TempDir()
	env := &testEnv{dir: dir, roster: filepath.Join(dir, "roster.csv")}
	writeTestFile(t, dir, "roster.csv", rosterCSV)
	return env
}

// run executes the root command with --config-dir pointed at the env and
// returns stdout, stderr and the error.
func (e *testEnv) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd, stdout, stderr := newTestCmd()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config-dir", e.dir}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func newTestCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	// rootCmd is shared across tests; only its I/O is swapped.
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd, stdout, stderr
}

// resetAllFlags restores every flag of every command to its default, since
// cobra keeps parsed values on the package-level commands between runs.
func resetAllFlags() {
	resetCommandFlags(rootCmd)
	resetConfigFlags()
}

func resetCommandFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetCommandFlags(sub)
	}
}

// writeTestFile creates a file (and any necessary parent directories) under dir.
func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// requireExitCode asserts err carries code.
func requireExitCode(t *testing.T, err error, code int) *exitCodeError {
	t.Helper()
	require.Error(t, err)
	var ece *exitCodeError
	require.True(t, errors.As(err, &ece), "expected exitCodeError, got %T: %v", err, err)
	assert.Equal(t, code, ece.ExitCode())
	return ece
}
