package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

var (
	sampleJSON = filepath.Join("..", "..", "testdata", "datasets", "sample.json")
	sampleYAML = filepath.Join("..", "..", "testdata", "datasets", "sample.yaml")
	exampleCfg = filepath.Join("..", "..", "testdata", "settings", "example.yaml")
)

const fixedNow = "2024-06-15T12:00:00Z"

// resetFlags restores every flag to its default so commands can run
// repeatedly in one process.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the CLI in-process and returns everything written to stdout and stderr.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("JOBTRACK_SETTINGS", "")
	t.Setenv("JOBTRACK_LOG_FILE", "")
	t.Setenv("JOBTRACK_LOG_LEVEL", "ERROR")
	resetFlags(rootCmd)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func decodeOutput[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}
