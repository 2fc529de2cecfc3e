package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const directorDescription = `About the role
We are seeking a Director of Engineering to lead our platform organization.

Requirements:
- 10+ years of experience in software engineering
- Deep expertise with Python and Azure
- Hands-on background with Docker, Rust and Scala services
- Infrastructure as code using Terraform

Nice to have:
- Kubernetes`

// isolate runs the test in an empty directory with no credentials in the environment
func isolate(t *testing.T) string {
	t.Helper()
	for _, env := range []string{"GEMINI_API_KEY", "DATABASE_URL", "REDIS_URL", "EVIDENCE_DATABASE_URL", "FIT_AGENT_LLM_API_KEY"} {
		t.Setenv(env, "")
	}
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

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

// execute runs the CLI in-process and returns what it wrote to stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}
