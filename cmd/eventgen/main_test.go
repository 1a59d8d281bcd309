package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRootCmd_Generates(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "t.yaml")
	out := filepath.Join(dir, "zz.go")
	table := "package: events\ngroups:\n  - name: g\n    events:\n      - {name: click, accessor: UntilClick, payload: MouseEvent}\n"
	if err := os.WriteFile(in, []byte(table), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	var stdout bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--in", in, "--out", out})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "1 events") {
		t.Errorf("unexpected output %q", stdout.String())
	}

	code, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(code), "func UntilClick(") {
		t.Error("generated file missing accessor")
	}
}

func TestRootCmd_DryRunAndCheckExclusive(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--dry-run", "--check"})
	if err := cmd.Execute(); err == nil {
		t.Error("expected error for mutually exclusive flags")
	}
}
