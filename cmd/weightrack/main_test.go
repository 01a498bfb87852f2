package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// runCommand executes one subcommand against a sqlite file in dir and
// returns what it printed.
func runCommand(t *testing.T, dir string, cmd *cobra.Command, args ...string) string {
	t.Helper()

	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("STORE_SQLITE_PATH", filepath.Join(dir, "weightrack.db"))
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	stdout, stderr = &out, io.Discard
	t.Cleanup(func() { stdout, stderr = os.Stdout, os.Stderr })

	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	if err := cmd.ExecuteContext(t.Context()); err != nil {
		t.Fatalf("%s %v: %v", cmd.Name(), args, err)
	}
	return out.String()
}

func TestSetLogStats(t *testing.T) {
	dir := t.TempDir()

	if got := runCommand(t, dir, setCmd(), "start-date", "2020-11-12"); got != "startDate = 2020-11-12\n" {
		t.Errorf("set start-date output = %q", got)
	}
	runCommand(t, dir, setCmd(), "starting_weight", "180")
	runCommand(t, dir, setCmd(), "goal-weight", "190")

	if got := runCommand(t, dir, logCmd(), "0", "weights", "sun", "182"); got != "week 1 weights Sun = 182\n" {
		t.Errorf("log output = %q", got)
	}

	stats := runCommand(t, dir, statsCmd())
	for _, want := range []string{"Start Date", "11/12/2020", "Goal Progress"} {
		if !strings.Contains(stats, want) {
			t.Errorf("stats output missing %q:\n%s", want, stats)
		}
	}
}

func TestExportImport(t *testing.T) {
	src := t.TempDir()
	runCommand(t, src, setCmd(), "tdee", "2500")
	blob := runCommand(t, src, exportCmd())
	if !strings.Contains(blob, `"tdee":2500`) {
		t.Fatalf("export output = %q", blob)
	}

	file := filepath.Join(t.TempDir(), "backup.json")
	if err := os.WriteFile(file, []byte(blob), 0o600); err != nil {
		t.Fatal(err)
	}

	dst := t.TempDir()
	if got := runCommand(t, dst, importCmd(), file); got != "Imported 3 weeks\n" {
		t.Errorf("import output = %q", got)
	}
	if got := runCommand(t, dst, exportCmd()); got != blob {
		t.Errorf("round trip mismatch:\nwant %q\ngot  %q", blob, got)
	}
}

func TestImportRejectsInvalidBlob(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(file, []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("STORE_SQLITE_PATH", filepath.Join(dir, "weightrack.db"))
	stdout, stderr = io.Discard, io.Discard
	t.Cleanup(func() { stdout, stderr = os.Stdout, os.Stderr })

	cmd := importCmd()
	cmd.SetArgs([]string{file})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	if err := cmd.ExecuteContext(t.Context()); err == nil {
		t.Error("import of invalid blob succeeded")
	}
}
