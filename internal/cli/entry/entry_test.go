package entry

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/splitpanes/internal/cli/root"
	"github.com/regenrek/splitpanes/internal/runenv"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(runenv.ConfigDirEnv, t.TempDir())
	t.Setenv(runenv.StateDirEnv, t.TempDir())

	prevExiter := cli.OsExiter
	prevErrWriter := cli.ErrWriter
	cli.OsExiter = func(int) {}
	cli.ErrWriter = io.Discard
	t.Cleanup(func() {
		cli.OsExiter = prevExiter
		cli.ErrWriter = prevErrWriter
	})
}

func testDeps(out, errOut *bytes.Buffer) root.Dependencies {
	return root.Dependencies{
		Version: "test",
		Stdout:  out,
		Stderr:  errOut,
		Stdin:   strings.NewReader(""),
	}
}

func TestRunVersionFlagExitsZero(t *testing.T) {
	isolate(t)
	var out, errOut bytes.Buffer
	exit := run(context.Background(), []string{"splitpanes", "--version"}, testDeps(&out, &errOut))
	if exit != 0 {
		t.Fatalf("exit=%d stderr=%q", exit, errOut.String())
	}
	if !strings.Contains(out.String(), "splitpanes test") {
		t.Fatalf("stdout=%q", out.String())
	}
}

func TestRunVersionCommandWrites(t *testing.T) {
	isolate(t)
	var out, errOut bytes.Buffer
	exit := run(context.Background(), []string{"sp", "version"}, testDeps(&out, &errOut))
	if exit != 0 {
		t.Fatalf("exit=%d stderr=%q", exit, errOut.String())
	}
	if !strings.Contains(out.String(), "test") {
		t.Fatalf("stdout=%q", out.String())
	}
}

func TestRunReportsErrors(t *testing.T) {
	isolate(t)
	t.Chdir(t.TempDir())
	var out, errOut bytes.Buffer
	exit := run(context.Background(), []string{"splitpanes", "validate", "no-such-layout"}, testDeps(&out, &errOut))
	if exit != 1 {
		t.Fatalf("exit=%d", exit)
	}
	if !strings.HasPrefix(errOut.String(), "splitpanes: ") || !strings.Contains(errOut.String(), "not found") {
		t.Fatalf("stderr=%q", errOut.String())
	}
}

func TestRunJSONErrorUsesExitCode(t *testing.T) {
	isolate(t)
	t.Chdir(t.TempDir())
	var out, errOut bytes.Buffer
	exit := run(context.Background(), []string{"splitpanes", "--json", "validate", "no-such-layout"}, testDeps(&out, &errOut))
	if exit != 1 {
		t.Fatalf("exit=%d", exit)
	}
	if !strings.Contains(out.String(), `"ok":false`) {
		t.Fatalf("stdout=%q", out.String())
	}
	if errOut.Len() != 0 {
		t.Fatalf("stderr=%q", errOut.String())
	}
}
