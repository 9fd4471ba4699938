package version

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/regenrek/splitpanes/internal/cli/root"
)

func TestRunVersionWrites(t *testing.T) {
	var out bytes.Buffer
	ctx := root.CommandContext{
		Deps: root.Dependencies{Version: "v1.4.0", AppName: "splitpanes"},
		Out:  &out,
		Cmd:  &cli.Command{Name: "version"},
	}
	if err := runVersion(ctx); err != nil {
		t.Fatalf("runVersion() error: %v", err)
	}
	if !strings.Contains(out.String(), "splitpanes 1.4.0 (layout format 1.0)") {
		t.Fatalf("out=%q", out.String())
	}
}

func TestRunVersionJSONKeepsDevVersion(t *testing.T) {
	var out bytes.Buffer
	ctx := root.CommandContext{
		Deps: root.Dependencies{Version: "dev"},
		Out:  &out,
		JSON: true,
		Cmd:  &cli.Command{Name: "version"},
	}
	if err := runVersion(ctx); err != nil {
		t.Fatalf("runVersion() error: %v", err)
	}
	var payload struct {
		Data struct {
			Version string `json:"version"`
		} `json:"data"`
	}
	if err := json.Unmarshal(out.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.Data.Version != "dev" {
		t.Fatalf("version = %q", payload.Data.Version)
	}
}
