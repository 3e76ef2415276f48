package toolchain

import (
	"context"
	"strings"
	"testing"

	"github.com/pimlab/bscompile/pkg/bserr"
)

func TestRunCapturesNonZeroExit(t *testing.T) {
	_, err := Run(context.Background(), Tool{Name: "false-tool", Path: "false"})
	if err == nil {
		t.Fatal("expected an error from a command that exits non-zero")
	}
	var toolErr *bserr.ToolError
	if !asToolError(err, &toolErr) {
		t.Fatalf("error = %v, want *bserr.ToolError", err)
	}
	if toolErr.Stage != "false-tool" {
		t.Errorf("ToolError.Stage = %q, want false-tool", toolErr.Stage)
	}
}

func TestRunCapturesStdout(t *testing.T) {
	out, err := Run(context.Background(), Tool{Name: "echo-tool", Path: "echo", Args: []string{"hello"}})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.TrimSpace(out) != "hello" {
		t.Errorf("stdout = %q, want hello", out)
	}
}

func TestYosysBuildsExpectedScript(t *testing.T) {
	tool := Yosys("top.v", "top.blif", "top")
	if tool.Path != "yosys" {
		t.Errorf("Yosys tool path = %q, want yosys", tool.Path)
	}
	joined := strings.Join(tool.Args, " ")
	if !strings.Contains(joined, "read_verilog top.v") || !strings.Contains(joined, "write_blif top.blif") {
		t.Errorf("Yosys args = %v, missing expected script fragments", tool.Args)
	}
}

func TestCCBuildsExpectedArgs(t *testing.T) {
	tool := CC("a.c", "a.o")
	joined := strings.Join(tool.Args, " ")
	if !strings.Contains(joined, "a.c") || !strings.Contains(joined, "a.o") {
		t.Errorf("CC args = %v, missing source/output", tool.Args)
	}
}

func asToolError(err error, target **bserr.ToolError) bool {
	te, ok := err.(*bserr.ToolError)
	if !ok {
		return false
	}
	*target = te
	return true
}
