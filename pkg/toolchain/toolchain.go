// Package toolchain runs the external synthesis/compilation tools
// bscompile shells out to at stage boundaries: yosys (BLIF synthesis from
// RTL), ABC (logic optimization), and the host C compiler (building the
// emitted micro-program into an object, for --to-stage asm runs that want
// a linkable result). Grounded on pkg/gpu/cuda.go's exec.Command/pipe
// handling, simplified here to one-shot blocking Run calls rather than a
// persistent server process — every stage in spec §6's pipeline is a
// single batch invocation, not a query/response loop.
package toolchain

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/pimlab/bscompile/pkg/bserr"
)

// Tool names the external program a Stage invokes.
type Tool struct {
	Name string
	Path string
	Args []string
}

// Run executes the tool, capturing stdout/stderr, and returns a
// *bserr.ToolError describing a non-zero exit.
func Run(ctx context.Context, t Tool) (stdout string, err error) {
	cmd := exec.CommandContext(ctx, t.Path, t.Args...)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	if runErr := cmd.Run(); runErr != nil {
		exitCode := -1
		if ee, ok := runErr.(*exec.ExitError); ok {
			exitCode = ee.ExitCode()
		}
		return outBuf.String(), &bserr.ToolError{Stage: t.Name, ExitCode: exitCode, Stderr: errBuf.String()}
	}
	return outBuf.String(), nil
}

// Yosys returns the Tool invocation synthesizing src (Verilog) into a
// flattened, technology-independent BLIF file at outBlif, via yosys's
// synth + write_blif script.
func Yosys(src, outBlif, topModule string) Tool {
	script := "read_verilog " + src + "; synth -top " + topModule + "; write_blif " + outBlif
	return Tool{Name: "yosys", Path: "yosys", Args: []string{"-p", script}}
}

// ABCOptimize returns the Tool invocation running ABC's standard
// combinational-optimization script over a BLIF file in place.
func ABCOptimize(blif string) Tool {
	script := "read_blif " + blif + "; resyn2; write_blif " + blif
	return Tool{Name: "abc", Path: "abc", Args: []string{"-c", script}}
}

// CC returns the Tool invocation compiling a generated C source file into
// an object file with the host C compiler.
func CC(src, outObj string) Tool {
	return Tool{Name: "cc", Path: "cc", Args: []string{"-c", "-O2", src, "-o", outObj}}
}
