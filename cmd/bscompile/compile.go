package main

import (
	"context"

	"github.com/spf13/cobra"
)

// cmdContext is the context passed to every toolchain.Run call from this
// command package. Runs are one-shot and non-interactive, so a bare
// background context is enough; it exists as a single seam the tests and
// a future --timeout flag can hook into.
func cmdContext() context.Context { return context.Background() }

func newCompileCmd() *cobra.Command {
	var opts compileOptions

	cmd := &cobra.Command{
		Use:   "compile <input>",
		Short: "Lower an input through the stage range [--from-stage, --to-stage]",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			return runCompile(opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.FromStage, "from-stage", "blif", "starting stage: verilog, blif, c, asm, pim, test")
	flags.StringVar(&opts.ToStage, "to-stage", "pim", "ending stage: verilog, blif, c, asm, pim, test")
	flags.IntVar(&opts.NumRegs, "num-regs", 8, "number of concrete PIM registers available to the scheduler (2..19)")
	flags.StringVar(&opts.PimMode, "pim-mode", "digital", "target substrate: digital or analog")
	flags.StringVar(&opts.TopModule, "top-module", "top", "top-level module name")
	flags.StringVar(&opts.ImplType, "impl-type", "direct", "gate implementation strategy: direct or maj (maj3-normalized)")
	flags.BoolVar(&opts.GenBitwise, "gen-bitwise", false, "emit the plain bitwise-C micro-program instead of the inline-asm one")
	flags.StringVar(&opts.Output, "output", "", "output basename (defaults to the input file's basename)")
	flags.StringVar(&opts.Outdir, "outdir", ".", "directory for intermediate and final output files")
	flags.BoolVar(&opts.GenRunSh, "gen-run-sh", false, "also write a shell script reproducing the external tool invocations")

	return cmd
}
