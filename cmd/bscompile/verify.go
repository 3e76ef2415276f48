package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pimlab/bscompile/pkg/circuit"
	"github.com/pimlab/bscompile/pkg/xform"
)

func newVerifyCmd() *cobra.Command {
	var (
		pimMode  string
		numBits  int
		implType string
	)

	cmd := &cobra.Command{
		Use:   "verify <blif-file>",
		Short: "Run the transformation pipeline and check it against the DAG verifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := circuit.ParseMode(pimMode)
			if err != nil {
				return err
			}
			m, err := parseBlifFile(args[0])
			if err != nil {
				return err
			}
			before, err := circuit.FromBLIF(m, mode)
			if err != nil {
				return err
			}
			after, err := circuit.FromBLIF(m, mode)
			if err != nil {
				return err
			}

			var passes []xform.Pass
			if mode == circuit.ModeAnalog {
				passes = xform.Analog(xform.AnalogOptions{})
			} else {
				passes = xform.Digital(implType == "maj")
			}
			if err := xform.Run(after, passes); err != nil {
				return err
			}
			if err := circuit.CompareBefore(before, after, numBits); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "ok: %s verified across all canonical vectors (%s, %d bits)\n", args[0], mode, numBits)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&pimMode, "pim-mode", "digital", "target substrate: digital or analog")
	flags.IntVar(&numBits, "num-bits", 16, "bit-serial cycle count to simulate per canonical vector")
	flags.StringVar(&implType, "impl-type", "direct", "gate implementation strategy: direct or maj")

	return cmd
}
