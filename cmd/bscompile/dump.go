package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pimlab/bscompile/pkg/bserr"
	"github.com/pimlab/bscompile/pkg/circuit"
	"github.com/pimlab/bscompile/pkg/xform"
)

func newDumpCmd() *cobra.Command {
	var (
		pimMode  string
		format   string
		implType string
		raw      bool
	)

	cmd := &cobra.Command{
		Use:   "dump <blif-file>",
		Short: "Build (and optionally transform) a DAG and export it as JSON or DOT",
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
			d, err := circuit.FromBLIF(m, mode)
			if err != nil {
				return err
			}
			if !raw {
				var passes []xform.Pass
				if mode == circuit.ModeAnalog {
					passes = xform.Analog(xform.AnalogOptions{})
				} else {
					passes = xform.Digital(implType == "maj")
				}
				if err := xform.Run(d, passes); err != nil {
					return err
				}
			}

			switch format {
			case "json":
				return d.WriteJSON(os.Stdout)
			case "dot":
				return d.WriteDOT(os.Stdout)
			default:
				return &bserr.ConfigError{Option: "--format", Message: "must be json or dot"}
			}
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&pimMode, "pim-mode", "digital", "target substrate: digital or analog")
	flags.StringVar(&format, "format", "json", "output format: json or dot")
	flags.StringVar(&implType, "impl-type", "direct", "gate implementation strategy: direct or maj")
	flags.BoolVar(&raw, "raw", false, "skip the transformation pipeline and dump the DAG as built from BLIF")

	return cmd
}
