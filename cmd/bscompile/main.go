// Command bscompile lowers a synthesized Boolean-gate BLIF netlist into a
// PIM (Processing-in-Memory) micro-program: digital bit-serial C, or
// RISC-V-hosted inline assembly for either the digital or analog
// (Triple-Row-Activation) substrate.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bscompile",
		Short: "Lower BLIF netlists into PIM bit-serial micro-programs",
	}

	rootCmd.AddCommand(newCompileCmd())
	rootCmd.AddCommand(newVerifyCmd())
	rootCmd.AddCommand(newDumpCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
