package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazu/foilworks/pkg/reynolds"
)

var reynoldsCmd = &cobra.Command{
	Use:   "reynolds",
	Short: "Compute a chord Reynolds number",
	Long: `Computes Re = V·c/ν, or ρ·V·c/μ when --nu is not given.

Examples:
  foilworks reynolds --velocity 20 --chord 0.25 --nu 1.46e-5
  foilworks reynolds --velocity 20 --chord 0.25 --rho 1.225 --mu 1.81e-5`,
	RunE: runReynolds,
}

var reynoldsV, reynoldsC, reynoldsRho, reynoldsMu, reynoldsNu float64

func init() {
	f := reynoldsCmd.Flags()
	f.Float64Var(&reynoldsV, "velocity", 0, "Free-stream velocity [m/s]")
	f.Float64Var(&reynoldsC, "chord", 0, "Chord length [m]")
	f.Float64Var(&reynoldsRho, "rho", 0, "Density [kg/m^3]")
	f.Float64Var(&reynoldsMu, "mu", 0, "Dynamic viscosity [Pa·s]")
	f.Float64Var(&reynoldsNu, "nu", 0, "Kinematic viscosity [m^2/s]")
	_ = reynoldsCmd.MarkFlagRequired("velocity")
	_ = reynoldsCmd.MarkFlagRequired("chord")
}

func runReynolds(cmd *cobra.Command, args []string) error {
	in := reynolds.Input{V: reynoldsV, C: reynoldsC}
	flags := cmd.Flags()
	if flags.Changed("rho") {
		in.Rho = reynolds.Float(reynoldsRho)
	}
	if flags.Changed("mu") {
		in.Mu = reynolds.Float(reynoldsMu)
	}
	if flags.Changed("nu") {
		in.Nu = reynolds.Float(reynoldsNu)
	}

	re, err := reynolds.Compute(in)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Re = %.6g\n", re)
	return nil
}
