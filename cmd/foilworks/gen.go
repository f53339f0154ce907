package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chazu/foilworks/pkg/airfoil"
	"github.com/chazu/foilworks/pkg/export"
)

var (
	genPoints int
	genOpenTE bool
	genFormat string
	genChord  float64
	genOutput string
	genOutDir string
)

const genLong = `Generates one airfoil per designation and writes it in the chosen format.

Designations may carry a NACA prefix: 2412, "NACA 23012", 63A012, 64-010.
5-digit camber positions: %v
6-series families: %v

Examples:
  foilworks gen 2412
  foilworks gen 2412 --format dxf --chord 250 -o root.dxf
  foilworks gen 0012 4415 63A010 --format dat --dir ./foils`

var genCmd = &cobra.Command{
	Use:   "gen [designation...]",
	Short: "Generate airfoil coordinates from NACA designations",
	Long:  fmt.Sprintf(genLong, airfoil.FiveDigitPositions(), airfoil.SixSeriesFamilies()),
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGen,
}

func init() {
	genCmd.Flags().IntVarP(&genPoints, "points", "n", airfoil.DefaultPoints, "Chordwise stations per surface")
	genCmd.Flags().BoolVar(&genOpenTE, "open-te", false, "Keep the finite trailing edge thickness")
	genCmd.Flags().StringVarP(&genFormat, "format", "f", "dat", fmt.Sprintf("Output format %v", export.Formats()))
	genCmd.Flags().Float64Var(&genChord, "chord", export.DefaultChord, "Chord length for dxf and svg outlines")
	genCmd.Flags().StringVarP(&genOutput, "output", "o", "", "Output file (single designation only, default stdout)")
	genCmd.Flags().StringVar(&genOutDir, "dir", "", "Write each airfoil to this directory using its default file name")
}

func runGen(cmd *cobra.Command, args []string) error {
	f, err := export.ParseFormat(genFormat)
	if err != nil {
		return err
	}
	if genOutput != "" && len(args) > 1 {
		return fmt.Errorf("--output takes a single designation, got %d (use --dir)", len(args))
	}
	if limit := cfg.Limits.MaxPoints; genPoints > limit {
		return fmt.Errorf("%w: n=%d exceeds the limit of %d", airfoil.ErrInvalidParameter, genPoints, limit)
	}

	// Only 6-series sections need the base shapes.
	var lib airfoil.BaseLibrary
	designations := make([]airfoil.Designation, len(args))
	for i, arg := range args {
		d, err := airfoil.ParseDesignation(arg)
		if err != nil {
			return err
		}
		designations[i] = d
		if d.Family == airfoil.Family6Series && lib == nil {
			if lib, err = loadLibrary(); err != nil {
				return err
			}
		}
	}

	for _, d := range designations {
		foil, err := airfoil.Generate(d, lib, airfoil.WithPoints(genPoints), airfoil.WithClosedTE(!genOpenTE))
		if err != nil {
			return err
		}
		if err := writeFoil(cmd.OutOrStdout(), foil, f); err != nil {
			return err
		}
		logger.Debug("generated airfoil",
			zap.String("name", foil.Name),
			zap.String("id", foil.ID),
			zap.Int("points", len(foil.Points)),
		)
	}
	return nil
}

func writeFoil(stdout io.Writer, foil *airfoil.Airfoil, f export.Format) error {
	path := genOutput
	if genOutDir != "" {
		if err := os.MkdirAll(genOutDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		path = filepath.Join(genOutDir, export.Filename(foil, f))
	}
	if path == "" {
		return export.Write(stdout, foil, f, export.WithChord(genChord))
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := export.Write(out, foil, f, export.WithChord(genChord)); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
