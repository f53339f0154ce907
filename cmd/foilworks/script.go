package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chazu/foilworks/pkg/design"
	"github.com/chazu/foilworks/pkg/engine"
	"github.com/chazu/foilworks/pkg/kernel/sdfx"
	"github.com/chazu/foilworks/pkg/tessellate"
)

var (
	scriptMesh  bool
	scriptWing  bool
	scriptCells int
)

var scriptCmd = &cobra.Command{
	Use:   "script [file]",
	Short: "Evaluate a wing design script",
	Long: `Evaluates a Lisp design script and prints its sections. Use "-" to read
the script from stdin.

With --mesh every section is tessellated and its triangle count printed;
--wing unions all sections into a single mesh instead.

Example script:
  (def root (naca "2412"))
  (section "root" root :chord 0.30 :span 0.50)
  (section "tip"  (naca4 :t 0.10) :station 0.50 :chord 0.18 :span 0.50 :twist -2)`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

func init() {
	scriptCmd.Flags().BoolVar(&scriptMesh, "mesh", false, "Tessellate each section")
	scriptCmd.Flags().BoolVar(&scriptWing, "wing", false, "Tessellate the union of all sections")
	scriptCmd.Flags().IntVar(&scriptCells, "cells", 0, "Marching cubes resolution (default mesh.cells)")
}

func runScript(cmd *cobra.Command, args []string) error {
	source, err := readSource(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}

	lib, err := loadLibrary()
	if err != nil {
		return err
	}
	eng := engine.NewEngine(
		engine.WithTimeout(cfg.GetScriptTimeout()),
		engine.WithBaseLibrary(lib),
		engine.WithMaxPoints(cfg.Limits.MaxPoints),
		engine.WithLogger(logger),
	)
	res, err := eng.EvaluateFull(source)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(res.Errors) > 0 {
		for _, e := range res.Errors {
			fmt.Fprintf(out, "error: %s\n", e.Error())
		}
		return fmt.Errorf("script failed with %d error(s)", len(res.Errors))
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(out, "warning: %s: %s\n", w.Section, w.Message)
	}
	printSections(out, res.Design)

	if !scriptMesh && !scriptWing {
		return nil
	}
	cells := cfg.Mesh.Cells
	if scriptCells > 0 {
		cells = scriptCells
	}
	k := sdfx.New(sdfx.WithMeshCells(cells))
	if scriptWing {
		mesh, err := tessellate.Wing(res.Design, k, "wing")
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "wing: %d triangles\n", mesh.TriangleCount())
		return nil
	}

	meshes, err := tessellate.Tessellate(res.Design, k)
	if err != nil {
		return err
	}
	for _, m := range meshes {
		fmt.Fprintf(out, "%s: %d triangles\n", m.SectionName, m.TriangleCount())
	}
	logger.Debug("tessellated design", zap.Int("meshes", len(meshes)))
	return nil
}

func readSource(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read script: %w", err)
	}
	return string(data), nil
}

func printSections(w io.Writer, d *design.Design) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SECTION\tAIRFOIL\tSTATION\tCHORD\tTWIST\tSPAN\tID")
	for _, s := range d.Ordered() {
		fmt.Fprintf(tw, "%s\t%s\t%g\t%g\t%g\t%g\t%s\n",
			s.Name, s.Airfoil.Name, s.Station, s.Chord, s.Twist, s.Span, s.ID.Short())
	}
	tw.Flush()
}
