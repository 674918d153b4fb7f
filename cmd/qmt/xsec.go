package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/spf13/cobra"

	"github.com/tomlaeven/qmt/pkg/geometry"
	"github.com/tomlaeven/qmt/pkg/script"
	sdfxsolid "github.com/tomlaeven/qmt/pkg/solid/sdfx"
	"github.com/tomlaeven/qmt/pkg/xsection"
)

var xsecCmd = &cobra.Command{
	Use:   "xsec <script.lisp> <cross-section>",
	Short: "Extract a 2D cross-section geometry",
	Long: `Evaluates a geometry script, extracts the named cross-section and
writes the resulting 2D geometry as JSON to stdout or to --out.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runXsec(cmd, args[0], args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "xsec failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	xsecCmd.Flags().String("out", "", "Output file (default stdout)")
	xsecCmd.Flags().String("lunit", geometry.DefaultLengthUnit, "Length unit recorded in the output")
	rootCmd.AddCommand(xsecCmd)
}

// geo2dJSON is the serialized form of an extracted 2D geometry.
type geo2dJSON struct {
	LengthUnit string     `json:"lunit"`
	BuildOrder []string   `json:"build_order"`
	Parts      []partJSON `json:"parts"`
}

type partJSON struct {
	Name     string       `json:"name"`
	Exterior [][2]float64 `json:"exterior"`
	Holes    [][][2]float64 `json:"holes,omitempty"`
}

func runXsec(cmd *cobra.Command, path, xsecName string) error {
	log := newLogger(cmd)

	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	eng := script.NewEngine()
	res, evalErrs, err := eng.Evaluate(string(source))
	if err != nil {
		return err
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", path, e.Error())
		}
		return fmt.Errorf("%d script error(s)", len(evalErrs))
	}

	lunit, _ := cmd.Flags().GetString("lunit")
	svc := sdfxsolid.NewService(res.Solids)
	g2, err := xsection.Extract(res.Geo, xsecName, svc, lunit)
	if err != nil {
		return err
	}
	log.Debug("cross-section extracted", "name", xsecName, "parts", g2.PartCount())

	out := geo2dJSON{
		LengthUnit: g2.LengthUnit(),
		BuildOrder: g2.BuildOrder(),
	}
	for _, name := range g2.PartBuildOrder() {
		p, err := g2.Part(name)
		if err != nil {
			return err
		}
		pj := partJSON{Name: name, Exterior: ringJSON(p.Coords())}
		for _, hole := range p.Holes() {
			n := len(hole)
			if n > 0 && hole[0] == hole[n-1] {
				hole = hole[:n-1]
			}
			pj.Holes = append(pj.Holes, ringJSON(hole))
		}
		out.Parts = append(out.Parts, pj)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if dest, _ := cmd.Flags().GetString("out"); dest != "" {
		return os.WriteFile(dest, data, 0o644)
	}
	_, err = os.Stdout.Write(data)
	return err
}

func ringJSON(pts []orb.Point) [][2]float64 {
	out := make([][2]float64, len(pts))
	for i, p := range pts {
		out[i] = [2]float64{p[0], p[1]}
	}
	return out
}
