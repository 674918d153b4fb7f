package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tomlaeven/qmt/pkg/script"
)

var evalCmd = &cobra.Command{
	Use:   "eval <script.lisp>",
	Short: "Evaluate a geometry script and report its contents",
	Long: `Evaluates a geometry script and prints a summary of the parts,
solids and cross-sections it defines. Exits nonzero on script errors.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runEval(cmd, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "eval failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, path string) error {
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

	log.Debug("script evaluated", "path", path)

	fmt.Printf("parts: %d\n", res.Geo.PartCount())
	for _, p := range res.Geo.Parts() {
		fmt.Printf("  %s  directive=%s domain=%s material=%s\n",
			p.Label, p.Directive, p.Domain, p.Material)
	}
	fmt.Printf("solids: %d\n", len(res.Solids))
	for name := range res.Solids {
		fmt.Printf("  %s\n", name)
	}
	names := res.Geo.CrossSectionNames()
	fmt.Printf("cross-sections: %d\n", len(names))
	for _, name := range names {
		cs, _ := res.Geo.CrossSection(name)
		fmt.Printf("  %s  axis=%s distance=%g fragments=%d\n",
			name, cs.Axis, cs.Distance, len(cs.Fragments))
	}
	return nil
}
