package main

import (
	"fmt"

	"github.com/fine-structures/klcells/klcells"
	"github.com/fine-structures/klcells/libkl"
	"github.com/fine-structures/klcells/libkl/coxeter"
	"github.com/spf13/cobra"
)

var jmultFlags struct {
	typeName string
	u        string
	w        string
	segments bool
}

var jmultCmd = &cobra.Command{
	Use:   "jmult",
	Short: "Multiply t_u t_w in the subregular J-ring",
	RunE:  runJMult,
}

func init() {
	f := jmultCmd.Flags()
	f.StringVar(&jmultFlags.typeName, "type", "I2(inf)", "Coxeter type")
	f.StringVar(&jmultFlags.u, "u", "", "left word (required)")
	f.StringVar(&jmultFlags.w, "w", "", "right word (required)")
	f.BoolVar(&jmultFlags.segments, "segments", false, "also print the dihedral segments of u")

	_ = jmultCmd.MarkFlagRequired("u")
	_ = jmultCmd.MarkFlagRequired("w")
}

func runJMult(cmd *cobra.Command, _ []string) error {
	M, err := coxeter.ParseType(jmultFlags.typeName)
	if err != nil {
		return err
	}
	words, err := libkl.ParseWords([]string{jmultFlags.u, jmultFlags.w}, M.Rank())
	if err != nil {
		return err
	}
	u, w := words[0], words[1]

	out := cmd.OutOrStdout()
	if jmultFlags.segments {
		fmt.Fprintf(out, "segments of %v: %v\n", u, libkl.DihedralSegments(u))
	}
	prod, err := libkl.JProduct(klcells.Term(u, klcells.LaurentOne), klcells.Term(w, klcells.LaurentOne), M)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, prod.String())
	return nil
}
