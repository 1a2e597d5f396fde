package main

import (
	"fmt"

	"github.com/fine-structures/klcells/klcells"
	"github.com/fine-structures/klcells/libkl"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var multFlags struct {
	group string
	gen   int
	x     string
	word  string
	right bool
	tgen  bool
}

var multCmd = &cobra.Command{
	Use:   "mult",
	Short: "Multiply KL basis elements: c_s c_w, c_w c_s, c_x c_w, or T_s c_w",
	RunE:  runMult,
}

func init() {
	f := multCmd.Flags()
	f.StringVar(&multFlags.group, "group", "H4", "group name from the config, or a type such as H4 or A3")
	f.IntVar(&multFlags.gen, "gen", 0, "generator s")
	f.StringVar(&multFlags.x, "x", "", "left factor c_x (instead of --gen)")
	f.StringVar(&multFlags.word, "word", "", "word w (required)")
	f.BoolVar(&multFlags.right, "right", false, "compute c_w c_s")
	f.BoolVar(&multFlags.tgen, "t", false, "compute T_s c_w")

	_ = multCmd.MarkFlagRequired("word")
}

func runMult(cmd *cobra.Command, _ []string) error {
	eng, err := loadEngine(multFlags.group)
	if err != nil {
		return err
	}
	w, err := eng.ParseWord(multFlags.word)
	if err != nil {
		return err
	}

	var prod klcells.Combination
	switch {
	case multFlags.x != "":
		x, err := eng.ParseWord(multFlags.x)
		if err != nil {
			return err
		}
		prod, err = libkl.Product(eng, x, w)
		if err != nil {
			return err
		}
	case multFlags.gen < 1 || multFlags.gen > eng.Matrix().Rank():
		return errors.Wrapf(klcells.ErrBadGenerator, "--gen %d", multFlags.gen)
	case multFlags.right:
		prod, err = libkl.WTimesS(eng, w, klcells.Generator(multFlags.gen))
	case multFlags.tgen:
		prod, err = libkl.TsTimesCw(eng, klcells.Generator(multFlags.gen), w)
	default:
		prod, err = eng.STimesW(klcells.Generator(multFlags.gen), w)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), prod.String())
	return nil
}
