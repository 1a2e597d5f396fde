package main

import (
	"fmt"

	"github.com/fine-structures/klcells/klcells"
	"github.com/fine-structures/klcells/libkl"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"
)

var cellFlags struct {
	group   string
	seed    string
	side    string
	catalog string
	distInv bool
}

var cellCmd = &cobra.Command{
	Use:   "cell",
	Short: "Print the left, right, or two-sided cell of a seed",
	RunE:  runCell,
}

func init() {
	f := cellCmd.Flags()
	f.StringVar(&cellFlags.group, "group", "H4", "group name from the config, or a type such as H4 or A3")
	f.StringVar(&cellFlags.seed, "seed", "13", "seed word")
	f.StringVar(&cellFlags.side, "side", "left", "left, right, or two")
	f.StringVar(&cellFlags.catalog, "catalog", "", "catalog db path for caching cells")
	f.BoolVar(&cellFlags.distInv, "dist-inv", false, "also print the intersection and distinguished involution (left cells)")
}

func runCell(cmd *cobra.Command, _ []string) error {
	side, ok := klcells.ParseCellSide(cellFlags.side)
	if !ok {
		return errors.Errorf("unknown side %q", cellFlags.side)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	eng, err := libkl.NewEngine(groupSpec(&cfg, cellFlags.group), cfg.Limits)
	if err != nil {
		return err
	}
	seed, err := eng.ParseWord(cellFlags.seed)
	if err != nil {
		return err
	}
	seed, err = eng.Canonical(seed)
	if err != nil {
		return err
	}

	ctx := klcells.NewCatalogContext()
	defer func() {
		ctx.Close()
		<-ctx.Done()
	}()
	cat, err := openCatalog(ctx, &cfg, cellFlags.catalog)
	if err != nil {
		return err
	}

	var rec *klcells.CellRecord
	if cat != nil {
		rec, err = cat.GetCell(eng.Name(), side, seed)
		if err == nil {
			klog.V(1).Infof("%s %v cell of %v read from catalog", eng.Name(), side, seed)
		} else if !errors.Is(err, klcells.ErrCellNotFound) {
			return err
		}
	}

	if rec == nil {
		opts := eng.Opts
		opts.Side = side
		C, err := libkl.Cell(eng, seed, opts)
		if err != nil {
			return err
		}
		rec = klcells.NewCellRecord(eng.Name(), side, seed, C)
		rec.AValue = int32(libkl.AValue(eng.Matrix(), seed))
		if side == klcells.LeftCell && cellFlags.distInv {
			both, err := libkl.CellIntersection(eng, C)
			if err != nil {
				return err
			}
			d, err := libkl.DistinguishedInvolution(eng, both)
			if err != nil {
				return err
			}
			rec.SetIntersection(both)
			rec.SetDistInv(d)
		}
		if cat != nil && !cat.IsReadOnly() {
			if err = cat.PutCell(rec); err != nil {
				return err
			}
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %v cell of %v (%d elements):\n", eng.Name(), side, seed, len(rec.Elements))
	opts := klcells.DefaultPrintOpts
	opts.Label = seed.String()
	opts.Intersection = len(rec.Intersection) > 0
	return libkl.WriteCellReport(out, libkl.LeftCellReport{
		Elements:     rec.Words(),
		Intersection: rec.IntersectionWords(),
		DistInv:      rec.DistInvWord(),
	}, opts)
}
