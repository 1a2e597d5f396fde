package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fine-structures/klcells/klcells"
	"github.com/fine-structures/klcells/libkl"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var a2cellsFlags struct {
	groups   []string
	out      string
	catalog  string
	parallel int
	digits   bool
}

var a2cellsCmd = &cobra.Command{
	Use:   "a2cells",
	Short: "Partition the two-sided cell of a seed into left cells, for each group",
	Long: "For each group, computes the two-sided cell of the group's seed (13 by default), its left cells,\n" +
		"each left cell's intersection with its inverse, and each distinguished involution.\n" +
		"Groups are computed concurrently and written in the order given.  Without --group, a config group that\n" +
		"runs into a vertex or oracle limit is reported as skipped.",
	RunE: runA2Cells,
}

func init() {
	f := a2cellsCmd.Flags()
	f.StringSliceVar(&a2cellsFlags.groups, "group", nil, "groups to report (default: every group in the config)")
	f.StringVar(&a2cellsFlags.out, "out", "", "append the report to this file (default: stdout, or the config's report path)")
	f.StringVar(&a2cellsFlags.catalog, "catalog", "", "catalog db path to store the left cells in")
	f.IntVar(&a2cellsFlags.parallel, "parallel", 4, "max groups computed at once")
	f.BoolVar(&a2cellsFlags.digits, "digits", true, "print words as digit strings")
}

// a2Job is one group's report; each job has its own engine since engines are not safe for concurrent use.
type a2Job struct {
	spec   klcells.GroupSpec
	report *libkl.A2Report
	text   bytes.Buffer
}

func runA2Cells(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	names := a2cellsFlags.groups
	skipLimited := len(names) == 0
	if len(names) == 0 {
		for _, g := range cfg.Groups {
			names = append(names, g.Name)
		}
	}
	if len(names) == 0 {
		names = []string{"H3", "H4"}
	}
	jobs := make([]*a2Job, len(names))
	for i, name := range names {
		jobs[i] = &a2Job{spec: groupSpec(&cfg, name)}
	}

	printOpts := klcells.DefaultPrintOpts
	printOpts.Digits = a2cellsFlags.digits

	g, gCtx := errgroup.WithContext(context.Background())
	g.SetLimit(max(1, a2cellsFlags.parallel))
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			if gCtx.Err() != nil {
				return gCtx.Err()
			}
			eng, err := libkl.NewEngine(job.spec, cfg.Limits)
			if err != nil {
				return err
			}
			seed, err := eng.SeedWord()
			if err != nil {
				return err
			}
			klog.V(1).Infof("%s: computing cells of %v", eng.Name(), seed)
			job.report, err = libkl.A2Cells(eng, eng.Name(), seed, eng.Opts)
			if err != nil && skipLimited && isLimitErr(err) {
				klog.Warningf("%s: skipped: %v", eng.Name(), err)
				fmt.Fprintf(&job.text, "************** %s *****************\n\nskipped: %v\n\n", eng.Name(), err)
				return nil
			}
			if err != nil {
				klog.Warningf("%s: %v", eng.Name(), err)
				return err
			}
			klog.V(1).Infof("%s: %d elements in %d left cells", eng.Name(), len(job.report.TwoSided), len(job.report.LeftCells))
			return libkl.WriteA2Report(&job.text, job.report, printOpts)
		})
	}
	if err = g.Wait(); err != nil {
		return err
	}

	ctx := klcells.NewCatalogContext()
	defer func() {
		ctx.Close()
		<-ctx.Done()
	}()
	cat, err := openCatalog(ctx, &cfg, a2cellsFlags.catalog)
	if err != nil {
		return err
	}
	if cat != nil {
		for _, job := range jobs {
			if job.report == nil {
				continue
			}
			for _, rec := range job.report.Records() {
				if err = cat.PutCell(rec); err != nil {
					return err
				}
			}
		}
	}

	var out io.Writer = cmd.OutOrStdout()
	pathname := a2cellsFlags.out
	if pathname == "" {
		pathname = cfg.Report.Path
	}
	if pathname != "" {
		file, err := os.OpenFile(pathname, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}
	for _, job := range jobs {
		if _, err = job.text.WriteTo(out); err != nil {
			return err
		}
	}
	return nil
}

func isLimitErr(err error) bool {
	return errors.Is(err, klcells.ErrResourceExhausted) || errors.Is(err, klcells.ErrOracleUnavailable)
}
