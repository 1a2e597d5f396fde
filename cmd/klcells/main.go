package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	config string
	engine string
}

var rootCmd = &cobra.Command{
	Use:   "klcells",
	Short: "Kazhdan-Lusztig products, cells, and distinguished involutions",
	Long: "klcells multiplies Kazhdan-Lusztig basis elements of Hecke algebras, explores left, right, and\n" +
		"two-sided cells, finds distinguished involutions, and multiplies in the subregular J-ring.",
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&rootFlags.config, "config", "", "YAML config file listing groups and limits")
	f.StringVar(&rootFlags.engine, "engine", "", "multiplier for groups not in the config: hecke or typeh")

	rootCmd.AddCommand(cellCmd)
	rootCmd.AddCommand(multCmd)
	rootCmd.AddCommand(a2cellsCmd)
	rootCmd.AddCommand(jmultCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.Version = version
}

func main() {
	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	fset.Set("v", "1")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})
	rootCmd.PersistentFlags().AddGoFlagSet(fset)

	err := rootCmd.Execute()
	klog.Flush()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
