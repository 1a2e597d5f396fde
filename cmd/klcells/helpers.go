package main

import (
	"strings"

	"github.com/fine-structures/klcells/klcells"
	"github.com/fine-structures/klcells/libkl"
	"github.com/fine-structures/klcells/libkl/catalog"
)

func loadConfig() (klcells.Config, error) {
	if rootFlags.config == "" {
		return klcells.DefaultConfig(), nil
	}
	return klcells.LoadConfig(rootFlags.config)
}

// groupSpec returns the config entry named name, or treats name as a type such as "H4".
func groupSpec(cfg *klcells.Config, name string) klcells.GroupSpec {
	spec, found := cfg.Group(name)
	if !found {
		spec = klcells.GroupSpec{
			Name:   name,
			Type:   name,
			Engine: klcells.EngineHecke,
			Seed:   "13",
		}
		if strings.HasPrefix(strings.ToUpper(name), "H") {
			spec.Engine = klcells.EngineTypeH
		}
	}
	if rootFlags.engine != "" {
		spec.Engine = rootFlags.engine
	}
	return spec
}

func loadEngine(name string) (*libkl.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return libkl.NewEngine(groupSpec(&cfg, name), cfg.Limits)
}

// openCatalog opens the catalog at pathname (the config's catalog path when empty), or returns nil when neither
// is set.
func openCatalog(ctx klcells.CatalogContext, cfg *klcells.Config, pathname string) (klcells.Catalog, error) {
	if pathname == "" {
		pathname = cfg.Catalog.Path
	}
	if pathname == "" {
		return nil, nil
	}
	return catalog.OpenCatalog(ctx, klcells.CatalogOpts{
		DbPathName: pathname,
		ReadOnly:   cfg.Catalog.ReadOnly,
	})
}
