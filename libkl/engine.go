package libkl

import (
	"github.com/fine-structures/klcells/klcells"
	"github.com/fine-structures/klcells/libkl/coxeter"
	"github.com/pkg/errors"
)

// Engine bundles a configured group with the Multiplier selected for it.
type Engine struct {
	klcells.Multiplier

	Spec  klcells.GroupSpec
	Group *coxeter.Group // oracle for the group; also backs the hecke Multiplier
	Opts  klcells.CellOpts
}

// NewEngine builds the oracle and Multiplier named by spec.
//
// The typeh engine requires an H_n matrix (n >= 2) and only accepts fully commutative words.
func NewEngine(spec klcells.GroupSpec, limits klcells.Limits) (*Engine, error) {
	var (
		M   klcells.CoxeterMatrix
		err error
	)
	if spec.Type != "" {
		M, err = coxeter.ParseType(spec.Type)
	} else {
		M = klcells.CoxeterMatrix(spec.Matrix)
		err = M.Validate()
	}
	if err != nil {
		return nil, errors.Wrapf(err, "group %q", spec.Name)
	}

	name := spec.Name
	if name == "" {
		name = spec.Type
	}
	grp, err := coxeter.NewGroup(name, M, coxeter.Opts{
		MaxInterval: limits.MaxInterval,
		MaxLength:   limits.MaxLength,
		MaxMemo:     limits.MaxMemo,
	})
	if err != nil {
		return nil, err
	}

	eng := &Engine{
		Spec:  spec,
		Group: grp,
		Opts:  klcells.DefaultCellOpts,
	}
	eng.Opts.MaxVertices = limits.MaxVertices
	if spec.MaxVertices > 0 {
		eng.Opts.MaxVertices = spec.MaxVertices
	}
	if spec.AValue > 0 {
		eng.Opts.AValue = spec.AValue
	}

	switch spec.Engine {
	case klcells.EngineTypeH:
		if !M.Equal(coxeter.TypeH(M.Rank())) {
			return nil, errors.Wrapf(klcells.ErrBadCoxeterType, "group %q: engine %q needs an H_n matrix", name, spec.Engine)
		}
		if eng.Multiplier, err = NewTypeH(M.Rank()); err != nil {
			return nil, err
		}
	case klcells.EngineHecke, "":
		eng.Multiplier = NewHeckeMultiplier(grp)
	default:
		return nil, errors.Wrapf(klcells.ErrBadConfig, "group %q has unknown engine %q", name, spec.Engine)
	}
	return eng, nil
}

// NewEngineFromType is NewEngine for a named type with default limits.
func NewEngineFromType(typeName, engine string) (*Engine, error) {
	return NewEngine(klcells.GroupSpec{
		Name:   typeName,
		Type:   typeName,
		Engine: engine,
	}, klcells.DefaultConfig().Limits)
}

// Name returns the group's name.
func (eng *Engine) Name() string {
	return eng.Group.Name
}

// ParseWord parses a word expression against this group's rank.
func (eng *Engine) ParseWord(str string) (klcells.Word, error) {
	return ParseWord(str, eng.Matrix().Rank())
}

// SeedWord returns the parsed seed of the group spec, defaulting to 13.
func (eng *Engine) SeedWord() (klcells.Word, error) {
	seed := eng.Spec.Seed
	if seed == "" {
		seed = "13"
	}
	return eng.ParseWord(seed)
}
