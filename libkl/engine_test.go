package libkl

import (
	"testing"

	"github.com/fine-structures/klcells/klcells"
	"github.com/fine-structures/klcells/libkl/coxeter"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	eng, err := NewEngineFromType("H4", klcells.EngineTypeH)
	require.NoError(t, err)
	assert.Equal(t, "H4", eng.Name())
	_, isTypeH := eng.Multiplier.(*TypeH)
	assert.True(t, isTypeH)

	seed, err := eng.SeedWord()
	require.NoError(t, err)
	assert.Equal(t, "13", seed.String())

	w, err := eng.ParseWord("4,3,1")
	require.NoError(t, err)
	canon, err := eng.Canonical(w)
	require.NoError(t, err)
	assert.Equal(t, "143", canon.String())

	eng, err = NewEngineFromType("I2(5)", "")
	require.NoError(t, err)
	_, isHecke := eng.Multiplier.(*HeckeMultiplier)
	assert.True(t, isHecke)
	prod, err := eng.STimesW(1, wd(21))
	require.NoError(t, err)
	assert.Equal(t, "{1: 1, 121: 1}", prod.String())
}

func TestNewEngineFromSpec(t *testing.T) {
	limits := klcells.DefaultConfig().Limits
	spec := klcells.GroupSpec{
		Name:   "H3m",
		Matrix: [][]int(coxeter.TypeH(3)),
		Engine: klcells.EngineTypeH,
		Seed:   "2,1,3",
	}
	eng, err := NewEngine(spec, limits)
	require.NoError(t, err)
	assert.Equal(t, "H3m", eng.Name())
	assert.Equal(t, limits.MaxVertices, eng.Opts.MaxVertices)

	seed, err := eng.SeedWord()
	require.NoError(t, err)
	cell, err := LeftCell(eng, seed, eng.Opts)
	require.NoError(t, err)
	requireWords(t, leftCellsH3[0], cell)
}

func TestNewEngineErrors(t *testing.T) {
	_, err := NewEngineFromType("A3", klcells.EngineTypeH)
	assert.True(t, errors.Is(err, klcells.ErrBadCoxeterType))

	_, err = NewEngineFromType("H3", "fancy")
	assert.True(t, errors.Is(err, klcells.ErrBadConfig))

	_, err = NewEngineFromType("Q7", "")
	assert.Error(t, err)

	eng, err := NewEngineFromType("H3", klcells.EngineTypeH)
	require.NoError(t, err)
	_, err = eng.ParseWord("14")
	assert.True(t, errors.Is(err, klcells.ErrBadGenerator))
}

func TestEngineGroupOverrides(t *testing.T) {
	limits := klcells.DefaultConfig().Limits
	eng, err := NewEngine(klcells.GroupSpec{
		Name:        "I2(5)",
		Type:        "I2(5)",
		Engine:      klcells.EngineHecke,
		Seed:        "1",
		AValue:      1,
		MaxVertices: 50,
	}, limits)
	require.NoError(t, err)
	assert.Equal(t, 1, eng.Opts.AValue)
	assert.Equal(t, 50, eng.Opts.MaxVertices)

	seed, err := eng.SeedWord()
	require.NoError(t, err)
	C, err := TwoSidedCell(eng, seed, eng.Opts)
	require.NoError(t, err)
	requireWords(t, wds(1, 2, 12, 21, 121, 212, 1212, 2121), C)

	// the default a-value check rejects a generator seed
	_, err = TwoSidedCell(eng, seed, klcells.DefaultCellOpts)
	assert.True(t, errors.Is(err, klcells.ErrStructuralAssumption))

	aff, err := NewEngine(klcells.GroupSpec{
		Name:        "affineA2",
		Matrix:      [][]int{{1, 3, 3}, {3, 1, 3}, {3, 3, 1}},
		Engine:      klcells.EngineHecke,
		AValue:      1,
		MaxVertices: 30,
	}, limits)
	require.NoError(t, err)
	_, err = TwoSidedCell(aff, wd(1), aff.Opts)
	assert.True(t, errors.Is(err, klcells.ErrResourceExhausted))
}

func TestEngineMemoLimit(t *testing.T) {
	limits := klcells.DefaultConfig().Limits
	limits.MaxVertices = 0
	limits.MaxMemo = 500
	eng, err := NewEngine(klcells.GroupSpec{
		Name:   "H4",
		Type:   "H4",
		Engine: klcells.EngineHecke,
	}, limits)
	require.NoError(t, err)

	_, err = LeftCell(eng, wd(13), eng.Opts)
	assert.True(t, errors.Is(err, klcells.ErrOracleUnavailable))
	assert.Greater(t, eng.Group.MemoSize(), 500)
}
