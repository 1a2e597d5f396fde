package libkl

import (
	"testing"

	"github.com/fine-structures/klcells/klcells"
	"github.com/fine-structures/klcells/libkl/coxeter"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allElements(t *testing.T, grp *coxeter.Group) []klcells.Word {
	w0, err := grp.LongestElement()
	require.NoError(t, err)
	elems, err := grp.BruhatInterval(w0)
	require.NoError(t, err)
	return elems
}

func TestHeckeSTimesWRule(t *testing.T) {
	for _, typeName := range []string{"I2(5)", "H3"} {
		grp, err := coxeter.NewGroupFromType(typeName, coxeter.DefaultOpts)
		require.NoError(t, err)
		hm := NewHeckeMultiplier(grp)
		rank := grp.Rank()

		for _, w := range allElements(t, grp) {
			for s := klcells.Generator(1); int(s) <= rank; s++ {
				prod, err := hm.STimesW(s, w)
				require.NoError(t, err)

				desc, err := grp.IsLeftDescent(s, w)
				require.NoError(t, err)
				if desc {
					assert.True(t, prod.Equal(klcells.Term(w, klcells.VPlusVInv)), "%s: c_%d c_%v = %v", typeName, s, w, prod)
					continue
				}

				sw, err := grp.Reduce(w.Prepend(s))
				require.NoError(t, err)
				assert.True(t, prod.Get(sw.Key()).Equal(klcells.LaurentOne), "%s: c_%d c_%v = %v", typeName, s, w, prod)
				for _, k := range prod.Keys() {
					x := k.Word()
					if x.Equal(sw) {
						continue
					}
					assert.Less(t, len(x), len(w), "%s: c_%d c_%v has %v", typeName, s, w, x)
					xdesc, err := grp.IsLeftDescent(s, x)
					require.NoError(t, err)
					assert.True(t, xdesc, "%s: %d is not a left descent of %v", typeName, s, x)
					_, isConst := prod[k].IsConst()
					assert.True(t, isConst, "%s: mu coefficient of %v in c_%d c_%v", typeName, x, s, w)
				}
			}
		}
	}
}

func TestHeckeOracleLimits(t *testing.T) {
	grp, err := coxeter.NewGroupFromType("H3", coxeter.Opts{MaxInterval: 1})
	require.NoError(t, err)
	hm := NewHeckeMultiplier(grp)

	_, err = hm.STimesW(1, wd(2))
	assert.True(t, errors.Is(err, klcells.ErrOracleUnavailable))

	_, err = LeftCell(hm, wd(13), klcells.DefaultCellOpts)
	assert.True(t, errors.Is(err, klcells.ErrOracleUnavailable))

	// a multiplication that never needs an interval still succeeds
	prod, err := hm.STimesW(1, wd(13))
	require.NoError(t, err)
	assert.Equal(t, "{13: v + v^-1}", prod.String())
}

// exhaustedOracle fails every interval query the way a bounded oracle would.
type exhaustedOracle struct {
	klcells.Oracle
}

func (o exhaustedOracle) BruhatInterval(w klcells.Word) ([]klcells.Word, error) {
	return nil, errors.Wrapf(klcells.ErrResourceExhausted, "interval below %v", w)
}

func TestOracleErrorKeepsCause(t *testing.T) {
	grp, err := coxeter.NewGroupFromType("H3", coxeter.DefaultOpts)
	require.NoError(t, err)
	hm := NewHeckeMultiplier(exhaustedOracle{grp})

	_, err = hm.STimesW(1, wd(2))
	require.Error(t, err)
	assert.True(t, errors.Is(err, klcells.ErrOracleUnavailable))
	assert.True(t, errors.Is(err, klcells.ErrResourceExhausted))
	assert.Contains(t, err.Error(), "interval below 2")

	_, err = LeftCell(hm, wd(13), klcells.DefaultCellOpts)
	assert.True(t, errors.Is(err, klcells.ErrOracleUnavailable))
	assert.True(t, errors.Is(err, klcells.ErrResourceExhausted))
}
