package libkl

import (
	"github.com/fine-structures/klcells/klcells"
	"github.com/pkg/errors"
)

// FactorKind identifies a factor of the f-basis expansion of a fully commutative element of H_n.
//
// FactorGen is a plain c_s.  FactorA through FactorF stand for KL basis elements of the parabolic subgroup <1,2>
// and each carries the rule rewriting it as a combination of products of c_1 and c_2.
type FactorKind byte

const (
	FactorGen FactorKind = iota
	FactorA
	FactorB
	FactorC
	FactorD
	FactorE
	FactorF
)

type ruleTerm struct {
	monomial klcells.Word
	coeff    int64
}

type factorRule struct {
	name  string
	word  klcells.Word // the parabolic element the factor stands for
	terms []ruleTerm   // c_word = sum of coeff * (product of generators)
}

var factorRules = [...]factorRule{
	FactorGen: {name: "s"},
	FactorA: {"A", klcells.Word{1, 2}, []ruleTerm{
		{klcells.Word{1, 2}, 1},
		{klcells.Word{}, -1},
	}},
	FactorB: {"B", klcells.Word{1, 2, 1}, []ruleTerm{
		{klcells.Word{1, 2, 1}, 1},
		{klcells.Word{1}, -1},
	}},
	FactorC: {"C", klcells.Word{2, 1, 2}, []ruleTerm{
		{klcells.Word{2, 1, 2}, 1},
		{klcells.Word{2}, -1},
	}},
	FactorD: {"D", klcells.Word{1, 2, 1, 2}, []ruleTerm{
		{klcells.Word{1, 2, 1, 2}, 1},
		{klcells.Word{1, 2}, -2},
	}},
	FactorE: {"E", klcells.Word{2, 1, 2}, []ruleTerm{
		{klcells.Word{2, 1, 2}, 1},
		{klcells.Word{2}, -2},
	}},
	FactorF: {"F", klcells.Word{2, 1, 2, 1}, []ruleTerm{
		{klcells.Word{2, 1, 2, 1}, 1},
		{klcells.Word{2, 1}, -2},
	}},
}

func (kind FactorKind) String() string {
	if int(kind) < len(factorRules) {
		return factorRules[kind].name
	}
	return "?"
}

// Factor is one factor of an f-basis product: a generator, or a <1,2> factor kind.
type Factor struct {
	Kind FactorKind
	Gen  klcells.Generator // set when Kind == FactorGen
}

func (f Factor) String() string {
	if f.Kind == FactorGen {
		return klcells.Word{f.Gen}.String()
	}
	return f.Kind.String()
}

// Word returns the generators the factor spans.
func (f Factor) Word() klcells.Word {
	if f.Kind == FactorGen {
		return klcells.Word{f.Gen}
	}
	return factorRules[f.Kind].word
}

func genFactors(w klcells.Word) []Factor {
	fs := make([]Factor, len(w))
	for i, g := range w {
		fs[i] = Factor{Kind: FactorGen, Gen: g}
	}
	return fs
}

// FFactors writes the fully commutative element y of H_n as a product of factors whose expansion (FactorsToPoly)
// equals c_y modulo elements of a-value > 2.
//
// The <1,2> segments of the right justification of y select the factor kinds; 12 and 212 depend on whether the
// next <1,2> segment starts with 1.
func FFactors(y klcells.Word) ([]Factor, error) {
	segs := RightJustify(y)
	var fs []Factor

	nextStartsWith1 := func(i int) bool {
		return i+2 < len(segs) && segs[i+2][0] == 1
	}

	for i, seg := range segs {
		if !is12(seg[0]) {
			fs = append(fs, genFactors(seg)...)
			continue
		}
		switch seg.String() {
		case "1", "2", "21":
			fs = append(fs, genFactors(seg)...)
		case "12":
			if nextStartsWith1(i) {
				fs = append(fs, Factor{Kind: FactorA})
			} else {
				fs = append(fs, genFactors(seg)...)
			}
		case "121":
			fs = append(fs, Factor{Kind: FactorB})
		case "212":
			if nextStartsWith1(i) {
				fs = append(fs, Factor{Kind: FactorE})
			} else {
				fs = append(fs, Factor{Kind: FactorC})
			}
		case "1212":
			fs = append(fs, Factor{Kind: FactorD})
		case "2121":
			fs = append(fs, Factor{Kind: FactorF})
		default:
			return nil, errors.Wrapf(klcells.ErrNotFullyCommutative, "%v has <1,2> segment %v", y, seg)
		}
	}
	return fs, nil
}

// FactorsToWord concatenates the words spanned by each factor.
func FactorsToWord(fs []Factor) klcells.Word {
	w := klcells.Word{}
	for _, f := range fs {
		w = append(w, f.Word()...)
	}
	return w
}

// FactorsToPoly expands a factor product into a combination of generator products.
//
// Keys of the result are monomials (flattened products of generators), not group elements.
func FactorsToPoly(fs []Factor) klcells.Combination {
	poly := klcells.Term(klcells.Word{}, klcells.LaurentOne)
	for _, f := range fs {
		next := klcells.NewCombination()
		for k, c := range poly {
			mono := k.Word()
			if f.Kind == FactorGen {
				next.AddTerm(append(mono, f.Gen).Key(), c)
				continue
			}
			for _, term := range factorRules[f.Kind].terms {
				next.AddTerm(mono.Concat(term.monomial).Key(), c.Scale(term.coeff))
			}
		}
		poly = next
	}
	return poly
}
