package coxeter

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/fine-structures/klcells/klcells"
	"github.com/pkg/errors"
)

// TypeExpr is a Cartan type name such as "H4", "A3", "~A2", "I2(5)", or "I2(inf)".
type TypeExpr struct {
	Affine bool      `parser:"@'~'?"`
	Family string    `parser:"@Family"`
	Rank   int       `parser:"@Int"`
	Bond   *BondExpr `parser:"( '(' @@ ')' )?"`
}

// BondExpr is the m-value of a rank 2 dihedral type.
type BondExpr struct {
	Inf bool `parser:"  @Inf"`
	M   int  `parser:"| @Int"`
}

var sTypeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Inf", Pattern: `(?i)inf(inity)?|∞`},
	{Name: "Family", Pattern: `[A-Za-z]`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[~()]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var sParseType = participle.MustBuild[TypeExpr](
	participle.Lexer(sTypeLexer),
	participle.Elide("Whitespace"),
)

// ParseType returns the Coxeter matrix of a named type.
//
// Labeling: A_n, E_n, F_4, and G_2 follow Bourbaki.  B_n and H_n put the special bond between generators 1 and 2
// (so H_n has m(1,2) = 5 and m(i,i+1) = 3 for i >= 2), and D_n branches at generator 3 with leaves 1 and 2.
// Word.Relabel converts B, D, and H words to the opposite labeling.  An affine type ~X_n has n+1 generators.
func ParseType(name string) (klcells.CoxeterMatrix, error) {
	expr, err := sParseType.ParseString("", strings.TrimSpace(name))
	if err != nil {
		return nil, errors.Wrapf(klcells.ErrBadCoxeterType, "%q: %v", name, err)
	}
	M, err := expr.Matrix()
	if err != nil {
		return nil, errors.Wrapf(err, "%q", name)
	}
	return M, nil
}

// MustParseType is ParseType for literals known to be valid.
func MustParseType(name string) klcells.CoxeterMatrix {
	M, err := ParseType(name)
	if err != nil {
		panic(err)
	}
	return M
}

func (expr *TypeExpr) Matrix() (klcells.CoxeterMatrix, error) {
	n := expr.Rank
	family := strings.ToUpper(expr.Family)
	if n < 1 || n > klcells.MaxRank-1 {
		return nil, errors.Wrapf(klcells.ErrBadCoxeterType, "rank %d", n)
	}
	if expr.Bond != nil && family != "I" {
		return nil, errors.Wrap(klcells.ErrBadCoxeterType, "only I2 takes a bond")
	}
	if expr.Affine {
		if family != "A" || n < 1 {
			return nil, errors.Wrapf(klcells.ErrBadCoxeterType, "affine type ~%s%d", family, n)
		}
		return AffineA(n), nil
	}

	switch family {
	case "A":
		return TypeA(n), nil
	case "B", "C":
		if n < 2 {
			break
		}
		return TypeB(n), nil
	case "D":
		if n < 4 {
			break
		}
		return TypeD(n), nil
	case "E":
		if n < 6 || n > 8 {
			break
		}
		return TypeE(n), nil
	case "F":
		if n != 4 {
			break
		}
		return TypeF4(), nil
	case "G":
		if n != 2 {
			break
		}
		return Dihedral(6), nil
	case "H":
		if n < 2 {
			break
		}
		return TypeH(n), nil
	case "I":
		if n != 2 || expr.Bond == nil {
			break
		}
		if expr.Bond.Inf {
			return Dihedral(klcells.Infinity), nil
		}
		if expr.Bond.M < 2 {
			break
		}
		return Dihedral(expr.Bond.M), nil
	}
	return nil, errors.Wrapf(klcells.ErrBadCoxeterType, "%s%d", family, n)
}

func path(n int) klcells.CoxeterMatrix {
	M := klcells.NewCoxeterMatrix(n)
	for i := 1; i < n; i++ {
		M.SetBond(klcells.Generator(i), klcells.Generator(i+1), 3)
	}
	return M
}

func TypeA(n int) klcells.CoxeterMatrix {
	return path(n)
}

func TypeB(n int) klcells.CoxeterMatrix {
	return path(n).SetBond(1, 2, 4)
}

func TypeD(n int) klcells.CoxeterMatrix {
	return path(n).SetBond(1, 2, 2).SetBond(1, 3, 3)
}

// TypeE uses the Bourbaki labeling: 1-3-4-5-...-n with 2 attached to 4.
func TypeE(n int) klcells.CoxeterMatrix {
	M := klcells.NewCoxeterMatrix(n)
	M.SetBond(1, 3, 3).SetBond(2, 4, 3)
	for i := 3; i < n; i++ {
		M.SetBond(klcells.Generator(i), klcells.Generator(i+1), 3)
	}
	return M
}

func TypeF4() klcells.CoxeterMatrix {
	return path(4).SetBond(2, 3, 4)
}

// TypeH returns H_n with m(1,2) = 5 and m(i,i+1) = 3 for i >= 2.
//
// H_2 is the dihedral group I2(5); H_n for n > 4 is infinite.
func TypeH(n int) klcells.CoxeterMatrix {
	return path(n).SetBond(1, 2, 5)
}

// Dihedral returns I2(m); m = klcells.Infinity gives the infinite dihedral group.
func Dihedral(m int) klcells.CoxeterMatrix {
	return klcells.NewCoxeterMatrix(2).SetBond(1, 2, m)
}

// AffineA returns ~A_n: n+1 generators in a cycle (~A_1 is the infinite dihedral group).
func AffineA(n int) klcells.CoxeterMatrix {
	if n == 1 {
		return Dihedral(klcells.Infinity)
	}
	return path(n+1).SetBond(1, klcells.Generator(n+1), 3)
}
