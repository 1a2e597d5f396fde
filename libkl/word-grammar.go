package libkl

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/fine-structures/klcells/klcells"
	"github.com/pkg/errors"
)

// WordExpr is a parsed word expression such as "1213", "1,2,1", "s10 s11 1", "(12)^2 1", "[1,10,2]", or "e".
//
// A bare digit run names one generator per digit; generators >= 10 are written as "s10" or inside brackets,
// where every number is a whole generator.
type WordExpr struct {
	Terms []*WordTerm `parser:"@@*"`
}

type WordTerm struct {
	Identity bool      `parser:"(  @\"e\""`
	Gen      string    `parser:" | @Gen"`
	Digits   string    `parser:" | @Digits"`
	List     []string  `parser:" | \"[\" @Digits* \"]\""`
	Group    *WordExpr `parser:" | \"(\" @@ \")\" )"`
	Power    string    `parser:"( \"^\" @Digits )?"`
}

var sWordLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Gen", Pattern: `s[0-9]+`},
	{Name: "Ident", Pattern: `e`},
	{Name: "Digits", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[\[\]()^]`},
	{Name: "Sep", Pattern: `[\s,]+`},
})

var sParseWordExpr = participle.MustBuild[WordExpr](
	participle.Lexer(sWordLexer),
	participle.Elide("Sep"),
)

// ParseWord parses a word expression and checks its generators against rank (rank <= 0 skips the check).
//
// The result is the expression as written; it is not reduced.
func ParseWord(str string, rank int) (klcells.Word, error) {
	str = strings.TrimSpace(str)
	if str == "" {
		return klcells.Word{}, nil
	}
	expr, err := sParseWordExpr.ParseString("", str)
	if err != nil {
		return nil, errors.Wrapf(klcells.ErrBadWord, "%q: %v", str, err)
	}
	w, err := expr.Word()
	if err != nil {
		return nil, errors.Wrapf(err, "%q", str)
	}
	if rank > 0 {
		if err = w.Validate(rank); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// MustParseWord is ParseWord for literals known to be valid.
func MustParseWord(str string) klcells.Word {
	w, err := ParseWord(str, 0)
	if err != nil {
		panic(err)
	}
	return w
}

// ParseWords parses each string with ParseWord.
func ParseWords(strs []string, rank int) ([]klcells.Word, error) {
	words := make([]klcells.Word, len(strs))
	for i, str := range strs {
		w, err := ParseWord(str, rank)
		if err != nil {
			return nil, err
		}
		words[i] = w
	}
	return words, nil
}

func (expr *WordExpr) Word() (klcells.Word, error) {
	w := klcells.Word{}
	for _, term := range expr.Terms {
		tw, err := term.Word()
		if err != nil {
			return nil, err
		}
		w = append(w, tw...)
	}
	return w, nil
}

func (term *WordTerm) Word() (klcells.Word, error) {
	var w klcells.Word

	switch {
	case term.Identity:
		w = klcells.Word{}
	case term.Gen != "":
		g, err := parseGenerator(term.Gen[1:])
		if err != nil {
			return nil, err
		}
		w = klcells.Word{g}
	case term.Digits != "":
		w = make(klcells.Word, len(term.Digits))
		for i, d := range term.Digits {
			if d == '0' {
				return nil, errors.Wrap(klcells.ErrBadGenerator, "generator 0 in digit run")
			}
			w[i] = klcells.Generator(d - '0')
		}
	case term.List != nil:
		w = make(klcells.Word, len(term.List))
		for i, str := range term.List {
			g, err := parseGenerator(str)
			if err != nil {
				return nil, err
			}
			w[i] = g
		}
	case term.Group != nil:
		var err error
		if w, err = term.Group.Word(); err != nil {
			return nil, err
		}
	default:
		w = klcells.Word{}
	}

	if term.Power != "" {
		n, err := strconv.Atoi(term.Power)
		if err != nil || n > 4*klcells.MaxRank*klcells.MaxRank {
			return nil, errors.Wrapf(klcells.ErrBadWord, "bad power %q", term.Power)
		}
		unit := w
		w = make(klcells.Word, 0, n*len(unit))
		for i := 0; i < n; i++ {
			w = append(w, unit...)
		}
	}
	return w, nil
}

func parseGenerator(str string) (klcells.Generator, error) {
	n, err := strconv.Atoi(str)
	if err != nil || n < 1 || n > klcells.MaxRank {
		return 0, errors.Wrapf(klcells.ErrBadGenerator, "generator %q", str)
	}
	return klcells.Generator(n), nil
}
