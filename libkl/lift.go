package libkl

import (
	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/fine-structures/klcells/klcells"
	"github.com/pkg/errors"
)

// maxBreakSteps bounds the rewrite worklist of BreakElement.
const maxBreakSteps = 1 << 22

// MonomialTimesElement returns (c_t1 c_t2 ... c_tk)·c_w, applying the generators right to left.
func MonomialTimesElement(m klcells.Multiplier, t klcells.Word, w klcells.Word) (klcells.Combination, error) {
	y, err := m.Canonical(w)
	if err != nil {
		return nil, err
	}
	C := klcells.Term(y, klcells.LaurentOne)
	for i := len(t) - 1; i >= 0; i-- {
		next := klcells.NewCombination()
		for k, c := range C {
			prod, err := m.STimesW(t[i], k.Word())
			if err != nil {
				return nil, err
			}
			next.AddScaled(prod, c)
		}
		C = next.Clean()
	}
	return C, nil
}

// PolyTimesElement returns poly·c_w where poly is a combination of generator products (see Multiplier.Expand).
func PolyTimesElement(m klcells.Multiplier, poly klcells.Combination, w klcells.Word) (klcells.Combination, error) {
	out := klcells.NewCombination()
	for _, k := range poly.Keys() {
		prod, err := MonomialTimesElement(m, k.Word(), w)
		if err != nil {
			return nil, err
		}
		out.AddScaled(prod, poly[k])
	}
	return out.Clean(), nil
}

// Product returns c_x·c_y.
func Product(m klcells.Multiplier, x, y klcells.Word) (klcells.Combination, error) {
	poly, err := m.Expand(x)
	if err != nil {
		return nil, err
	}
	return PolyTimesElement(m, poly, y)
}

// ProductOf returns a·b for combinations a and b of KL basis elements.
func ProductOf(m klcells.Multiplier, a, b klcells.Combination) (klcells.Combination, error) {
	out := klcells.NewCombination()
	for _, ka := range a.Keys() {
		poly, err := m.Expand(ka.Word())
		if err != nil {
			return nil, err
		}
		for _, kb := range b.Keys() {
			prod, err := PolyTimesElement(m, poly, kb.Word())
			if err != nil {
				return nil, err
			}
			out.AddScaled(prod, a[ka].Mul(b[kb]))
		}
	}
	return out.Clean(), nil
}

// Inverse returns the canonical word of w^-1.
func Inverse(m klcells.Multiplier, w klcells.Word) (klcells.Word, error) {
	return m.Canonical(w.Reverse())
}

// WTimesS returns c_w·c_s, computed as the inverse image of c_s·c_{w^-1} under the anti-involution c_x -> c_{x^-1}.
func WTimesS(m klcells.Multiplier, w klcells.Word, s klcells.Generator) (klcells.Combination, error) {
	prod, err := m.STimesW(s, w.Reverse())
	if err != nil {
		return nil, err
	}
	out := klcells.NewCombination()
	for k, c := range prod {
		inv, err := Inverse(m, k.Word())
		if err != nil {
			return nil, err
		}
		out.AddTerm(inv.Key(), c)
	}
	return out.Clean(), nil
}

// breakKey is a pending product c_{h1}·c_{h2}···c_{hj}·c_tail where every h is a generator.
type breakKey struct {
	head klcells.WordKey
	tail klcells.WordKey
}

// BreakElement writes c_w as a combination of products of generators.
//
// Each step rewrites the last factor c_x, x = s·x', as c_s·c_{x'} minus the terms of c_s·c_{x'} other than c_x,
// until every factor is a generator.  Keys of the result are the flattened generator products.
func BreakElement(m klcells.Multiplier, w klcells.Word) (klcells.Combination, error) {
	y, err := m.Canonical(w)
	if err != nil {
		return nil, err
	}

	result := klcells.NewCombination()
	pending := make(map[breakKey]klcells.Laurent)
	todo := linkedlistqueue.New()
	push := func(key breakKey, c klcells.Laurent) {
		prev, queued := pending[key]
		if !queued {
			todo.Enqueue(key)
		}
		if sum := prev.Add(c); sum.IsZero() {
			delete(pending, key)
		} else {
			pending[key] = sum
		}
	}
	push(breakKey{"", y.Key()}, klcells.LaurentOne)

	for steps := 0; !todo.Empty(); steps++ {
		if steps > maxBreakSteps {
			return nil, errors.Wrapf(klcells.ErrResourceExhausted, "expansion of c_%v did not settle", y)
		}
		item, _ := todo.Dequeue()
		key := item.(breakKey)
		c, ok := pending[key]
		if !ok {
			continue
		}
		delete(pending, key)

		if len(key.tail) <= 1 {
			result.AddTerm(key.head+key.tail, c)
			continue
		}

		x := key.tail.Word()
		s, rest := x[0], x[1:]
		prod, err := m.STimesW(s, rest)
		if err != nil {
			return nil, err
		}
		xKey := key.tail
		if lead := prod.Get(xKey); !lead.Equal(klcells.LaurentOne) {
			return nil, errors.Wrapf(klcells.ErrStructuralAssumption, "c_%d c_%v has coefficient %v on c_%v", s, rest, lead, x)
		}
		for k, p := range prod {
			if k == xKey {
				continue
			}
			push(breakKey{key.head, k}, p.Mul(c).Neg())
		}

		restKey, err := m.Canonical(rest)
		if err != nil {
			return nil, err
		}
		push(breakKey{key.head + klcells.Word{s}.Key(), restKey.Key()}, c)
	}
	return result.Clean(), nil
}
