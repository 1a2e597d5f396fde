package klcells

// Oracle answers the Bruhat-order and mu-coefficient questions the generic Hecke multiplication needs.
//
// An Oracle is fixed to one Coxeter matrix at construction.  Every method fails with an error wrapping
// ErrOracleUnavailable when the group or element is beyond what the oracle can handle.
type Oracle interface {

	// Matrix returns the Coxeter matrix this oracle was built for.
	Matrix() CoxeterMatrix

	// Reduce returns the canonical reduced word of the element expressed by w.
	Reduce(w Word) (Word, error)

	// IsLeftDescent reports whether l(s·w) < l(w).
	IsLeftDescent(s Generator, w Word) (bool, error)

	// BruhatInterval returns the canonical words of every x <= w (including the identity and w itself).
	BruhatInterval(w Word) ([]Word, error)

	// MuCoefficient returns mu(x,w), the coefficient of q^((l(w)-l(x)-1)/2) in P_{x,w}.
	MuCoefficient(x, w Word) (int64, error)
}

// Multiplier computes left multiplication of KL basis elements by a simple generator in a fixed Hecke algebra.
//
// All combinations a Multiplier returns are keyed by canonical words (see Canonical).
type Multiplier interface {

	// Matrix returns the Coxeter matrix of the underlying group.
	Matrix() CoxeterMatrix

	// Canonical returns the canonical word used to key w.
	Canonical(w Word) (Word, error)

	// STimesW returns c_s · c_w.
	STimesW(s Generator, w Word) (Combination, error)

	// Expand writes c_w as a combination of products of generators.
	// Each key of the returned Combination is a flattened generator product s1·s2···sk, not a group element.
	Expand(w Word) (Combination, error)
}

// CellSide selects which products drive cell exploration.
type CellSide int32

const (
	LeftCell CellSide = iota + 1
	RightCell
	TwoSidedCell
)

func (side CellSide) String() string {
	switch side {
	case LeftCell:
		return "left"
	case RightCell:
		return "right"
	case TwoSidedCell:
		return "two-sided"
	}
	return "unknown"
}

// ParseCellSide accepts "left", "right", and "two" (or "two-sided").
func ParseCellSide(str string) (CellSide, bool) {
	switch str {
	case "left", "l":
		return LeftCell, true
	case "right", "r":
		return RightCell, true
	case "two", "two-sided", "2":
		return TwoSidedCell, true
	}
	return 0, false
}

// CellOpts configures cell exploration.
type CellOpts struct {
	Side        CellSide // which products to close under
	MaxVertices int      // exploration fails with ErrResourceExhausted beyond this many vertices (0 means no limit)
	AValue      int      // if > 0, the seed's heap a-value must equal this or ErrStructuralAssumption is returned
}

// DefaultCellOpts explores left cells of a-value 2 elements.
var DefaultCellOpts = CellOpts{
	Side:        LeftCell,
	MaxVertices: 200000,
	AValue:      2,
}

// PrintOpts specifies how cells and combinations are printed in reports.
type PrintOpts struct {
	Label        string // Prefix label
	Intersection bool   // If set, each left cell's intersection with its inverse is printed
	DistInv      bool   // If set, each left cell's distinguished involution is printed
	Digits       bool   // If set, words print as digit strings (fails for generators >= 10)
}

// DefaultPrintOpts{}
var DefaultPrintOpts = PrintOpts{
	Intersection: true,
	DistInv:      true,
}

// CatalogContext is a container for open / active Catalog instances.
type CatalogContext interface {

	// Attaches the given Catalog to this context.
	AttachCatalog(cat Catalog)

	// Detaches the given Catalog from this context.
	DetachCatalog(cat Catalog)

	// Closes all open catalogs to be closed then closes.
	Close()

	// Signals when Close() completed and all open Catalogs have been closed
	Done() <-chan struct{}
}

// CatalogOpts specifies params for opening a cell Catalog
type CatalogOpts struct {
	DbPathName string // omit for in-memory db
	ReadOnly   bool   // open in read-only mode
}

// OnCell is called for each selected record; returning false stops the selection.
type OnCell func(rec *CellRecord) bool

// Catalog persists computed cells so that reports can be rebuilt without recomputation.
type Catalog interface {

	// Returns true if this catalog was opened for read-only access.
	IsReadOnly() bool

	// PutCell stores rec, replacing any record with the same group, side, and seed.
	PutCell(rec *CellRecord) error

	// GetCell returns the record for the given group, side, and canonical seed, or ErrCellNotFound.
	GetCell(group string, side CellSide, seed Word) (*CellRecord, error)

	// Select calls onHit with each record of the given group in ShortLex order of seed (all groups if group is empty).
	Select(group string, onHit OnCell) error

	// NumCells returns the number of records put into this catalog over its lifetime.
	NumCells() uint64

	Close() error
}
