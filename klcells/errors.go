package klcells

import "errors"

// Errors
var (
	ErrOracleUnavailable    = errors.New("coxeter oracle unavailable")
	ErrStructuralAssumption = errors.New("structural assumption violated")
	ErrUnsupportedEncoding  = errors.New("unsupported compact word encoding")
	ErrResourceExhausted    = errors.New("resource limit exhausted")
	ErrBadWord              = errors.New("bad word")
	ErrBadGenerator         = errors.New("bad generator index")
	ErrBadCoxeterMatrix     = errors.New("bad coxeter matrix")
	ErrBadCoxeterType       = errors.New("bad or unsupported coxeter type")
	ErrNotFullyCommutative  = errors.New("word is not fully commutative")
	ErrBadConfig            = errors.New("bad config")
	ErrBadCatalogParam      = errors.New("bad catalog param")
	ErrCatalogReadOnly      = errors.New("catalog is read-only")
	ErrCellNotFound         = errors.New("cell not found")
)
