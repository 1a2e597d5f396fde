package pykl

import (
	"os"

	"github.com/fine-structures/klcells/klcells"
	"github.com/fine-structures/klcells/libkl"
	"github.com/fine-structures/klcells/libkl/catalog"
	"github.com/fine-structures/klcells/libkl/coxeter"
	"github.com/go-python/gpython/py"
	"github.com/pkg/errors"
)

var (
	LIB_VERSION = "v1.2026.1"
)

var (
	pyEngineType    = py.NewType("Engine", "a Coxeter group and the KL basis multiplier chosen for it")
	pyCatalogType   = py.NewType("Catalog", "klcells.Catalog")
	pyWorkspaceType = py.NewType("Workspace", "collects active session resources and catalogs")
)

const (
	READ_ONLY = 0x01

	kWorkspaceAttr = "_Workspace"
)

// pyErr converts a library error into a Python exception: bad input is a ValueError, anything else a RuntimeError.
func pyErr(err error) error {
	for _, bad := range []error{
		klcells.ErrBadWord,
		klcells.ErrBadGenerator,
		klcells.ErrBadCoxeterType,
		klcells.ErrBadCoxeterMatrix,
		klcells.ErrNotFullyCommutative,
		klcells.ErrUnsupportedEncoding,
	} {
		if errors.Is(err, bad) {
			return py.ExceptionNewf(py.ValueError, "%v", err)
		}
	}
	return py.ExceptionNewf(py.RuntimeError, "%v", err)
}

// wordArg accepts a word as a string expression ("1213", "s10 2", "e") or as its digit encoding (1213).
func wordArg(obj py.Object, rank int) (klcells.Word, error) {
	switch v := obj.(type) {
	case py.String:
		w, err := libkl.ParseWord(string(v), rank)
		if err != nil {
			return nil, pyErr(err)
		}
		return w, nil
	case py.Int:
		if v < 0 {
			return nil, py.ExceptionNewf(py.ValueError, "negative word encoding %d", int64(v))
		}
		w, err := klcells.WordFromDigits(uint64(v))
		if err == nil && rank > 0 {
			err = w.Validate(rank)
		}
		if err != nil {
			return nil, pyErr(err)
		}
		return w, nil
	}
	return nil, py.ExceptionNewf(py.TypeError, "expected a word as str or int (got %v)", obj.Type().Name)
}

func wordsArg(obj py.Object, rank int) ([]klcells.Word, error) {
	var items []py.Object
	switch v := obj.(type) {
	case py.Tuple:
		items = v
	case *py.List:
		items = v.Items
	default:
		return nil, py.ExceptionNewf(py.TypeError, "expected a list of words (got %v)", obj.Type().Name)
	}
	words := make([]klcells.Word, len(items))
	for i, item := range items {
		w, err := wordArg(item, rank)
		if err != nil {
			return nil, err
		}
		words[i] = w
	}
	return words, nil
}

func checkArgs(args py.Tuple, min int, usage string) error {
	if len(args) < min {
		return py.ExceptionNewf(py.TypeError, "usage: %s", usage)
	}
	return nil
}

func generatorArg(obj py.Object, rank int) (klcells.Generator, error) {
	s, err := py.GetInt(obj)
	if err != nil {
		return 0, err
	}
	if s < 1 || int(s) > rank {
		return 0, py.ExceptionNewf(py.ValueError, "generator %d outside 1..%d", int64(s), rank)
	}
	return klcells.Generator(s), nil
}

func wordsToTuple(words []klcells.Word) py.Tuple {
	out := make(py.Tuple, len(words))
	for i, w := range words {
		out[i] = py.String(w.String())
	}
	return out
}

// combinationToDict maps each word to its coefficient, as an int when the coefficient is constant.
func combinationToDict(C klcells.Combination) py.StringDict {
	out := py.StringDict{}
	for k, c := range C {
		if n, isConst := c.IsConst(); isConst {
			out[k.String()] = py.Int(n)
		} else {
			out[k.String()] = py.String(c.String())
		}
	}
	return out
}

type pyEngine struct {
	*libkl.Engine
}

func (eng pyEngine) Type() *py.Type {
	return pyEngineType
}

func (eng pyEngine) M__str__() (py.Object, error) {
	return py.String(eng.Name() + " (" + eng.Spec.Engine + ")"), nil
}

func (eng pyEngine) M__repr__() (py.Object, error) {
	return eng.M__str__()
}

func (eng pyEngine) rank() int {
	return eng.Matrix().Rank()
}

// Arg 1 (str): Cartan type, e.g. "H4"
// Arg 2 (str, optional): "hecke" (default) or "typeh"
func py_NewEngine(module py.Object, args py.Tuple) (py.Object, error) {
	if err := checkArgs(args, 1, "Engine(type, engine='hecke')"); err != nil {
		return nil, err
	}
	var typeName string
	engine := klcells.EngineHecke
	err := py.LoadTuple(args[:1], []interface{}{&typeName})
	if err != nil {
		return nil, err
	}
	if len(args) > 1 {
		if err = py.LoadTuple(args[1:2], []interface{}{&engine}); err != nil {
			return nil, err
		}
	}
	eng, err := libkl.NewEngineFromType(typeName, engine)
	if err != nil {
		return nil, pyErr(err)
	}
	return pyEngine{eng}, nil
}

func py_Engine_Canonical(self py.Object, args py.Tuple) (py.Object, error) {
	eng := self.(pyEngine)
	if err := checkArgs(args, 1, "Canonical(w)"); err != nil {
		return nil, err
	}
	w, err := wordArg(args[0], eng.rank())
	if err != nil {
		return nil, err
	}
	y, err := eng.Canonical(w)
	if err != nil {
		return nil, pyErr(err)
	}
	return py.String(y.String()), nil
}

func py_Engine_AValue(self py.Object, args py.Tuple) (py.Object, error) {
	eng := self.(pyEngine)
	if err := checkArgs(args, 1, "AValue(w)"); err != nil {
		return nil, err
	}
	w, err := wordArg(args[0], eng.rank())
	if err != nil {
		return nil, err
	}
	return py.Int(libkl.AValue(eng.Matrix(), w)), nil
}

// Arg 1 (int): generator s
// Arg 2 (word): w
func py_Engine_STimesW(self py.Object, args py.Tuple) (py.Object, error) {
	eng := self.(pyEngine)
	if len(args) != 2 {
		return nil, py.ExceptionNewf(py.TypeError, "STimesW takes a generator and a word")
	}
	s, err := generatorArg(args[0], eng.rank())
	if err != nil {
		return nil, err
	}
	w, err := wordArg(args[1], eng.rank())
	if err != nil {
		return nil, err
	}
	prod, err := eng.STimesW(s, w)
	if err != nil {
		return nil, pyErr(err)
	}
	return combinationToDict(prod), nil
}

// Arg 1 (word): w
// Arg 2 (int): generator s
func py_Engine_WTimesS(self py.Object, args py.Tuple) (py.Object, error) {
	eng := self.(pyEngine)
	if len(args) != 2 {
		return nil, py.ExceptionNewf(py.TypeError, "WTimesS takes a word and a generator")
	}
	w, err := wordArg(args[0], eng.rank())
	if err != nil {
		return nil, err
	}
	s, err := generatorArg(args[1], eng.rank())
	if err != nil {
		return nil, err
	}
	prod, err := libkl.WTimesS(eng, w, s)
	if err != nil {
		return nil, pyErr(err)
	}
	return combinationToDict(prod), nil
}

func py_Engine_Product(self py.Object, args py.Tuple) (py.Object, error) {
	eng := self.(pyEngine)
	if len(args) != 2 {
		return nil, py.ExceptionNewf(py.TypeError, "Product takes two words")
	}
	x, err := wordArg(args[0], eng.rank())
	if err != nil {
		return nil, err
	}
	y, err := wordArg(args[1], eng.rank())
	if err != nil {
		return nil, err
	}
	prod, err := libkl.Product(eng, x, y)
	if err != nil {
		return nil, pyErr(err)
	}
	return combinationToDict(prod), nil
}

func py_Engine_BreakElt(self py.Object, args py.Tuple) (py.Object, error) {
	eng := self.(pyEngine)
	if err := checkArgs(args, 1, "BreakElt(w)"); err != nil {
		return nil, err
	}
	w, err := wordArg(args[0], eng.rank())
	if err != nil {
		return nil, err
	}
	poly, err := eng.Expand(w)
	if err != nil {
		return nil, pyErr(err)
	}
	return combinationToDict(poly), nil
}

func cellMethod(side klcells.CellSide) func(self py.Object, args py.Tuple) (py.Object, error) {
	return func(self py.Object, args py.Tuple) (py.Object, error) {
		eng := self.(pyEngine)
		if err := checkArgs(args, 1, side.String()+" cell of w"); err != nil {
			return nil, err
		}
		w, err := wordArg(args[0], eng.rank())
		if err != nil {
			return nil, err
		}
		opts := eng.Opts
		opts.Side = side
		C, err := libkl.Cell(eng, w, opts)
		if err != nil {
			return nil, pyErr(err)
		}
		return wordsToTuple(C), nil
	}
}

// Arg 1 (word): seed of the two-sided cell to partition
func py_Engine_LeftCellsIn(self py.Object, args py.Tuple) (py.Object, error) {
	eng := self.(pyEngine)
	if err := checkArgs(args, 1, "LeftCellsIn(w)"); err != nil {
		return nil, err
	}
	w, err := wordArg(args[0], eng.rank())
	if err != nil {
		return nil, err
	}
	C, err := libkl.TwoSidedCell(eng, w, eng.Opts)
	if err != nil {
		return nil, pyErr(err)
	}
	lcells, err := libkl.LeftCellsIn(eng, C, eng.Opts)
	if err != nil {
		return nil, pyErr(err)
	}
	out := make(py.Tuple, len(lcells))
	for i, lc := range lcells {
		out[i] = wordsToTuple(lc)
	}
	return out, nil
}

// Arg 1 (list of words): a left cell
func py_Engine_DistInv(self py.Object, args py.Tuple) (py.Object, error) {
	eng := self.(pyEngine)
	if err := checkArgs(args, 1, "DistInv(cell)"); err != nil {
		return nil, err
	}
	cell, err := wordsArg(args[0], eng.rank())
	if err != nil {
		return nil, err
	}
	d, err := libkl.CellDistinguishedInvolution(eng, cell)
	if err != nil {
		return nil, pyErr(err)
	}
	return py.String(d.String()), nil
}

// Arg 1 (word, optional): seed (default 13)
// kwargs: label, file, catalog
func py_Engine_A2Cells(self py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	eng := self.(pyEngine)
	seed, err := eng.SeedWord()
	if err != nil {
		return nil, pyErr(err)
	}
	if len(args) > 0 {
		if seed, err = wordArg(args[0], eng.rank()); err != nil {
			return nil, err
		}
	}
	report, err := libkl.A2Cells(eng, eng.Name(), seed, eng.Opts)
	if err != nil {
		return nil, pyErr(err)
	}

	opts := klcells.DefaultPrintOpts
	var pathname string
	py.LoadAttr(kwargs, "label", &opts.Label)
	py.LoadAttr(kwargs, "file", &pathname)

	if catObj, ok := kwargs["catalog"]; ok {
		cat, isCat := catObj.(pyCatalog)
		if !isCat {
			return nil, py.ExceptionNewf(py.TypeError, "catalog must be a Catalog (got %v)", catObj.Type().Name)
		}
		for _, rec := range report.Records() {
			if err = cat.PutCell(rec); err != nil {
				return nil, pyErr(err)
			}
		}
	}

	writer, err := openOutput(pathname)
	if err != nil {
		return nil, err
	}
	defer writer.Close()
	if err = libkl.WriteA2Report(writer, report, opts); err != nil {
		return nil, pyErr(err)
	}
	return py.Int(len(report.TwoSided)), nil
}

// Arg 1 (word): u
// Arg 2 (word): w
// Arg 3 (str): Cartan type (default "I2(inf)")
func py_JProduct(module py.Object, args py.Tuple) (py.Object, error) {
	if len(args) < 2 {
		return nil, py.ExceptionNewf(py.TypeError, "JProduct takes two words and an optional type")
	}
	typeName := "I2(inf)"
	if len(args) > 2 {
		if err := py.LoadTuple(args[2:3], []interface{}{&typeName}); err != nil {
			return nil, err
		}
	}
	M, err := coxeter.ParseType(typeName)
	if err != nil {
		return nil, pyErr(err)
	}
	u, err := wordArg(args[0], M.Rank())
	if err != nil {
		return nil, err
	}
	w, err := wordArg(args[1], M.Rank())
	if err != nil {
		return nil, err
	}
	prod, err := libkl.TBasisProduct(u, w, M)
	if err != nil {
		return nil, pyErr(err)
	}
	return combinationToDict(prod), nil
}

func py_DihedralSegments(module py.Object, args py.Tuple) (py.Object, error) {
	if err := checkArgs(args, 1, "DihedralSegments(w)"); err != nil {
		return nil, err
	}
	w, err := wordArg(args[0], 0)
	if err != nil {
		return nil, err
	}
	return wordsToTuple(libkl.DihedralSegments(w)), nil
}

func py_FCCardinality(module py.Object, args py.Tuple) (py.Object, error) {
	if err := checkArgs(args, 1, "FCCardinality(n)"); err != nil {
		return nil, err
	}
	n, err := py.GetInt(args[0])
	if err != nil {
		return nil, err
	}
	return py.Int(libkl.FCCardinality(int(n)).Int64()), nil
}

type Workspace struct {
	CatalogCtx klcells.CatalogContext
}

func (ws *Workspace) Close() {
	ws.CatalogCtx.Close()
	<-ws.CatalogCtx.Done()
}

func (ws *Workspace) Type() *py.Type {
	return pyWorkspaceType
}

func py_GetWorkspace(module py.Object, args py.Tuple) (py.Object, error) {
	wsObj, _ := py.GetAttrString(module, kWorkspaceAttr)
	if wsObj == nil {
		ws := &Workspace{
			CatalogCtx: klcells.NewCatalogContext(),
		}
		wsObj = ws
		py.SetAttrString(module, kWorkspaceAttr, wsObj)
	}
	return wsObj, nil
}

func py_Workspace_CatalogExists(self py.Object, args py.Tuple) (py.Object, error) {
	_ = self.(*Workspace)

	var pathname string
	err := py.LoadTuple(args, []interface{}{&pathname})
	if err != nil {
		return nil, err
	}
	_, err = os.Stat(pathname)
	if os.IsNotExist(err) {
		return py.False, nil
	}
	return py.True, nil
}

// Arg 1 (str): db path ("" for in-memory)
// Arg 2 (int): flags (READ_ONLY)
func py_Workspace_OpenCatalog(self py.Object, args py.Tuple) (py.Object, error) {
	ws := self.(*Workspace)

	var pathname string
	var flags int32
	err := py.LoadTuple(args, []interface{}{&pathname, &flags})
	if err != nil {
		return nil, err
	}

	opts := klcells.CatalogOpts{
		ReadOnly:   (flags & READ_ONLY) != 0,
		DbPathName: pathname,
	}
	cat, err := catalog.OpenCatalog(ws.CatalogCtx, opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return pyCatalog{cat}, nil
}

type pyCatalog struct {
	klcells.Catalog
}

func (cat pyCatalog) Type() *py.Type {
	return pyCatalogType
}

func py_Catalog_Close(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	if cat.Catalog != nil {
		cat.Close()
	}
	return py.None, nil
}

func py_Catalog_NumCells(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	return py.Int(cat.NumCells()), nil
}

// Arg 1 (str, optional): group name; all groups when omitted
func py_Catalog_Select(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	var group string
	if len(args) > 0 {
		if err := py.LoadTuple(args, []interface{}{&group}); err != nil {
			return nil, err
		}
	}
	var cells py.Tuple
	err := cat.Select(group, func(rec *klcells.CellRecord) bool {
		cells = append(cells, wordsToTuple(rec.Words()))
		return true
	})
	if err != nil {
		return nil, pyErr(err)
	}
	return cells, nil
}

type echoToWriter struct {
	stdout *os.File
	to     *os.File
}

func (echo *echoToWriter) Write(buf []byte) (int, error) {
	if echo.to == nil {
		return echo.stdout.Write(buf)
	}
	return echo.to.Write(buf)
}

func (echo *echoToWriter) Close() error {
	if echo.to != nil {
		return echo.to.Close()
	}
	return nil
}

func openOutput(pathname string) (*echoToWriter, error) {
	writer := &echoToWriter{
		stdout: os.Stdout,
	}
	if len(pathname) > 0 {
		file, err := os.OpenFile(pathname, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0600)
		if err != nil {
			return nil, py.ExceptionNewf(py.FileNotFoundError, "%v", err)
		}
		writer.to = file
	}
	return writer, nil
}

func init() {

	/////////////////////////////////
	// Engine
	{
		pyEngineType.Dict["Canonical"] = py.MustNewMethod("Canonical", py_Engine_Canonical, 0, "returns the canonical word of w")
		pyEngineType.Dict["AValue"] = py.MustNewMethod("AValue", py_Engine_AValue, 0, "returns the heap a-value of w")
		pyEngineType.Dict["STimesW"] = py.MustNewMethod("STimesW", py_Engine_STimesW, 0, "returns c_s c_w as {word: coeff}")
		pyEngineType.Dict["WTimesS"] = py.MustNewMethod("WTimesS", py_Engine_WTimesS, 0, "returns c_w c_s as {word: coeff}")
		pyEngineType.Dict["Product"] = py.MustNewMethod("Product", py_Engine_Product, 0, "returns c_x c_y as {word: coeff}")
		pyEngineType.Dict["BreakElt"] = py.MustNewMethod("BreakElt", py_Engine_BreakElt, 0, "writes c_w as a combination of generator products")
		pyEngineType.Dict["LeftCell"] = py.MustNewMethod("LeftCell", cellMethod(klcells.LeftCell), 0, "")
		pyEngineType.Dict["RightCell"] = py.MustNewMethod("RightCell", cellMethod(klcells.RightCell), 0, "")
		pyEngineType.Dict["TwoSidedCell"] = py.MustNewMethod("TwoSidedCell", cellMethod(klcells.TwoSidedCell), 0, "")
		pyEngineType.Dict["LeftCellsIn"] = py.MustNewMethod("LeftCellsIn", py_Engine_LeftCellsIn, 0, "partitions the two-sided cell of w into left cells")
		pyEngineType.Dict["DistInv"] = py.MustNewMethod("DistInv", py_Engine_DistInv, 0, "returns the distinguished involution of a left cell")
		pyEngineType.Dict["A2Cells"] = py.MustNewMethod("A2Cells", py_Engine_A2Cells, 0, "prints the left cells of the two-sided cell of a seed")
	}

	/////////////////////////////////
	// Catalog
	{
		pyCatalogType.Dict["Select"] = py.MustNewMethod("Select", py_Catalog_Select, 0, "")
		pyCatalogType.Dict["NumCells"] = py.MustNewMethod("NumCells", py_Catalog_NumCells, 0, "")
		pyCatalogType.Dict["Close"] = py.MustNewMethod("Close", py_Catalog_Close, 0, "")
	}

	/////////////////////////////////
	// Workspace
	{
		pyWorkspaceType.Dict["OpenCatalog"] = py.MustNewMethod("OpenCatalog", py_Workspace_OpenCatalog, 0, "")
		pyWorkspaceType.Dict["CatalogExists"] = py.MustNewMethod("CatalogExists", py_Workspace_CatalogExists, 0, "")
	}

	{
		methods := []*py.Method{
			py.MustNewMethod("Engine", py_NewEngine, 0, "Engine(type, engine='hecke')"),
			py.MustNewMethod("JProduct", py_JProduct, 0, "JProduct(u, w, type='I2(inf)')"),
			py.MustNewMethod("DihedralSegments", py_DihedralSegments, 0, ""),
			py.MustNewMethod("FCCardinality", py_FCCardinality, 0, ""),
			py.MustNewMethod("GetWorkspace", py_GetWorkspace, 0, ""),
		}

		globals := py.StringDict{
			"LIB_VERSION": py.String(LIB_VERSION),
			"READ_ONLY":   py.Int(READ_ONLY),
			"MAX_RANK":    py.Int(klcells.MaxRank),
			"ENGINES":     py.Tuple{py.String(klcells.EngineHecke), py.String(klcells.EngineTypeH)},
		}

		py.RegisterModule(&py.ModuleImpl{
			Info: py.ModuleInfo{
				Name: "_pykl",
				Doc:  "Kazhdan-Lusztig cells gpython module",
			},
			Methods: methods,
			Globals: globals,
			OnContextClosed: func(m *py.Module) {
				wsObj, _ := py.GetAttrString(m, kWorkspaceAttr)
				if wsObj != nil {
					wsObj.(*Workspace).Close()
				}
			},
		})
	}
}
