package catalog

import (
	"runtime"
	"strings"

	"github.com/dgraph-io/badger/v3"
	"github.com/fine-structures/klcells/klcells"
	proto "github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

/***

Catalog database format:

	gCatalogStateKey => CatalogState

	Group, NUL, Side, len(Seed), Seed => CellRecord
	...

Group names never contain NUL and never start with one, so the state key sorts before every record.
The seed is preceded by its length so that records of one group and side iterate in ShortLex order of seed.
The length takes one byte, so seeds are limited to maxSeedLen generators.

***/

const (
	kMajorVers = 2026
	kMinorVers = 1
)

const maxSeedLen = 255

var (
	gCatalogStateKey = []byte{0x00, 0x00, 0x01}
)

// catalog is a badger-backed store of computed cells
type catalog struct {
	ctx        klcells.CatalogContext
	readOnly   bool
	stateDirty bool
	state      klcells.CatalogState
	db         *badger.DB
}

// OpenCatalog opens (or creates) a cell catalog and attaches it to ctx until it is closed.
func OpenCatalog(ctx klcells.CatalogContext, opts klcells.CatalogOpts) (klcells.Catalog, error) {
	cat := &catalog{
		ctx:      ctx,
		readOnly: opts.ReadOnly,
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false
	dbOpts.Logger = nil

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" && opts.ReadOnly {
		klog.Warningf("catalog %q: read-only mode unsupported on windows; opening read-write", opts.DbPathName)
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(klcells.ErrBadCatalogParam, "DbPathName must be specified for read-only catalog")
		}
		dbOpts.Dir = ""
		dbOpts.ValueDir = ""
		dbOpts.InMemory = true
	}

	var err error
	cat.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, errors.Wrapf(klcells.ErrBadCatalogParam, "open %q: %v", opts.DbPathName, err)
	}

	// Once the db is open, the ctx is blocked until the catalog closes
	ctx.AttachCatalog(cat)
	klog.V(1).Infof("catalog %q opened (read-only: %v)", opts.DbPathName, opts.ReadOnly)

	err = cat.loadState()
	if errors.Is(err, badger.ErrKeyNotFound) {
		err = nil
		cat.stateDirty = !cat.readOnly
		cat.state.MajorVers = kMajorVers
		cat.state.MinorVers = kMinorVers
	}
	if err == nil && (cat.state.MajorVers != kMajorVers || cat.state.MinorVers != kMinorVers) {
		err = errors.Wrapf(klcells.ErrBadCatalogParam, "catalog version %d.%d is incompatible", cat.state.MajorVers, cat.state.MinorVers)
	}
	if err != nil {
		cat.Close()
		return nil, err
	}
	return cat, nil
}

func (cat *catalog) loadState() error {
	return cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gCatalogStateKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return proto.Unmarshal(val, &cat.state)
		})
	})
}

func (cat *catalog) flushState() error {
	if !cat.stateDirty {
		return nil
	}
	err := cat.db.Update(func(txn *badger.Txn) error {
		stateBuf, err := proto.Marshal(&cat.state)
		if err != nil {
			return err
		}
		return txn.Set(gCatalogStateKey, stateBuf)
	})
	if err == nil {
		cat.stateDirty = false
	}
	return err
}

func (cat *catalog) Close() error {
	if cat.db == nil {
		return nil
	}
	err := cat.flushState()
	if closeErr := cat.db.Close(); err == nil {
		err = closeErr
	}
	cat.db = nil
	cat.ctx.DetachCatalog(cat)
	cat.ctx = nil
	klog.V(1).Infof("catalog closed (%d cells)", cat.state.NumCells)
	return err
}

func (cat *catalog) IsReadOnly() bool {
	return cat.readOnly
}

func (cat *catalog) NumCells() uint64 {
	return cat.state.NumCells
}

func checkKey(group string, seed klcells.Word) error {
	if err := checkGroup(group); err != nil {
		return err
	}
	if len(seed) > maxSeedLen {
		return errors.Wrapf(klcells.ErrBadCatalogParam, "seed of length %d exceeds %d", len(seed), maxSeedLen)
	}
	return nil
}

func checkGroup(group string) error {
	if group == "" || strings.IndexByte(group, 0) >= 0 {
		return errors.Wrapf(klcells.ErrBadCatalogParam, "bad group name %q", group)
	}
	return nil
}

// formCellKey appends the record key of a cell.
func formCellKey(key []byte, group string, side klcells.CellSide, seed klcells.Word) []byte {
	key = append(key, group...)
	key = append(key, 0, byte(side), byte(len(seed)))
	return append(key, seed.Key()...)
}

func (cat *catalog) PutCell(rec *klcells.CellRecord) error {
	if cat.readOnly {
		return klcells.ErrCatalogReadOnly
	}
	seed := rec.SeedWord()
	if err := checkKey(rec.Group, seed); err != nil {
		return err
	}
	val, err := proto.Marshal(rec)
	if err != nil {
		return err
	}
	key := formCellKey(nil, rec.Group, rec.CellSide(), seed)

	isNew := false
	err = cat.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			isNew = true
		} else if err != nil {
			return err
		}
		return txn.Set(key, val)
	})
	if err != nil {
		return err
	}

	if isNew {
		cat.state.NumCells++
	}
	if !cat.state.HasGroup(rec.Group) {
		cat.state.Groups = append(cat.state.Groups, rec.Group)
	}
	cat.stateDirty = true
	return nil
}

func (cat *catalog) GetCell(group string, side klcells.CellSide, seed klcells.Word) (*klcells.CellRecord, error) {
	if err := checkKey(group, seed); err != nil {
		return nil, err
	}
	var keyBuf [128]byte
	key := formCellKey(keyBuf[:0], group, side, seed)

	rec := &klcells.CellRecord{}
	err := cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return proto.Unmarshal(val, rec)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, errors.Wrapf(klcells.ErrCellNotFound, "%s %v cell of %v", group, side, seed)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Select calls onHit with each record of the given group (or every group), ordered by group, side, and then
// ShortLex order of seed.
func (cat *catalog) Select(group string, onHit klcells.OnCell) error {
	var prefix []byte
	if group != "" {
		if err := checkGroup(group); err != nil {
			return err
		}
		prefix = append([]byte(group), 0)
	}

	txn := cat.db.NewTransaction(false)
	defer txn.Discard()

	it := txn.NewIterator(badger.IteratorOptions{
		PrefetchValues: true,
		PrefetchSize:   100,
		Prefix:         prefix,
	})
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		item := it.Item()
		if item.Key()[0] == 0 {
			continue
		}
		rec := &klcells.CellRecord{}
		err := item.Value(func(val []byte) error {
			return proto.Unmarshal(val, rec)
		})
		if err != nil {
			return err
		}
		if !onHit(rec) {
			break
		}
	}
	return nil
}
