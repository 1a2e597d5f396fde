package klcells

import (
	proto "github.com/gogo/protobuf/proto"
)

// CellRecord is the persisted form of a computed cell.
//
// Words are stored as raw generator bytes (see Word.Key).
type CellRecord struct {
	Group        string   `protobuf:"bytes,1,opt,name=group,proto3" json:"group,omitempty"`
	Side         int32    `protobuf:"varint,2,opt,name=side,proto3" json:"side,omitempty"`
	Seed         []byte   `protobuf:"bytes,3,opt,name=seed,proto3" json:"seed,omitempty"`
	Elements     [][]byte `protobuf:"bytes,4,rep,name=elements,proto3" json:"elements,omitempty"`
	AValue       int32    `protobuf:"varint,5,opt,name=a_value,json=aValue,proto3" json:"a_value,omitempty"`
	Intersection [][]byte `protobuf:"bytes,6,rep,name=intersection,proto3" json:"intersection,omitempty"`
	DistInv      []byte   `protobuf:"bytes,7,opt,name=dist_inv,json=distInv,proto3" json:"dist_inv,omitempty"`
}

func (m *CellRecord) Reset()         { *m = CellRecord{} }
func (m *CellRecord) String() string { return proto.CompactTextString(m) }
func (*CellRecord) ProtoMessage()    {}

// CellSide returns the record's side.
func (m *CellRecord) CellSide() CellSide {
	return CellSide(m.Side)
}

// SeedWord returns the record's seed.
func (m *CellRecord) SeedWord() Word {
	return WordKey(m.Seed).Word()
}

// Words returns the cell elements in stored order.
func (m *CellRecord) Words() []Word {
	return bytesToWords(m.Elements)
}

// IntersectionWords returns the elements of the cell that are also in its inverse.
func (m *CellRecord) IntersectionWords() []Word {
	return bytesToWords(m.Intersection)
}

// DistInvWord returns the distinguished involution, or nil if none was recorded.
func (m *CellRecord) DistInvWord() Word {
	if m.DistInv == nil {
		return nil
	}
	return WordKey(m.DistInv).Word()
}

// NewCellRecord forms a record from computed words.
func NewCellRecord(group string, side CellSide, seed Word, elements []Word) *CellRecord {
	return &CellRecord{
		Group:    group,
		Side:     int32(side),
		Seed:     []byte(seed.Key()),
		Elements: wordsToBytes(elements),
	}
}

// SetIntersection records the intersection of the cell with its inverse.
func (m *CellRecord) SetIntersection(words []Word) {
	m.Intersection = wordsToBytes(words)
}

// SetDistInv records the distinguished involution.
func (m *CellRecord) SetDistInv(w Word) {
	m.DistInv = []byte(w.Key())
}

// CatalogState is the catalog header persisted under a reserved key.
type CatalogState struct {
	MajorVers int32    `protobuf:"varint,1,opt,name=major_vers,json=majorVers,proto3" json:"major_vers,omitempty"`
	MinorVers int32    `protobuf:"varint,2,opt,name=minor_vers,json=minorVers,proto3" json:"minor_vers,omitempty"`
	NumCells  uint64   `protobuf:"varint,3,opt,name=num_cells,json=numCells,proto3" json:"num_cells,omitempty"`
	Groups    []string `protobuf:"bytes,4,rep,name=groups,proto3" json:"groups,omitempty"`
}

func (m *CatalogState) Reset()         { *m = CatalogState{} }
func (m *CatalogState) String() string { return proto.CompactTextString(m) }
func (*CatalogState) ProtoMessage()    {}

// HasGroup reports whether any record of the given group was ever put.
func (m *CatalogState) HasGroup(group string) bool {
	for _, g := range m.Groups {
		if g == group {
			return true
		}
	}
	return false
}

func wordsToBytes(words []Word) [][]byte {
	out := make([][]byte, len(words))
	for i, w := range words {
		out[i] = []byte(w.Key())
	}
	return out
}

func bytesToWords(bufs [][]byte) []Word {
	out := make([]Word, len(bufs))
	for i, buf := range bufs {
		out[i] = WordKey(buf).Word()
	}
	return out
}
