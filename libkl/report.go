package libkl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fine-structures/klcells/klcells"
)

// LeftCellReport is one left cell of a two-sided cell.
type LeftCellReport struct {
	Elements     []klcells.Word
	Intersection []klcells.Word // elements whose inverse is also in the cell
	DistInv      klcells.Word
}

// A2Report partitions the two-sided cell of a seed into left cells.
type A2Report struct {
	Group     string
	Seed      klcells.Word
	AValue    int // heap a-value of the seed
	TwoSided  []klcells.Word
	LeftCells []LeftCellReport
}

// A2Cells computes the two-sided cell of seed (13 for the a-value 2 cell of H_n), its left cells, and for each left
// cell its intersection with its inverse and its distinguished involution.
func A2Cells(m klcells.Multiplier, group string, seed klcells.Word, opts klcells.CellOpts) (*A2Report, error) {
	C, err := TwoSidedCell(m, seed, opts)
	if err != nil {
		return nil, err
	}
	lcells, err := LeftCellsIn(m, C, opts)
	if err != nil {
		return nil, err
	}

	y, err := m.Canonical(seed)
	if err != nil {
		return nil, err
	}
	report := &A2Report{
		Group:     group,
		Seed:      y,
		AValue:    AValue(m.Matrix(), y),
		TwoSided:  C,
		LeftCells: make([]LeftCellReport, len(lcells)),
	}
	for i, lc := range lcells {
		both, err := CellIntersection(m, lc)
		if err != nil {
			return nil, err
		}
		d, err := DistinguishedInvolution(m, both)
		if err != nil {
			return nil, err
		}
		report.LeftCells[i] = LeftCellReport{
			Elements:     lc,
			Intersection: both,
			DistInv:      d,
		}
	}
	return report, nil
}

// Records returns one catalog record per left cell.
func (report *A2Report) Records() []*klcells.CellRecord {
	recs := make([]*klcells.CellRecord, len(report.LeftCells))
	for i, lc := range report.LeftCells {
		rec := klcells.NewCellRecord(report.Group, klcells.LeftCell, lc.Elements[0], lc.Elements)
		rec.AValue = int32(report.AValue)
		rec.SetIntersection(lc.Intersection)
		rec.SetDistInv(lc.DistInv)
		recs[i] = rec
	}
	return recs
}

func formatWord(w klcells.Word, opts klcells.PrintOpts) (string, error) {
	if !opts.Digits {
		return w.String(), nil
	}
	n, err := w.Digits()
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(n, 10), nil
}

func formatWords(words []klcells.Word, opts klcells.PrintOpts) (string, error) {
	buf := make([]byte, 0, 16*len(words))
	buf = append(buf, '[')
	for i, w := range words {
		if i > 0 {
			buf = append(buf, ", "...)
		}
		str, err := formatWord(w, opts)
		if err != nil {
			return "", err
		}
		buf = append(buf, str...)
	}
	buf = append(buf, ']')
	return string(buf), nil
}

// WriteCellReport writes one left cell as "Cell <label>: [...]" followed by its intersection and distinguished
// involution when opts asks for them.
func WriteCellReport(out io.Writer, lc LeftCellReport, opts klcells.PrintOpts) error {
	str, err := formatWords(lc.Elements, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Cell %s: %s.\n", opts.Label, str)

	if opts.Intersection {
		if str, err = formatWords(lc.Intersection, opts); err != nil {
			return err
		}
		fmt.Fprintf(out, "The intersection: %s.\n", str)
	}
	if opts.DistInv && lc.DistInv != nil {
		if str, err = formatWord(lc.DistInv, opts); err != nil {
			return err
		}
		fmt.Fprintf(out, "The distinguished involution: %s.\n", str)
	}
	_, err = out.Write(newline)
	return err
}

var newline = []byte("\n")

// WriteA2Report writes the header for the group followed by every left cell.
func WriteA2Report(out io.Writer, report *A2Report, opts klcells.PrintOpts) error {
	fmt.Fprintf(out, "************** %s *****************\n\n", report.Group)
	fmt.Fprintf(out, "The 2-sided cell of %s in %s has %d elements.\n\n", report.Seed, report.Group, len(report.TwoSided))
	fmt.Fprintf(out, "The cell consists of %d left cells. For each cell,\n", len(report.LeftCells))
	fmt.Fprintf(out, "we list its elements, its intersection with its inverse,\nand its unique distinguished involution below.\n\n")

	label := opts.Label
	for i, lc := range report.LeftCells {
		opts.Label = label + strconv.Itoa(i+1)
		if err := WriteCellReport(out, lc, opts); err != nil {
			return err
		}
	}
	return nil
}
