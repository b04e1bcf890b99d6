package codec

import (
	"fmt"
	"os"
	"path/filepath"
)

// Block identifies a category inside a results record
type Block int

const (
	BlockSubcatch Block = iota
	BlockNode
	BlockLink
	BlockSystem
)

// ValueFunc supplies the value stored for one (period, block, element,
// variable) coordinate.
type ValueFunc func(period int, block Block, element, variable int) float32

// Builder assembles a complete results file in memory. It is used to
// produce fixtures and synthetic files; it does not append to existing files.
type Builder struct {
	Version   int32
	FlowUnits int32

	Subcatchments []string
	Nodes         []string
	Links         []string
	Pollutants    []string

	// PollutantUnits holds one concentration unit code per pollutant
	PollutantUnits []int32

	SubcatchVars int
	NodeVars     int
	LinkVars     int
	SysVars      int

	StartDate  float64
	ReportStep int32
	Periods    int
	RunStatus  int32

	Value ValueFunc
}

// DefaultValue encodes the coordinate into the value so that every cell of a
// synthetic file is distinct.
func DefaultValue(period int, block Block, element, variable int) float32 {
	return float32(period*10000 + int(block)*1000 + element*10 + variable)
}

// Layout holds the section offsets of a built file
type Layout struct {
	NamesOffset      int64
	PropertiesOffset int64
	ResultsOffset    int64
	BytesPerPeriod   int64
	Size             int64
}

// Layout computes section offsets without building the file
func (b *Builder) Layout() Layout {
	var l Layout
	l.NamesOffset = PrologueSize

	off := l.NamesOffset
	for _, names := range [][]string{b.Subcatchments, b.Nodes, b.Links, b.Pollutants} {
		for _, n := range names {
			off += FieldSize + int64(len(n))
		}
	}
	off += int64(len(b.Pollutants)) * FieldSize
	l.PropertiesOffset = off

	off += PropertyBlockSize(int64(len(b.Subcatchments)), int64(len(b.Nodes)), int64(len(b.Links)))
	off += FieldSize * int64(4+b.SubcatchVars+b.NodeVars+b.LinkVars+b.SysVars)
	off += EpilogueSize
	l.ResultsOffset = off

	l.BytesPerPeriod = BytesPerPeriod(
		int64(len(b.Subcatchments)), int64(len(b.Nodes)), int64(len(b.Links)),
		int64(b.SubcatchVars), int64(b.NodeVars), int64(b.LinkVars), int64(b.SysVars),
	)
	l.Size = l.ResultsOffset + int64(b.Periods)*l.BytesPerPeriod + TrailerSize
	return l
}

// Bytes builds the file image
func (b *Builder) Bytes() ([]byte, error) {
	if len(b.PollutantUnits) != 0 && len(b.PollutantUnits) != len(b.Pollutants) {
		return nil, fmt.Errorf("codec: %d pollutant units for %d pollutants", len(b.PollutantUnits), len(b.Pollutants))
	}
	if b.SubcatchVars < 0 || b.NodeVars < 0 || b.LinkVars < 0 || b.SysVars < 0 || b.Periods < 0 {
		return nil, fmt.Errorf("codec: negative variable or period count")
	}

	l := b.Layout()
	if l.Size > int64(^uint32(0)>>1) {
		return nil, fmt.Errorf("codec: file of %d bytes exceeds 32-bit offsets", l.Size)
	}

	value := b.Value
	if value == nil {
		value = DefaultValue
	}

	buf := make([]byte, 0, l.Size)
	field := func(v int32) {
		var f [FieldSize]byte
		PutInt32(f[:], v)
		buf = append(buf, f[:]...)
	}

	buf = append(buf, EncodePrologue(Prologue{
		Magic:         MagicNumber,
		Version:       b.Version,
		FlowUnits:     b.FlowUnits,
		Subcatchments: int32(len(b.Subcatchments)),
		Nodes:         int32(len(b.Nodes)),
		Links:         int32(len(b.Links)),
		Pollutants:    int32(len(b.Pollutants)),
	})...)

	for _, names := range [][]string{b.Subcatchments, b.Nodes, b.Links, b.Pollutants} {
		for _, n := range names {
			field(int32(len(n)))
			buf = append(buf, n...)
		}
	}

	for i := range b.Pollutants {
		var unit int32
		if len(b.PollutantUnits) > 0 {
			unit = b.PollutantUnits[i]
		}
		field(unit)
	}

	// saved element properties
	field(1)
	field(0)
	for range b.Subcatchments {
		field(0)
	}
	field(3)
	field(0)
	field(1)
	field(2)
	for range b.Nodes {
		field(0)
		field(0)
		field(0)
	}
	field(5)
	for code := int32(0); code < 5; code++ {
		field(code)
	}
	for range b.Links {
		for j := 0; j < 5; j++ {
			field(0)
		}
	}

	for _, n := range []int{b.SubcatchVars, b.NodeVars, b.LinkVars, b.SysVars} {
		field(int32(n))
		for code := 0; code < n; code++ {
			field(int32(code))
		}
	}

	buf = append(buf, EncodeEpilogue(Epilogue{StartDate: b.StartDate, ReportStep: b.ReportStep})...)

	counts := []int{len(b.Subcatchments), len(b.Nodes), len(b.Links), 1}
	vars := []int{b.SubcatchVars, b.NodeVars, b.LinkVars, b.SysVars}
	for p := 0; p < b.Periods; p++ {
		var date [DateSize]byte
		PutFloat64(date[:], b.StartDate+float64(p+1)*float64(b.ReportStep)/86400.0)
		buf = append(buf, date[:]...)
		for blk := BlockSubcatch; blk <= BlockSystem; blk++ {
			for e := 0; e < counts[blk]; e++ {
				for v := 0; v < vars[blk]; v++ {
					var f [FieldSize]byte
					PutFloat32(f[:], value(p, blk, e, v))
					buf = append(buf, f[:]...)
				}
			}
		}
	}

	buf = append(buf, EncodeTrailer(Trailer{
		NamesOffset:      int32(l.NamesOffset),
		PropertiesOffset: int32(l.PropertiesOffset),
		ResultsOffset:    int32(l.ResultsOffset),
		Periods:          int32(b.Periods),
		RunStatus:        b.RunStatus,
		Magic:            MagicNumber,
	})...)

	return buf, nil
}

// WriteFile builds the file image and writes it to path
func (b *Builder) WriteFile(path string) error {
	data, err := b.Bytes()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}
	return nil
}
