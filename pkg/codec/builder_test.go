package codec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBuilder() *Builder {
	return &Builder{
		Version:        52004,
		FlowUnits:      0,
		Subcatchments:  []string{"S1", "S2"},
		Nodes:          []string{"J1", "J2", "OUT"},
		Links:          []string{"C1"},
		Pollutants:     []string{"TSS"},
		PollutantUnits: []int32{1},
		SubcatchVars:   9,
		NodeVars:       7,
		LinkVars:       6,
		SysVars:        14,
		StartDate:      43831.0,
		ReportStep:     300,
		Periods:        5,
	}
}

func TestBuilder_Layout(t *testing.T) {
	b := testBuilder()

	data, err := b.Bytes()
	require.NoError(t, err)

	l := b.Layout()
	assert.Equal(t, l.Size, int64(len(data)))

	tr, err := DecodeTrailer(data[len(data)-TrailerSize:])
	require.NoError(t, err)
	assert.Equal(t, MagicNumber, tr.Magic)
	assert.Equal(t, int32(PrologueSize), tr.NamesOffset)
	assert.Equal(t, int32(l.PropertiesOffset), tr.PropertiesOffset)
	assert.Equal(t, int32(l.ResultsOffset), tr.ResultsOffset)
	assert.Equal(t, int32(5), tr.Periods)

	p, err := DecodePrologue(data)
	require.NoError(t, err)
	assert.Equal(t, MagicNumber, p.Magic)
	assert.Equal(t, int32(2), p.Subcatchments)
	assert.Equal(t, int32(3), p.Nodes)
	assert.Equal(t, int32(1), p.Links)
	assert.Equal(t, int32(1), p.Pollutants)

	// the pollutant units sit right before the properties
	assert.Equal(t, int32(1), Int32(data[l.PropertiesOffset-FieldSize:]))

	e, err := DecodeEpilogue(data[l.ResultsOffset-EpilogueSize:])
	require.NoError(t, err)
	assert.Equal(t, 43831.0, e.StartDate)
	assert.Equal(t, int32(300), e.ReportStep)

	// variable counts follow the property block
	varsAt := l.PropertiesOffset + PropertyBlockSize(2, 3, 1)
	assert.Equal(t, int32(9), Int32(data[varsAt:]))
}

func TestBuilder_Values(t *testing.T) {
	b := testBuilder()
	data, err := b.Bytes()
	require.NoError(t, err)
	l := b.Layout()

	// period 2, node 1, variable 3
	off := l.ResultsOffset + 2*l.BytesPerPeriod + DateSize + FieldSize*(2*9+1*7+3)
	assert.Equal(t, DefaultValue(2, BlockNode, 1, 3), Float32(data[off:]))

	// period 4, system variable 13
	off = l.ResultsOffset + 4*l.BytesPerPeriod + DateSize + FieldSize*(2*9+3*7+1*6+13)
	assert.Equal(t, DefaultValue(4, BlockSystem, 0, 13), Float32(data[off:]))
}

func TestBuilder_Errors(t *testing.T) {
	b := testBuilder()
	b.PollutantUnits = []int32{0, 1}
	_, err := b.Bytes()
	assert.Error(t, err)

	b = testBuilder()
	b.NodeVars = -1
	_, err = b.Bytes()
	assert.Error(t, err)
}

func TestBuilder_WriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "model.out")

	require.NoError(t, testBuilder().WriteFile(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, testBuilder().Layout().Size, info.Size())
}
