package output

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/swmmout/pkg/codec"
	"github.com/ssargent/swmmout/pkg/errmgr"
)

func value(p int, blk codec.Block, e, v int) float32 {
	return codec.DefaultValue(p, blk, e, v)
}

func TestAPI_ProjectSizeWithoutPollutants(t *testing.T) {
	b := fixtureBuilder()
	b.Pollutants = nil
	b.PollutantUnits = nil
	b.SubcatchVars, b.NodeVars, b.LinkVars = 8, 6, 5

	s := openFixture(t, b)

	size, err := s.ProjectSize()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 1, 1, 0}, size)

	units, err := s.Units()
	require.NoError(t, err)
	assert.Equal(t, []int{int(US), int(CFS), int(NoUnits)}, units)
}

func TestAPI_Metadata(t *testing.T) {
	b := fixtureBuilder()
	b.FlowUnits = int32(LPS)
	s := openFixture(t, b)

	v, err := s.Version()
	require.NoError(t, err)
	assert.Equal(t, 52004, v)

	units, err := s.Units()
	require.NoError(t, err)
	assert.Equal(t, []int{int(SI), int(LPS), int(UG)}, units)

	fu, err := s.FlowUnits()
	require.NoError(t, err)
	assert.Equal(t, LPS, fu)

	pu, err := s.PollutantUnits()
	require.NoError(t, err)
	assert.Equal(t, []ConcUnits{UG}, pu)

	start, err := s.StartDate()
	require.NoError(t, err)
	assert.Equal(t, 43831.0, start)

	step, err := s.Times(ReportStep)
	require.NoError(t, err)
	assert.Equal(t, 300, step)

	n, err := s.Times(NumPeriods)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	_, err = s.Times(TimeCode(9))
	assert.Equal(t, errmgr.CodeInvalidParameter, errmgr.Code(err))
}

func TestAPI_ElementNameBounds(t *testing.T) {
	s := openFixture(t, fixtureBuilder())

	counts := map[ElementType]int{Subcatch: 2, Node: 3, Link: 1, Pollutant: 1}
	for typ, n := range counts {
		t.Run(typ.String(), func(t *testing.T) {
			for _, idx := range []int{-1, n} {
				s.ClearError()
				_, err := s.ElementName(typ, idx)
				require.Error(t, err)
				assert.Equal(t, errmgr.CodeElementRange, errmgr.Code(err))
				assert.Equal(t, errmgr.CodeElementRange, s.ErrorCode())
			}

			_, err := s.ElementName(typ, n-1)
			assert.NoError(t, err)
		})
	}

	_, err := s.ElementName(System, 0)
	assert.Equal(t, errmgr.CodeInvalidParameter, errmgr.Code(err))
}

func TestAPI_ElementNames(t *testing.T) {
	s := openFixture(t, fixtureBuilder())

	tests := []struct {
		typ   ElementType
		index int
		want  string
	}{
		{Subcatch, 0, "S1"},
		{Subcatch, 1, "S2"},
		{Node, 0, "J1"},
		{Node, 2, "OUT"},
		{Link, 0, "C1"},
		{Pollutant, 0, "TSS"},
	}
	for _, tt := range tests {
		name, err := s.ElementName(tt.typ, tt.index)
		require.NoError(t, err)
		assert.Equal(t, tt.want, name)
		assert.Len(t, name, len(tt.want))

		entry, err := s.NameEntry(tt.typ, tt.index)
		require.NoError(t, err)
		assert.Equal(t, ElementNameEntry{Name: tt.want, Length: len(tt.want)}, entry)

		idx, err := s.ElementIndex(tt.typ, tt.want)
		require.NoError(t, err)
		assert.Equal(t, tt.index, idx)
	}

	_, err := s.NameEntry(Link, 1)
	assert.Equal(t, errmgr.CodeElementRange, errmgr.Code(err))

	_, err = s.ElementIndex(Node, "nope")
	assert.Equal(t, errmgr.CodeElementRange, errmgr.Code(err))
}

func TestAPI_Series(t *testing.T) {
	s := openFixture(t, fixtureBuilder())

	got, err := s.NodeSeries(1, NodeTotalInflow, 1, 4)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for k, v := range got {
		assert.Equal(t, value(1+k, codec.BlockNode, 1, int(NodeTotalInflow)), v)
	}

	got, err = s.SubcatchSeries(1, SubcatchPollutantConc, 0, 5)
	require.NoError(t, err)
	assert.Len(t, got, 5)
	assert.Equal(t, value(4, codec.BlockSubcatch, 1, 8), got[4])

	got, err = s.LinkSeries(0, LinkFlowRate, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []float32{value(2, codec.BlockLink, 0, 0)}, got)

	got, err = s.SystemSeries(SysEvapRate, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []float32{
		value(0, codec.BlockSystem, 0, 13),
		value(1, codec.BlockSystem, 0, 13),
	}, got)
}

func TestAPI_SeriesErrors(t *testing.T) {
	s := openFixture(t, fixtureBuilder())

	tests := []struct {
		name  string
		typ   ElementType
		index int
		attr  int
		start int
		end   int
		code  int
	}{
		{"negative index", Node, -1, 0, 0, 1, errmgr.CodeSeriesIndex},
		{"index equal to count", Node, 3, 0, 0, 1, errmgr.CodeSeriesIndex},
		{"negative start", Link, 0, 0, -1, 1, errmgr.CodePeriodRange},
		{"start past end", Link, 0, 0, 5, 6, errmgr.CodePeriodRange},
		{"empty range", Link, 0, 0, 2, 2, errmgr.CodePeriodRange},
		{"end beyond periods", Link, 0, 0, 0, 6, errmgr.CodePeriodRange},
		{"bad attribute", Subcatch, 0, 9, 0, 1, errmgr.CodeInvalidParameter},
		{"pollutant category", Pollutant, 0, 0, 0, 1, errmgr.CodeInvalidParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.ClearError()
			got, err := s.Series(tt.typ, tt.index, tt.attr, tt.start, tt.end)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.Equal(t, tt.code, errmgr.Code(err))
			assert.Equal(t, tt.code, s.ErrorCode())
		})
	}
}

func TestAPI_Attribute(t *testing.T) {
	s := openFixture(t, fixtureBuilder())

	got, err := s.NodeAttribute(3, NodeHydraulicHead)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for e, v := range got {
		assert.Equal(t, value(3, codec.BlockNode, e, int(NodeHydraulicHead)), v)
	}

	got, err = s.SystemAttribute(0, SysRainfall)
	require.NoError(t, err)
	assert.Equal(t, []float32{value(0, codec.BlockSystem, 0, 1)}, got)

	_, err = s.LinkAttribute(5, LinkFlowRate)
	assert.Equal(t, errmgr.CodePeriodRange, errmgr.Code(err))

	_, err = s.SubcatchAttribute(0, SubcatchAttr(-1))
	assert.Equal(t, errmgr.CodeInvalidParameter, errmgr.Code(err))
}

func TestAPI_Result(t *testing.T) {
	s := openFixture(t, fixtureBuilder())

	got, err := s.LinkResult(2, 0)
	require.NoError(t, err)
	require.Len(t, got, 6)
	for v, x := range got {
		assert.Equal(t, value(2, codec.BlockLink, 0, v), x)
	}

	got, err = s.SystemResult(4)
	require.NoError(t, err)
	assert.Len(t, got, 14)
	assert.Equal(t, value(4, codec.BlockSystem, 0, 0), got[0])

	got, err = s.SubcatchResult(0, 1)
	require.NoError(t, err)
	assert.Len(t, got, 9)

	_, err = s.NodeResult(0, 3)
	assert.Equal(t, errmgr.CodeElementRange, errmgr.Code(err))

	_, err = s.NodeResult(-1, 0)
	assert.Equal(t, errmgr.CodePeriodRange, errmgr.Code(err))
}

func TestAPI_ResultsAreFresh(t *testing.T) {
	s := openFixture(t, fixtureBuilder())

	a, err := s.NodeResult(1, 1)
	require.NoError(t, err)
	a[0] = -1

	b, err := s.NodeResult(1, 1)
	require.NoError(t, err)
	assert.NotEqual(t, a[0], b[0])
}

func TestAPI_PeriodDate(t *testing.T) {
	s := openFixture(t, fixtureBuilder())

	d, err := s.PeriodDate(0)
	require.NoError(t, err)
	assert.InDelta(t, 43831.0+300.0/86400.0, d, 1e-9)
	assert.Equal(t, time.Date(2020, time.January, 1, 0, 5, 0, 0, time.UTC), DateTime(d))

	_, err = s.PeriodDate(5)
	assert.Equal(t, errmgr.CodePeriodRange, errmgr.Code(err))
}

func TestAPI_SuccessDoesNotClearPendingCode(t *testing.T) {
	s := openFixture(t, fixtureBuilder())

	_, err := s.LinkResult(9, 0)
	require.Error(t, err)

	_, err = s.LinkResult(0, 0)
	require.NoError(t, err)
	assert.Equal(t, errmgr.CodePeriodRange, s.ErrorCode())

	msg, ok := s.CheckError()
	assert.True(t, ok)
	assert.Contains(t, msg, "422")

	s.ClearError()
	_, ok = s.CheckError()
	assert.False(t, ok)
}

func TestAPI_PendingWarningKeepsFirstCode(t *testing.T) {
	b := fixtureBuilder()
	b.RunStatus = 17
	s := openFixture(t, b)

	_, err := s.NodeResult(0, 3)
	require.Error(t, err)
	assert.Equal(t, errmgr.CodeElementRange, errmgr.Code(err))
	assert.Equal(t, errmgr.CodeRunWarnings, s.ErrorCode())

	s.ClearError()
	_, err = s.NodeResult(0, 3)
	require.Error(t, err)
	assert.Equal(t, errmgr.CodeElementRange, s.ErrorCode())
}

func TestFree(t *testing.T) {
	s := openFixture(t, fixtureBuilder())

	buf, err := s.LinkResult(0, 0)
	require.NoError(t, err)

	Free(&buf)
	assert.Nil(t, buf)
	Free(&buf)
	assert.Nil(t, buf)

	Free[float32](nil)
}

func TestDateTime(t *testing.T) {
	assert.Equal(t, time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC), DateTime(0))
	assert.Equal(t, time.Date(2020, time.January, 1, 12, 0, 0, 0, time.UTC), DateTime(43831.5))

	when := time.Date(2021, time.June, 3, 6, 30, 0, 0, time.UTC)
	assert.Equal(t, when, DateTime(DayCount(when)))
}

func TestParseElementType(t *testing.T) {
	for _, typ := range []ElementType{Subcatch, Node, Link, System, Pollutant} {
		got, err := ParseElementType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}

	_, err := ParseElementType("pipe")
	assert.Error(t, err)
}
