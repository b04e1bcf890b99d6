package output

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ElementType is a category of simulated element
type ElementType int

const (
	Subcatch ElementType = iota
	Node
	Link
	System
	Pollutant
)

var elementTypeNames = []string{"subcatch", "node", "link", "system", "pollutant"}

func (t ElementType) String() string {
	if t < Subcatch || t > Pollutant {
		return fmt.Sprintf("ElementType(%d)", int(t))
	}
	return elementTypeNames[t]
}

// ParseElementType accepts the names returned by String plus a few plural
// and short forms.
func ParseElementType(s string) (ElementType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "subcatch", "subcatchment", "subcatchments", "subcatches":
		return Subcatch, nil
	case "node", "nodes":
		return Node, nil
	case "link", "links":
		return Link, nil
	case "system", "sys":
		return System, nil
	case "pollutant", "pollutants", "pollut":
		return Pollutant, nil
	}
	return 0, fmt.Errorf("unknown element type %q", s)
}

// SubcatchAttr is a subcatchment result variable. Pollutant k is stored at
// SubcatchPollutantConc + k.
type SubcatchAttr int

const (
	SubcatchRainfall      SubcatchAttr = iota // in/hr or mm/hr
	SubcatchSnowDepth                         // in or mm
	SubcatchEvapLoss                          // in/hr or mm/hr
	SubcatchInfilLoss                         // in/hr or mm/hr
	SubcatchRunoffRate                        // flow units
	SubcatchGwOutflowRate                     // flow units
	SubcatchGwTableElev                       // ft or m
	SubcatchSoilMoisture                      // fraction
	SubcatchPollutantConc
)

// NodeAttr is a node result variable. Pollutant k is stored at
// NodePollutantConc + k.
type NodeAttr int

const (
	NodeInvertDepth        NodeAttr = iota // ft or m
	NodeHydraulicHead                      // ft or m
	NodeStoredPondedVolume                 // ft3 or m3
	NodeLateralInflow                      // flow units
	NodeTotalInflow                        // flow units
	NodeFloodingLosses                     // flow units
	NodePollutantConc
)

// LinkAttr is a link result variable. Pollutant k is stored at
// LinkPollutantConc + k.
type LinkAttr int

const (
	LinkFlowRate     LinkAttr = iota // flow units
	LinkFlowDepth                    // ft or m
	LinkFlowVelocity                 // ft/s or m/s
	LinkFlowVolume                   // ft3 or m3
	LinkCapacity                     // fraction full
	LinkPollutantConc
)

// SystemAttr is a system-wide result variable
type SystemAttr int

const (
	SysAirTemp SystemAttr = iota
	SysRainfall
	SysSnowDepth
	SysEvapInfilLoss
	SysRunoffFlow
	SysDryWeatherInflow
	SysGroundwaterInflow
	SysRDIIInflow
	SysDirectInflow
	SysTotalLateralInflow
	SysFloodLosses
	SysOutfallFlows
	SysVolumeStored
	SysEvapRate
)

// UnitSystem is derived from the flow units
type UnitSystem int

const (
	US UnitSystem = iota
	SI
)

// FlowUnits is the flow unit code stored in the prologue
type FlowUnits int

const (
	CFS FlowUnits = iota
	GPM
	MGD
	CMS
	LPS
	MLD
)

// ConcUnits is a pollutant concentration unit code
type ConcUnits int

const (
	MG ConcUnits = iota
	UG
	Count
	NoUnits
)

// TimeCode selects a value for Session.Times
type TimeCode int

const (
	ReportStep TimeCode = iota
	NumPeriods
)

// Status classifies a file during Open
type Status int

const (
	StatusHealthy Status = iota
	StatusWarned
	StatusEmpty
	StatusCorrupt
	StatusUnreadable
)

func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusWarned:
		return "warned"
	case StatusEmpty:
		return "empty"
	case StatusCorrupt:
		return "corrupt"
	case StatusUnreadable:
		return "unreadable"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Fatal reports whether a session cannot be used after this classification
func (s Status) Fatal() bool {
	return s >= StatusEmpty
}

// File is the handle a Session reads from
type File interface {
	io.ReadSeeker
	io.Closer
}

// Opener opens the file at path for reading
type Opener func(path string) (File, error)

// Handle-level errors. These are never recorded in the error manager.
var (
	ErrNotInitialized = errors.New("output: session not initialized")
	ErrAlreadyOpen    = errors.New("output: session already open")
	ErrClosed         = errors.New("output: session closed")
)
