package api

import (
	"encoding/json"

	"github.com/ssargent/swmmout/pkg/storage"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	// Code is the results-file status code behind Error, when there is one
	Code int `json:"code,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port        int
	Bind        string
	APIKey      string // empty disables authentication
	CORSOrigins []string
}

// InfoResponse describes the open results file
type InfoResponse struct {
	Path        string  `json:"path"`
	Version     int     `json:"version"`
	ProjectSize []int   `json:"project_size"`
	Units       []int   `json:"units"`
	StartDate   float64 `json:"start_date"`
	StartTime   string  `json:"start_time"`
	ReportStep  int     `json:"report_step"`
	Periods     int     `json:"periods"`
}

// ElementResponse names one element
type ElementResponse struct {
	Type  string `json:"type"`
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// ValuesResponse carries the values of a series, attribute or result query
type ValuesResponse struct {
	Type   string    `json:"type"`
	Index  *int      `json:"index,omitempty"`
	Attr   *int      `json:"attr,omitempty"`
	Period *int      `json:"period,omitempty"`
	Start  *int      `json:"start,omitempty"`
	End    *int      `json:"end,omitempty"`
	Values []float32 `json:"values"`
}

// SnapshotRequest asks for one attribute of every element of a category to
// be copied into the snapshot store. Attr is an ordinal or an attribute name.
type SnapshotRequest struct {
	Type string          `json:"type"`
	Attr json.RawMessage `json:"attr"`
}

// SnapshotResponse reports a stored snapshot
type SnapshotResponse struct {
	ID     string `json:"id"`
	Series int    `json:"series"`
}

// SnapshotDetail is a run together with its series
type SnapshotDetail struct {
	Run    storage.Run      `json:"run"`
	Series []SeriesResponse `json:"series"`
}

// SeriesResponse is one stored series
type SeriesResponse struct {
	Element string    `json:"element"`
	Values  []float32 `json:"values"`
}
