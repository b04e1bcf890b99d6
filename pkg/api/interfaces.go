// Package api provides interfaces for dependency injection
package api

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/swmmout/pkg/output"
	"github.com/ssargent/swmmout/pkg/storage"
)

// Reader is the results-file surface the service queries. *output.Session
// implements it.
type Reader interface {
	Path() string
	Version() (int, error)
	ProjectSize() ([]int, error)
	Units() ([]int, error)
	StartDate() (float64, error)
	Times(code output.TimeCode) (int, error)
	ElementName(t output.ElementType, index int) (string, error)
	ElementIndex(t output.ElementType, name string) (int, error)
	Series(t output.ElementType, index, attr, start, end int) ([]float32, error)
	Attribute(t output.ElementType, period, attr int) ([]float32, error)
	Result(t output.ElementType, period, index int) ([]float32, error)
	PeriodDate(period int) (float64, error)
	ClearError()
}

// SnapshotStore persists exported series. *storage.DefaultStorage
// implements it.
type SnapshotStore interface {
	Snapshot(src storage.SeriesSource, req storage.SnapshotRequest) (ksuid.KSUID, int, error)
	Run(id ksuid.KSUID) (storage.Run, error)
	Runs() ([]storage.Run, error)
	List(id ksuid.KSUID) ([]storage.Series, error)
	Get(id ksuid.KSUID, element string) (storage.Series, error)
}

// ServerStarter defines the interface for starting the API server
type ServerStarter interface {
	// StartServer serves until ctx is cancelled
	StartServer(ctx context.Context, reader Reader, snapshots SnapshotStore, config ServerConfig, logger zerolog.Logger) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}
