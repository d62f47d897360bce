package storage

import (
	"context"
	"errors"

	"device-catalog/models"
)

// ErrSourceUnavailable marks a dataset source that could not be opened or read.
var ErrSourceUnavailable = errors.New("dataset source unavailable")

// RowSource yields the raw delimited rows of a dataset, header included.
type RowSource interface {
	Rows() ([][]string, error)
	Name() string
}

// DeviceWriter is the interface any export backend must satisfy.
type DeviceWriter interface {
	WriteDevices(devices []models.Device) error
	Close() error
}

// SnapshotStore persists a loaded snapshot and reads it back.
type SnapshotStore interface {
	Sync(ctx context.Context, snap *models.Snapshot) error
	FetchAll(ctx context.Context) ([]models.Device, error)
	Close() error
}

var (
	_ RowSource     = (*CSVReader)(nil)
	_ DeviceWriter  = (*CSVWriter)(nil)
	_ SnapshotStore = (*PostgresStore)(nil)
)
