package models

import (
	"time"

	"github.com/google/uuid"
)

// Device is one catalog record as parsed from the dataset source.
// Numeric specs that could not be parsed hold math.NaN().
type Device struct {
	ID    int
	Brand string
	Model string

	ScreenSize      float64
	Price           float64
	ReleaseYear     float64
	BatteryCapacity float64
	RAM             float64
	Storage         float64
	CameraMP        float64
	FrontCameraMP   float64
	RefreshRate     float64
	Weight          float64
	Thickness       float64

	OS                string
	BodyMaterial      string
	Chipset           string
	GPU               string
	DualSim           string
	Network           string
	Bluetooth         string
	WiFi              string
	USB               string
	FastCharging      string
	FingerprintSensor string
}

// Snapshot is the immutable, fully loaded dataset for one load cycle.
// It is built once by the loader and only read afterwards, so it may be
// shared between goroutines without locking.
type Snapshot struct {
	ID       uuid.UUID
	Source   string
	LoadedAt time.Time

	devices []Device
	byID    map[int]int
}

// NewSnapshot takes ownership of devices. Callers must not modify the
// slice afterwards. When ids repeat, lookup resolves to the first record.
func NewSnapshot(source string, devices []Device) *Snapshot {
	byID := make(map[int]int, len(devices))
	for i, d := range devices {
		if _, ok := byID[d.ID]; !ok {
			byID[d.ID] = i
		}
	}
	return &Snapshot{
		ID:       uuid.New(),
		Source:   source,
		LoadedAt: time.Now(),
		devices:  devices,
		byID:     byID,
	}
}

// Devices returns the records in source order. The returned slice is
// shared with the snapshot and must be treated as read-only.
func (s *Snapshot) Devices() []Device {
	if s == nil {
		return nil
	}
	return s.devices
}

// Len returns the number of records.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.devices)
}

// Lookup returns the device with the given id.
func (s *Snapshot) Lookup(id int) (Device, bool) {
	if s == nil {
		return Device{}, false
	}
	i, ok := s.byID[id]
	if !ok {
		return Device{}, false
	}
	return s.devices[i], true
}
