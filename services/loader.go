package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"device-catalog/models"
	"device-catalog/storage"
	"device-catalog/utils"
)

// ErrEmptySource is returned when a source has no header row at all.
var ErrEmptySource = errors.New("dataset source is empty")

// Loader turns raw delimited rows into a typed, immutable Snapshot.
type Loader struct {
	logger *utils.Logger
	// MaxRecords caps the number of data rows consumed. 0 means no cap.
	MaxRecords int
}

// NewLoader creates a Loader with the given logger and record cap.
func NewLoader(logger *utils.Logger, maxRecords int) *Loader {
	return &Loader{logger: logger, MaxRecords: maxRecords}
}

// LoadFrom reads every row from src and builds a snapshot. Failure to
// read the source is fatal; bad rows inside it are not.
func (l *Loader) LoadFrom(src storage.RowSource) (*models.Snapshot, error) {
	rows, err := src.Rows()
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	return l.Load(src.Name(), rows)
}

// Load skips the header row, drops rows with fewer than
// models.NumColumns fields, and parses the rest in source order.
func (l *Loader) Load(source string, rows [][]string) (*models.Snapshot, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("loader: %s: %w", source, ErrEmptySource)
	}

	data := rows[1:]
	if l.MaxRecords > 0 && len(data) > l.MaxRecords {
		data = data[:l.MaxRecords]
	}

	seen := utils.NewSet[int]()
	devices := make([]models.Device, 0, len(data))
	skipped := 0

	for i, row := range data {
		if len(row) < models.NumColumns {
			l.logger.Warn("[loader] Skipping row %d: %d columns, need %d", i+2, len(row), models.NumColumns)
			skipped++
			continue
		}

		d := ParseDevice(row)
		if !seen.Add(d.ID) {
			l.logger.Warn("[loader] Duplicate id %d at row %d, keeping both records", d.ID, i+2)
		}
		devices = append(devices, d)
	}

	l.logger.Info("[loader] Loaded %d devices from %s (skipped %d rows)", len(devices), source, skipped)
	return models.NewSnapshot(source, devices), nil
}

// ParseDevice maps a row of at least models.NumColumns fields to a Device.
// Numeric fields that fail to parse become NaN; an unparseable id is 0.
func ParseDevice(row []string) models.Device {
	return models.Device{
		ID:    parseID(row[models.ColID]),
		Brand: normaliseText(row[models.ColBrand]),
		Model: normaliseText(row[models.ColModel]),

		ScreenSize:      parseNumber(row[models.ColScreenSize]),
		Price:           parseNumber(row[models.ColPrice]),
		ReleaseYear:     parseNumber(row[models.ColReleaseYear]),
		BatteryCapacity: parseNumber(row[models.ColBatteryCapacity]),
		RAM:             parseNumber(row[models.ColRAM]),
		Storage:         parseNumber(row[models.ColStorage]),
		CameraMP:        parseNumber(row[models.ColCameraMP]),
		FrontCameraMP:   parseNumber(row[models.ColFrontCameraMP]),
		RefreshRate:     parseNumber(row[models.ColRefreshRate]),
		Weight:          parseNumber(row[models.ColWeight]),
		Thickness:       parseNumber(row[models.ColThickness]),

		OS:                normaliseText(row[models.ColOS]),
		BodyMaterial:      normaliseText(row[models.ColBodyMaterial]),
		Chipset:           normaliseText(row[models.ColChipset]),
		GPU:               normaliseText(row[models.ColGPU]),
		DualSim:           normaliseText(row[models.ColDualSim]),
		Network:           normaliseText(row[models.ColNetwork]),
		Bluetooth:         normaliseText(row[models.ColBluetooth]),
		WiFi:              normaliseText(row[models.ColWiFi]),
		USB:               normaliseText(row[models.ColUSB]),
		FastCharging:      normaliseText(row[models.ColFastCharging]),
		FingerprintSensor: normaliseText(row[models.ColFingerprintSensor]),
	}
}

func parseNumber(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

func parseID(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

// normaliseText strips leading/trailing whitespace.
func normaliseText(s string) string {
	return strings.TrimSpace(s)
}
