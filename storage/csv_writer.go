package storage

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"device-catalog/models"
)

// CSVWriter exports devices in the same column layout the loader reads.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(models.Columns); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// WriteDevices appends one row per device.
func (c *CSVWriter) WriteDevices(devices []models.Device) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, d := range devices {
		if err := c.writer.Write(DeviceRow(d)); err != nil {
			return fmt.Errorf("csv: write row %d: %w", d.ID, err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

// DeviceRow renders d in source column order. NaN fields become empty cells.
func DeviceRow(d models.Device) []string {
	row := make([]string, models.NumColumns)
	row[models.ColID] = strconv.Itoa(d.ID)
	row[models.ColBrand] = d.Brand
	row[models.ColModel] = d.Model
	row[models.ColScreenSize] = formatNumber(d.ScreenSize)
	row[models.ColPrice] = formatNumber(d.Price)
	row[models.ColReleaseYear] = formatNumber(d.ReleaseYear)
	row[models.ColOS] = d.OS
	row[models.ColBatteryCapacity] = formatNumber(d.BatteryCapacity)
	row[models.ColRAM] = formatNumber(d.RAM)
	row[models.ColStorage] = formatNumber(d.Storage)
	row[models.ColCameraMP] = formatNumber(d.CameraMP)
	row[models.ColFrontCameraMP] = formatNumber(d.FrontCameraMP)
	row[models.ColRefreshRate] = formatNumber(d.RefreshRate)
	row[models.ColWeight] = formatNumber(d.Weight)
	row[models.ColThickness] = formatNumber(d.Thickness)
	row[models.ColBodyMaterial] = d.BodyMaterial
	row[models.ColChipset] = d.Chipset
	row[models.ColGPU] = d.GPU
	row[models.ColDualSim] = d.DualSim
	row[models.ColNetwork] = d.Network
	row[models.ColBluetooth] = d.Bluetooth
	row[models.ColWiFi] = d.WiFi
	row[models.ColUSB] = d.USB
	row[models.ColFastCharging] = d.FastCharging
	row[models.ColFingerprintSensor] = d.FingerprintSensor
	return row
}

func formatNumber(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
