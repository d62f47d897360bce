package storage

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"device-catalog/models"
)

func TestReadRowsVariableWidth(t *testing.T) {
	in := "id,brand,model\n1,Apple,iPhone 15\n2,Samsung\n\n3,\"Google, Inc\",Pixel 8\n"

	rows, malformed, err := ReadRows(strings.NewReader(in))

	require.NoError(t, err)
	assert.Equal(t, 0, malformed)
	require.Len(t, rows, 4, "blank line is skipped by the tokenizer")
	assert.Equal(t, []string{"2", "Samsung"}, rows[2])
	assert.Equal(t, "Google, Inc", rows[3][1])
}

func TestCSVReaderMissingFile(t *testing.T) {
	r := NewCSVReader(filepath.Join(t.TempDir(), "nope.csv"))

	_, err := r.Rows()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDeviceRowNaNIsEmpty(t *testing.T) {
	d := sampleDevice()
	d.Price = math.NaN()

	row := DeviceRow(d)

	require.Len(t, row, models.NumColumns)
	assert.Equal(t, "7", row[models.ColID])
	assert.Equal(t, "", row[models.ColPrice])
	assert.Equal(t, "6.1", row[models.ColScreenSize])
	assert.Equal(t, "Titanium", row[models.ColBodyMaterial])
}

func TestCSVWriterThenReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "export.csv")

	w, err := NewCSVWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.WriteDevices([]models.Device{sampleDevice()}))
	require.NoError(t, w.Close())

	r := NewCSVReader(path)
	rows, err := r.Rows()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, models.Columns, rows[0])
	assert.Equal(t, DeviceRow(sampleDevice()), rows[1])
	assert.Equal(t, path, r.Name())
}

func sampleDevice() models.Device {
	return models.Device{
		ID: 7, Brand: "Apple", Model: "iPhone 15",
		ScreenSize: 6.1, Price: 79900, ReleaseYear: 2023, BatteryCapacity: 3349,
		RAM: 6, Storage: 128, CameraMP: 48, FrontCameraMP: 12, RefreshRate: 60,
		Weight: 171, Thickness: 7.8,
		OS: "iOS", BodyMaterial: "Titanium", Chipset: "A16 Bionic", GPU: "Apple GPU",
		DualSim: "Yes", Network: "5G", Bluetooth: "5.3", WiFi: "Wi-Fi 6", USB: "USB-C",
		FastCharging: "20W", FingerprintSensor: "No",
	}
}
