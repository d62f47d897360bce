package models

// Columns is the positional layout of the delimited dataset source.
// Rows with fewer than len(Columns) fields are not valid records.
var Columns = []string{
	"id",
	"brand_name",
	"model",
	"screen_size",
	"price",
	"release_year",
	"operating_system",
	"battery_capacity",
	"ram",
	"storage",
	"camera_mp",
	"front_camera_mp",
	"refresh_rate",
	"weight",
	"thickness",
	"body_material",
	"chipset",
	"gpu",
	"dual_sim",
	"network_support",
	"bluetooth_version",
	"wifi_version",
	"usb_type",
	"fast_charging",
	"fingerprint_sensor",
}

// Column indexes into a source row.
const (
	ColID = iota
	ColBrand
	ColModel
	ColScreenSize
	ColPrice
	ColReleaseYear
	ColOS
	ColBatteryCapacity
	ColRAM
	ColStorage
	ColCameraMP
	ColFrontCameraMP
	ColRefreshRate
	ColWeight
	ColThickness
	ColBodyMaterial
	ColChipset
	ColGPU
	ColDualSim
	ColNetwork
	ColBluetooth
	ColWiFi
	ColUSB
	ColFastCharging
	ColFingerprintSensor

	NumColumns
)
