package services

import (
	"math"
	"strconv"
	"strings"

	"device-catalog/models"
)

const notAvailable = "N/A"

// ComparisonRow is one labelled spec with a value per compared device.
type ComparisonRow struct {
	Label  string
	Values []string
}

// ComparisonSection groups related rows under a title.
type ComparisonSection struct {
	Title string
	Rows  []ComparisonRow
}

type specField struct {
	label  string
	render func(models.Device) string
}

var comparisonLayout = []struct {
	title  string
	fields []specField
}{
	{"General", []specField{
		{"Brand", func(d models.Device) string { return d.Brand }},
		{"Model", func(d models.Device) string { return d.Model }},
		{"Price", func(d models.Device) string { return formatPrice(d.Price) }},
		{"Release Year", func(d models.Device) string { return withUnit(d.ReleaseYear, "") }},
	}},
	{"Display", []specField{
		{"Screen Size", func(d models.Device) string { return withUnit(d.ScreenSize, `"`) }},
		{"Refresh Rate", func(d models.Device) string { return withUnit(d.RefreshRate, " Hz") }},
	}},
	{"Performance", []specField{
		{"Operating System", func(d models.Device) string { return d.OS }},
		{"Chipset", func(d models.Device) string { return d.Chipset }},
		{"GPU", func(d models.Device) string { return d.GPU }},
		{"RAM", func(d models.Device) string { return withUnit(d.RAM, " GB") }},
		{"Storage", func(d models.Device) string { return withUnit(d.Storage, " GB") }},
	}},
	{"Cameras", []specField{
		{"Main Camera", func(d models.Device) string { return withUnit(d.CameraMP, " MP") }},
		{"Front Camera", func(d models.Device) string { return withUnit(d.FrontCameraMP, " MP") }},
	}},
	{"Battery & Charging", []specField{
		{"Capacity", func(d models.Device) string { return withUnit(d.BatteryCapacity, " mAh") }},
		{"Fast Charging", func(d models.Device) string { return d.FastCharging }},
	}},
	{"Connectivity", []specField{
		{"Network", func(d models.Device) string { return d.Network }},
		{"Dual SIM", func(d models.Device) string { return d.DualSim }},
		{"Bluetooth", func(d models.Device) string { return d.Bluetooth }},
		{"Wi-Fi", func(d models.Device) string { return d.WiFi }},
		{"USB", func(d models.Device) string { return d.USB }},
	}},
	{"Design", []specField{
		{"Weight", func(d models.Device) string { return withUnit(d.Weight, " g") }},
		{"Thickness", func(d models.Device) string { return withUnit(d.Thickness, " mm") }},
		{"Body Material", func(d models.Device) string { return d.BodyMaterial }},
		{"Fingerprint Sensor", func(d models.Device) string { return d.FingerprintSensor }},
	}},
}

// Compare lays the devices out side by side, one column per device in
// the given order. Missing values render as "N/A".
func Compare(devices []models.Device) []ComparisonSection {
	if len(devices) == 0 {
		return nil
	}
	sections := make([]ComparisonSection, 0, len(comparisonLayout))
	for _, group := range comparisonLayout {
		sec := ComparisonSection{Title: group.title, Rows: make([]ComparisonRow, 0, len(group.fields))}
		for _, f := range group.fields {
			row := ComparisonRow{Label: f.label, Values: make([]string, len(devices))}
			for i, d := range devices {
				v := f.render(d)
				if v == "" {
					v = notAvailable
				}
				row.Values[i] = v
			}
			sec.Rows = append(sec.Rows, row)
		}
		sections = append(sections, sec)
	}
	return sections
}

func withUnit(v float64, unit string) string {
	if math.IsNaN(v) {
		return notAvailable
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + unit
}

func formatPrice(v float64) string {
	if math.IsNaN(v) {
		return notAvailable
	}
	return "$" + groupThousands(int64(math.Round(v)))
}

func groupThousands(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return sign + s
	}
	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}
