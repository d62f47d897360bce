package services

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"device-catalog/models"
)

func TestBrandDistributionScenario(t *testing.T) {
	devices := []models.Device{{Brand: "A"}, {Brand: "A"}, {Brand: "B"}}

	assert.Equal(t, []models.BrandCount{{Brand: "A", Count: 2}, {Brand: "B", Count: 1}}, BrandDistribution(devices))
}

func TestBrandDistributionTopTenStableTies(t *testing.T) {
	var devices []models.Device
	for i := 0; i < 12; i++ {
		devices = append(devices, models.Device{Brand: fmt.Sprintf("B%02d", i)})
	}
	devices = append(devices, models.Device{Brand: "B11"})

	got := BrandDistribution(devices)

	require.Len(t, got, 10)
	assert.Equal(t, models.BrandCount{Brand: "B11", Count: 2}, got[0])
	for i := 1; i < 10; i++ {
		assert.Equal(t, fmt.Sprintf("B%02d", i-1), got[i].Brand, "ties keep first-seen order")
	}
}

func TestPriceDistribution(t *testing.T) {
	prices := []float64{4999, 5000, 24999, 25000, 34999, 35000, 49999, 50000, 150000, math.NaN()}
	var devices []models.Device
	for _, p := range prices {
		devices = append(devices, models.Device{Price: p})
	}

	got := PriceDistribution(devices)

	require.Len(t, got, 4)
	assert.Equal(t, "$5000-25000", got[0].Range)
	assert.Equal(t, []int{2, 2, 2, 2}, []int{got[0].Count, got[1].Count, got[2].Count, got[3].Count})
	assert.True(t, got[3].Unbounded())
	assert.Equal(t, 0, priceBuckets[0].Count, "shared bucket table must not be mutated")
}

func TestOSMarketShare(t *testing.T) {
	got := OSMarketShare(sampleDevices())

	require.Len(t, got, 2)
	assert.Equal(t, models.OSShare{OS: "Android", Count: 4, Percentage: 66.7}, got[0])
	assert.Equal(t, models.OSShare{OS: "iOS", Count: 2, Percentage: 33.3}, got[1])
}

func TestOSMarketShareSumsToHundred(t *testing.T) {
	oses := []string{"Android", "iOS", "HarmonyOS", "KaiOS", "Other", "Android", "Android"}
	var devices []models.Device
	for i := 0; i < 301; i++ {
		devices = append(devices, models.Device{OS: oses[i%len(oses)]})
	}

	shares := OSMarketShare(devices)
	sum := 0.0
	for _, s := range shares {
		sum += s.Percentage
	}
	assert.InDelta(t, 100, sum, 0.1*float64(len(shares)))
}

func TestReleaseYearTrend(t *testing.T) {
	years := []float64{2023, 2021, 2023, math.NaN(), 2022}
	var devices []models.Device
	for _, y := range years {
		devices = append(devices, models.Device{ReleaseYear: y})
	}

	assert.Equal(t, []models.YearTrend{{Year: 2021, Count: 1}, {Year: 2022, Count: 1}, {Year: 2023, Count: 2}}, ReleaseYearTrend(devices))
}

func TestBrandSpecsComparison(t *testing.T) {
	devices := []models.Device{
		{Brand: "A", RAM: 8, Storage: 128, BatteryCapacity: 5000},
		{Brand: "A", RAM: 7, Storage: 256, BatteryCapacity: math.NaN()},
		{Brand: "B", RAM: 12, Storage: 512, BatteryCapacity: 4600},
		{Brand: "C", RAM: 4, Storage: 64, BatteryCapacity: 4000},
		{Brand: "D", RAM: 4, Storage: 64, BatteryCapacity: 4000},
		{Brand: "E", RAM: 2, Storage: 32, BatteryCapacity: 3000},
		{Brand: "F", RAM: 1, Storage: 16, BatteryCapacity: 2000},
	}

	got := BrandSpecsComparison(devices)

	require.Len(t, got, 5)
	assert.Equal(t, models.BrandSpecAverage{Brand: "B", AvgRAM: 12, AvgStorage: 512, AvgBattery: 4600}, got[0])
	assert.Equal(t, models.BrandSpecAverage{Brand: "A", AvgRAM: 8, AvgStorage: 192, AvgBattery: 5000}, got[1],
		"7.5 rounds half up, NaN battery is left out")
	assert.Equal(t, "C", got[2].Brand)
	assert.Equal(t, "D", got[3].Brand)
	assert.Equal(t, "E", got[4].Brand)
}

func TestInsightReport(t *testing.T) {
	svc := NewInsightService(newTestLogger(), 3)

	r := svc.Generate(models.NewSnapshot("test", sampleDevices()))

	assert.Equal(t, 6, r.TotalDevices)
	assert.Equal(t, models.BrandCount{Brand: "Apple", Count: 2}, r.BrandDistribution[0])
	assert.Equal(t, "Samsung", r.BrandDistribution[1].Brand)
	assert.Len(t, r.PriceDistribution, 4)
	assert.Len(t, r.OSMarketShare, 2)
	assert.Equal(t, []models.YearTrend{{Year: 2023, Count: 6}}, r.ReleaseYearTrend)
	assert.Len(t, r.BrandSpecsAverages, 4)
}

func TestInsightEmptySnapshot(t *testing.T) {
	svc := NewInsightService(newTestLogger(), 2)

	r := svc.Generate(models.NewSnapshot("empty", nil))

	assert.Equal(t, 0, r.TotalDevices)
	assert.Empty(t, r.BrandDistribution)
	assert.Empty(t, r.OSMarketShare)
	assert.Empty(t, r.ReleaseYearTrend)
	for _, b := range r.PriceDistribution {
		assert.Equal(t, 0, b.Count)
	}
}
