package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/fatih/color"

	"device-catalog/models"
	"device-catalog/utils"
)

const (
	topBrands     = 10
	topSpecBrands = 5
)

// priceBuckets are the fixed histogram ranges, lower bound inclusive.
var priceBuckets = []models.PriceBucket{
	{Range: "$5000-25000", Min: 5000, Max: 25000},
	{Range: "$25000-35000", Min: 25000, Max: 35000},
	{Range: "$35000-50000", Min: 35000, Max: 50000},
	{Range: "$50000+", Min: 50000, Max: math.Inf(1)},
}

type InsightService struct {
	logger         *utils.Logger
	maxConcurrency int
}

func NewInsightService(logger *utils.Logger, maxConcurrency int) *InsightService {
	return &InsightService{logger: logger, maxConcurrency: maxConcurrency}
}

// Generate computes every aggregation over the full snapshot. The views
// are independent and the snapshot is read-only, so they run in parallel.
func (s *InsightService) Generate(snap *models.Snapshot) *models.InsightReport {
	devices := snap.Devices()
	report := &models.InsightReport{TotalDevices: len(devices)}

	pool := utils.NewWorkerPool(s.maxConcurrency, 0)
	pool.Submit("brands", func() { report.BrandDistribution = BrandDistribution(devices) })
	pool.Submit("prices", func() { report.PriceDistribution = PriceDistribution(devices) })
	pool.Submit("os", func() { report.OSMarketShare = OSMarketShare(devices) })
	pool.Submit("years", func() { report.ReleaseYearTrend = ReleaseYearTrend(devices) })
	pool.Submit("specs", func() { report.BrandSpecsAverages = BrandSpecsComparison(devices) })
	if err := pool.Wait(); err != nil {
		s.logger.Error("[insights] %v", err)
	}

	s.logger.Debug("[insights] Report for snapshot %s: %d devices, %d brands, %d OS",
		snap.ID, report.TotalDevices, len(report.BrandDistribution), len(report.OSMarketShare))
	return report
}

// BrandDistribution counts devices per brand, most common first, keeping
// the top 10. Equal counts stay in first-seen order.
func BrandDistribution(devices []models.Device) []models.BrandCount {
	index := make(map[string]int)
	var counts []models.BrandCount
	for _, d := range devices {
		i, ok := index[d.Brand]
		if !ok {
			i = len(counts)
			index[d.Brand] = i
			counts = append(counts, models.BrandCount{Brand: d.Brand})
		}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if len(counts) > topBrands {
		counts = counts[:topBrands]
	}
	return counts
}

// PriceDistribution counts devices per fixed price bucket. Devices with a
// missing price or one below the first bucket are not counted.
func PriceDistribution(devices []models.Device) []models.PriceBucket {
	out := make([]models.PriceBucket, len(priceBuckets))
	copy(out, priceBuckets)
	for _, d := range devices {
		for i := range out {
			if d.Price >= out[i].Min && d.Price < out[i].Max {
				out[i].Count++
				break
			}
		}
	}
	return out
}

// OSMarketShare groups devices by operating system. Percentage is the
// share of all devices rounded to one decimal.
func OSMarketShare(devices []models.Device) []models.OSShare {
	total := len(devices)
	index := make(map[string]int)
	var shares []models.OSShare
	for _, d := range devices {
		i, ok := index[d.OS]
		if !ok {
			i = len(shares)
			index[d.OS] = i
			shares = append(shares, models.OSShare{OS: d.OS})
		}
		shares[i].Count++
	}

	for i := range shares {
		shares[i].Percentage = roundHalfUp(float64(shares[i].Count)/float64(total)*1000) / 10
	}
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Count > shares[j].Count
	})
	return shares
}

// ReleaseYearTrend counts devices per release year, oldest first.
func ReleaseYearTrend(devices []models.Device) []models.YearTrend {
	byYear := make(map[int]int)
	for _, d := range devices {
		if math.IsNaN(d.ReleaseYear) {
			continue
		}
		byYear[int(d.ReleaseYear)]++
	}

	trend := make([]models.YearTrend, 0, len(byYear))
	for year, count := range byYear {
		trend = append(trend, models.YearTrend{Year: year, Count: count})
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Year < trend[j].Year })
	return trend
}

type runningMean struct {
	sum   float64
	count int
}

func (m *runningMean) add(v float64) {
	if math.IsNaN(v) {
		return
	}
	m.sum += v
	m.count++
}

func (m runningMean) rounded() int {
	if m.count == 0 {
		return 0
	}
	return int(roundHalfUp(m.sum / float64(m.count)))
}

// BrandSpecsComparison averages RAM, storage and battery per brand and
// keeps the five brands with the highest average RAM. Missing values are
// left out of that field's average.
func BrandSpecsComparison(devices []models.Device) []models.BrandSpecAverage {
	type acc struct {
		brand                 string
		ram, storage, battery runningMean
	}
	index := make(map[string]int)
	var accs []*acc
	for _, d := range devices {
		i, ok := index[d.Brand]
		if !ok {
			i = len(accs)
			index[d.Brand] = i
			accs = append(accs, &acc{brand: d.Brand})
		}
		a := accs[i]
		a.ram.add(d.RAM)
		a.storage.add(d.Storage)
		a.battery.add(d.BatteryCapacity)
	}

	out := make([]models.BrandSpecAverage, 0, len(accs))
	for _, a := range accs {
		out = append(out, models.BrandSpecAverage{
			Brand:      a.brand,
			AvgRAM:     a.ram.rounded(),
			AvgStorage: a.storage.rounded(),
			AvgBattery: a.battery.rounded(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AvgRAM > out[j].AvgRAM
	})
	if len(out) > topSpecBrands {
		out = out[:topSpecBrands]
	}
	return out
}

func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

var (
	titleColor   = color.New(color.FgMagenta, color.Bold)
	sectionColor = color.New(color.FgYellow, color.Bold)
	valueColor   = color.New(color.FgGreen, color.Bold)
)

func (s *InsightService) Print(r *models.InsightReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Println()
	titleColor.Println(sep)
	titleColor.Println("  📊 DEVICE CATALOG INSIGHTS")
	titleColor.Println(sep)
	fmt.Println()

	sectionColor.Println("  Overview")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Total devices : %s\n\n", valueColor.Sprint(r.TotalDevices))

	sectionColor.Println("  Top Brands")
	fmt.Printf("  %s\n", thin)
	if len(r.BrandDistribution) == 0 {
		fmt.Printf("  No brand data\n")
	}
	for _, b := range r.BrandDistribution {
		fmt.Printf("  %-20s %s (%d)\n", truncate(b.Brand, 18), bar(b.Count, r.TotalDevices), b.Count)
	}
	fmt.Println()

	sectionColor.Println("  Price Distribution")
	fmt.Printf("  %s\n", thin)
	for _, p := range r.PriceDistribution {
		fmt.Printf("  %-20s %s (%d)\n", p.Range, bar(p.Count, r.TotalDevices), p.Count)
	}
	fmt.Println()

	sectionColor.Println("  Operating System Share")
	fmt.Printf("  %s\n", thin)
	for _, o := range r.OSMarketShare {
		fmt.Printf("  %-20s %s\n", truncate(o.OS, 18), valueColor.Sprintf("%5.1f%%", o.Percentage))
	}
	fmt.Println()

	sectionColor.Println("  Releases per Year")
	fmt.Printf("  %s\n", thin)
	for _, y := range r.ReleaseYearTrend {
		fmt.Printf("  %-20d %s (%d)\n", y.Year, bar(y.Count, r.TotalDevices), y.Count)
	}
	fmt.Println()

	sectionColor.Println("  Top Brands by Average RAM")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  %-20s %8s %10s %10s\n", "Brand", "RAM", "Storage", "Battery")
	for _, b := range r.BrandSpecsAverages {
		fmt.Printf("  %-20s %5d GB %7d GB %6d mAh\n", truncate(b.Brand, 18), b.AvgRAM, b.AvgStorage, b.AvgBattery)
	}

	fmt.Println()
	titleColor.Println(sep)
	fmt.Println()
}

// bar scales count against total into a bar of at most 30 cells.
func bar(count, total int) string {
	if total == 0 || count == 0 {
		return ""
	}
	n := count * 30 / total
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
