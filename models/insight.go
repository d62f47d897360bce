package models

import "math"

// BrandCount is the number of devices of one brand.
type BrandCount struct {
	Brand string
	Count int
}

// PriceBucket counts devices with Min <= price < Max.
// The last bucket has Max = +Inf.
type PriceBucket struct {
	Range string
	Min   float64
	Max   float64
	Count int
}

// Unbounded reports whether the bucket has no upper limit.
func (b PriceBucket) Unbounded() bool {
	return math.IsInf(b.Max, 1)
}

// OSShare is an operating system's share of the catalog, with
// Percentage rounded to one decimal digit.
type OSShare struct {
	OS         string
	Count      int
	Percentage float64
}

// YearTrend is the number of devices released in one year.
type YearTrend struct {
	Year  int
	Count int
}

// BrandSpecAverage holds per-brand averages rounded to integers.
type BrandSpecAverage struct {
	Brand      string
	AvgRAM     int
	AvgStorage int
	AvgBattery int
}

// InsightReport holds the computed analytics over the full snapshot.
type InsightReport struct {
	TotalDevices       int
	BrandDistribution  []BrandCount
	PriceDistribution  []PriceBucket
	OSMarketShare      []OSShare
	ReleaseYearTrend   []YearTrend
	BrandSpecsAverages []BrandSpecAverage
}
