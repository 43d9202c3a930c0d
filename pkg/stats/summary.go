// Package stats computes descriptive statistics over grids and volumes
// for the info commands.
package stats

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"slicestack/internal/models"
)

// Summary describes the sample distribution of one or more grids
type Summary struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
	Median float64

	// Histogram has one bin per sample value 0..maxValue
	Histogram []int
}

// Summarize collects every sample of grids. maxValue sizes the histogram;
// samples above it are counted in the last bin.
func Summarize(maxValue int, grids ...models.Grid) Summary {
	var values []float64
	for _, g := range grids {
		for _, v := range g.Data {
			values = append(values, float64(v))
		}
	}

	s := Summary{Count: len(values)}
	if maxValue >= 0 {
		s.Histogram = make([]int, maxValue+1)
	}
	if len(values) == 0 {
		return s
	}

	s.Min = floats.Min(values)
	s.Max = floats.Max(values)
	if len(values) > 1 {
		s.Mean, s.StdDev = stat.MeanStdDev(values, nil)
	} else {
		s.Mean = values[0]
	}

	sort.Float64s(values)
	s.Median = stat.Quantile(0.5, stat.Empirical, values, nil)

	if s.Histogram != nil {
		for _, v := range values {
			bin := int(v)
			if bin >= len(s.Histogram) {
				bin = len(s.Histogram) - 1
			}
			if bin < 0 {
				bin = 0
			}
			s.Histogram[bin]++
		}
	}
	return s
}

// Mode returns the most frequent sample value of the histogram, preferring
// the lowest value on ties. It returns -1 for an empty histogram.
func (s Summary) Mode() int {
	best, bestCount := -1, 0
	for v, c := range s.Histogram {
		if c > bestCount {
			best, bestCount = v, c
		}
	}
	return best
}

// Footprint is the in-memory size in bytes of the sample data of grids
func Footprint(grids ...models.Grid) uint64 {
	const intSize = 8
	var n uint64
	for _, g := range grids {
		n += uint64(len(g.Data)) * intSize
	}
	return n
}
