// Package projection collapses one axis of a volume into a 2D grid.
//
// With D frames of H rows by W columns, the output shapes are:
//
//	z (top view):   H x W, reducing frame[0..D][i][j]
//	y (side view):  D x W, reducing frame[k][0..H][j]
//	x (front view): H x D, reducing frame[k][i][0..W]
//
// All reductions are integer valued; mean and the even-length median
// truncate toward zero.
package projection

import (
	"fmt"
	"sort"

	"slicestack/internal/models"
)

// Project reduces vol along axis with criterion. Arguments are validated
// before any work is done.
func Project(vol models.Volume, axis models.Axis, criterion models.Criterion) (models.ProjectionResult, error) {
	if !axis.Valid() {
		return models.ProjectionResult{}, fmt.Errorf("axis %v: %w", axis, models.ErrInvalidArgument)
	}
	if !criterion.Valid() {
		return models.ProjectionResult{}, fmt.Errorf("criterion %v: %w", criterion, models.ErrInvalidArgument)
	}
	if err := checkVolume(vol); err != nil {
		return models.ProjectionResult{}, err
	}

	depth, height, width := vol.Depth(), vol.Height, vol.Width

	var out models.Grid
	switch axis {
	case models.AxisZ:
		out = models.NewGrid(width, height)
		samples := make([]int, depth)
		for i := 0; i < height; i++ {
			for j := 0; j < width; j++ {
				for k := 0; k < depth; k++ {
					samples[k] = vol.Frames[k].At(i, j)
				}
				out.Set(i, j, reduce(samples, criterion, depth))
			}
		}

	case models.AxisY:
		out = models.NewGrid(width, depth)
		samples := make([]int, height)
		for k := 0; k < depth; k++ {
			frame := vol.Frames[k]
			for j := 0; j < width; j++ {
				for i := 0; i < height; i++ {
					samples[i] = frame.At(i, j)
				}
				out.Set(k, j, reduce(samples, criterion, height))
			}
		}

	case models.AxisX:
		out = models.NewGrid(depth, height)
		samples := make([]int, width)
		for i := 0; i < height; i++ {
			for k := 0; k < depth; k++ {
				copy(samples, vol.Frames[k].Row(i))
				out.Set(i, k, reduce(samples, criterion, width))
			}
		}
	}

	return models.ProjectionResult{Grid: out, MaxValue: vol.MaxValue}, nil
}

// reduce applies criterion to samples. divisor is the length of the reduced
// axis and is used for the mean. samples may be reordered.
func reduce(samples []int, criterion models.Criterion, divisor int) int {
	switch criterion {
	case models.Max:
		m := samples[0]
		for _, v := range samples[1:] {
			if v > m {
				m = v
			}
		}
		return m
	case models.Min:
		m := samples[0]
		for _, v := range samples[1:] {
			if v < m {
				m = v
			}
		}
		return m
	case models.Mean:
		sum := 0
		for _, v := range samples {
			sum += v
		}
		return sum / divisor
	case models.Median:
		return Median(samples)
	}
	return 0
}

// Median sorts values in place and returns the middle element, or the
// truncated average of the two middle elements for an even count.
// It returns 0 for an empty slice.
func Median(values []int) int {
	n := len(values)
	if n == 0 {
		return 0
	}
	sort.Ints(values)
	if n%2 == 1 {
		return values[n/2]
	}
	return (values[n/2-1] + values[n/2]) / 2
}

// checkVolume verifies that vol has frames and that they match its dimensions
func checkVolume(vol models.Volume) error {
	if vol.Depth() == 0 || vol.Width <= 0 || vol.Height <= 0 {
		return models.ErrNoVolume
	}
	for k, f := range vol.Frames {
		if f.Width != vol.Width || f.Height != vol.Height || len(f.Data) != vol.Width*vol.Height {
			return fmt.Errorf("frame %d is %dx%d, volume is %dx%d: %w",
				k, f.Width, f.Height, vol.Width, vol.Height, models.ErrDimensionMismatch)
		}
	}
	return nil
}
