package models

import (
	"fmt"
)

// Grid is a 2D greyscale raster stored as a 1D array in row-major order
type Grid struct {
	// Data holds Height rows of Width samples each
	Data []int

	// Width is the number of columns
	Width int

	// Height is the number of rows
	Height int
}

// NewGrid allocates a zero-filled grid of the given size
func NewGrid(width, height int) Grid {
	return Grid{
		Data:   make([]int, width*height),
		Width:  width,
		Height: height,
	}
}

// GridFromRows builds a grid from a slice of rows. Every row must have the
// same length.
func GridFromRows(rows [][]int) (Grid, error) {
	if len(rows) == 0 {
		return Grid{}, fmt.Errorf("grid needs at least one row: %w", ErrInvalidArgument)
	}
	width := len(rows[0])
	g := NewGrid(width, len(rows))
	for i, row := range rows {
		if len(row) != width {
			return Grid{}, fmt.Errorf("row %d has %d samples, want %d: %w", i, len(row), width, ErrInvalidArgument)
		}
		copy(g.Data[i*width:(i+1)*width], row)
	}
	return g, nil
}

// At returns the sample at row i, column j
func (g Grid) At(i, j int) int {
	return g.Data[i*g.Width+j]
}

// Set stores v at row i, column j
func (g Grid) Set(i, j, v int) {
	g.Data[i*g.Width+j] = v
}

// Row returns row i. The returned slice aliases the grid.
func (g Grid) Row(i int) []int {
	return g.Data[i*g.Width : (i+1)*g.Width]
}

// Rows returns a copy of the grid as a slice of rows
func (g Grid) Rows() [][]int {
	out := make([][]int, g.Height)
	for i := range out {
		out[i] = append([]int(nil), g.Row(i)...)
	}
	return out
}

// Clone returns a deep copy of the grid
func (g Grid) Clone() Grid {
	return Grid{
		Data:   append([]int(nil), g.Data...),
		Width:  g.Width,
		Height: g.Height,
	}
}

// Equal reports whether both grids have the same size and samples
func (g Grid) Equal(other Grid) bool {
	if g.Width != other.Width || g.Height != other.Height || len(g.Data) != len(other.Data) {
		return false
	}
	for i := range g.Data {
		if g.Data[i] != other.Data[i] {
			return false
		}
	}
	return true
}

// ImageState is a single loaded raster with its metadata.
// An empty SourceName means no image is loaded.
type ImageState struct {
	Grid Grid

	// MaxValue is the maximum sample value declared in the header
	MaxValue int

	// SourceName is the file the image was loaded from
	SourceName string
}

// Loaded reports whether the state holds an image
func (s ImageState) Loaded() bool {
	return s.SourceName != ""
}

// Width is the width of the loaded grid
func (s ImageState) Width() int { return s.Grid.Width }

// Height is the height of the loaded grid
func (s ImageState) Height() int { return s.Grid.Height }

// Volume is an ordered stack of equally sized frames.
// An empty Label means no volume is loaded.
type Volume struct {
	// Frames are the 2D grids in load order; frame k is depth index k
	Frames []Grid

	// Width, Height are the shared frame dimensions
	Width, Height int

	// MaxValue is the value declared by the first frame of the sequence
	MaxValue int

	// Label is the base name the sequence was loaded from
	Label string
}

// Depth is the number of frames in the volume
func (v Volume) Depth() int {
	return len(v.Frames)
}

// Loaded reports whether the volume holds frames
func (v Volume) Loaded() bool {
	return v.Label != ""
}

// ProjectionResult is the 2D grid produced by collapsing one axis of a volume
type ProjectionResult struct {
	Grid Grid

	// MaxValue is inherited from the source volume
	MaxValue int
}

// OutWidth is the width of the projected grid
func (r ProjectionResult) OutWidth() int { return r.Grid.Width }

// OutHeight is the height of the projected grid
func (r ProjectionResult) OutHeight() int { return r.Grid.Height }
