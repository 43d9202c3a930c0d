package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"slicestack/internal/models"
	"slicestack/pkg/projection"
)

// Viewer renders grids of a volume, or standalone grids, as PNG previews
type Viewer struct {
	// volume is the stack planes are extracted from
	volume models.Volume

	// scale is the integer upscale factor applied to every preview
	scale int
}

// NewViewer creates a viewer over vol. A scale below 1 is treated as 1.
func NewViewer(vol models.Volume, scale int) *Viewer {
	if scale < 1 {
		scale = 1
	}
	return &Viewer{
		volume: vol,
		scale:  scale,
	}
}

// ToImage converts a grid to an 8-bit greyscale image, stretching
// 0..maxValue to 0..255
func ToImage(grid models.Grid, maxValue int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, grid.Width, grid.Height))
	if maxValue <= 0 {
		maxValue = 1
	}
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			v := grid.At(y, x)
			if v < 0 {
				v = 0
			}
			if v > maxValue {
				v = maxValue
			}
			img.SetGray(x, y, color.Gray{Y: uint8(v * 255 / maxValue)})
		}
	}
	return img
}

// Scale enlarges img by an integer factor with nearest-neighbour sampling
// so individual samples stay visible as blocks
func Scale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// SavePreview writes grid as a PNG at path, upscaled by factor. An existing
// file at path is only replaced once the PNG is complete.
func SavePreview(grid models.Grid, maxValue int, path string, factor int) error {
	if grid.Width <= 0 || grid.Height <= 0 {
		return fmt.Errorf("empty grid: %w", models.ErrInvalidArgument)
	}
	img := Scale(ToImage(grid, maxValue), factor)
	return writeAtomic(path, func(w io.Writer) error {
		return png.Encode(w, img)
	})
}

// writeAtomic runs encode against a temporary file next to path and renames
// it into place only when encoding and closing succeed
func writeAtomic(path string, encode func(w io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".preview-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := encode(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// SaveSlice writes the plane at position along axis as a PNG
func (v *Viewer) SaveSlice(axis models.Axis, position int, path string) error {
	plane, err := projection.ExtractSlice(v.volume, axis, position)
	if err != nil {
		return err
	}
	return SavePreview(plane.Grid, plane.MaxValue, path, v.scale)
}

// SaveSliceSequence writes every plane along axis into outputDir and
// returns the number of files written
func (v *Viewer) SaveSliceSequence(axis models.Axis, outputDir string) (int, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return 0, err
	}

	var maxPos int
	switch axis {
	case models.AxisX:
		maxPos = v.volume.Width
	case models.AxisY:
		maxPos = v.volume.Height
	case models.AxisZ:
		maxPos = v.volume.Depth()
	default:
		return 0, fmt.Errorf("axis %v: %w", axis, models.ErrInvalidArgument)
	}

	for pos := 0; pos < maxPos; pos++ {
		filename := filepath.Join(outputDir, fmt.Sprintf("slice_%s_%03d.png", axis, pos))
		if err := v.SaveSlice(axis, pos, filename); err != nil {
			return pos, err
		}
	}

	return maxPos, nil
}
