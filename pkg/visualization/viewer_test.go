package visualization

import (
	"errors"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"slicestack/internal/models"
)

// createTestVolume builds a D x H x W volume whose frame k is filled with k*10
func createTestVolume(depth, height, width int) models.Volume {
	vol := models.Volume{Width: width, Height: height, MaxValue: 255, Label: "test"}
	for k := 0; k < depth; k++ {
		g := models.NewGrid(width, height)
		for i := range g.Data {
			g.Data[i] = k * 10
		}
		vol.Frames = append(vol.Frames, g)
	}
	return vol
}

// TestNewViewer verifies that scale is clamped to at least 1
func TestNewViewer(t *testing.T) {
	vol := createTestVolume(2, 3, 4)
	v := NewViewer(vol, 0)
	if v.scale != 1 {
		t.Errorf("Expected scale 1, got %d", v.scale)
	}
	if v.volume.Depth() != 2 {
		t.Errorf("Expected depth 2, got %d", v.volume.Depth())
	}
}

// TestToImage verifies intensity stretching to 8 bits
func TestToImage(t *testing.T) {
	g, _ := models.GridFromRows([][]int{{0, 5, 10}})
	img := ToImage(g, 10)

	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 1 {
		t.Fatalf("Expected 3x1 image, got %v", img.Bounds())
	}
	want := []uint8{0, 127, 255}
	for x, w := range want {
		if got := img.GrayAt(x, 0).Y; got != w {
			t.Errorf("Pixel %d: expected %d, got %d", x, w, got)
		}
	}
}

// TestScale verifies nearest-neighbour upscaling keeps sample blocks
func TestScale(t *testing.T) {
	g, _ := models.GridFromRows([][]int{{0, 255}})
	img := Scale(ToImage(g, 255), 3)

	b := img.Bounds()
	if b.Dx() != 6 || b.Dy() != 3 {
		t.Fatalf("Expected 6x3 image, got %v", b)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 6; x++ {
			r, _, _, _ := img.At(x, y).RGBA()
			dark := r == 0
			if dark != (x < 3) {
				t.Errorf("Pixel (%d,%d) has unexpected value %d", x, y, r>>8)
			}
		}
	}
}

// TestSavePreview verifies a PNG is written with the scaled size
func TestSavePreview(t *testing.T) {
	g, _ := models.GridFromRows([][]int{{1, 2}, {3, 4}})
	path := filepath.Join(t.TempDir(), "preview.png")

	if err := SavePreview(g, 4, path, 2); err != nil {
		t.Fatalf("SavePreview failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open preview: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Failed to decode preview: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 4 {
		t.Errorf("Expected 4x4 preview, got %v", img.Bounds())
	}

	if err := SavePreview(models.Grid{}, 4, path, 1); !errors.Is(err, models.ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for empty grid, got %v", err)
	}
}

// TestSaveSliceSequence verifies one file per plane along each axis
func TestSaveSliceSequence(t *testing.T) {
	vol := createTestVolume(3, 2, 5)
	v := NewViewer(vol, 1)
	dir := t.TempDir()

	expected := map[models.Axis]int{models.AxisX: 5, models.AxisY: 2, models.AxisZ: 3}
	for axis, count := range expected {
		axisDir := filepath.Join(dir, axis.String())
		n, err := v.SaveSliceSequence(axis, axisDir)
		if err != nil {
			t.Fatalf("SaveSliceSequence(%v) failed: %v", axis, err)
		}
		if n != count {
			t.Errorf("Axis %v: expected %d slices, got %d", axis, count, n)
		}
		files, _ := filepath.Glob(filepath.Join(axisDir, "*.png"))
		if len(files) != count {
			t.Errorf("Axis %v: expected %d files, found %d", axis, count, len(files))
		}
	}

	if _, err := v.SaveSliceSequence(models.Axis(5), filepath.Join(dir, "bad")); !errors.Is(err, models.ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}
}

// TestSavePreviewReplacesAtomically verifies no temporary files are left and
// an existing file survives a failed encode
func TestSavePreviewReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")
	if err := os.WriteFile(path, []byte("previous"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	encodeErr := errors.New("encoder failed")
	err := writeAtomic(path, func(w io.Writer) error {
		w.Write([]byte("partial"))
		return encodeErr
	})
	if !errors.Is(err, encodeErr) {
		t.Fatalf("Expected encoder error, got %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "previous" {
		t.Errorf("Expected existing file untouched, got %q", data)
	}

	g, _ := models.GridFromRows([][]int{{0, 1}})
	if err := SavePreview(g, 1, path, 1); err != nil {
		t.Fatalf("SavePreview failed: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open preview: %v", err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("Expected a complete PNG, got %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("Expected only the output file in %s, found %d entries", dir, len(entries))
	}

	if err := SavePreview(g, 1, filepath.Join(dir, "missing", "out.png"), 1); err == nil {
		t.Error("Expected an error for a missing directory")
	}
}
