package projection

import (
	"errors"
	"reflect"
	"testing"

	"slicestack/internal/models"
)

// buildVolume creates a volume from per-frame rows
func buildVolume(t testing.TB, maxValue int, frames ...[][]int) models.Volume {
	t.Helper()
	vol := models.Volume{MaxValue: maxValue, Label: "test"}
	for _, rows := range frames {
		g, err := models.GridFromRows(rows)
		if err != nil {
			t.Fatalf("GridFromRows failed: %v", err)
		}
		vol.Frames = append(vol.Frames, g)
		vol.Width, vol.Height = g.Width, g.Height
	}
	return vol
}

// patternVolume creates a D x H x W volume where sample (k,i,j) = k*100 + i*10 + j
func patternVolume(t testing.TB, depth, height, width int) models.Volume {
	t.Helper()
	frames := make([][][]int, depth)
	for k := range frames {
		frames[k] = make([][]int, height)
		for i := range frames[k] {
			frames[k][i] = make([]int, width)
			for j := range frames[k][i] {
				frames[k][i][j] = k*100 + i*10 + j
			}
		}
	}
	return buildVolume(t, 255, frames...)
}

// TestProjectAxisZ verifies the two-frame example for every criterion
func TestProjectAxisZ(t *testing.T) {
	vol := buildVolume(t, 8,
		[][]int{{1, 2}, {3, 4}},
		[][]int{{5, 6}, {7, 8}},
	)

	cases := map[models.Criterion][][]int{
		models.Max:    {{5, 6}, {7, 8}},
		models.Min:    {{1, 2}, {3, 4}},
		models.Mean:   {{3, 4}, {5, 6}},
		models.Median: {{3, 4}, {5, 6}},
	}
	for criterion, want := range cases {
		res, err := Project(vol, models.AxisZ, criterion)
		if err != nil {
			t.Fatalf("Project(z, %v) failed: %v", criterion, err)
		}
		if got := res.Grid.Rows(); !reflect.DeepEqual(got, want) {
			t.Errorf("Project(z, %v): expected %v, got %v", criterion, want, got)
		}
		if res.MaxValue != 8 {
			t.Errorf("Project(z, %v): expected max value 8, got %d", criterion, res.MaxValue)
		}
	}
}

// TestProjectAxisY verifies reduction over the rows of each frame
func TestProjectAxisY(t *testing.T) {
	vol := buildVolume(t, 9,
		[][]int{{1, 9}, {2, 0}, {6, 4}},
		[][]int{{3, 3}, {3, 3}, {3, 4}},
	)

	cases := map[models.Criterion][][]int{
		models.Max:    {{6, 9}, {3, 4}},
		models.Min:    {{1, 0}, {3, 3}},
		models.Mean:   {{3, 4}, {3, 3}},
		models.Median: {{2, 4}, {3, 3}},
	}
	for criterion, want := range cases {
		res, err := Project(vol, models.AxisY, criterion)
		if err != nil {
			t.Fatalf("Project(y, %v) failed: %v", criterion, err)
		}
		if got := res.Grid.Rows(); !reflect.DeepEqual(got, want) {
			t.Errorf("Project(y, %v): expected %v, got %v", criterion, want, got)
		}
	}
}

// TestProjectAxisX verifies reduction along each row, one column per frame
func TestProjectAxisX(t *testing.T) {
	vol := buildVolume(t, 9,
		[][]int{{1, 2, 3, 4}, {9, 0, 0, 1}},
		[][]int{{4, 4, 4, 5}, {2, 8, 1, 7}},
		[][]int{{0, 0, 0, 0}, {5, 5, 5, 5}},
	)

	cases := map[models.Criterion][][]int{
		models.Max:    {{4, 5, 0}, {9, 8, 5}},
		models.Min:    {{1, 4, 0}, {0, 1, 5}},
		models.Mean:   {{2, 4, 0}, {2, 4, 5}},
		models.Median: {{2, 4, 0}, {0, 4, 5}},
	}
	for criterion, want := range cases {
		res, err := Project(vol, models.AxisX, criterion)
		if err != nil {
			t.Fatalf("Project(x, %v) failed: %v", criterion, err)
		}
		if got := res.Grid.Rows(); !reflect.DeepEqual(got, want) {
			t.Errorf("Project(x, %v): expected %v, got %v", criterion, want, got)
		}
	}
}

// TestProjectDimensions verifies the output shape of every axis
func TestProjectDimensions(t *testing.T) {
	const depth, height, width = 4, 3, 5
	vol := patternVolume(t, depth, height, width)

	cases := []struct {
		axis          models.Axis
		width, height int
	}{
		{models.AxisZ, width, height},
		{models.AxisY, width, depth},
		{models.AxisX, depth, height},
	}
	for _, c := range cases {
		res, err := Project(vol, c.axis, models.Max)
		if err != nil {
			t.Fatalf("Project(%v) failed: %v", c.axis, err)
		}
		if res.OutWidth() != c.width || res.OutHeight() != c.height {
			t.Errorf("Project(%v): expected %dx%d, got %dx%d",
				c.axis, c.width, c.height, res.OutWidth(), res.OutHeight())
		}
	}

	// With the pattern volume, max along an axis picks the last index
	res, _ := Project(vol, models.AxisX, models.Max)
	if res.Grid.At(2, 3) != 3*100+2*10+(width-1) {
		t.Errorf("Unexpected x projection sample %d", res.Grid.At(2, 3))
	}
	res, _ = Project(vol, models.AxisY, models.Min)
	if res.Grid.At(3, 4) != 3*100+0*10+4 {
		t.Errorf("Unexpected y projection sample %d", res.Grid.At(3, 4))
	}
}

// TestProjectDoesNotModifyVolume verifies the median sort works on a copy
func TestProjectDoesNotModifyVolume(t *testing.T) {
	vol := buildVolume(t, 9, [][]int{{9, 1, 5}}, [][]int{{3, 7, 2}})
	before := [][]int{vol.Frames[0].Row(0), vol.Frames[1].Row(0)}
	snapshot := [][]int{append([]int(nil), before[0]...), append([]int(nil), before[1]...)}

	for _, axis := range []models.Axis{models.AxisX, models.AxisY, models.AxisZ} {
		if _, err := Project(vol, axis, models.Median); err != nil {
			t.Fatalf("Project failed: %v", err)
		}
	}
	if !reflect.DeepEqual(vol.Frames[0].Row(0), snapshot[0]) || !reflect.DeepEqual(vol.Frames[1].Row(0), snapshot[1]) {
		t.Error("Expected the volume to be unchanged")
	}
}

// TestProjectInvalidArguments verifies validation errors
func TestProjectInvalidArguments(t *testing.T) {
	vol := patternVolume(t, 2, 2, 2)

	if _, err := Project(vol, models.Axis(9), models.Max); !errors.Is(err, models.ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for bad axis, got %v", err)
	}
	if _, err := Project(vol, models.AxisZ, models.Criterion(9)); !errors.Is(err, models.ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for bad criterion, got %v", err)
	}
	if _, err := Project(models.Volume{}, models.AxisZ, models.Max); !errors.Is(err, models.ErrNoVolume) {
		t.Errorf("Expected ErrNoVolume for empty volume, got %v", err)
	}

	broken := patternVolume(t, 2, 2, 2)
	broken.Frames[1] = models.NewGrid(3, 2)
	if _, err := Project(broken, models.AxisZ, models.Max); !errors.Is(err, models.ErrDimensionMismatch) {
		t.Errorf("Expected ErrDimensionMismatch, got %v", err)
	}
}

// TestMedian verifies odd and even tie-breaking
func TestMedian(t *testing.T) {
	cases := []struct {
		values []int
		want   int
	}{
		{[]int{1, 2, 3, 4}, 2},
		{[]int{1, 2, 3}, 2},
		{[]int{4, 1, 3, 2}, 2},
		{[]int{7}, 7},
		{[]int{255, 254}, 254},
		{nil, 0},
	}
	for _, c := range cases {
		if got := Median(append([]int(nil), c.values...)); got != c.want {
			t.Errorf("Median(%v) = %d, want %d", c.values, got, c.want)
		}
	}
}

// TestExtractSlice verifies single planes along every axis
func TestExtractSlice(t *testing.T) {
	vol := patternVolume(t, 3, 2, 4)

	z, err := ExtractSlice(vol, models.AxisZ, 1)
	if err != nil {
		t.Fatalf("ExtractSlice(z) failed: %v", err)
	}
	if !z.Grid.Equal(vol.Frames[1]) {
		t.Errorf("Expected z plane to equal frame 1, got %v", z.Grid.Rows())
	}

	y, err := ExtractSlice(vol, models.AxisY, 1)
	if err != nil {
		t.Fatalf("ExtractSlice(y) failed: %v", err)
	}
	if y.OutWidth() != 4 || y.OutHeight() != 3 || y.Grid.At(2, 3) != 213 {
		t.Errorf("Unexpected y plane %v", y.Grid.Rows())
	}

	x, err := ExtractSlice(vol, models.AxisX, 2)
	if err != nil {
		t.Fatalf("ExtractSlice(x) failed: %v", err)
	}
	if x.OutWidth() != 3 || x.OutHeight() != 2 || x.Grid.At(1, 2) != 212 {
		t.Errorf("Unexpected x plane %v", x.Grid.Rows())
	}

	for _, pos := range []int{-1, 3} {
		if _, err := ExtractSlice(vol, models.AxisZ, pos); !errors.Is(err, models.ErrRange) {
			t.Errorf("ExtractSlice(z, %d): expected ErrRange, got %v", pos, err)
		}
	}

	// The clone must not alias the volume
	z.Grid.Set(0, 0, 99)
	if vol.Frames[1].At(0, 0) == 99 {
		t.Error("Expected z plane to be a copy")
	}
}

// BenchmarkProject measures each axis on a 32-frame 128x128 volume
func BenchmarkProject(b *testing.B) {
	vol := patternVolume(b, 32, 128, 128)
	for _, axis := range []models.Axis{models.AxisX, models.AxisY, models.AxisZ} {
		b.Run(axis.String(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := Project(vol, axis, models.Median); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
