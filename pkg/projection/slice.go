package projection

import (
	"fmt"

	"slicestack/internal/models"
)

// ExtractSlice returns the plane of vol at position along axis. The plane
// has the same shape as a projection along that axis: z gives frame
// position (H x W), y gives row position of every frame (D x W), and x gives
// column position of every frame (H x D).
func ExtractSlice(vol models.Volume, axis models.Axis, position int) (models.ProjectionResult, error) {
	if !axis.Valid() {
		return models.ProjectionResult{}, fmt.Errorf("axis %v: %w", axis, models.ErrInvalidArgument)
	}
	if err := checkVolume(vol); err != nil {
		return models.ProjectionResult{}, err
	}

	depth, height, width := vol.Depth(), vol.Height, vol.Width

	var limit int
	switch axis {
	case models.AxisX:
		limit = width
	case models.AxisY:
		limit = height
	case models.AxisZ:
		limit = depth
	}
	if position < 0 || position >= limit {
		return models.ProjectionResult{}, fmt.Errorf("position %d outside 0..%d on axis %v: %w",
			position, limit-1, axis, models.ErrRange)
	}

	var out models.Grid
	switch axis {
	case models.AxisZ:
		out = vol.Frames[position].Clone()

	case models.AxisY:
		out = models.NewGrid(width, depth)
		for k := 0; k < depth; k++ {
			copy(out.Row(k), vol.Frames[k].Row(position))
		}

	case models.AxisX:
		out = models.NewGrid(depth, height)
		for i := 0; i < height; i++ {
			for k := 0; k < depth; k++ {
				out.Set(i, k, vol.Frames[k].At(i, position))
			}
		}
	}

	return models.ProjectionResult{Grid: out, MaxValue: vol.MaxValue}, nil
}
