package store

import (
	"fmt"
	"strings"

	"slicestack/internal/models"
	"slicestack/pkg/logging"
	"slicestack/pkg/pgm"
)

const (
	// MinFrames is the smallest accepted sequence length
	MinFrames = 1

	// DefaultMaxFrames is the largest sequence length when none is configured
	DefaultMaxFrames = 99

	// DefaultSuffix is appended to every frame name
	DefaultSuffix = ".pgm"
)

// VolumeOptions configures how a VolumeStore assembles sequences
type VolumeOptions struct {
	// Policy selects strict rejection or zero padding of mismatched frames
	Policy models.DimensionPolicy

	// Suffix is the format suffix appended to every frame name
	Suffix string

	// MaxFrames bounds the count accepted by LoadSequence
	MaxFrames int
}

// VolumeStore holds the currently loaded volume
type VolumeStore struct {
	current models.Volume
	opts    VolumeOptions
	load    Loader
	log     *logging.Logger
}

// NewVolumeStore creates an empty store. Zero-valued options fall back to
// the strict policy, ".pgm" and 99 frames.
func NewVolumeStore(opts VolumeOptions, log *logging.Logger) *VolumeStore {
	if opts.Policy == "" {
		opts.Policy = models.PolicyStrict
	}
	if opts.Suffix == "" {
		opts.Suffix = DefaultSuffix
	}
	if opts.MaxFrames < MinFrames {
		opts.MaxFrames = DefaultMaxFrames
	}
	return &VolumeStore{
		opts: opts,
		load: pgm.ReadFile,
		log:  logging.OrNop(log).With("component", "volume_store", "policy", string(opts.Policy)),
	}
}

// Policy returns the dimension policy in effect
func (s *VolumeStore) Policy() models.DimensionPolicy {
	return s.opts.Policy
}

// FrameName builds the file name of frame index (1-based) of a sequence
func FrameName(base string, index int, suffix string) string {
	return fmt.Sprintf("%s%02d%s", base, index, suffix)
}

// LoadSequence loads frames base01..baseNN in order and commits them as the
// current volume. The first frame sets the baseline width, height and max
// value. An empty base is rejected before any file is read. Any load
// failure or baseline violation aborts the whole sequence and the previously
// held volume stays in place.
func (s *VolumeStore) LoadSequence(base string, count int) (models.Volume, error) {
	if strings.TrimSpace(base) == "" {
		return models.Volume{}, fmt.Errorf("empty base name: %w", models.ErrInvalidArgument)
	}
	if count < MinFrames || count > s.opts.MaxFrames {
		return models.Volume{}, fmt.Errorf("frame count %d must be between %d and %d: %w",
			count, MinFrames, s.opts.MaxFrames, models.ErrRange)
	}

	frames := make([]models.Grid, 0, count)
	var width, height, maxValue int

	for i := 1; i <= count; i++ {
		name := FrameName(base, i, s.opts.Suffix)
		state, err := s.load(name)
		if err != nil {
			s.log.Warn("volume load aborted", "base", base, "frame", name, "error", err)
			return models.Volume{}, fmt.Errorf("frame %s: %w", name, err)
		}

		if len(frames) == 0 {
			width, height, maxValue = state.Width(), state.Height(), state.MaxValue
		} else if err := s.checkFrame(state, width, height, maxValue); err != nil {
			s.log.Warn("volume load aborted", "base", base, "frame", name, "error", err)
			return models.Volume{}, fmt.Errorf("frame %s: %w", name, err)
		}

		if state.Width() > width {
			width = state.Width()
		}
		if state.Height() > height {
			height = state.Height()
		}
		frames = append(frames, state.Grid.Clone())
	}

	if s.opts.Policy == models.PolicyPad {
		for k, frame := range frames {
			frames[k] = padGrid(frame, width, height)
		}
	}

	s.current = models.Volume{
		Frames:   frames,
		Width:    width,
		Height:   height,
		MaxValue: maxValue,
		Label:    base,
	}
	s.log.Info("volume loaded",
		"base", base,
		"frames", count,
		"width", width,
		"height", height,
		"max_value", maxValue,
	)
	return snapshotVolume(s.current), nil
}

// checkFrame validates a later frame against the baseline
func (s *VolumeStore) checkFrame(state models.ImageState, width, height, maxValue int) error {
	if state.MaxValue != maxValue {
		return fmt.Errorf("max value %d differs from baseline %d: %w",
			state.MaxValue, maxValue, models.ErrDimensionMismatch)
	}
	if s.opts.Policy == models.PolicyPad {
		return nil
	}
	if state.Width() != width || state.Height() != height {
		return fmt.Errorf("size %dx%d differs from baseline %dx%d: %w",
			state.Width(), state.Height(), width, height, models.ErrDimensionMismatch)
	}
	return nil
}

// padGrid copies g into the top-left corner of a zero-filled width x height grid
func padGrid(g models.Grid, width, height int) models.Grid {
	if g.Width == width && g.Height == height {
		return g
	}
	out := models.NewGrid(width, height)
	for i := 0; i < g.Height; i++ {
		copy(out.Row(i), g.Row(i))
	}
	return out
}

// Info returns a copy of the current volume. ok is false when nothing is loaded.
func (s *VolumeStore) Info() (vol models.Volume, ok bool) {
	if !s.current.Loaded() {
		return models.Volume{}, false
	}
	return snapshotVolume(s.current), true
}

// Current returns the held volume without copying frames. Callers must treat
// the frames as read-only.
func (s *VolumeStore) Current() (models.Volume, bool) {
	return s.current, s.current.Loaded()
}

func snapshotVolume(vol models.Volume) models.Volume {
	frames := make([]models.Grid, len(vol.Frames))
	for k, f := range vol.Frames {
		frames[k] = f.Clone()
	}
	vol.Frames = frames
	return vol
}
