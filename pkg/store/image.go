// Package store holds the interpreter's single active image and single
// active volume. Every load either fully replaces the held state or leaves
// it exactly as it was.
package store

import (
	"slicestack/internal/models"
	"slicestack/pkg/logging"
	"slicestack/pkg/pgm"
)

// Loader reads a raster by name. pgm.ReadFile is the default.
type Loader func(name string) (models.ImageState, error)

// ImageStore holds the currently loaded standalone image
type ImageStore struct {
	current models.ImageState
	load    Loader
	log     *logging.Logger
}

// NewImageStore creates an empty store reading files through the PGM codec
func NewImageStore(log *logging.Logger) *ImageStore {
	return &ImageStore{
		load: pgm.ReadFile,
		log:  logging.OrNop(log).With("component", "image_store"),
	}
}

// Load parses the raster at name and makes it the current image. On failure
// the previously loaded image, if any, is kept.
func (s *ImageStore) Load(name string) (models.ImageState, error) {
	state, err := s.load(name)
	if err != nil {
		s.log.Warn("image load rejected", "file", name, "error", err)
		return models.ImageState{}, err
	}

	s.current = state
	s.log.Info("image loaded",
		"file", name,
		"width", state.Width(),
		"height", state.Height(),
		"max_value", state.MaxValue,
	)
	return snapshotImage(state), nil
}

// Info returns a copy of the current image. ok is false when nothing is loaded.
func (s *ImageStore) Info() (state models.ImageState, ok bool) {
	if !s.current.Loaded() {
		return models.ImageState{}, false
	}
	return snapshotImage(s.current), true
}

func snapshotImage(state models.ImageState) models.ImageState {
	state.Grid = state.Grid.Clone()
	return state
}
