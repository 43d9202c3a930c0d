package shell

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"slicestack/internal/models"
	"slicestack/pkg/pgm"
	"slicestack/pkg/projection"
	"slicestack/pkg/visualization"
)

func registerProjectionCommands(r *registry) error {
	for _, cmd := range []command{
		{
			Name:    "project",
			Aliases: []string{"proyeccion2D"},
			Usage:   "project <x|y|z> <max|min|prom|med> <output.pgm>",
			Desc:    "Writes a 2D projection of the loaded volume. A .png output name writes a preview instead.",
			Run:     cmdProject,
		},
		{
			Name:    "slice",
			Aliases: []string{"corte"},
			Usage:   "slice <x|y|z> <index> <output.pgm>",
			Desc:    "Writes one plane of the loaded volume. Indices start at 0.",
			Run:     cmdSlice,
		},
		{
			Name:    "preview",
			Aliases: []string{"vista"},
			Usage:   "preview <output.png> [scale]",
			Desc:    "Writes the loaded image as an upscaled PNG.",
			Run:     cmdPreview,
		},
		{
			Name:    "export_slices",
			Aliases: []string{"exportar_cortes"},
			Usage:   "export_slices <x|y|z> <directory>",
			Desc:    "Writes every plane of the loaded volume along an axis as PNG files.",
			Run:     cmdExportSlices,
		},
	} {
		if err := r.register(cmd); err != nil {
			return err
		}
	}
	return nil
}

func cmdProject(s *Shell, args []string) error {
	if len(args) != 3 {
		return models.ErrUsage
	}
	axis, err := models.ParseAxis(args[0])
	if err != nil {
		return err
	}
	criterion, err := models.ParseCriterion(args[1])
	if err != nil {
		return err
	}
	vol, ok := s.volumes.Current()
	if !ok {
		return models.ErrNoVolume
	}

	result, err := projection.Project(vol, axis, criterion)
	if err != nil {
		return err
	}
	if err := s.writeResult(result, args[2]); err != nil {
		return err
	}

	s.log.Info("projection written",
		"axis", axis.String(),
		"criterion", criterion.String(),
		"file", args[2],
		"width", result.OutWidth(),
		"height", result.OutHeight(),
	)
	s.printf("2D projection saved to %s\n", args[2])
	return nil
}

func cmdSlice(s *Shell, args []string) error {
	if len(args) != 3 {
		return models.ErrUsage
	}
	axis, err := models.ParseAxis(args[0])
	if err != nil {
		return err
	}
	position, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid index %q: %w", args[1], models.ErrInvalidArgument)
	}
	vol, ok := s.volumes.Current()
	if !ok {
		return models.ErrNoVolume
	}

	plane, err := projection.ExtractSlice(vol, axis, position)
	if err != nil {
		return err
	}
	if err := s.writeResult(plane, args[2]); err != nil {
		return err
	}
	s.printf("Slice %s=%d saved to %s\n", axis, position, args[2])
	return nil
}

func cmdPreview(s *Shell, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return models.ErrUsage
	}
	scale := s.opts.PreviewScale
	if len(args) == 2 {
		v, err := strconv.Atoi(args[1])
		if err != nil || v < 1 {
			return fmt.Errorf("invalid scale %q: %w", args[1], models.ErrInvalidArgument)
		}
		scale = v
	}
	img, ok := s.images.Info()
	if !ok {
		return models.ErrNoImage
	}

	if err := visualization.SavePreview(img.Grid, img.MaxValue, args[0], scale); err != nil {
		return fmt.Errorf("could not create %s: %w", args[0], err)
	}
	s.printf("Preview of %s saved to %s\n", img.SourceName, args[0])
	return nil
}

func cmdExportSlices(s *Shell, args []string) error {
	if len(args) != 2 {
		return models.ErrUsage
	}
	axis, err := models.ParseAxis(args[0])
	if err != nil {
		return err
	}
	vol, ok := s.volumes.Current()
	if !ok {
		return models.ErrNoVolume
	}

	n, err := visualization.NewViewer(vol, s.opts.PreviewScale).SaveSliceSequence(axis, args[1])
	if err != nil {
		return fmt.Errorf("exported %d slices before failing: %w", n, err)
	}
	s.printf("%d slices along %s saved to %s\n", n, axis, args[1])
	return nil
}

// writeResult writes a PGM, or a PNG preview when name ends in .png
func (s *Shell) writeResult(result models.ProjectionResult, name string) error {
	if strings.EqualFold(filepath.Ext(name), ".png") {
		if err := visualization.SavePreview(result.Grid, result.MaxValue, name, s.opts.PreviewScale); err != nil {
			return fmt.Errorf("could not create %s: %w", name, err)
		}
		return nil
	}
	if err := pgm.WriteFile(name, result.Grid, result.MaxValue, s.opts.Comment); err != nil {
		return fmt.Errorf("could not create %s: %w", name, err)
	}
	return nil
}
