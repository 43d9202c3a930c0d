package shell

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"

	"slicestack/internal/models"
	"slicestack/pkg/stats"
)

func registerLoadCommands(r *registry) error {
	for _, cmd := range []command{
		{
			Name:    "load_image",
			Aliases: []string{"cargar_imagen"},
			Usage:   "load_image <image.pgm>",
			Desc:    "Loads a PGM image into memory, replacing the current one.",
			Run:     cmdLoadImage,
		},
		{
			Name:    "load_volume",
			Aliases: []string{"cargar_volumen"},
			Usage:   "load_volume <base_name> <n_images>",
			Desc:    "Loads base_name01.pgm .. base_nameNN.pgm as a volume.",
			Run:     cmdLoadVolume,
		},
		{
			Name:    "image_info",
			Aliases: []string{"info_imagen"},
			Usage:   "image_info",
			Desc:    "Shows information about the loaded image.",
			Run:     cmdImageInfo,
		},
		{
			Name:    "volume_info",
			Aliases: []string{"info_volumen"},
			Usage:   "volume_info",
			Desc:    "Shows information about the loaded volume.",
			Run:     cmdVolumeInfo,
		},
	} {
		if err := r.register(cmd); err != nil {
			return err
		}
	}
	return nil
}

func cmdLoadImage(s *Shell, args []string) error {
	if len(args) != 1 {
		return models.ErrUsage
	}
	if _, err := s.images.Load(args[0]); err != nil {
		return fmt.Errorf("image %s could not be loaded: %w", args[0], err)
	}
	s.printf("Image %s has been loaded.\n", args[0])
	return nil
}

func cmdLoadVolume(s *Shell, args []string) error {
	if len(args) != 2 {
		return models.ErrUsage
	}
	count, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid number of images %q: %w", args[1], models.ErrInvalidArgument)
	}

	vol, err := s.volumes.LoadSequence(args[0], count)
	if err != nil {
		return fmt.Errorf("volume %s could not be loaded: %w", args[0], err)
	}
	s.printf("Volume %s has been loaded with %d images of %dx%d.\n", vol.Label, vol.Depth(), vol.Width, vol.Height)
	return nil
}

func cmdImageInfo(s *Shell, _ []string) error {
	img, ok := s.images.Info()
	if !ok {
		s.printf("No image is loaded in memory.\n")
		return nil
	}
	s.printf("Image loaded in memory: %s\n", img.SourceName)
	s.printf("Dimensions: %d x %d pixels\n", img.Width(), img.Height())
	s.printf("Max pixel value: %d\n", img.MaxValue)
	s.printSummary(stats.Summarize(img.MaxValue, img.Grid), stats.Footprint(img.Grid))
	return nil
}

func cmdVolumeInfo(s *Shell, _ []string) error {
	vol, ok := s.volumes.Info()
	if !ok {
		s.printf("No volume is loaded in memory.\n")
		return nil
	}
	s.printf("Volume loaded in memory: %s\n", vol.Label)
	s.printf("Number of images: %d\n", vol.Depth())
	s.printf("Dimensions of each image: %d x %d pixels\n", vol.Width, vol.Height)
	s.printf("Max pixel value: %d\n", vol.MaxValue)
	s.printSummary(stats.Summarize(vol.MaxValue, vol.Frames...), stats.Footprint(vol.Frames...))
	return nil
}

func (s *Shell) printSummary(sum stats.Summary, bytes uint64) {
	s.printf("Samples: %s (%s in memory)\n", humanize.Comma(int64(sum.Count)), humanize.IBytes(bytes))
	s.printf("Range: %.0f..%.0f, mean %.2f, std dev %.2f, median %.0f, mode %d\n",
		sum.Min, sum.Max, sum.Mean, sum.StdDev, sum.Median, sum.Mode())
}
