// Package pgm reads and writes plain-text (P2) greyscale PGM rasters.
//
// The header tokens (width, height, maxValue) may be spread over several
// lines or share one line, and blank or '#' comment lines may appear
// anywhere before the first sample. Samples are whitespace separated.
package pgm

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"slicestack/internal/models"
)

// Magic is the identifier of the plain greyscale PGM variant
const Magic = "P2"

// MaxSampleValue is the largest maxValue accepted in a header
const MaxSampleValue = 255

// DefaultComment is written when Serialize is given an empty comment
const DefaultComment = "Proyeccion 2D generada"

// headerState tracks which header field the scanner is waiting for
type headerState int

const (
	seekingDimensions headerState = iota
	seekingMaxValue
	headerDone
)

// header holds the fields recovered from the header lines
type header struct {
	width, height, maxValue int

	// leftover holds tokens found on the last header line after maxValue
	leftover []string
}

// Parse decodes a P2 raster from r. name is recorded as the SourceName of the
// returned state. Header problems are reported as models.ErrFormat and body
// problems as models.ErrCorruptData.
func Parse(r io.Reader, name string) (models.ImageState, error) {
	br := bufio.NewReader(r)

	hdr, err := readHeader(br)
	if err != nil {
		return models.ImageState{}, err
	}

	grid, err := readSamples(br, hdr)
	if err != nil {
		return models.ImageState{}, err
	}

	return models.ImageState{
		Grid:       grid,
		MaxValue:   hdr.maxValue,
		SourceName: name,
	}, nil
}

// readHeader consumes the magic token and the three header fields
func readHeader(br *bufio.Reader) (header, error) {
	var hdr header

	// The magic is the first whitespace delimited token of the stream
	first, err := nextContentLine(br, false)
	if err != nil {
		return hdr, fmt.Errorf("missing magic number: %w", models.ErrFormat)
	}
	fields := strings.Fields(first)
	if fields[0] != Magic {
		return hdr, fmt.Errorf("magic %q is not %s: %w", fields[0], Magic, models.ErrFormat)
	}

	pending := stripComment(fields[1:])

	state := seekingDimensions
	var values []int
	for state != headerDone {
		if len(pending) == 0 {
			line, err := nextContentLine(br, true)
			if err != nil {
				return hdr, fmt.Errorf("incomplete header: %w", models.ErrFormat)
			}
			pending = stripComment(strings.Fields(line))
			continue
		}

		v, err := strconv.Atoi(pending[0])
		if err != nil {
			return hdr, fmt.Errorf("header field %q is not an integer: %w", pending[0], models.ErrFormat)
		}
		pending = pending[1:]
		values = append(values, v)

		switch {
		case state == seekingDimensions && len(values) == 2:
			state = seekingMaxValue
		case state == seekingMaxValue:
			state = headerDone
		}
	}

	hdr.width, hdr.height, hdr.maxValue = values[0], values[1], values[2]
	hdr.leftover = pending

	if hdr.width <= 0 || hdr.height <= 0 {
		return hdr, fmt.Errorf("dimensions %dx%d: %w", hdr.width, hdr.height, models.ErrFormat)
	}
	if hdr.maxValue <= 0 || hdr.maxValue > MaxSampleValue {
		return hdr, fmt.Errorf("max value %d outside 1..%d: %w", hdr.maxValue, MaxSampleValue, models.ErrFormat)
	}
	return hdr, nil
}

// stripComment drops the first token starting with '#' and everything after it
func stripComment(fields []string) []string {
	for i, f := range fields {
		if strings.HasPrefix(f, "#") {
			return fields[:i]
		}
	}
	return fields
}

// nextContentLine returns the next line that is neither blank nor, when
// skipComments is set, a '#' comment. io.EOF is returned once the stream is
// exhausted without such a line.
func nextContentLine(br *bufio.Reader, skipComments bool) (string, error) {
	for {
		line, err := br.ReadString('\n')
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !(skipComments && strings.HasPrefix(trimmed, "#")) {
			return trimmed, nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", io.EOF
			}
			return "", err
		}
	}
}

// readSamples reads width*height samples in row-major order
func readSamples(br *bufio.Reader, hdr header) (models.Grid, error) {
	grid := models.NewGrid(hdr.width, hdr.height)
	total := hdr.width * hdr.height

	scanner := bufio.NewScanner(br)
	scanner.Split(bufio.ScanWords)

	next := func() (string, bool) {
		if len(hdr.leftover) > 0 {
			tok := hdr.leftover[0]
			hdr.leftover = hdr.leftover[1:]
			return tok, true
		}
		if scanner.Scan() {
			return scanner.Text(), true
		}
		return "", false
	}

	for idx := 0; idx < total; idx++ {
		tok, ok := next()
		if !ok {
			if err := scanner.Err(); err != nil {
				return models.Grid{}, fmt.Errorf("reading sample %d: %v: %w", idx, err, models.ErrCorruptData)
			}
			return models.Grid{}, fmt.Errorf("expected %d samples, found %d: %w", total, idx, models.ErrCorruptData)
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return models.Grid{}, fmt.Errorf("sample %d (%q) is not an integer: %w", idx, tok, models.ErrCorruptData)
		}
		if v < 0 || v > hdr.maxValue {
			return models.Grid{}, fmt.Errorf("sample %d = %d outside 0..%d: %w", idx, v, hdr.maxValue, models.ErrCorruptData)
		}
		grid.Data[idx] = v
	}

	return grid, nil
}

// Serialize writes grid as a P2 raster with a single comment line.
// It is the inverse of Parse on the numeric content.
func Serialize(w io.Writer, grid models.Grid, maxValue int, comment string) error {
	if err := validate(grid, maxValue); err != nil {
		return err
	}
	if comment == "" {
		comment = DefaultComment
	}
	comment = strings.ReplaceAll(comment, "\n", " ")

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n# %s\n%d %d\n%d\n", Magic, comment, grid.Width, grid.Height, maxValue)

	for i := 0; i < grid.Height; i++ {
		for j, v := range grid.Row(i) {
			if j > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.Itoa(v))
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

// Marshal returns the serialized form of grid
func Marshal(grid models.Grid, maxValue int, comment string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Serialize(&buf, grid, maxValue, comment); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// validate checks that grid can be written under maxValue
func validate(grid models.Grid, maxValue int) error {
	if grid.Width <= 0 || grid.Height <= 0 || len(grid.Data) != grid.Width*grid.Height {
		return fmt.Errorf("grid %dx%d with %d samples: %w", grid.Width, grid.Height, len(grid.Data), models.ErrInvalidArgument)
	}
	if maxValue <= 0 || maxValue > MaxSampleValue {
		return fmt.Errorf("max value %d outside 1..%d: %w", maxValue, MaxSampleValue, models.ErrInvalidArgument)
	}
	for idx, v := range grid.Data {
		if v < 0 || v > maxValue {
			return fmt.Errorf("sample %d = %d outside 0..%d: %w", idx, v, maxValue, models.ErrInvalidArgument)
		}
	}
	return nil
}

// ReadFile opens and parses the raster at path. A file that cannot be opened
// is reported as models.ErrNotFound.
func ReadFile(path string) (models.ImageState, error) {
	file, err := os.Open(path)
	if err != nil {
		return models.ImageState{}, fmt.Errorf("open %s: %v: %w", path, err, models.ErrNotFound)
	}
	defer file.Close()

	state, err := Parse(file, path)
	if err != nil {
		return models.ImageState{}, fmt.Errorf("%s: %w", path, err)
	}
	return state, nil
}

// WriteFile serializes grid to path. The data is written to a temporary file
// in the same directory and renamed into place, so path is never left
// truncated.
func WriteFile(path string, grid models.Grid, maxValue int, comment string) error {
	if err := validate(grid, maxValue); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".pgm-*")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := Serialize(tmp, grid, maxValue, comment); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}
