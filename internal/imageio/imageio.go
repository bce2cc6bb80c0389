// Package imageio reads blurred image data from text and writes
// reconstructions as grayscale PNGs.
package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-optim/linalg"
)

// Errors returned by this package.
var (
	ErrEmpty  = errors.New("imageio: no data")
	ErrRagged = errors.New("imageio: rows differ in length")
)

// ReadMatrix parses whitespace-separated numbers, one matrix row per line.
// Blank lines are skipped. Every row must have the same number of fields.
func ReadMatrix(r io.Reader) ([][]float64, error) {
	var rows [][]float64
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		row := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("imageio: line %d field %d: %w", line, i+1, err)
			}
			row[i] = v
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("%w: line %d has %d fields, want %d", ErrRagged, line, len(row), len(rows[0]))
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("imageio: read: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmpty
	}
	return rows, nil
}

// Columns returns the columns of a rectangular row-major matrix as vectors.
// Each column of the text image is one signal for deblurring.
func Columns(rows [][]float64) []linalg.Vector {
	if len(rows) == 0 {
		return nil
	}
	cols := make([]linalg.Vector, len(rows[0]))
	for c := range cols {
		cols[c] = linalg.Zeros(len(rows))
		for r, row := range rows {
			cols[c][r] = row[c]
		}
	}
	return cols
}

// GrayLevel rounds v to the nearest 8-bit gray level, saturating at 0 and
// 255. NaN maps to 0.
func GrayLevel(v float64) uint8 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(math.Round(v))
	}
}

// WriteGray encodes cols as a grayscale PNG with one image column per
// vector: pixel (x, y) is cols[x][y].
func WriteGray(w io.Writer, cols []linalg.Vector) error {
	if len(cols) == 0 || len(cols[0]) == 0 {
		return ErrEmpty
	}
	height := len(cols[0])
	img := image.NewGray(image.Rect(0, 0, len(cols), height))
	for x, col := range cols {
		if len(col) != height {
			return fmt.Errorf("%w: column %d has %d samples, want %d", ErrRagged, x, len(col), height)
		}
		for y, v := range col {
			img.SetGray(x, y, color.Gray{Y: GrayLevel(v)})
		}
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("imageio: encode png: %w", err)
	}
	return nil
}
