// Package export writes acquisition products: spectrum CSV files, metadata
// JSON, rendered PNG plots, and parses Micro-Manager stage position lists.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
)

// Errors returned by the spectrum writers.
var (
	ErrLengthMismatch = errors.New("export: x and y must have the same length")
	ErrShortFile      = errors.New("export: spectrum file has no data rows")
)

// WriteSpectrum writes a two-column CSV of x and y with the given header.
// A nil header defaults to ("Pixel", "Intensity").
func WriteSpectrum(path string, x, y []float64, header []string) error {
	if len(x) != len(y) {
		return ErrLengthMismatch
	}

	if header == nil {
		header = []string{"Pixel", "Intensity"}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	w := csv.NewWriter(f)

	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("export: %w", err)
	}

	for i := range x {
		row := []string{
			strconv.FormatFloat(x[i], 'g', -1, 64),
			strconv.FormatFloat(y[i], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("export: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("export: %w", err)
	}

	return f.Close()
}

// ReadSpectrum reads a two-column CSV written by WriteSpectrum. The header
// row is skipped.
func ReadSpectrum(path string) (x, y []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("export: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("export: %w", err)
	}

	if len(rows) < 2 {
		return nil, nil, ErrShortFile
	}

	for _, row := range rows[1:] {
		if len(row) < 2 {
			return nil, nil, fmt.Errorf("export: malformed row %v", row)
		}

		xv, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("export: %w", err)
		}

		yv, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("export: %w", err)
		}

		x = append(x, xv)
		y = append(y, yv)
	}

	return x, y, nil
}

// WriteMetadata writes the metadata map as indented JSON.
func WriteMetadata(path string, metadata map[string]any) error {
	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	return nil
}
