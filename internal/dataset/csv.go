// Package dataset persists spectral grids as CSV. The column set is fixed;
// files missing a required column or carrying unparseable values surface a
// *FormatError so callers can tell a corrupt dataset from an I/O failure and
// regenerate instead of failing outright.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"fieldspectra/internal/models"
)

// Header is the canonical column order for persisted datasets.
var Header = []string{
	"plot_id", "row", "col",
	"blue_480", "green_560", "red_665",
	"red_edge_705", "red_edge_740",
	"nir_842", "nir2_865",
	"swir_1610", "swir_2190",
}

// FormatError reports a structurally invalid dataset file.
type FormatError struct {
	Path   string
	Line   int    // 1-based, 0 when the problem is the header
	Column string // offending column, when known
	Reason string
}

func (e *FormatError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("dataset %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("dataset %s: line %d, column %s: %s", e.Path, e.Line, e.Column, e.Reason)
}

// Save writes records to path, creating parent directories as needed. Band
// values are formatted with 4 decimal digits.
func Save(path string, records []models.SpectralRecord) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dataset dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset: %w", err)
	}
	defer f.Close()

	if err := Write(f, records); err != nil {
		return err
	}
	return f.Close()
}

// Write streams records as CSV to w.
func Write(w io.Writer, records []models.SpectralRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range records {
		rec := &records[i]
		row := []string{
			rec.PlotID,
			strconv.Itoa(rec.Row),
			strconv.Itoa(rec.Col),
		}
		for _, band := range rec.Bands() {
			row = append(row, strconv.FormatFloat(band, 'f', 4, 64))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write record %s: %w", rec.PlotID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Load reads a dataset file written by Save.
func Load(path string) ([]models.SpectralRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Read(f, path)
}

// Read parses CSV from r. Columns may appear in any order; name identifies
// the source in error messages.
func Read(r io.Reader, name string) ([]models.SpectralRecord, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, &FormatError{Path: name, Reason: "empty file"}
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[col] = i
	}
	for _, col := range Header {
		if _, ok := index[col]; !ok {
			return nil, &FormatError{Path: name, Column: col, Reason: "missing column"}
		}
	}

	var records []models.SpectralRecord
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if errors.Is(err, csv.ErrFieldCount) {
				return nil, &FormatError{Path: name, Line: line + 1, Reason: "wrong field count"}
			}
			return nil, fmt.Errorf("read line %d: %w", line+1, err)
		}
		line++

		rec := models.SpectralRecord{PlotID: row[index["plot_id"]]}
		if rec.Row, err = strconv.Atoi(row[index["row"]]); err != nil {
			return nil, &FormatError{Path: name, Line: line, Column: "row", Reason: "not an integer"}
		}
		if rec.Col, err = strconv.Atoi(row[index["col"]]); err != nil {
			return nil, &FormatError{Path: name, Line: line, Column: "col", Reason: "not an integer"}
		}

		bands := []struct {
			col string
			dst *float64
		}{
			{"blue_480", &rec.Blue480},
			{"green_560", &rec.Green560},
			{"red_665", &rec.Red665},
			{"red_edge_705", &rec.RedEdge705},
			{"red_edge_740", &rec.RedEdge740},
			{"nir_842", &rec.NIR842},
			{"nir2_865", &rec.NIR2865},
			{"swir_1610", &rec.SWIR1610},
			{"swir_2190", &rec.SWIR2190},
		}
		for _, b := range bands {
			v, err := strconv.ParseFloat(row[index[b.col]], 64)
			if err != nil {
				return nil, &FormatError{Path: name, Line: line, Column: b.col, Reason: "not a number"}
			}
			*b.dst = v
		}
		records = append(records, rec)
	}
	return records, nil
}
