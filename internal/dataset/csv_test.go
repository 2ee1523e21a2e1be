package dataset

import (
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"fieldspectra/internal/synth"
)

func TestRoundTrip(t *testing.T) {
	records, err := synth.Generate(6, 5, 1337)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	path := filepath.Join(t.TempDir(), "data", "grid.csv")
	if err := Save(path, records); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != len(records) {
		t.Fatalf("len(loaded) = %d, want %d", len(loaded), len(records))
	}

	for i := range records {
		want, got := &records[i], &loaded[i]
		if got.PlotID != want.PlotID || got.Row != want.Row || got.Col != want.Col {
			t.Fatalf("record %d identity = (%s,%d,%d), want (%s,%d,%d)",
				i, got.PlotID, got.Row, got.Col, want.PlotID, want.Row, want.Col)
		}
		wb, gb := want.Bands(), got.Bands()
		for b := range wb {
			// Values are persisted with 4 decimal digits.
			if math.Abs(wb[b]-gb[b]) > 0.00005 {
				t.Fatalf("record %s band %d = %f, want %f within 4 decimals", want.PlotID, b, gb[b], wb[b])
			}
		}
	}
}

func TestReadMissingColumn(t *testing.T) {
	in := "plot_id,row,col,blue_480\nR001C001,0,0,0.05\n"
	_, err := Read(strings.NewReader(in), "test.csv")

	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want *FormatError", err)
	}
	if fe.Column != "green_560" {
		t.Errorf("Column = %q, want green_560", fe.Column)
	}
}

func TestReadMalformedValue(t *testing.T) {
	header := strings.Join(Header, ",")
	tests := []struct {
		name   string
		row    string
		column string
	}{
		{"bad row", "R001C001,x,0,0.1,0.2,0.2,0.3,0.3,0.6,0.6,0.3,0.3", "row"},
		{"bad band", "R001C001,0,0,oops,0.2,0.2,0.3,0.3,0.6,0.6,0.3,0.3", "blue_480"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(header+"\n"+tt.row+"\n"), "test.csv")
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("err = %v, want *FormatError", err)
			}
			if fe.Column != tt.column {
				t.Errorf("Column = %q, want %q", fe.Column, tt.column)
			}
			if fe.Line != 2 {
				t.Errorf("Line = %d, want 2", fe.Line)
			}
		})
	}
}

func TestReadEmptyFile(t *testing.T) {
	_, err := Read(strings.NewReader(""), "empty.csv")
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want *FormatError", err)
	}
}

func TestReadShuffledColumns(t *testing.T) {
	// Column order is not significant; a reordered but complete header
	// still loads.
	in := "row,col,plot_id,swir_2190,swir_1610,nir2_865,nir_842,red_edge_740,red_edge_705,red_665,green_560,blue_480\n" +
		"2,3,R003C004,0.31,0.30,0.62,0.60,0.45,0.44,0.20,0.25,0.06\n"
	records, err := Read(strings.NewReader(in), "test.csv")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	rec := records[0]
	if rec.PlotID != "R003C004" || rec.Row != 2 || rec.Col != 3 {
		t.Errorf("identity = (%s,%d,%d), want (R003C004,2,3)", rec.PlotID, rec.Row, rec.Col)
	}
	if rec.Blue480 != 0.06 || rec.NIR842 != 0.60 || rec.SWIR2190 != 0.31 {
		t.Errorf("band mapping wrong: %+v", rec)
	}
}

func TestWriteHeaderOrder(t *testing.T) {
	var sb strings.Builder
	if err := Write(&sb, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := "plot_id,row,col,blue_480,green_560,red_665,red_edge_705,red_edge_740,nir_842,nir2_865,swir_1610,swir_2190\n"
	if sb.String() != want {
		t.Errorf("header = %q, want %q", sb.String(), want)
	}
}
