package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// RawTable is the parsed input before any schema resolution: the header row
// plus every data row as strings.
type RawTable struct {
	Columns []string
	Rows    [][]string
}

// ReadCSV parses CSV data into a RawTable. Rows shorter than the header are
// kept; the normalizer treats missing cells as empty.
func ReadCSV(r io.Reader) (*RawTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // filas desparejas se toleran
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	t := &RawTable{Columns: header}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// ReadFile loads a RawTable from a CSV file on disk.
func ReadFile(path string) (*RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
