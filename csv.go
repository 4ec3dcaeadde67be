package main

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

var requiredColumns = []string{"groupname", "site_country", "site_name", "site_id", "park_id", "technology"}

// LoadRows reads the semicolon-delimited input file and returns its
// records in file order. The header row is required; extra columns are
// ignored. The file may start with a UTF-8 byte-order mark.
func LoadRows(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening CSV file %s: %w", path, err)
	}
	defer f.Close()
	return readRows(f, path)
}

func readRows(r io.Reader, name string) ([]Row, error) {
	br := bufio.NewReader(r)
	if bom, err := br.Peek(3); err == nil && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		br.Discard(3)
	}

	cr := csv.NewReader(br)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header from %s: %w", name, err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[col] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("CSV file %s: missing required column %q", name, col)
		}
	}

	field := func(record []string, col string) string {
		i := index[col]
		if i >= len(record) {
			return ""
		}
		return record[i]
	}

	var rows []Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV file %s: %w", name, err)
		}
		rows = append(rows, Row{
			GroupName:   field(record, "groupname"),
			SiteCountry: field(record, "site_country"),
			SiteName:    field(record, "site_name"),
			SiteID:      field(record, "site_id"),
			ParkID:      field(record, "park_id"),
			Technology:  field(record, "technology"),
		})
	}
	return rows, nil
}
