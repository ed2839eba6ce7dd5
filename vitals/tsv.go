package vitals

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ToTSV writes a table to a tab-separated file, header first.
func ToTSV(f io.Writer, table *Table) error {
	if table == nil || len(table.Header) == 0 {
		return fmt.Errorf("missing/invalid header row")
	}

	w := csv.NewWriter(f)
	w.Comma = '\t'

	w.Write(table.Header)
	for _, record := range table.Records {
		w.Write(record)
	}

	w.Flush()

	return w.Error()
}

// FromTSV reads records from a tab-separated file. The first row is the header
// and is used to project each data row onto the canonical column list - column
// order in the file is immaterial and unknown columns are ignored.
func FromTSV(f io.Reader) ([]Record, error) {
	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("TSV file is empty")
	}

	header := rows[0]
	if len(header) == 0 {
		return nil, fmt.Errorf("TSV file missing header")
	}

	index := map[string]int{}
	for i, v := range header {
		k := normalise(v)
		if _, ok := index[k]; ok {
			return nil, fmt.Errorf("duplicate column name '%s'", v)
		}

		index[k] = i
	}

	records := []Record{}
	for _, row := range rows[1:] {
		fields := map[string]interface{}{}
		for k, ix := range index {
			if ix < len(row) {
				fields[k] = row[ix]
			}
		}

		records = append(records, MakeRecord(fields))
	}

	return records, nil
}
