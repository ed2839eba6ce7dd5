package vitals

import (
	"fmt"
	"strings"

	"google.golang.org/api/sheets/v4"
)

// Columns is the canonical vitals worksheet header. The column order is fixed -
// the MedScan front-end and the conditional formatting both index into it.
var Columns = []string{
	"Timestamp",
	"Patient Name",
	"Age",
	"Gender",
	"Height (cm)",
	"Weight (kg)",
	"BMI",
	"Systolic BP",
	"Diastolic BP",
	"BP Status",
	"Fasting Sugar (mg/dL)",
	"Post Prandial Sugar (mg/dL)",
	"Sugar Status",
}

// Record is a single row of patient vitals, one field per canonical column. All
// fields are stored as strings - values arrive from OCR'd reports and may be
// blank or non-numeric.
type Record struct {
	Timestamp         string
	PatientName       string
	Age               string
	Gender            string
	Height            string
	Weight            string
	BMI               string
	Systolic          string
	Diastolic         string
	BPStatus          string
	FastingSugar      string
	PostPrandialSugar string
	SugarStatus       string
}

// Table is the in-memory form of the vitals worksheet - a header row and the
// data rows below it, in sheet order.
type Table struct {
	Header  []string
	Records [][]string
}

// MakeRecord projects an untyped field map onto the canonical column list. Keys
// are matched ignoring case and whitespace, unknown fields are dropped and
// missing fields default to the empty string. Numeric values are rendered with
// their natural string form.
func MakeRecord(fields map[string]interface{}) Record {
	m := map[string]string{}
	for k, v := range fields {
		if v == nil {
			continue
		}

		m[normalise(k)] = clean(fmt.Sprintf("%v", v))
	}

	return Record{
		Timestamp:         m["timestamp"],
		PatientName:       m["patientname"],
		Age:               m["age"],
		Gender:            m["gender"],
		Height:            m["height(cm)"],
		Weight:            m["weight(kg)"],
		BMI:               m["bmi"],
		Systolic:          m["systolicbp"],
		Diastolic:         m["diastolicbp"],
		BPStatus:          m["bpstatus"],
		FastingSugar:      m["fastingsugar(mg/dl)"],
		PostPrandialSugar: m["postprandialsugar(mg/dl)"],
		SugarStatus:       m["sugarstatus"],
	}
}

// Row returns the record values in canonical column order.
func (r Record) Row() []string {
	return []string{
		r.Timestamp,
		r.PatientName,
		r.Age,
		r.Gender,
		r.Height,
		r.Weight,
		r.BMI,
		r.Systolic,
		r.Diastolic,
		r.BPStatus,
		r.FastingSugar,
		r.PostPrandialSugar,
		r.SugarStatus,
	}
}

// AsMap returns the record as a canonical field name to value mapping.
func (r Record) AsMap() map[string]string {
	row := r.Row()
	m := map[string]string{}
	for i, column := range Columns {
		m[column] = row[i]
	}

	return m
}

// MakeTable builds a Table from a worksheet ValueRange. An empty or header-only
// sheet yields a table with no records. Rows shorter than the header are padded
// with empty strings.
func MakeTable(data *sheets.ValueRange) (*Table, error) {
	if data == nil || len(data.Values) == 0 {
		return &Table{
			Header:  append([]string{}, Columns...),
			Records: [][]string{},
		}, nil
	}

	// .. header
	index := map[string]int{}
	row := data.Values[0]
	header := []string{}

	for i, v := range row {
		k := normalise(fmt.Sprintf("%v", v))
		if _, ok := index[k]; ok {
			return nil, fmt.Errorf("duplicate column name '%v'", v)
		}

		index[k] = i
		header = append(header, clean(fmt.Sprintf("%v", v)))
	}

	if len(header) == 0 {
		return nil, fmt.Errorf("missing/invalid header row")
	}

	// ... records
	records := [][]string{}
	for _, row := range data.Values[1:] {
		record := make([]string, len(header))
		for i := range record {
			if i < len(row) {
				record[i] = clean(fmt.Sprintf("%v", row[i]))
			}
		}

		records = append(records, record)
	}

	return &Table{
		Header:  header,
		Records: records,
	}, nil
}

// Maps returns the table records as field name to value mappings, keyed by the
// header row, in sheet order.
func (t *Table) Maps() []map[string]string {
	list := []map[string]string{}

	for _, record := range t.Records {
		m := map[string]string{}
		for i, column := range t.Header {
			if i < len(record) {
				m[column] = record[i]
			} else {
				m[column] = ""
			}
		}

		list = append(list, m)
	}

	return list
}

// ColumnIndex returns the zero-based canonical column index for a field name,
// matched ignoring case and whitespace, or -1 if the field is not canonical.
func ColumnIndex(name string) int {
	k := normalise(name)
	for i, column := range Columns {
		if normalise(column) == k {
			return i
		}
	}

	return -1
}

func normalise(v string) string {
	return strings.ToLower(strings.ReplaceAll(v, " ", ""))
}

func clean(v string) string {
	return strings.TrimSpace(v)
}
