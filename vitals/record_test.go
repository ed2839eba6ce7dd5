package vitals

import (
	"reflect"
	"testing"

	"google.golang.org/api/sheets/v4"
)

func TestMakeRecord(t *testing.T) {
	expected := Record{
		Timestamp:   "10/05/2025 14:30:00",
		PatientName: "Jane",
		Age:         "30",
		BPStatus:    "High",
		SugarStatus: "Pre-Diabetic",
	}

	fields := map[string]interface{}{
		"Timestamp":        "10/05/2025 14:30:00",
		"Patient Name":     "Jane",
		"Age":              float64(30),
		"BP Status":        "High",
		"Sugar Status":     "Pre-Diabetic",
		"Pulse / PR (bpm)": "72",
		"Notes":            "not a canonical field",
	}

	record := MakeRecord(fields)

	if !reflect.DeepEqual(record, expected) {
		t.Errorf("Incorrect record\n   expected: %+v\n   got:      %+v\n", expected, record)
	}
}

func TestMakeRecordWithNilValues(t *testing.T) {
	record := MakeRecord(map[string]interface{}{
		"Patient Name": nil,
		"Age":          "45",
	})

	if record.PatientName != "" {
		t.Errorf("Expected empty patient name for nil value, got '%s'", record.PatientName)
	}

	if record.Age != "45" {
		t.Errorf("Expected age '45', got '%s'", record.Age)
	}
}

func TestRecordRowOrder(t *testing.T) {
	expected := []string{
		"t1", "Jane", "30", "Female",
		"165", "58", "21.3",
		"142", "95", "High",
		"128", "204", "Fasting: Diabetic | PP: Diabetic",
	}

	record := Record{
		Timestamp:         "t1",
		PatientName:       "Jane",
		Age:               "30",
		Gender:            "Female",
		Height:            "165",
		Weight:            "58",
		BMI:               "21.3",
		Systolic:          "142",
		Diastolic:         "95",
		BPStatus:          "High",
		FastingSugar:      "128",
		PostPrandialSugar: "204",
		SugarStatus:       "Fasting: Diabetic | PP: Diabetic",
	}

	if row := record.Row(); !reflect.DeepEqual(row, expected) {
		t.Errorf("Incorrect row\n   expected: %v\n   got:      %v\n", expected, row)
	}
}

func TestRecordAsMap(t *testing.T) {
	record := Record{
		Timestamp:   "t1",
		PatientName: "Jane",
	}

	m := record.AsMap()

	if len(m) != len(Columns) {
		t.Fatalf("Expected %d fields, got %d", len(Columns), len(m))
	}

	if m["Patient Name"] != "Jane" {
		t.Errorf("Expected 'Jane', got '%s'", m["Patient Name"])
	}

	if m["BP Status"] != "" {
		t.Errorf("Expected empty BP Status, got '%s'", m["BP Status"])
	}
}

func TestMakeTable(t *testing.T) {
	expected := Table{
		Header: []string{"Timestamp", "Patient Name", "Age"},
		Records: [][]string{
			{"t1", "Jane", "30"},
			{"t2", "John", "45"},
		},
	}

	data := sheets.ValueRange{
		Values: [][]interface{}{
			[]interface{}{"Timestamp", "Patient Name", "Age"},
			[]interface{}{"t1", "Jane", "30"},
			[]interface{}{"t2", "John", "45"},
		},
	}

	table, err := MakeTable(&data)
	if err != nil {
		t.Fatalf("Unexpected error returned from MakeTable (%v)", err)
	}

	if !reflect.DeepEqual(*table, expected) {
		t.Errorf("Incorrect table\n   expected: %v\n   got:      %v\n", expected, *table)
	}
}

func TestMakeTableWithEmptySheet(t *testing.T) {
	table, err := MakeTable(&sheets.ValueRange{})
	if err != nil {
		t.Fatalf("Unexpected error returned from MakeTable (%v)", err)
	}

	if !reflect.DeepEqual(table.Header, Columns) {
		t.Errorf("Expected canonical header for empty sheet, got %v", table.Header)
	}

	if len(table.Records) != 0 {
		t.Errorf("Expected no records for empty sheet, got %v", table.Records)
	}
}

func TestMakeTableWithShortRows(t *testing.T) {
	expected := [][]string{
		{"t1", "Jane", ""},
	}

	data := sheets.ValueRange{
		Values: [][]interface{}{
			[]interface{}{"Timestamp", "Patient Name", "Age"},
			[]interface{}{"t1", "Jane"},
		},
	}

	table, err := MakeTable(&data)
	if err != nil {
		t.Fatalf("Unexpected error returned from MakeTable (%v)", err)
	}

	if !reflect.DeepEqual(table.Records, expected) {
		t.Errorf("Incorrect records\n   expected: %v\n   got:      %v\n", expected, table.Records)
	}
}

func TestMakeTableWithDuplicatedColumn(t *testing.T) {
	data := sheets.ValueRange{
		Values: [][]interface{}{
			[]interface{}{"Timestamp", "Age", "Age"},
		},
	}

	if _, err := MakeTable(&data); err == nil {
		t.Fatalf("Expected error return for duplicated column, got %v", err)
	}
}

func TestTableMaps(t *testing.T) {
	expected := []map[string]string{
		{"Timestamp": "t1", "Patient Name": "Jane", "Age": "30"},
		{"Timestamp": "t2", "Patient Name": "John", "Age": ""},
	}

	table := Table{
		Header: []string{"Timestamp", "Patient Name", "Age"},
		Records: [][]string{
			{"t1", "Jane", "30"},
			{"t2", "John"},
		},
	}

	if maps := table.Maps(); !reflect.DeepEqual(maps, expected) {
		t.Errorf("Incorrect maps\n   expected: %v\n   got:      %v\n", expected, maps)
	}
}

func TestColumnIndex(t *testing.T) {
	tests := []struct {
		name     string
		expected int
	}{
		{"Timestamp", 0},
		{"BP Status", 9},
		{"bp status", 9},
		{"Sugar Status", 12},
		{"Pulse", -1},
	}

	for _, test := range tests {
		if ix := ColumnIndex(test.name); ix != test.expected {
			t.Errorf("ColumnIndex(%q) - expected %d, got %d", test.name, test.expected, ix)
		}
	}
}
