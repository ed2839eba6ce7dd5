package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/medscan/medscan-sheets/vitals"
)

type stub struct {
	append func(ctx context.Context, records []vitals.Record) (int, int, error)
	read   func(ctx context.Context) ([]map[string]string, error)
}

func (s *stub) Append(ctx context.Context, records []vitals.Record) (int, int, error) {
	return s.append(ctx, records)
}

func (s *stub) Read(ctx context.Context) ([]map[string]string, error) {
	return s.read(ctx)
}

var _ Store = (*stub)(nil)

func TestAppend(t *testing.T) {
	var appended []vitals.Record

	store := stub{
		append: func(ctx context.Context, records []vitals.Record) (int, int, error) {
			appended = records
			return len(records), 1, nil
		},
	}

	body := `{
	   "action": "append",
	   "rows": [
	      { "Timestamp": "10/05/2025 14:30:00", "Patient Name": "Jane", "Age": 30, "BP Status": "High" }
	   ]
	}`

	rq := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()

	NewServer(":0", &store, "").Handler().ServeHTTP(w, rq)

	if w.Code != http.StatusOK {
		t.Fatalf("Incorrect HTTP status - expected %d, got %d", http.StatusOK, w.Code)
	}

	var response appendResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Unexpected error unmarshalling response (%v)", err)
	}

	expected := appendResponse{
		Status: "ok",
		Saved:  1,
		Total:  1,
	}

	if !reflect.DeepEqual(response, expected) {
		t.Errorf("Incorrect response\n   expected: %+v\n   got:      %+v\n", expected, response)
	}

	if len(appended) != 1 || appended[0].PatientName != "Jane" || appended[0].Age != "30" || appended[0].BPStatus != "High" {
		t.Errorf("Incorrect records passed to store: %+v", appended)
	}
}

func TestAppendWithStoreError(t *testing.T) {
	store := stub{
		append: func(ctx context.Context, records []vitals.Record) (int, int, error) {
			return 0, 0, context.DeadlineExceeded
		},
	}

	rq := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"action":"append","rows":[{}]}`))
	w := httptest.NewRecorder()

	NewServer(":0", &store, "").Handler().ServeHTTP(w, rq)

	if w.Code != http.StatusOK {
		t.Fatalf("Incorrect HTTP status - expected %d, got %d", http.StatusOK, w.Code)
	}

	var response errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Unexpected error unmarshalling response (%v)", err)
	}

	if response.Status != "error" || response.Message == "" {
		t.Errorf("Incorrect error envelope: %+v", response)
	}
}

func TestAppendWithMalformedBody(t *testing.T) {
	store := stub{
		append: func(ctx context.Context, records []vitals.Record) (int, int, error) {
			t.Fatalf("Store invoked for malformed request body")
			return 0, 0, nil
		},
	}

	rq := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"action":`))
	w := httptest.NewRecorder()

	NewServer(":0", &store, "").Handler().ServeHTTP(w, rq)

	var response errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Unexpected error unmarshalling response (%v)", err)
	}

	if response.Status != "error" || !strings.HasPrefix(response.Message, "invalid request body") {
		t.Errorf("Incorrect error envelope: %+v", response)
	}
}

func TestRead(t *testing.T) {
	store := stub{
		read: func(ctx context.Context) ([]map[string]string, error) {
			return []map[string]string{
				{"Timestamp": "t1", "Patient Name": "Jane"},
				{"Timestamp": "t2", "Patient Name": "John"},
			}, nil
		},
	}

	rq := httptest.NewRequest(http.MethodGet, "/?action=read", nil)
	w := httptest.NewRecorder()

	NewServer(":0", &store, "").Handler().ServeHTTP(w, rq)

	var response readResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Unexpected error unmarshalling response (%v)", err)
	}

	if response.Status != "ok" {
		t.Errorf("Incorrect status - expected 'ok', got '%s'", response.Status)
	}

	if len(response.Data) != 2 || response.Data[0]["Patient Name"] != "Jane" {
		t.Errorf("Incorrect data: %v", response.Data)
	}
}

func TestReadWithEmptyStore(t *testing.T) {
	store := stub{
		read: func(ctx context.Context) ([]map[string]string, error) {
			return nil, nil
		},
	}

	rq := httptest.NewRequest(http.MethodGet, "/?action=read", nil)
	w := httptest.NewRecorder()

	NewServer(":0", &store, "").Handler().ServeHTTP(w, rq)

	// ... 'data' must be an empty list, not null
	if body := strings.TrimSpace(w.Body.String()); body != `{"status":"ok","data":[]}` {
		t.Errorf("Incorrect response body: %s", body)
	}
}

func TestUnknownAction(t *testing.T) {
	store := stub{}
	handler := NewServer(":0", &store, "").Handler()

	requests := []*http.Request{
		httptest.NewRequest(http.MethodGet, "/?action=export", nil),
		httptest.NewRequest(http.MethodGet, "/", nil),
		httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"action":"export"}`)),
		httptest.NewRequest(http.MethodDelete, "/", nil),
	}

	for _, rq := range requests {
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, rq)

		var response errorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Unexpected error unmarshalling response (%v)", err)
		}

		expected := errorResponse{
			Status:  "error",
			Message: "Unknown action",
		}

		if !reflect.DeepEqual(response, expected) {
			t.Errorf("%v %v - incorrect response: %+v", rq.Method, rq.URL, response)
		}
	}
}

func TestCORS(t *testing.T) {
	store := stub{}

	rq := httptest.NewRequest(http.MethodOptions, "/", nil)
	w := httptest.NewRecorder()

	NewServer(":0", &store, "").Handler().ServeHTTP(w, rq)

	if w.Code != http.StatusOK {
		t.Errorf("Incorrect HTTP status for preflight - expected %d, got %d", http.StatusOK, w.Code)
	}

	if origin := w.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("Incorrect Access-Control-Allow-Origin - expected '*', got '%s'", origin)
	}

	if methods := w.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(methods, "POST") {
		t.Errorf("Incorrect Access-Control-Allow-Methods: '%s'", methods)
	}
}

func TestSheetURL(t *testing.T) {
	store := stub{}

	rq := httptest.NewRequest(http.MethodGet, "/sheet_url", nil)
	w := httptest.NewRecorder()

	NewServer(":0", &store, "https://docs.google.com/spreadsheets/d/1AbC/edit").Handler().ServeHTTP(w, rq)

	var response urlResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Unexpected error unmarshalling response (%v)", err)
	}

	if response.URL != "https://docs.google.com/spreadsheets/d/1AbC/edit" {
		t.Errorf("Incorrect URL: '%s'", response.URL)
	}
}

func TestHealth(t *testing.T) {
	store := stub{}

	rq := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	NewServer(":0", &store, "").Handler().ServeHTTP(w, rq)

	if w.Code != http.StatusOK {
		t.Errorf("Incorrect HTTP status - expected %d, got %d", http.StatusOK, w.Code)
	}

	if contentType := w.Header().Get("Content-Type"); contentType != "application/json" {
		t.Errorf("Incorrect Content-Type: '%s'", contentType)
	}
}
