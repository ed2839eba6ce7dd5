package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/medscan/medscan-sheets/vitals"
)

// Store is the row store behind the gateway endpoint.
type Store interface {
	Append(ctx context.Context, records []vitals.Record) (int, int, error)
	Read(ctx context.Context) ([]map[string]string, error)
}

// Server is the HTTP surface of the row store gateway. It speaks the same wire
// contract as the Apps Script web app the MedScan front-end was written
// against: a JSON body/query with an 'action' field and a uniform response
// envelope with 'status' either "ok" or "error".
type Server struct {
	store    Store
	sheetURL string
	srv      *http.Server
}

type appendRequest struct {
	Action string                   `json:"action"`
	Rows   []map[string]interface{} `json:"rows"`
}

type appendResponse struct {
	Status string `json:"status"`
	Saved  int    `json:"saved"`
	Total  int    `json:"total"`
}

type readResponse struct {
	Status string              `json:"status"`
	Data   []map[string]string `json:"data"`
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type urlResponse struct {
	URL string `json:"url"`
}

// NewServer creates a gateway server listening on addr. sheetURL is the
// spreadsheet edit URL returned by the /sheet_url convenience endpoint (may be
// empty).
func NewServer(addr string, store Store, sheetURL string) *Server {
	s := Server{
		store:    store,
		sheetURL: sheetURL,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.health)
	mux.HandleFunc("/sheet_url", s.sheetUrl)
	mux.HandleFunc("/", s.dispatch)

	s.srv = &http.Server{
		Addr:         addr,
		Handler:      logged(cors(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &s
}

// Run serves until Shutdown is called.
func (s *Server) Run() error {
	infof("Listening on %v", s.srv.Addr)

	if err := s.srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}

	return nil
}

// Shutdown stops the server, waiting for in-flight requests to complete.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// dispatch routes on the 'action' value. Every failure, from a malformed body
// to a spreadsheet error, is converted to the uniform error envelope - the
// caller tests the 'status' field, not the HTTP code.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)

	case http.MethodGet:
		if r.URL.Query().Get("action") == "read" {
			s.read(w, r)
		} else {
			replyError(w, "Unknown action")
		}

	case http.MethodPost:
		s.post(w, r)

	default:
		replyError(w, "Unknown action")
	}
}

func (s *Server) post(w http.ResponseWriter, r *http.Request) {
	var rq appendRequest

	if err := json.NewDecoder(r.Body).Decode(&rq); err != nil {
		replyError(w, fmt.Sprintf("invalid request body (%v)", err))
		return
	}

	if rq.Action != "append" {
		replyError(w, "Unknown action")
		return
	}

	records := make([]vitals.Record, 0, len(rq.Rows))
	for _, row := range rq.Rows {
		records = append(records, vitals.MakeRecord(row))
	}

	saved, total, err := s.store.Append(r.Context(), records)
	if err != nil {
		warnf("append failed (%v)", err)
		replyError(w, fmt.Sprintf("%v", err))
		return
	}

	reply(w, appendResponse{
		Status: "ok",
		Saved:  saved,
		Total:  total,
	})
}

func (s *Server) read(w http.ResponseWriter, r *http.Request) {
	data, err := s.store.Read(r.Context())
	if err != nil {
		warnf("read failed (%v)", err)
		replyError(w, fmt.Sprintf("%v", err))
		return
	}

	if data == nil {
		data = []map[string]string{}
	}

	reply(w, readResponse{
		Status: "ok",
		Data:   data,
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	reply(w, map[string]string{"status": "ok"})
}

func (s *Server) sheetUrl(w http.ResponseWriter, r *http.Request) {
	reply(w, urlResponse{URL: s.sheetURL})
}

func reply(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func replyError(w http.ResponseWriter, message string) {
	reply(w, errorResponse{
		Status:  "error",
		Message: message,
	})
}

// cors mirrors the open CORS policy of the original web app - the gateway is
// expected to sit behind the platform's own access controls.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		next.ServeHTTP(w, r)
	})
}

func logged(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rqid := uuid.New()

		infof("%v  %v %v", rqid, r.Method, r.URL)

		next.ServeHTTP(w, r)
	})
}

func infof(format string, args ...interface{}) {
	log.Printf("%-5s %s", "INFO", fmt.Sprintf(format, args...))
}

func warnf(format string, args ...interface{}) {
	log.Printf("%-5s %s", "WARN", fmt.Sprintf(format, args...))
}
