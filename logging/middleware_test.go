package logging

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLoggingMiddlewareLogsRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	}))

	req := httptest.NewRequest("GET", "/drugs?limit=5", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusTeapot)
	}
	out := buf.String()
	for _, want := range []string{`"path":"/drugs"`, `"status_code":418`, `"query":"limit=5"`, `"bytes_written":15`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s: %s", want, out)
		}
	}
}

func TestLoggingMiddlewareSkipsProbes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, path := range []string{"/health", "/metrics"} {
		req := httptest.NewRequest("GET", path, nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	if buf.Len() != 0 {
		t.Errorf("probe endpoints should not be logged, got: %s", buf.String())
	}
}

func TestResponseWriterWrapperCounts(t *testing.T) {
	rr := httptest.NewRecorder()
	ww := &responseWriterWrapper{ResponseWriter: rr, statusCode: 200}

	ww.WriteHeader(http.StatusCreated)
	ww.Write([]byte("abc"))
	ww.Write([]byte("de"))

	if ww.statusCode != http.StatusCreated {
		t.Errorf("statusCode = %d", ww.statusCode)
	}
	if ww.bytesWritten != 5 {
		t.Errorf("bytesWritten = %d, want 5", ww.bytesWritten)
	}
}
