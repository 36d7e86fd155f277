package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

func do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	srv := New(log.New(&buf))
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
	if _, err := uuid.Parse(rec.Header().Get(RequestIDHeader)); err != nil {
		t.Errorf("missing request id: %v", err)
	}
}

func TestRequestIDPropagates(t *testing.T) {
	id := uuid.NewString()
	srv := New(nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != id {
		t.Errorf("request id = %q, want %q", got, id)
	}
}

func TestTables(t *testing.T) {
	rec := do(t, http.MethodGet, "/v1/tables/aqua", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var body tablesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.LineStyles[":"] != 4 || body.Markers["o"] != 5 || body.MarkerGlyphs != 6 || body.GridLineType != 4 {
		t.Errorf("aqua tables = %+v", body)
	}

	if rec := do(t, http.MethodGet, "/v1/tables/x11", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown family status = %d", rec.Code)
	}
}

func TestLineSpec(t *testing.T) {
	body := `{"curves":3,"family":"wxt","styles":[
		{"curve":3,"marker":"*","linestyle":"--"},
		{"curve":1,"markersize":4.9827},
		{"curve":2,"linestyle":"none"},
		{"curve":9,"color":"k"}
	]}`
	rec := do(t, http.MethodPost, "/v1/linespec", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var resp lineSpecResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"set style line 1 lt 1 lw 1 pt 1 ps 4.98 lc rgb '#f00032'",
		"set style line 2 lt 0 lw 1 pt 2 ps 1 lc rgb '#227500'",
		"set style line 3 lt 2 lw 1 pt 3 ps 1 lc rgb '#1a3bea'",
	}
	if len(resp.Lines) != len(want) {
		t.Fatalf("lines = %v", resp.Lines)
	}
	for i := range want {
		if resp.Lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i+1, resp.Lines[i], want[i])
		}
	}
	if resp.PointOnly[0] || !resp.PointOnly[1] || resp.PointOnly[2] {
		t.Errorf("point_only = %v", resp.PointOnly)
	}
}

func TestLineSpecErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{"bad json", `{"curves":`, "INVALID_INPUT"},
		{"bad colour", `{"curves":1,"styles":[{"curve":1,"color":"[2,0,0]"}]}`, "INVALID_COLOR"},
		{"bad marker", `{"curves":1,"styles":[{"curve":1,"marker":"star"}]}`, "INVALID_MARKER"},
		{"zero index", `{"curves":1,"styles":[{"curve":0,"marker":"o"}]}`, "INVALID_INDEX"},
		{"fractional index", `{"curves":1,"styles":[{"curve":1.5}]}`, "INVALID_INDEX"},
		{"unknown property", `{"curves":1,"styles":[{"curve":1,"fill":"r"}]}`, "INVALID_PROPERTY"},
		{"non-numeric width", `{"curves":1,"styles":[{"curve":1,"lw":"thick"}]}`, "INVALID_VALUE"},
		{"hex width", `{"curves":1,"styles":[{"curve":1,"lw":"0x2"}]}`, "INVALID_VALUE"},
		{"alias twice", `{"curves":1,"styles":[{"curve":1,"ls":"--","linestyle":":"}]}`, "INVALID_PROPERTY"},
		{"too many curves", `{"curves":100000}`, "INVALID_INPUT"},
		{"unknown family", `{"curves":1,"family":"x11"}`, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, http.MethodPost, "/v1/linespec", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body)
			}
			var body errorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body.Error.Code != tt.code {
				t.Errorf("code = %s, want %s (%s)", body.Error.Code, tt.code, body.Error.Message)
			}
		})
	}
}
