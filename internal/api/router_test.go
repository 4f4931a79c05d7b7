package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"flightplan-service/internal/api/dto"
	"flightplan-service/internal/platform/logging"
	"flightplan-service/internal/platform/obs"
	"flightplan-service/internal/ports"
)

func newTestRouter(t *testing.T, writer ports.PlanWriter) (http.Handler, *obs.Collector) {
	t.Helper()

	metrics, err := obs.NewCollector(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	return NewRouter(logging.Noop(), metrics, writer), metrics
}

func postJSON(h http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %q", rr.Body.String())
	}
}

func TestValidateCleanRoute(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	rr := postJSON(h, "/validate", `{"route":"KLAX 403210N0772310W KJFK"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var res dto.ValidateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !res.Valid {
		t.Errorf("valid = false, diagnostics = %v", res.Diagnostics)
	}
	if len(res.Diagnostics) != 0 {
		t.Errorf("diagnostics = %v, want none", res.Diagnostics)
	}
	if res.Summary != "" {
		t.Errorf("summary = %q, want empty", res.Summary)
	}
}

func TestValidateBrokenRoute(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	rr := postJSON(h, "/validate", `{"route":"LAX KL@X"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 even for a broken route", rr.Code)
	}

	var res dto.ValidateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Valid {
		t.Error("valid = true, want false")
	}
	if len(res.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %v, want 1", res.Diagnostics)
	}
	if !strings.Contains(res.Diagnostics[0].Message, "invalid characters") {
		t.Errorf("message = %q", res.Diagnostics[0].Message)
	}
	if res.Diagnostics[0].Position != 2 || res.Diagnostics[0].Token != "KL@X" {
		t.Errorf("diagnostic location = %d %q", res.Diagnostics[0].Position, res.Diagnostics[0].Token)
	}
	if !strings.Contains(res.Summary, "Found 1 problem") {
		t.Errorf("summary = %q", res.Summary)
	}
}

func TestValidateRejectsBadBodies(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	for _, body := range []string{
		`{`,
		`{"route":"KLAX KJFK","extra":1}`,
		`{"route":"KLAX KJFK"}{"route":"KSAN"}`,
	} {
		rr := postJSON(h, "/validate", body)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rr.Code)
		}
	}
}

func TestValidateMethodNotAllowed(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/validate", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rr.Code)
	}
	if rr.Header().Get("Allow") != http.MethodPost {
		t.Errorf("Allow = %q, want POST", rr.Header().Get("Allow"))
	}
}

func TestConvertRoute(t *testing.T) {
	h, metrics := newTestRouter(t, nil)

	rr := postJSON(h, "/convert", `{"route":"P34 403210N0772310W 402507N0773505W N68"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rr.Code, rr.Body.String())
	}

	var res dto.ConvertResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.DepartureID != "P34" || res.DestinationID != "N68" {
		t.Errorf("identifiers = %q, %q", res.DepartureID, res.DestinationID)
	}
	if res.WaypointCount != 4 {
		t.Errorf("waypoint_count = %d, want 4", res.WaypointCount)
	}
	if res.Filename != "P34-N68.pln" {
		t.Errorf("filename = %q", res.Filename)
	}
	if res.SavedTo != "" {
		t.Errorf("saved_to = %q, want empty without a writer", res.SavedTo)
	}
	if !strings.Contains(res.Plan, `<SimBase.Document Type="AceXML" version="2,0">`) {
		t.Errorf("plan does not look like a simulator document:\n%s", res.Plan)
	}
	if !strings.Contains(res.Plan, `<ATCWaypoint id="WP1">`) {
		t.Errorf("plan missing the first GPS waypoint:\n%s", res.Plan)
	}

	if got := testutil.ToFloat64(metrics.Conversions.WithLabelValues(obs.OutcomeConverted)); got != 1 {
		t.Errorf("converted counter = %v, want 1", got)
	}
}

func TestConvertDownload(t *testing.T) {
	h, _ := newTestRouter(t, nil)

	rr := postJSON(h, "/convert?download=1", `{"route":"P34 403210N0772310W N68"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "P34-N68.pln") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.HasPrefix(rr.Body.String(), `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Errorf("body does not start with the XML declaration: %q", rr.Body.String())
	}
}

func TestConvertWithDiagnostics(t *testing.T) {
	h, metrics := newTestRouter(t, nil)

	rr := postJSON(h, "/convert", `{"route":"KLAX"}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rr.Code)
	}

	var res dto.ConvertErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Error != "route failed validation" {
		t.Errorf("error = %q", res.Error)
	}
	if len(res.Diagnostics) != 1 || !strings.Contains(res.Diagnostics[0].Message, "at least 2 waypoints") {
		t.Errorf("diagnostics = %v", res.Diagnostics)
	}

	if got := testutil.ToFloat64(metrics.Conversions.WithLabelValues(obs.OutcomeDiagnostics)); got != 1 {
		t.Errorf("diagnostics counter = %v, want 1", got)
	}
}

func TestConvertParseError(t *testing.T) {
	// a trailing latitude validates clean but cannot be parsed
	h, metrics := newTestRouter(t, nil)

	rr := postJSON(h, "/convert", `{"route":"KLAX 403210N"}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rr.Code)
	}

	var res dto.ConvertErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(res.Error, "missing its longitude") {
		t.Errorf("error = %q", res.Error)
	}
	if len(res.Diagnostics) != 0 {
		t.Errorf("diagnostics = %v, want none for a parse failure", res.Diagnostics)
	}

	if got := testutil.ToFloat64(metrics.Conversions.WithLabelValues(obs.OutcomeParseError)); got != 1 {
		t.Errorf("parse_error counter = %v, want 1", got)
	}
}

type fakeWriter struct {
	filename string
	xml      string
	err      error
}

func (f *fakeWriter) WritePlan(ctx context.Context, filename string, xml string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.filename = filename
	f.xml = xml
	return "/plans/" + filename, nil
}

func TestConvertPersistsPlan(t *testing.T) {
	writer := &fakeWriter{}
	h, _ := newTestRouter(t, writer)

	rr := postJSON(h, "/convert", `{"route":"P34 403210N0772310W N68"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var res dto.ConvertResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.SavedTo != "/plans/P34-N68.pln" {
		t.Errorf("saved_to = %q", res.SavedTo)
	}
	if writer.filename != "P34-N68.pln" {
		t.Errorf("writer filename = %q", writer.filename)
	}
	if !strings.Contains(writer.xml, "<Title>P34 to N68</Title>") {
		t.Errorf("writer received wrong document:\n%s", writer.xml)
	}
}

func TestConvertSurvivesWriterFailure(t *testing.T) {
	h, _ := newTestRouter(t, &fakeWriter{err: errors.New("disk full")})

	rr := postJSON(h, "/convert", `{"route":"P34 403210N0772310W N68"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 even when persisting fails", rr.Code)
	}

	var res dto.ConvertResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.SavedTo != "" {
		t.Errorf("saved_to = %q, want empty", res.SavedTo)
	}
	if res.Plan == "" {
		t.Error("plan missing from response")
	}
}
