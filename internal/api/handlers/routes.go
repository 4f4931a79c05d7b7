package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"flightplan-service/internal/api/dto"
	"flightplan-service/internal/domain"
	"flightplan-service/internal/platform/logging"
	"flightplan-service/internal/platform/obs"
	"flightplan-service/internal/ports"
	"flightplan-service/internal/services"
)

type RouteHandler struct {
	Log     logging.Logger
	Metrics *obs.Collector

	// Writer is optional; when set, every converted plan is also persisted
	// through it.
	Writer ports.PlanWriter
}

// Validate reports advisory diagnostics for the submitted route text. The
// response is 200 whether or not the route has problems; only a broken
// request body is an error.
func (h *RouteHandler) Validate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	req, ok := decodeRouteRequest(w, r)
	if !ok {
		return
	}

	diags := services.Validate(req.Route)
	res := dto.ValidateResponse{
		Valid:       len(diags) == 0,
		Diagnostics: toDiagnostics(diags),
		Summary:     services.FormatSummary(diags),
	}
	writeJSON(w, r, http.StatusOK, res)
}

// Convert runs the full pipeline on the submitted route text: advisory
// validation first, then the authoritative parse, then generation. Routes
// with diagnostics or parse failures come back as 422; a converted plan
// comes back as JSON, or as the raw document when download=1 is set.
func (h *RouteHandler) Convert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	req, ok := decodeRouteRequest(w, r)
	if !ok {
		h.Metrics.ObserveConversion(obs.OutcomeBadRequest, 0, 0)
		return
	}

	ctx := r.Context()
	log := requestLogger(r, h.Log)
	start := time.Now()

	if diags := services.Validate(req.Route); len(diags) > 0 {
		h.Metrics.ObserveConversion(obs.OutcomeDiagnostics, time.Since(start).Seconds(), 0)
		log.Info(ctx, "route rejected by validation", logging.Int("diagnostics", len(diags)))
		writeJSON(w, r, http.StatusUnprocessableEntity, dto.ConvertErrorResponse{
			Error:       "route failed validation",
			Diagnostics: toDiagnostics(diags),
			Summary:     services.FormatSummary(diags),
		})
		return
	}

	waypoints, err := services.Parse(req.Route)
	if err != nil {
		h.Metrics.ObserveConversion(obs.OutcomeParseError, time.Since(start).Seconds(), 0)
		log.Info(ctx, "route failed to parse", logging.Err(err))
		writeJSON(w, r, http.StatusUnprocessableEntity, dto.ConvertErrorResponse{Error: err.Error()})
		return
	}

	doc := services.Generate(waypoints)
	filename := doc.Filename()
	h.Metrics.ObserveConversion(obs.OutcomeConverted, time.Since(start).Seconds(), len(waypoints))

	savedTo := ""
	if h.Writer != nil {
		path, err := h.Writer.WritePlan(ctx, filename, doc.XML)
		if err != nil {
			// the caller still gets the plan in the response
			log.Error(ctx, "persist plan failed", logging.Err(err))
		} else {
			savedTo = path
		}
	}

	log.Info(ctx, "route converted",
		logging.String("departure", doc.DepartureID),
		logging.String("destination", doc.DestinationID),
		logging.Int("waypoints", len(waypoints)),
	)

	if r.URL.Query().Get("download") == "1" {
		w.Header().Set("Content-Type", "application/xml")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(doc.XML)); err != nil {
			log.Error(ctx, "write download failed", logging.Err(err))
		}
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ConvertResponse{
		DepartureID:   doc.DepartureID,
		DestinationID: doc.DestinationID,
		WaypointCount: len(waypoints),
		Filename:      filename,
		SavedTo:       savedTo,
		Plan:          doc.XML,
	})
}

// decodeRouteRequest reads exactly one JSON object from the body, writing a
// 400 and returning ok=false on anything else.
func decodeRouteRequest(w http.ResponseWriter, r *http.Request) (dto.RouteRequest, bool) {
	var req dto.RouteRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return req, false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return req, false
	}

	return req, true
}

func toDiagnostics(diags []domain.Diagnostic) []dto.DiagnosticResponse {
	out := make([]dto.DiagnosticResponse, 0, len(diags))
	for _, d := range diags {
		out = append(out, dto.DiagnosticResponse{
			Message:  d.Message,
			Position: d.Position,
			Token:    d.Input,
		})
	}
	return out
}
