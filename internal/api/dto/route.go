package dto

type RouteRequest struct {
	Route string `json:"route"`
}

type DiagnosticResponse struct {
	Message  string `json:"message"`
	Position int    `json:"position,omitempty"`
	Token    string `json:"token,omitempty"`
}

type ValidateResponse struct {
	Valid       bool                 `json:"valid"`
	Diagnostics []DiagnosticResponse `json:"diagnostics"`
	Summary     string               `json:"summary,omitempty"`
}

type ConvertResponse struct {
	DepartureID   string `json:"departure_id"`
	DestinationID string `json:"destination_id"`
	WaypointCount int    `json:"waypoint_count"`
	Filename      string `json:"filename"`
	SavedTo       string `json:"saved_to,omitempty"`
	Plan          string `json:"plan"`
}

type ConvertErrorResponse struct {
	Error       string               `json:"error"`
	Diagnostics []DiagnosticResponse `json:"diagnostics,omitempty"`
	Summary     string               `json:"summary,omitempty"`
}
