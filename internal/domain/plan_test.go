package domain

import "testing"

func TestPlanDocumentFilename(t *testing.T) {
	tests := []struct {
		dep, arr string
		want     string
	}{
		{"P34", "N68", "P34-N68.pln"},
		{"UNKNOWN", "UNKNOWN", "UNKNOWN-UNKNOWN.pln"},
		{"A&B", "K/X", "A_B-K_X.pln"},
		{"", "N68", "-N68.pln"},
		{"", "", "flightplan.pln"},
	}

	for _, tt := range tests {
		doc := PlanDocument{DepartureID: tt.dep, DestinationID: tt.arr}
		if got := doc.Filename(); got != tt.want {
			t.Errorf("Filename() for %q/%q = %q, want %q", tt.dep, tt.arr, got, tt.want)
		}
	}
}
