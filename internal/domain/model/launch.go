// Package model contains domain models passed between layers.
package model

// Outcome class values as stored in the dataset.
const (
	OutcomeFailure = 0
	OutcomeSuccess = 1
)

// LaunchRecord is one row of the launch dataset describing a single launch attempt.
type LaunchRecord struct {
	FlightNumber           int     `json:"flight_number,omitempty"`
	Site                   string  `json:"launch_site"`
	Class                  int     `json:"class"` // 1 = success, 0 = failure
	PayloadMassKG          float64 `json:"payload_mass_kg"`
	BoosterVersion         string  `json:"booster_version,omitempty"`
	BoosterVersionCategory string  `json:"booster_version_category"`
}

// Succeeded reports whether the launch outcome class is a success.
func (r LaunchRecord) Succeeded() bool {
	return r.Class == OutcomeSuccess
}
