package dto

type InsightReport struct {
	Summary         string   `json:"summary"`
	Highlights      []string `json:"highlights"`
	Concerns        []string `json:"concerns"`
	Recommendations []string `json:"recommendations"`
}

type InsightResponse struct {
	Available bool           `json:"available"`
	Report    *InsightReport `json:"report,omitempty"`
	Fallback  string         `json:"fallback,omitempty"`
}
