package types

// AnalysisResult is the output of one pipeline run. It is built fresh per request.
type AnalysisResult struct {
	Entities                []Entity    `json:"entities" firestore:"entities"`
	RiskScore               float64     `json:"risk_score" firestore:"riskScore"`
	ViolentDetected         bool        `json:"violent_detected" firestore:"violentDetected"`
	ContainsSensitiveEntity bool        `json:"contains_sensitive_entity" firestore:"containsSensitiveEntity"`
	ContextData             ContextData `json:"context_data" firestore:"contextData"`
}

// ContextData holds external enrichment for an analysis.
// IsGenerated is true only when at least one enrichment was accepted.
type ContextData struct {
	IsGenerated    bool             `json:"is_generated" firestore:"isGenerated"`
	Disambiguation []Disambiguation `json:"disambiguation" firestore:"disambiguation"`
	News           *NewsItem        `json:"news" firestore:"news"`
}

type Disambiguation struct {
	Entity       string    `json:"entity" firestore:"entity"`
	IdentifiedAs string    `json:"identified_as" firestore:"identifiedAs"`
	Description  string    `json:"description" firestore:"description"`
	Coordinates  *GeoPoint `json:"coordinates,omitempty" firestore:"coordinates,omitempty"`
}

type NewsItem struct {
	Headline string `json:"headline" firestore:"headline"`
	URL      string `json:"url" firestore:"url"`
}

// GeoPoint is a geocoded location for GPE/LOC entities.
type GeoPoint struct {
	FormattedAddress string  `json:"formatted_address" firestore:"formattedAddress"`
	Lat              float64 `json:"lat" firestore:"lat"`
	Long             float64 `json:"long" firestore:"long"`
}
