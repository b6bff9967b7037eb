package transport

// Lead is a raw inbound lead record. Every field is optional; blank or
// missing values are handled downstream, never rejected.
type Lead struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	PropertyType       string `json:"property_type"`
	Budget             string `json:"budget"`
	LocationPreference string `json:"location_preference"`
	TimeframeToMove    string `json:"timeframe_to_move"`
	Message            string `json:"message"`
	Source             string `json:"source"`
}

// QualifiedLead is a lead after scoring and intent classification.
type QualifiedLead struct {
	Lead

	PhoneE164          string   `json:"phone_e164,omitempty"`
	QualificationScore int      `json:"qualification_score"`
	Tier               string   `json:"tier"`
	RecommendedAction  string   `json:"recommended_action"`
	Reasons            []string `json:"reasons"`
	IntentLabel        string   `json:"intent_label"`
	ShortReason        string   `json:"short_reason"`
}

// Intent is the classifier verdict for a single lead.
type Intent struct {
	IntentLabel string `json:"intent_label"`
	ShortReason string `json:"short_reason"`
}

// SourceRow aggregates batch outcomes for one lead source.
type SourceRow struct {
	Source   string  `json:"source"`
	Total    int     `json:"total"`
	HotCount int     `json:"hot_count"`
	HotPct   float64 `json:"hot_pct"`
}

// IngestRequest optionally overrides the configured input file.
type IngestRequest struct {
	FilePath string `json:"file_path,omitempty" validate:"omitempty,max=500"`
}

// IngestResponse summarizes a completed batch ingest.
type IngestResponse struct {
	LeadsCount int             `json:"leads_count"`
	Report     []SourceRow     `json:"report"`
	Preview    []QualifiedLead `json:"preview"`
}

// LeadListResponse returns the current batch.
type LeadListResponse struct {
	Items []QualifiedLead `json:"items"`
	Total int             `json:"total"`
}

// ReportResponse returns the per-source report for the current batch.
type ReportResponse struct {
	Report []SourceRow `json:"report"`
}
