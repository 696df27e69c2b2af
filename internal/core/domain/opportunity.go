package domain

// NotSpecified is shown in prompts for optional opportunity fields that are missing.
const NotSpecified = "Not specified"

// OpportunityRecord describes a fundable program produced by discovery.
// It is read-only input to the content pipeline.
type OpportunityRecord struct {
	Title        string   `json:"title" yaml:"title"`
	Organization string   `json:"organization" yaml:"organization"`
	Deadline     string   `json:"deadline,omitempty" yaml:"deadline"`
	Amount       string   `json:"amount,omitempty" yaml:"amount"`
	FocusAreas   []string `json:"focus_areas,omitempty" yaml:"focus_areas"`
	Description  string   `json:"description,omitempty" yaml:"description"`
	Eligibility  string   `json:"eligibility,omitempty" yaml:"eligibility"`
	Requirements []string `json:"requirements,omitempty" yaml:"requirements"`
	URL          string   `json:"url,omitempty" yaml:"url"`
	Source       string   `json:"source,omitempty" yaml:"source"`

	// RelevanceScore is set by the discovery relevance filter.
	RelevanceScore *int `json:"relevance_score,omitempty" yaml:"relevance_score,omitempty"`
}

// AmountOrDefault returns the amount, or NotSpecified when it is missing.
func (o OpportunityRecord) AmountOrDefault() string {
	if o.Amount == "" {
		return NotSpecified
	}
	return o.Amount
}

// DeadlineOrDefault returns the deadline, or NotSpecified when it is missing.
func (o OpportunityRecord) DeadlineOrDefault() string {
	if o.Deadline == "" {
		return NotSpecified
	}
	return o.Deadline
}

// Score returns the relevance score, or zero when unscored.
func (o OpportunityRecord) Score() int {
	if o.RelevanceScore == nil {
		return 0
	}
	return *o.RelevanceScore
}
