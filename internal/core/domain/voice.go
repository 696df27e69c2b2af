package domain

// VoiceCategory is one of the fixed signal families in a voice signature.
type VoiceCategory string

// Voice signature categories.
const (
	VoiceMission    VoiceCategory = "mission_phrases"
	VoicePopulation VoiceCategory = "population_focus"
	VoiceProgram    VoiceCategory = "program_names"
	VoiceImpact     VoiceCategory = "impact_metrics"
	VoiceValues     VoiceCategory = "values_language"
)

// AllVoiceCategories returns the categories in extraction order.
func AllVoiceCategories() []VoiceCategory {
	return []VoiceCategory{VoiceMission, VoicePopulation, VoiceProgram, VoiceImpact, VoiceValues}
}

// VoiceSignature maps each category to the spans matched in a document's raw text.
// Spans are kept as matched, in order, without deduplication.
type VoiceSignature struct {
	MissionPhrases  []string `json:"mission_phrases"`
	PopulationFocus []string `json:"population_focus"`
	ProgramNames    []string `json:"program_names"`
	ImpactMetrics   []string `json:"impact_metrics"`
	ValuesLanguage  []string `json:"values_language"`
}

// Get returns the spans recorded for a category.
func (v VoiceSignature) Get(c VoiceCategory) []string {
	switch c {
	case VoiceMission:
		return v.MissionPhrases
	case VoicePopulation:
		return v.PopulationFocus
	case VoiceProgram:
		return v.ProgramNames
	case VoiceImpact:
		return v.ImpactMetrics
	case VoiceValues:
		return v.ValuesLanguage
	default:
		return nil
	}
}

// Len returns the total number of spans across all categories.
func (v VoiceSignature) Len() int {
	n := 0
	for _, c := range AllVoiceCategories() {
		n += len(v.Get(c))
	}
	return n
}

// Merge appends the spans of other to v, category by category.
func (v VoiceSignature) Merge(other VoiceSignature) VoiceSignature {
	return VoiceSignature{
		MissionPhrases:  append(append([]string{}, v.MissionPhrases...), other.MissionPhrases...),
		PopulationFocus: append(append([]string{}, v.PopulationFocus...), other.PopulationFocus...),
		ProgramNames:    append(append([]string{}, v.ProgramNames...), other.ProgramNames...),
		ImpactMetrics:   append(append([]string{}, v.ImpactMetrics...), other.ImpactMetrics...),
		ValuesLanguage:  append(append([]string{}, v.ValuesLanguage...), other.ValuesLanguage...),
	}
}

// OrganizationProfile names the anchors used to recognise an organisation's voice.
type OrganizationProfile struct {
	// Name is the organisation's own name, used as a mission anchor.
	Name string

	// Program is the flagship program name used as the program anchor.
	Program string

	// MissionAnchors are additional phrases that open a mission sentence.
	MissionAnchors []string

	// PopulationKeywords describe the communities the organisation serves.
	PopulationKeywords []string

	// ValuesKeywords describe the organisation's values language.
	ValuesKeywords []string
}

// DefaultOrganizationProfile returns the profile for Cambio Labs.
func DefaultOrganizationProfile() OrganizationProfile {
	return OrganizationProfile{
		Name:               "Cambio Labs",
		Program:            "Journey",
		MissionAnchors:     []string{"Our mission", "dedicated to"},
		PopulationKeywords: []string{"BIPOC", "underestimated", "youth", "adults", "communities"},
		ValuesKeywords:     []string{"equitable", "inclusive", "sustainable", "transformative", "regenerative"},
	}
}

// VoiceQuery returns the fixed retrieval query that surfaces the organisation's
// authentic language. A non-empty voiceType narrows it to one register.
func (p OrganizationProfile) VoiceQuery(voiceType string) string {
	if voiceType != "" {
		return "organizational voice " + voiceType + " mission BIPOC underestimated"
	}
	return p.Name + " mission underestimated BIPOC youth adults " + p.Program + " platform"
}
