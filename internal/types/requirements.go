package types

// ExtractedRequirements holds the structured requirements parsed from posting text
type ExtractedRequirements struct {
	MustHave        []string       `json:"must_have"`
	NiceToHave      []string       `json:"nice_to_have"`
	Technologies    []string       `json:"technologies"` // canonicalized, sorted, unique
	YearsExperience *int           `json:"years_experience,omitempty"`
	SeniorityLevel  SeniorityLevel `json:"seniority_level,omitempty"`
	Education       []string       `json:"education"`
}

// JDSummary is a best-effort guess at posting metadata
type JDSummary struct {
	JobTitle       string `json:"job_title,omitempty"`
	Company        string `json:"company,omitempty"`
	Location       string `json:"location,omitempty"`
	EmploymentType string `json:"employment_type,omitempty"`
}

// JDAnalysisResult is the output of job description detection and parsing
type JDAnalysisResult struct {
	IsJD         bool                  `json:"is_jd"`
	Confidence   float64               `json:"confidence"`
	Requirements ExtractedRequirements `json:"requirements"`
	Summary      JDSummary             `json:"summary"`
	RawText      string                `json:"-"`
}

// LocationValidationResult reports whether the candidate can take a posting given its location rules
type LocationValidationResult struct {
	IsCompatible  bool     `json:"is_compatible"`
	AllowedStates []string `json:"allowed_states"` // nil means unrestricted
	UserState     string   `json:"user_state"`
	Reason        string   `json:"reason,omitempty"`
}
