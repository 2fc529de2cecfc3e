// Package types provides type definitions for structured data used throughout the job-fit-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"math"
	"strings"
)

// RoleType is one of the five target role archetypes
type RoleType string

// Role archetypes, highest priority first
const (
	RoleCTO       RoleType = "cto"
	RoleVP        RoleType = "vp"
	RoleDirector  RoleType = "director"
	RoleArchitect RoleType = "architect"
	RoleDeveloper RoleType = "developer"
)

// AllRoles lists every role archetype in priority order
var AllRoles = []RoleType{RoleCTO, RoleVP, RoleDirector, RoleArchitect, RoleDeveloper}

// ParseRoleType converts a string into a RoleType. The second return value is
// false when the input does not name a known role.
func ParseRoleType(s string) (RoleType, bool) {
	role := RoleType(strings.ToLower(strings.TrimSpace(s)))
	for _, r := range AllRoles {
		if r == role {
			return r, true
		}
	}
	return "", false
}

// SeniorityLevel is the seniority inferred from posting text
type SeniorityLevel string

// Seniority tiers
const (
	SeniorityIntern    SeniorityLevel = "intern"
	SeniorityJunior    SeniorityLevel = "junior"
	SeniorityMid       SeniorityLevel = "mid"
	SenioritySenior    SeniorityLevel = "senior"
	SeniorityStaffPlus SeniorityLevel = "staff_plus"
)

// WorkLocationType is the work arrangement of a posting
type WorkLocationType string

// Work arrangements. The zero value means unspecified.
const (
	WorkRemote WorkLocationType = "remote"
	WorkHybrid WorkLocationType = "hybrid"
	WorkOnSite WorkLocationType = "on_site"
)

// ParseWorkLocationType maps free-form input ("onsite", "On-Site", "remote") to a WorkLocationType.
// Unrecognized input yields the zero value.
func ParseWorkLocationType(s string) WorkLocationType {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_") {
	case "remote":
		return WorkRemote
	case "hybrid":
		return WorkHybrid
	case "on_site", "onsite":
		return WorkOnSite
	default:
		return ""
	}
}

// Posting is the inbound job record analyzed by the core
type Posting struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Company          string           `json:"company"`
	Description      string           `json:"description,omitempty"`
	Location         string           `json:"location,omitempty"`
	WorkLocationType WorkLocationType `json:"work_location_type,omitempty"`
	EmploymentType   string           `json:"employment_type,omitempty"`
}

// RoleScore is a per-role fit breakdown entry
type RoleScore struct {
	Role  RoleType `json:"role"`
	Score int      `json:"score"`
	Label string   `json:"label"`
}

// JobAnalysisResult is the unified output of both the rule-based and AI-assisted paths
type JobAnalysisResult struct {
	IsAIForward             bool        `json:"is_ai_forward"`
	AIConfidence            float64     `json:"ai_confidence"`
	SuggestedPriority       int         `json:"suggested_priority"`
	SuggestedRole           RoleType    `json:"suggested_role,omitempty"`
	TechnologiesMatched     []string    `json:"technologies_matched"`
	TechnologiesMissing     []string    `json:"technologies_missing"`
	YearsExperienceRequired *int        `json:"years_experience_required,omitempty"`
	SeniorityLevel          string      `json:"seniority_level,omitempty"`
	IsLocationCompatible    bool        `json:"is_location_compatible"`
	LocationNotes           string      `json:"location_notes,omitempty"`
	AnalysisNotes           []string    `json:"analysis_notes"`
	RoleScores              []RoleScore `json:"role_scores,omitempty"`
}

// ClampScore bounds a score to [0,100]
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ClampConfidence bounds a confidence to [0,1]
func ClampConfidence(c float64) float64 {
	if math.IsNaN(c) || c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
