package types

import "time"

// NoteType categorizes a generated job note
type NoteType string

// Note types
const (
	NoteAIAnalysisSummary    NoteType = "ai_analysis_summary"
	NoteStrengths            NoteType = "strengths"
	NoteWatchOuts            NoteType = "watch_outs"
	NoteTalkingPoints        NoteType = "talking_points"
	NoteCoachingNotes        NoteType = "coaching_notes"
	NoteStudyRecommendations NoteType = "study_recommendations"
	NoteRAGEvidence          NoteType = "rag_evidence"
)

// NoteSource records who produced a note
type NoteSource string

// Note sources
const (
	NoteSourceAgent NoteSource = "agent"
	NoteSourceUser  NoteSource = "user"
)

// JobNote is a typed, timestamped note attached to a job
type JobNote struct {
	Text      string         `json:"text"`
	Timestamp time.Time      `json:"timestamp"`
	Source    NoteSource     `json:"source"`
	Type      NoteType       `json:"note_type"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}
