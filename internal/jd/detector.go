package jd

import (
	"math"
	"strings"

	"github.com/jonathan/job-fit-analyzer/internal/types"
)

// isJDThreshold is the confidence above which text is treated as a job description
const isJDThreshold = 0.3

// Detect scores how likely text is a job posting. Matching is a case-insensitive
// substring test; there are no token boundaries.
func Detect(text string) (bool, float64) {
	lower := strings.ToLower(text)

	strong := countIndicators(lower, strongIndicators)
	moderate := countIndicators(lower, moderateIndicators)

	confidence := math.Min(float64(strong)*0.15, 0.6) +
		math.Min(float64(moderate)*0.05, 0.3) +
		0.1
	confidence = math.Min(confidence, 1.0)

	return confidence > isJDThreshold || strong >= 2, confidence
}

// DetectAndParse detects, extracts and summarizes a posting in one pass
func DetectAndParse(text string) types.JDAnalysisResult {
	isJD, confidence := Detect(text)
	return types.JDAnalysisResult{
		IsJD:         isJD,
		Confidence:   confidence,
		Requirements: Extract(text),
		Summary:      ExtractSummary(text),
		RawText:      text,
	}
}

func countIndicators(lower string, indicators []string) int {
	n := 0
	for _, ind := range indicators {
		if strings.Contains(lower, ind) {
			n++
		}
	}
	return n
}
