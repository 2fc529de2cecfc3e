package jd

import (
	"regexp"
	"strings"

	"github.com/jonathan/job-fit-analyzer/internal/types"
)

// ExtractSummary guesses title, company, location and employment type from posting text
func ExtractSummary(text string) types.JDSummary {
	return types.JDSummary{
		JobTitle:       firstGroup(text, titleFieldRe, titleLineRe),
		Company:        firstGroup(text, companyFieldRe, companyPhraseRe),
		Location:       firstGroup(text, locationFieldRe, locationWordRe),
		EmploymentType: firstGroup(text, employmentTypeRe),
	}
}

// firstGroup returns the trimmed first capture group of the first pattern that matches
func firstGroup(text string, patterns ...*regexp.Regexp) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
