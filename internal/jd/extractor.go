package jd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/job-fit-analyzer/internal/types"
)

type section int

const (
	sectionNone section = iota
	sectionMustHave
	sectionNiceToHave
)

// Extract parses free text into structured requirements. Each sub-extraction
// tolerates absence and never fails.
func Extract(text string) types.ExtractedRequirements {
	mustHave, niceToHave := ExtractBullets(text)
	return types.ExtractedRequirements{
		MustHave:        mustHave,
		NiceToHave:      niceToHave,
		Technologies:    ExtractTechnologies(text),
		YearsExperience: ExtractYearsExperience(text),
		SeniorityLevel:  ExtractSeniority(text),
		Education:       ExtractEducation(text),
	}
}

// ExtractTechnologies returns the canonicalized, de-duplicated and sorted technologies named in text.
// Names without a canonical form keep the casing of their first occurrence.
func ExtractTechnologies(text string) []string {
	seen := make(map[string]string)
	for _, re := range techPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			tech := canonicalTech(m[1])
			key := strings.ToLower(tech)
			if _, ok := seen[key]; !ok {
				seen[key] = tech
			}
		}
	}

	techs := make([]string, 0, len(seen))
	for _, t := range seen {
		techs = append(techs, t)
	}
	sort.Strings(techs)
	return techs
}

func canonicalTech(match string) string {
	if canonical, ok := techCanonical[strings.ToLower(strings.TrimSpace(match))]; ok {
		return canonical
	}
	return match
}

// ExtractYearsExperience returns the first years-of-experience requirement found.
// For ranges ("5-8 years") the lower bound is returned.
func ExtractYearsExperience(text string) *int {
	for _, re := range experiencePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		years, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return &years
	}
	return nil
}

// ExtractSeniority returns the first matching seniority tier, or the zero value
func ExtractSeniority(text string) types.SeniorityLevel {
	for _, p := range seniorityPatterns {
		if p.re.MatchString(text) {
			return p.level
		}
	}
	return ""
}

// ExtractEducation returns one label per degree family mentioned
func ExtractEducation(text string) []string {
	education := make([]string, 0, len(educationPatterns))
	for _, p := range educationPatterns {
		if p.re.MatchString(text) {
			education = append(education, p.label)
		}
	}
	return education
}

// ExtractBullets walks the text line by line, capturing bullets under
// requirement and nice-to-have headers. Bullets outside a recognized section are dropped.
func ExtractBullets(text string) (mustHave, niceToHave []string) {
	mustHave = []string{}
	niceToHave = []string{}
	mode := sectionNone

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if !bulletPrefixRe.MatchString(line) {
			if next, ok := headerSection(strings.ToLower(line)); ok {
				mode = next
			}
			continue
		}

		item := strings.TrimSpace(bulletStripRe.ReplaceAllString(line, ""))
		if item == "" {
			continue
		}
		switch mode {
		case sectionMustHave:
			mustHave = append(mustHave, item)
		case sectionNiceToHave:
			niceToHave = append(niceToHave, item)
		}
	}
	return mustHave, niceToHave
}

// headerSection checks nice-to-have keywords before must-have ones, so
// "Preferred Qualifications" opens a nice-to-have section. Only non-bullet
// lines reach it; a bullet mentioning "requirements" never switches sections.
func headerSection(lower string) (section, bool) {
	switch {
	case containsAny(lower, niceToHaveHeaders):
		return sectionNiceToHave, true
	case containsAny(lower, mustHaveHeaders):
		return sectionMustHave, true
	case containsAny(lower, sectionEndHeaders):
		return sectionNone, true
	}
	return sectionNone, false
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// SummarizeRequirements renders a one-line human readable digest
func SummarizeRequirements(req types.ExtractedRequirements) string {
	var parts []string

	if req.SeniorityLevel != "" {
		parts = append(parts, fmt.Sprintf("Seniority: %s", req.SeniorityLevel))
	}
	if req.YearsExperience != nil && *req.YearsExperience > 0 {
		parts = append(parts, fmt.Sprintf("Experience: %d+ years", *req.YearsExperience))
	}
	if len(req.Technologies) > 0 {
		top := req.Technologies
		if len(top) > 10 {
			top = top[:10]
		}
		parts = append(parts, fmt.Sprintf("Technologies: %s", strings.Join(top, ", ")))
	}
	if len(req.MustHave) > 0 {
		parts = append(parts, fmt.Sprintf("Key requirements: %d items", len(req.MustHave)))
	}

	if len(parts) == 0 {
		return "No specific requirements extracted"
	}
	return strings.Join(parts, " | ")
}
