// Package profile describes the candidate the postings are scored against.
package profile

import (
	"strings"

	"github.com/jonathan/job-fit-analyzer/internal/types"
)

// DefaultHomeState is the candidate's state of residence
const DefaultHomeState = "GA"

// CandidateProfile is constructed once at startup and passed to the analyzers
type CandidateProfile struct {
	Name            string
	HomeLocation    string
	HomeState       string
	YearsExperience int
	Skills          []string
	// RolePriority orders target roles. Used as a tie-break signal, never as a filter.
	RolePriority []types.RoleType
}

// skillAliases expands a canonical skill into the spellings postings use for it
var skillAliases = map[string][]string{
	"python":     {"python3", "py"},
	"javascript": {"js", "es6", "ecmascript"},
	"typescript": {"ts"},
	"postgresql": {"postgres", "psql"},
	"node.js":    {"nodejs", "node"},
	"react":      {"reactjs", "react.js"},
	"aws":        {"amazon web services"},
	"gcp":        {"google cloud", "google cloud platform"},
}

// Default returns the built-in executive candidate profile
func Default() *CandidateProfile {
	return &CandidateProfile{
		Name:            "Tom Hundley",
		HomeLocation:    "Alpharetta, GA",
		HomeState:       DefaultHomeState,
		YearsExperience: 25,
		Skills: []string{
			"Python", "TypeScript", "JavaScript", "C#", ".NET", "Node.js", "React", "Next.js",
			"Azure", "AWS", "GCP", "Cosmos DB", "SQL Server", "PostgreSQL",
			"REST", "GraphQL", "API", "Microservices", "Serverless", "DevOps", "Git",
			"Agile", "Scrum", "SaaS",
			"OpenAI", "LLM", "RAG", "LangChain", "Claude", "Anthropic", "Machine Learning",
		},
		RolePriority: append([]types.RoleType(nil), types.AllRoles...),
	}
}

// WithSkills returns a copy of the profile whose skill list is replaced by the normalized skills
func (p *CandidateProfile) WithSkills(skills []string) *CandidateProfile {
	cp := *p
	cp.Skills = make([]string, 0, len(skills))
	seen := make(map[string]bool)
	for _, s := range skills {
		n := NormalizeSkillName(s)
		if n == "" || seen[strings.ToLower(n)] {
			continue
		}
		seen[strings.ToLower(n)] = true
		cp.Skills = append(cp.Skills, n)
	}
	return &cp
}

// SkillSet is a lower-cased lookup of everything the candidate can claim, including aliases
type SkillSet map[string]struct{}

// Has reports whether a technology name is covered by the skill set
func (s SkillSet) Has(tech string) bool {
	_, ok := s[strings.ToLower(strings.TrimSpace(tech))]
	return ok
}

// SkillSet expands the profile's skills with dot-less and space-less variants and known aliases
func (p *CandidateProfile) SkillSet() SkillSet {
	base := make(SkillSet, len(p.Skills)*2)
	for _, skill := range p.Skills {
		name := strings.ToLower(strings.TrimSpace(skill))
		if name == "" {
			continue
		}
		base[name] = struct{}{}
		if strings.Contains(name, ".") {
			base[strings.ReplaceAll(name, ".", "")] = struct{}{}
		}
		if strings.Contains(name, " ") {
			base[strings.ReplaceAll(name, " ", "")] = struct{}{}
		}
	}

	expanded := make(SkillSet, len(base))
	for k := range base {
		expanded[k] = struct{}{}
		for _, alt := range skillAliases[k] {
			expanded[alt] = struct{}{}
		}
	}
	for main, alts := range skillAliases {
		for _, alt := range alts {
			if _, ok := base[alt]; ok {
				expanded[main] = struct{}{}
				break
			}
		}
	}
	return expanded
}

// RoleRank returns the position of a role in the priority ordering, or len(RolePriority) when absent
func (p *CandidateProfile) RoleRank(role types.RoleType) int {
	for i, r := range p.RolePriority {
		if r == role {
			return i
		}
	}
	return len(p.RolePriority)
}
