package profile

import (
	"testing"

	"github.com/jonathan/job-fit-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	p := Default()

	assert.Equal(t, "GA", p.HomeState)
	assert.Equal(t, 25, p.YearsExperience)
	assert.Equal(t, types.AllRoles, p.RolePriority)
	assert.Contains(t, p.Skills, "Python")
	assert.Contains(t, p.Skills, "Azure")
	assert.NotContains(t, p.Skills, "Kubernetes")
}

func TestSkillSet_Has(t *testing.T) {
	skills := Default().SkillSet()

	tests := []struct {
		tech string
		want bool
	}{
		{"Python", true},
		{"python3", true},
		{"  AZURE ", true},
		{"postgres", true},
		{"nodejs", true},
		{"Node", true},
		{"cosmosdb", true},
		{"Google Cloud", true},
		{"amazon web services", true},
		{"Kubernetes", false},
		{"Rust", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.tech, func(t *testing.T) {
			assert.Equal(t, tt.want, skills.Has(tt.tech))
		})
	}
}

func TestSkillSet_AliasAddsMainName(t *testing.T) {
	p := &CandidateProfile{Skills: []string{"js", "psql"}}

	skills := p.SkillSet()

	assert.True(t, skills.Has("JavaScript"))
	assert.True(t, skills.Has("PostgreSQL"))
	assert.False(t, skills.Has("TypeScript"))
}

func TestWithSkills(t *testing.T) {
	base := Default()

	p := base.WithSkills([]string{"golang", "Go", " k8s ", "", "terraform"})

	assert.Equal(t, []string{"Go", "Kubernetes", "Terraform"}, p.Skills)
	assert.Equal(t, base.HomeState, p.HomeState)
	assert.Contains(t, base.Skills, "Python", "original profile must be untouched")
}

func TestRoleRank(t *testing.T) {
	p := Default()

	assert.Equal(t, 0, p.RoleRank(types.RoleCTO))
	assert.Equal(t, 2, p.RoleRank(types.RoleDirector))
	assert.Equal(t, 4, p.RoleRank(types.RoleDeveloper))
	assert.Equal(t, len(p.RolePriority), p.RoleRank(types.RoleType("intern")))
}

func TestNormalizeSkillName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"golang", "Go"},
		{"K8S", "Kubernetes"},
		{"react.js", "React"},
		{"terraform", "Terraform"},
		{"AWS", "AWS"},
		{"machine learning", "machine learning"},
		{"  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSkillName(tt.in))
		})
	}
}
