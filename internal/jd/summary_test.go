package jd

import (
	"testing"

	"github.com/jonathan/job-fit-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestExtractSummary(t *testing.T) {
	tests := []struct {
		name string
		text string
		want types.JDSummary
	}{
		{
			name: "labelled fields",
			text: "Job Title: Staff Engineer\nCompany: Acme Corp\nLocation: Remote, US\nFull-time",
			want: types.JDSummary{
				JobTitle:       "Staff Engineer",
				Company:        "Acme Corp",
				Location:       "Remote, US",
				EmploymentType: "Full-time",
			},
		},
		{
			name: "inferred from prose",
			text: "Senior Platform Engineer\nJoin Acme Robotics as we build the future of warehouses.",
			want: types.JDSummary{
				JobTitle: "Senior Platform Engineer",
				Company:  "Acme Robotics",
			},
		},
		{
			name: "work arrangement word as location",
			text: "This is a hybrid contract position",
			want: types.JDSummary{
				Location:       "hybrid",
				EmploymentType: "contract",
			},
		},
		{
			name: "nothing recognizable",
			text: "hello",
			want: types.JDSummary{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSummary(tt.text))
		})
	}
}
