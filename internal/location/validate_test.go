package location

import (
	"testing"

	"github.com/jonathan/job-fit-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestExtractStates(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"abbreviations", "CA, NY, TX", []string{"CA", "NY", "TX"}},
		{"or as conjunction in a long list", "CA, NY, or TX", []string{"CA", "NY", "TX"}},
		{"or as oregon in a short list", "CA or", []string{"CA", "OR"}},
		{"unknown codes dropped", "CA, XX, NY, ZZ", []string{"CA", "NY"}},
		{"single word full names", "Georgia / Florida", []string{"FL", "GA"}},
		{"multi word names do not resolve", "New York", []string{}},
		{"duplicates collapse", "GA, ga, Georgia", []string{"GA"}},
		{"skip words", "US and the USA only", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractStates(tt.text))
		})
	}
}

func TestParseAllowedStates(t *testing.T) {
	tests := []struct {
		location string
		want     []string
	}{
		{"Remote US (CT, MA, NH, NJ, NY)", []string{"CT", "MA", "NH", "NJ", "NY"}},
		{"United States (CA, TX, NY)", []string{"CA", "NY", "TX"}},
		{"Remote (US)", nil},
		{"USA (Remote)", nil},
		{"Remote US", nil},
		{"Remote, United States", nil},
		{"Remote - CA, NY only", []string{"CA", "NY"}},
		{"Remote: CA, TX, NY", []string{"CA", "NY", "TX"}},
		{"Remote - West Coast", nil},
		{"San Francisco, CA", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAllowedStates(tt.location))
		})
	}
}

func TestValidator_Validate(t *testing.T) {
	v := NewValidator("ga")

	t.Run("remote restricted elsewhere", func(t *testing.T) {
		got := v.Validate("Remote US (CT, MA, NH, NJ, NY)", types.WorkRemote)

		assert.False(t, got.IsCompatible)
		assert.Equal(t, []string{"CT", "MA", "NH", "NJ", "NY"}, got.AllowedStates)
		assert.Equal(t, "GA", got.UserState)
		assert.Equal(t, "Remote position restricted to CT, MA, NH, NJ, NY. User is in GA.", got.Reason)
	})

	t.Run("remote unrestricted", func(t *testing.T) {
		got := v.Validate("Remote US", types.WorkRemote)

		assert.True(t, got.IsCompatible)
		assert.Nil(t, got.AllowedStates)
		assert.Empty(t, got.Reason)
	})

	t.Run("remote restricted including home state", func(t *testing.T) {
		got := v.Validate("Remote - Georgia, Florida only", types.WorkRemote)

		assert.True(t, got.IsCompatible)
		assert.Equal(t, []string{"FL", "GA"}, got.AllowedStates)
	})

	for _, wt := range []types.WorkLocationType{types.WorkHybrid, types.WorkOnSite, "", "unknown"} {
		t.Run("always compatible for "+string(wt), func(t *testing.T) {
			got := v.Validate("Remote US (CA)", wt)

			assert.True(t, got.IsCompatible)
			assert.Nil(t, got.AllowedStates)
			assert.Equal(t, "GA", got.UserState)
		})
	}
}

func TestIsState(t *testing.T) {
	assert.True(t, IsState(" dc "))
	assert.False(t, IsState("XX"))
}
