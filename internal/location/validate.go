package location

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/jonathan/job-fit-analyzer/internal/types"
)

var (
	usIndicators    = []string{"remote", "united states", "usa", "u.s."}
	unrestrictedTag = map[string]bool{"US": true, "USA": true, "U.S.": true, "UNITED STATES": true}

	parenRe       = regexp.MustCompile(`\(([^)]+)\)`)
	onlySuffixRe  = regexp.MustCompile(`(?i)[-:]\s*([^-:]+?)\s*only`)
	afterRemoteRe = regexp.MustCompile(`(?i)remote\s*[-:]\s*(.+)`)
)

// ParseAllowedStates extracts the state allow-list from a remote location string.
// A nil result means every US state is allowed.
func ParseAllowedStates(location string) []string {
	if location == "" {
		return nil
	}

	lower := strings.ToLower(location)
	isUSRemote := false
	for _, ind := range usIndicators {
		if strings.Contains(lower, ind) {
			isUSRemote = true
			break
		}
	}
	if !isUSRemote {
		return nil
	}

	if m := parenRe.FindStringSubmatch(location); m != nil {
		if unrestrictedTag[strings.ToUpper(strings.TrimSpace(m[1]))] {
			return nil
		}
		if states := ExtractStates(m[1]); len(states) > 0 {
			return states
		}
	}

	if m := onlySuffixRe.FindStringSubmatch(location); m != nil {
		if states := ExtractStates(m[1]); len(states) > 0 {
			return states
		}
	}

	if m := afterRemoteRe.FindStringSubmatch(location); m != nil {
		if states := ExtractStates(m[1]); len(states) > 0 {
			return states
		}
	}

	return nil
}

// Validator checks postings against a fixed home state
type Validator struct {
	userState string
}

// NewValidator creates a Validator for the given two-letter home state
func NewValidator(userState string) *Validator {
	return &Validator{userState: strings.ToUpper(strings.TrimSpace(userState))}
}

// UserState returns the home state the validator checks against
func (v *Validator) UserState() string {
	return v.userState
}

// Validate decides compatibility. Hybrid, on-site and unspecified postings are always
// compatible; remote postings are compatible unless an allow-list excludes the home state.
func (v *Validator) Validate(location string, workType types.WorkLocationType) types.LocationValidationResult {
	result := types.LocationValidationResult{IsCompatible: true, UserState: v.userState}

	if workType != types.WorkRemote {
		return result
	}

	allowed := ParseAllowedStates(location)
	if allowed == nil {
		return result
	}

	result.AllowedStates = allowed
	if slices.Contains(allowed, v.userState) {
		return result
	}

	result.IsCompatible = false
	result.Reason = fmt.Sprintf("Remote position restricted to %s. User is in %s.", strings.Join(allowed, ", "), v.userState)
	return result
}
