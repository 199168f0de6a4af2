package validation

import (
	"errors"
	"fmt"
	"log"
)

// Report is the uniform result of every check.
type Report struct {
	Valid   bool     `json:"valid"`
	Issues  []string `json:"issues"`
	Message string   `json:"message"`
}

// Check names one of the rule sets.
type Check string

const (
	CheckFormation   Check = "formation"
	CheckPositions   Check = "positions"
	CheckZones       Check = "zones"
	CheckConsistency Check = "consistency"
)

// AllChecks lists every check in the order they are reported.
var AllChecks = []Check{CheckFormation, CheckPositions, CheckZones, CheckConsistency}

var errNilPlan = errors.New("plan is nil")

// ParseCheck matches a check name.
func ParseCheck(name string) (Check, bool) {
	c := Check(name)
	switch c {
	case CheckFormation, CheckPositions, CheckZones, CheckConsistency:
		return c, true
	}
	return "", false
}

func newReport(issues []string, okMessage string) Report {
	if issues == nil {
		issues = []string{}
	}
	if len(issues) == 0 {
		return Report{Valid: true, Issues: issues, Message: okMessage}
	}
	noun := "issues"
	if len(issues) == 1 {
		noun = "issue"
	}
	return Report{
		Valid:   false,
		Issues:  issues,
		Message: fmt.Sprintf("Found %d %s", len(issues), noun),
	}
}

// failure turns an unexpected error into a report so callers never see it raised.
func failure(check Check, err error) Report {
	log.Printf("ERROR [validation.%s]: %v", check, err)
	return Report{
		Valid:   false,
		Issues:  []string{err.Error()},
		Message: fmt.Sprintf("Validation error: %v", err),
	}
}

// Summary groups the reports of several checks.
type Summary struct {
	Valid   bool             `json:"valid"`
	Reports map[Check]Report `json:"reports"`
}

// Failed returns the checks that did not pass, in AllChecks order.
func (s Summary) Failed() []Check {
	var failed []Check
	for _, c := range AllChecks {
		if r, ok := s.Reports[c]; ok && !r.Valid {
			failed = append(failed, c)
		}
	}
	return failed
}

// Issues flattens every failing report into "check: issue" lines.
func (s Summary) Issues() []string {
	var issues []string
	for _, c := range s.Failed() {
		for _, issue := range s.Reports[c].Issues {
			issues = append(issues, fmt.Sprintf("%s: %s", c, issue))
		}
	}
	return issues
}
