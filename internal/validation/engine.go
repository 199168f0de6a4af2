// Package validation checks a resolved tactical plan against the roster,
// position, zone and consistency rules. Every check is read-only and always
// returns a Report; nothing here raises past the package boundary.
package validation

import (
	"context"
	"fmt"

	"github.com/dom/touchline-tactician/internal/domain"
)

// Run executes a single check against plan.
func Run(check Check, plan *domain.TacticalPlan) (report Report) {
	defer func() {
		if r := recover(); r != nil {
			report = failure(check, fmt.Errorf("%v", r))
		}
	}()

	r, ok := rules[check]
	if !ok {
		return failure(check, fmt.Errorf("unknown validation check %q", check))
	}
	if plan == nil {
		return failure(check, errNilPlan)
	}
	return newReport(r.issues(plan), r.okMessage)
}

func ValidateFormation(plan *domain.TacticalPlan) Report {
	return Run(CheckFormation, plan)
}

func ValidatePositions(plan *domain.TacticalPlan) Report {
	return Run(CheckPositions, plan)
}

func ValidateZones(plan *domain.TacticalPlan) Report {
	return Run(CheckZones, plan)
}

func ValidateConsistency(plan *domain.TacticalPlan) Report {
	return Run(CheckConsistency, plan)
}

// ValidateAll runs every check and reports whether all of them passed.
func ValidateAll(plan *domain.TacticalPlan) Summary {
	summary := Summary{Valid: true, Reports: make(map[Check]Report, len(AllChecks))}
	for _, c := range AllChecks {
		r := Run(c, plan)
		summary.Reports[c] = r
		summary.Valid = summary.Valid && r.Valid
	}
	return summary
}

// PlanResolver turns any supported plan reference into a canonical plan.
type PlanResolver interface {
	Resolve(ctx context.Context, input any) (*domain.TacticalPlan, error)
}

// Engine validates plan references that still need resolving. Resolution
// failures come back as a failed report carrying the error text.
type Engine struct {
	resolver PlanResolver
}

func NewEngine(resolver PlanResolver) *Engine {
	return &Engine{resolver: resolver}
}

func (e *Engine) Check(ctx context.Context, check Check, ref any) Report {
	plan, err := e.resolver.Resolve(ctx, ref)
	if err != nil {
		return failure(check, err)
	}
	return Run(check, plan)
}

func (e *Engine) CheckAll(ctx context.Context, ref any) Summary {
	plan, err := e.resolver.Resolve(ctx, ref)
	if err != nil {
		summary := Summary{Reports: make(map[Check]Report, len(AllChecks))}
		for _, c := range AllChecks {
			summary.Reports[c] = failure(c, err)
		}
		return summary
	}
	return ValidateAll(plan)
}
