// Package resolver turns the loosely-shaped plan references that callers pass
// around (plan values, mappings, JSON or YAML text, debug strings, bare ids,
// filenames) into canonical plans.
package resolver

import (
	"context"
	"errors"

	"github.com/dom/touchline-tactician/internal/domain"
	"github.com/dom/touchline-tactician/internal/repository"
)

// Loader is the slice of the plan store the resolver reads from.
type Loader interface {
	Load(ctx context.Context, filename string) (*domain.TacticalPlan, error)
}

type Resolver struct {
	store Loader
}

func New(store Loader) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the plan that input refers to.
func (r *Resolver) Resolve(ctx context.Context, input any) (*domain.TacticalPlan, error) {
	plan, _, err := r.ResolveWithSource(ctx, input)
	return plan, err
}

// ResolveWithSource also reports the store filename the plan was loaded from,
// or "" when the plan came from the input itself.
func (r *Resolver) ResolveWithSource(ctx context.Context, input any) (*domain.TacticalPlan, string, error) {
	ref, err := Classify(input)
	if err != nil {
		return nil, "", err
	}

	switch ref := ref.(type) {
	case PlanRef:
		return ref.Plan, "", nil
	case MappingRef:
		plan, err := domain.PlanFromMap(ref.Fields)
		return plan, "", err
	case IdentifierRef:
		return r.loadIdentifier(ctx, ref)
	case FilenameRef:
		return r.loadFilename(ctx, ref)
	default:
		return nil, "", &UnsupportedTypeError{Type: ref.kind()}
	}
}

func (r *Resolver) loadIdentifier(ctx context.Context, ref IdentifierRef) (*domain.TacticalPlan, string, error) {
	filename := ref.ID + repository.PlanExtension
	plan, err := r.store.Load(ctx, filename)
	if err != nil {
		if errors.Is(err, repository.ErrPlanNotFound) || errors.Is(err, repository.ErrInvalidFilename) {
			return nil, "", &NotFoundError{Identifier: ref.ID, Filename: filename}
		}
		return nil, "", err
	}
	return plan, filename, nil
}

func (r *Resolver) loadFilename(ctx context.Context, ref FilenameRef) (*domain.TacticalPlan, string, error) {
	plan, err := r.store.Load(ctx, ref.Filename)
	if err != nil {
		if errors.Is(err, repository.ErrPlanNotFound) || errors.Is(err, repository.ErrInvalidFilename) {
			return nil, "", &InvalidReferenceError{
				Input: preview(ref.Raw),
				Attempted: []string{
					PlanRef{}.kind(),
					MappingRef{}.kind() + " (JSON/YAML)",
					IdentifierRef{}.kind() + " (plan_id=UUID('...') or bare UUID)",
					FilenameRef{}.kind() + " " + ref.Filename,
				},
			}
		}
		return nil, "", err
	}
	return plan, ref.Filename, nil
}
