package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/dom/touchline-tactician/internal/clock"
	"github.com/dom/touchline-tactician/internal/domain"
	"github.com/dom/touchline-tactician/internal/repository"
	"github.com/dom/touchline-tactician/internal/resolver"
	"github.com/dom/touchline-tactician/internal/validation"
	"github.com/google/uuid"
)

var (
	ErrPlanInvalid     = errors.New("plan failed validation")
	ErrMissingPlan     = errors.New("plan fields are required")
	ErrNotStoredPlan   = errors.New("reference does not name a stored plan")
	ErrNoEditsProvided = errors.New("at least one edit is required")
)

// ValidationError is returned when a plan is refused at the persistence gate.
type ValidationError struct {
	Summary validation.Summary
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrPlanInvalid, strings.Join(e.Summary.Issues(), "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrPlanInvalid
}

// EventPublisher receives a notification after every plan save or delete.
type EventPublisher interface {
	PublishPlanEvent(event domain.PlanEvent)
}

type noopPublisher struct{}

func (noopPublisher) PublishPlanEvent(domain.PlanEvent) {}

type PlanService struct {
	plans     repository.PlanRepository
	resolver  *resolver.Resolver
	engine    *validation.Engine
	publisher EventPublisher
	clock     clock.Clock

	mu    sync.Mutex
	locks map[uuid.UUID]*planLock
}

// planLock is dropped from PlanService.locks once no caller holds or waits on it.
type planLock struct {
	sync.Mutex
	refs int
}

func NewPlanService(plans repository.PlanRepository, publisher EventPublisher, clk clock.Clock) *PlanService {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	if clk == nil {
		clk = clock.RealClock{}
	}
	r := resolver.New(plans)
	return &PlanService{
		plans:     plans,
		resolver:  r,
		engine:    validation.NewEngine(r),
		publisher: publisher,
		clock:     clk,
		locks:     make(map[uuid.UUID]*planLock),
	}
}

type CreatePlanInput struct {
	Fields   map[string]any
	Filename string
}

// PlanResult is what a successful write returns.
type PlanResult struct {
	Plan     *domain.TacticalPlan
	Filename string
	Path     string
	Summary  validation.Summary
	Warnings []string
}

// Create builds a plan from structured fields and stores it if every check passes.
func (s *PlanService) Create(ctx context.Context, input CreatePlanInput) (*PlanResult, error) {
	if input.Fields == nil {
		return nil, ErrMissingPlan
	}

	plan, err := s.resolver.Resolve(ctx, input.Fields)
	if err != nil {
		return nil, err
	}

	var warnings []string
	if n := len(plan.Players); n != domain.StandardRosterSize {
		msg := fmt.Sprintf("Plan has %d players, expected %d", n, domain.StandardRosterSize)
		log.Printf("WARN [plan.Create] planID=%s coachID=%s: %s", plan.PlanID, coachLabel(ctx), msg)
		warnings = append(warnings, msg)
	}

	summary := validation.ValidateAll(plan)
	if !summary.Valid {
		return nil, &ValidationError{Summary: summary}
	}

	filename := input.Filename
	if filename == "" {
		filename = plan.DefaultFilename()
	}
	filename, err = repository.NormalizeFilename(filename)
	if err != nil {
		return nil, err
	}

	path, err := s.plans.Save(ctx, plan, filename)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, domain.PlanEventSaved, plan, filename)

	return &PlanResult{Plan: plan, Filename: filename, Path: path, Summary: summary, Warnings: warnings}, nil
}

// Get resolves any supported plan reference.
func (s *PlanService) Get(ctx context.Context, ref any) (*domain.TacticalPlan, error) {
	return s.resolver.Resolve(ctx, ref)
}

// Resolver exposes the resolver backing this service.
func (s *PlanService) Resolver() *resolver.Resolver {
	return s.resolver
}

func (s *PlanService) List(ctx context.Context) ([]string, error) {
	return s.plans.List(ctx)
}

// PlanSummary is a listing row.
type PlanSummary struct {
	ID         string `json:"id"`
	PlanID     string `json:"planId"`
	Name       string `json:"name"`
	Formation  string `json:"formation"`
	Players    int    `json:"players"`
	ModifiedAt string `json:"modifiedAt"`
}

// Summaries loads every stored plan for a listing. Plans that no longer
// load are logged and skipped.
func (s *PlanService) Summaries(ctx context.Context) ([]PlanSummary, error) {
	ids, err := s.plans.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PlanSummary, 0, len(ids))
	for _, id := range ids {
		plan, err := s.plans.Load(ctx, id)
		if err != nil {
			log.Printf("ERROR [plan.Summaries] id=%s: %v", id, err)
			continue
		}
		out = append(out, PlanSummary{
			ID:         id,
			PlanID:     plan.PlanID.String(),
			Name:       plan.Name,
			Formation:  plan.Formation,
			Players:    len(plan.Players),
			ModifiedAt: plan.Metadata[domain.MetadataModifiedAt],
		})
	}
	return out, nil
}

// Delete removes the stored plan that ref names.
func (s *PlanService) Delete(ctx context.Context, ref string) (string, error) {
	plan, source, err := s.resolver.ResolveWithSource(ctx, ref)
	if err != nil {
		return "", err
	}
	if source == "" {
		return "", ErrNotStoredPlan
	}

	unlock := s.lockPlan(plan.PlanID)
	defer unlock()

	msg, err := s.plans.Delete(ctx, source)
	if err != nil {
		return "", err
	}
	s.publish(ctx, domain.PlanEventDeleted, plan, source)
	return msg, nil
}

// Edit applies edits to the stored plan that ref names. The edits are all
// applied to a copy, and the copy is only saved when every check passes.
func (s *PlanService) Edit(ctx context.Context, ref any, edits []domain.Edit) (*PlanResult, error) {
	if len(edits) == 0 {
		return nil, ErrNoEditsProvided
	}

	plan, source, err := s.resolver.ResolveWithSource(ctx, ref)
	if err != nil {
		return nil, err
	}

	unlock := s.lockPlan(plan.PlanID)
	defer unlock()

	if source != "" {
		// Another edit may have saved while we waited for the lock.
		if plan, err = s.plans.Load(ctx, source); err != nil {
			return nil, err
		}
	} else {
		source = plan.DefaultFilename()
	}

	working := plan.Clone()
	if err := working.Apply(edits...); err != nil {
		return nil, err
	}
	working.PlanID = plan.PlanID

	summary := validation.ValidateAll(working)
	if !summary.Valid {
		return nil, &ValidationError{Summary: summary}
	}

	path, err := s.plans.Save(ctx, working, source)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, domain.PlanEventSaved, working, source)

	return &PlanResult{Plan: working, Filename: source, Path: path, Summary: summary}, nil
}

// Validate runs one check against ref.
func (s *PlanService) Validate(ctx context.Context, ref any, check validation.Check) validation.Report {
	return s.engine.Check(ctx, check, ref)
}

// ValidateAll runs every check against ref.
func (s *PlanService) ValidateAll(ctx context.Context, ref any) validation.Summary {
	return s.engine.CheckAll(ctx, ref)
}

func (s *PlanService) lockPlan(id uuid.UUID) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &planLock{}
		s.locks[id] = l
	}
	l.refs++
	s.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.mu.Unlock()
	}
}

func (s *PlanService) heldLocks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locks)
}

func (s *PlanService) publish(ctx context.Context, kind domain.PlanEventType, plan *domain.TacticalPlan, filename string) {
	coachID, _ := CoachFromContext(ctx)
	s.publisher.PublishPlanEvent(domain.PlanEvent{
		Type:       kind,
		PlanID:     plan.PlanID,
		CoachID:    coachID,
		Filename:   filename,
		Name:       plan.Name,
		ModifiedAt: plan.Metadata[domain.MetadataModifiedAt],
		OccurredAt: s.clock.Now().UTC(),
	})
}

func coachLabel(ctx context.Context) string {
	if id, ok := CoachFromContext(ctx); ok {
		return id.String()
	}
	return "-"
}
