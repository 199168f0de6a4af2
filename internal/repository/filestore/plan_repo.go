// Package filestore keeps one indented JSON document per plan in a directory.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dom/touchline-tactician/internal/clock"
	"github.com/dom/touchline-tactician/internal/domain"
	"github.com/dom/touchline-tactician/internal/repository"
)

type PlanRepository struct {
	dir   string
	clock clock.Clock
}

// Option customizes a PlanRepository during construction.
type Option func(*PlanRepository)

// WithClock overrides the clock used to stamp modified_at on save.
func WithClock(c clock.Clock) Option {
	return func(r *PlanRepository) {
		r.clock = c
	}
}

// NewPlanRepository creates the directory if needed.
func NewPlanRepository(dir string, opts ...Option) (*PlanRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("filestore: ensure plans dir %s: %w", dir, err)
	}
	r := &PlanRepository{dir: dir, clock: clock.RealClock{}}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *PlanRepository) Dir() string {
	return r.dir
}

func (r *PlanRepository) Save(ctx context.Context, plan *domain.TacticalPlan, filename string) (string, error) {
	if plan == nil {
		return "", errors.New("filestore: save: plan is nil")
	}
	if filename == "" {
		filename = plan.DefaultFilename()
	}
	name, err := repository.NormalizeFilename(filename)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	plan.TouchAt(r.clock.Now())

	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return "", fmt.Errorf("filestore: encode plan %s: %w", plan.PlanID, err)
	}

	path := filepath.Join(r.dir, name)
	if err := writeAtomic(r.dir, path, data); err != nil {
		return "", fmt.Errorf("filestore: write %s: %w", path, err)
	}
	return path, nil
}

func (r *PlanRepository) Load(ctx context.Context, filename string) (*domain.TacticalPlan, error) {
	name, err := repository.NormalizeFilename(filename)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(r.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", repository.ErrPlanNotFound, path)
		}
		return nil, fmt.Errorf("filestore: read %s: %w", path, err)
	}

	plan, err := domain.DecodePlan(data)
	if err != nil {
		return nil, fmt.Errorf("filestore: load %s: %w", path, err)
	}
	return plan, nil
}

// List returns the identifiers (filename stems) of every stored plan, sorted.
func (r *PlanRepository) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("filestore: list %s: %w", r.dir, err)
	}

	ids := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, repository.PlanExtension) {
			continue
		}
		ids = append(ids, repository.Identifier(name))
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *PlanRepository) Delete(ctx context.Context, filename string) (string, error) {
	name, err := repository.NormalizeFilename(filename)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(r.dir, name)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", repository.ErrPlanNotFound, path)
		}
		return "", fmt.Errorf("filestore: delete %s: %w", path, err)
	}
	return "Deleted plan: " + name, nil
}

// writeAtomic writes data to a temp file in dir and renames it over path so
// readers never observe a partial plan.
func writeAtomic(dir, path string, data []byte) error {
	tmp, err := os.CreateTemp(dir, ".plan-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
