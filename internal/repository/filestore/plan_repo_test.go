package filestore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dom/touchline-tactician/internal/clock"
	"github.com/dom/touchline-tactician/internal/domain"
	"github.com/dom/touchline-tactician/internal/repository"
	"github.com/dom/touchline-tactician/internal/repository/filestore"
	"github.com/dom/touchline-tactician/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (*filestore.PlanRepository, *clock.FakeClock) {
	t.Helper()
	clk := clock.NewFakeClock(time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC))
	repo, err := filestore.NewPlanRepository(t.TempDir(), filestore.WithClock(clk))
	require.NoError(t, err)
	return repo, clk
}

func TestPlanRepository_SaveAndLoad(t *testing.T) {
	repo, clk := newRepo(t)
	ctx := context.Background()
	plan := testutil.NewPlanBuilder().Build(t)

	path, err := repo.Save(ctx, plan, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(repo.Dir(), plan.PlanID.String()+".json"), path)

	loaded, err := repo.Load(ctx, plan.PlanID.String())
	require.NoError(t, err)

	assert.Equal(t, plan.PlanID, loaded.PlanID)
	assert.Equal(t, plan.Name, loaded.Name)
	assert.Equal(t, plan.Formation, loaded.Formation)
	assert.Len(t, loaded.Players, 11)
	assert.Equal(t, plan.PressingTriggers, loaded.PressingTriggers)
	assert.Equal(t, plan.TransitionInstructions, loaded.TransitionInstructions)

	modified, ok := loaded.ModifiedAt()
	require.True(t, ok)
	assert.True(t, modified.Equal(clk.Now()))
}

func TestPlanRepository_SaveRefreshesModifiedAt(t *testing.T) {
	repo, clk := newRepo(t)
	ctx := context.Background()
	plan := testutil.NewPlanBuilder().Build(t)

	_, err := repo.Save(ctx, plan, "press-high")
	require.NoError(t, err)
	created, _ := plan.CreatedAt()

	clk.Advance(time.Hour)
	_, err = repo.Save(ctx, plan, "press-high")
	require.NoError(t, err)

	loaded, err := repo.Load(ctx, "press-high.json")
	require.NoError(t, err)
	modified, ok := loaded.ModifiedAt()
	require.True(t, ok)
	assert.True(t, modified.Equal(clk.Now()))

	reloadedCreated, ok := loaded.CreatedAt()
	require.True(t, ok)
	assert.True(t, reloadedCreated.Equal(created))
}

func TestPlanRepository_WritesIndentedJSON(t *testing.T) {
	repo, _ := newRepo(t)
	plan := testutil.NewPlanBuilder().Build(t)

	path, err := repo.Save(context.Background(), plan, "indented")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"name\": \"Press High\"")
}

func TestPlanRepository_List(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	ids, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	for _, name := range []string{"zulu", "alpha", "mike"} {
		_, err := repo.Save(ctx, testutil.NewPlanBuilder().WithName(name).Build(t), name)
		require.NoError(t, err)
	}
	require.NoError(t, os.WriteFile(filepath.Join(repo.Dir(), "notes.txt"), []byte("x"), 0o644))

	ids, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "mike", "zulu"}, ids)
}

func TestPlanRepository_Delete(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()
	plan := testutil.NewPlanBuilder().Save(t, repo)

	msg, err := repo.Delete(ctx, plan.PlanID.String())
	require.NoError(t, err)
	assert.Equal(t, "Deleted plan: "+plan.DefaultFilename(), msg)

	_, err = repo.Load(ctx, plan.PlanID.String())
	assert.ErrorIs(t, err, repository.ErrPlanNotFound)

	_, err = repo.Delete(ctx, plan.PlanID.String())
	assert.ErrorIs(t, err, repository.ErrPlanNotFound)
}

func TestPlanRepository_Errors(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		filename string
		wantErr  error
	}{
		{name: "missing file", filename: "ghost", wantErr: repository.ErrPlanNotFound},
		{name: "empty filename", filename: "  ", wantErr: repository.ErrInvalidFilename},
		{name: "path traversal", filename: "../escape.json", wantErr: repository.ErrInvalidFilename},
		{name: "nested path", filename: "a/b.json", wantErr: repository.ErrInvalidFilename},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Load(ctx, tt.filename)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPlanRepository_LoadRejectsMalformedDocument(t *testing.T) {
	repo, _ := newRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(repo.Dir(), "broken.json"), []byte(`{"name": ""}`), 0o644))

	_, err := repo.Load(context.Background(), "broken")
	assert.ErrorIs(t, err, domain.ErrSchemaViolation)
}
